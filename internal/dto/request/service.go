package request

type CreateServiceRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty"`
	Quantity    int     `json:"quantity" validate:"min=0"`
	Price       float64 `json:"price" validate:"min=0"`
}

type UpdateServiceRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty"`
	Quantity    int     `json:"quantity" validate:"min=0"`
	Price       float64 `json:"price" validate:"min=0"`
}
