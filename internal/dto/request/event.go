package request

type EventServiceItem struct {
	ServiceID   string  `json:"service_id" validate:"required,uuid4"`
	Quantity    int     `json:"quantity" validate:"min=0"`
	Description *string `json:"description,omitempty"`
}

type CreateEventRequest struct {
	Name        string             `json:"name" validate:"required,min=1,max=200"`
	Date        string             `json:"date" validate:"required"`
	CategoryID  string             `json:"category_id" validate:"required,uuid4"`
	Location    string             `json:"location" validate:"required,min=1,max=200"`
	Description *string            `json:"description,omitempty"`
	Services    []EventServiceItem `json:"services,omitempty" validate:"omitempty,dive"`
	IsPublic    bool               `json:"is_public"`
}

// UpdateEventRequest replaces the event's scalar fields. Line items are
// managed only through the add/remove/update service operations so stock
// accounting cannot be bypassed.
type UpdateEventRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Date        string  `json:"date" validate:"required"`
	CategoryID  string  `json:"category_id" validate:"required,uuid4"`
	Location    string  `json:"location" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	IsPublic    bool    `json:"is_public"`
}

type PatchEventRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Date        *string `json:"date,omitempty"`
	CategoryID  *string `json:"category_id,omitempty" validate:"omitempty,uuid4"`
	Location    *string `json:"location,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty"`
}

type UpdateEventCategoryRequest struct {
	CategoryID string `json:"category_id" validate:"required,uuid4"`
}

type UpdateEventStatusRequest struct {
	IsPublic *bool `json:"is_public" validate:"required"`
}

type AddServiceToEventRequest struct {
	ServiceID   string  `json:"service_id" validate:"required,uuid4"`
	Quantity    int     `json:"quantity" validate:"required,min=1"`
	Description *string `json:"description,omitempty"`
}

type UpdateServiceInEventRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}
