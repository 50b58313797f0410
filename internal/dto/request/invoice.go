package request

type CreateInvoiceRequest struct {
	EventID string  `json:"event_id" validate:"required,uuid4"`
	Status  *string `json:"status,omitempty" validate:"omitempty,oneof=Pending Paid Canceled"`
}

type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
