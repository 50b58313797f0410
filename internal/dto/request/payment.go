package request

type CreatePaymentRequest struct {
	InvoiceID string `json:"invoiceId" validate:"required,uuid4"`
}
