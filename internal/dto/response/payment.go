package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/kweeen04/EandP/internal/data/entity"
)

type PaymentResponse struct {
	ID            uuid.UUID `json:"id"`
	InvoiceID     uuid.UUID `json:"invoice_id"`
	PaymentMethod string    `json:"payment_method"`
	Amount        int64     `json:"amount"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func PaymentToResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		InvoiceID:     p.InvoiceID,
		PaymentMethod: p.PaymentMethod,
		Amount:        p.Amount,
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt,
	}
}

type CreatePaymentResponse struct {
	PaymentID uuid.UUID `json:"payment_id"`
	PayURL    string    `json:"pay_url"`
	Message   string    `json:"message"`
}
