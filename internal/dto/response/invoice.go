package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/kweeen04/EandP/internal/data/entity"
)

type InvoiceItemResponse struct {
	ServiceID uuid.UUID `json:"service_id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
}

type InvoiceResponse struct {
	ID          uuid.UUID             `json:"id"`
	EventID     uuid.UUID             `json:"event_id"`
	TotalAmount float64               `json:"total_amount"`
	Status      string                `json:"status"`
	CreatedBy   uuid.UUID             `json:"created_by"`
	Items       []InvoiceItemResponse `json:"items"`
	CreatedAt   time.Time             `json:"created_at"`
}

func InvoiceToResponse(inv *entity.Invoice, items []*entity.InvoiceService) InvoiceResponse {
	out := make([]InvoiceItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, InvoiceItemResponse{
			ServiceID: it.ServiceID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return InvoiceResponse{
		ID:          inv.ID,
		EventID:     inv.EventID,
		TotalAmount: inv.TotalAmount,
		Status:      string(inv.Status),
		CreatedBy:   inv.CreatedBy,
		Items:       out,
		CreatedAt:   inv.CreatedAt,
	}
}
