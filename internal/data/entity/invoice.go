package entity

import (
	"github.com/google/uuid"
)

type InvoiceStatus string

const (
	InvoiceStatusPending  InvoiceStatus = "Pending"
	InvoiceStatusPaid     InvoiceStatus = "Paid"
	InvoiceStatusCanceled InvoiceStatus = "Canceled"
)

// ValidInvoiceStatus reports whether s belongs to the closed status set.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusCanceled:
		return true
	}
	return false
}

type Invoice struct {
	BaseSimple
	EventID     uuid.UUID     `db:"event_id"`
	TotalAmount float64       `db:"total_amount"`
	Status      InvoiceStatus `db:"status"`
	CreatedBy   uuid.UUID     `db:"created_by"`
}

// InvoiceService is an immutable snapshot line: quantity and the service price
// captured at invoice time, immune to later catalog price changes.
type InvoiceService struct {
	ID        uuid.UUID `db:"id"`
	InvoiceID uuid.UUID `db:"invoice_id"`
	ServiceID uuid.UUID `db:"service_id"`
	Quantity  int       `db:"quantity"`
	Price     float64   `db:"price"`
}
