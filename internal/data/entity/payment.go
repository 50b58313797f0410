package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
)

// Payment is one gateway attempt against an invoice. TransactionID is the
// external order id and the join key for asynchronous callbacks. Rows are
// never deleted; status is mutated only by callback reconciliation.
type Payment struct {
	BaseSimple
	InvoiceID     uuid.UUID     `db:"invoice_id"`
	PaymentMethod string        `db:"payment_method"`
	Amount        int64         `db:"amount"`
	Status        PaymentStatus `db:"status"`
	TransactionID string        `db:"transaction_id"`
}
