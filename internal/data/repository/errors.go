package repository

import "errors"

// Domain errors surfaced by conditional multi-record operations so the
// service layer can map them to its own error kinds.
var (
	ErrInsufficientStock = errors.New("insufficient service stock")
	ErrLineItemNotFound  = errors.New("service not booked in event")
	ErrAlreadyApplied    = errors.New("payment result already applied")
)
