package repository

import (
	"github.com/kweeen04/EandP/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Session  SessionRepository
	Category CategoryRepository
	Service  ServiceRepository
	Event    EventRepository
	Invoice  InvoiceRepository
	Payment  PaymentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Category: NewCategoryRepository(db, log),
		Service:  NewServiceRepository(db, log),
		Event:    NewEventRepository(db, log),
		Invoice:  NewInvoiceRepository(db, log),
		Payment:  NewPaymentRepository(db, log),
	}
}
