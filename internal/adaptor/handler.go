package adaptor

import (
	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/usecase"
	"github.com/kweeen04/EandP/pkg/utils"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Category *CategoryHandler
	Service  *ServiceHandler
	Event    *EventHandler
	Invoice  *InvoiceHandler
	Payment  *PaymentHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Category: NewCategoryHandler(service.Category, log),
		Service:  NewServiceHandler(service.Catalog, log),
		Event:    NewEventHandler(service.Event, config.Upload.Dir, log),
		Invoice:  NewInvoiceHandler(service.Invoice, log),
		Payment:  NewPaymentHandler(service.Payment, log),
	}
}
