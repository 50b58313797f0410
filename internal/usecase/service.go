package usecase

import (
	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/data/repository"
	"github.com/kweeen04/EandP/internal/gateway"
	"github.com/kweeen04/EandP/pkg/utils"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Category CategoryService
	Catalog  CatalogService
	Event    EventService
	Invoice  InvoiceService
	Payment  PaymentService
}

func NewService(repo *repository.Repository, config *utils.Config, momo gateway.MomoClient, log *zap.Logger) *Service {
	mailer := utils.NewMailer(config.Email)

	return &Service{
		Auth:     NewAuthService(repo, config, mailer, log),
		User:     NewUserService(repo, log),
		Category: NewCategoryService(repo, log),
		Catalog:  NewCatalogService(repo, log),
		Event:    NewEventService(repo, log),
		Invoice:  NewInvoiceService(repo, log),
		Payment:  NewPaymentService(repo, momo, log),
	}
}
