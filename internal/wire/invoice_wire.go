package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/adaptor"
	"github.com/kweeen04/EandP/internal/data/repository"
	"github.com/kweeen04/EandP/pkg/middleware"
)

func wireInvoice(
	r chi.Router,
	invoiceHandler *adaptor.InvoiceHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/invoices", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/create", invoiceHandler.CreateInvoice)
		r.Get("/", invoiceHandler.ListInvoices)
		r.Get("/{id}", invoiceHandler.GetInvoice)
		r.Put("/{invoiceId}", invoiceHandler.UpdateInvoiceStatus)

		r.With(middleware.Admin(log)).Delete("/{invoiceId}", invoiceHandler.DeleteInvoice)
	})
}
