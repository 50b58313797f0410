package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/adaptor"
	"github.com/kweeen04/EandP/internal/data/repository"
	"github.com/kweeen04/EandP/pkg/middleware"
)

func wireEvent(
	r chi.Router,
	eventHandler *adaptor.EventHandler,
	invoiceHandler *adaptor.InvoiceHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/events", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/create", eventHandler.CreateEvent)
		r.Get("/", eventHandler.ListEvents)
		r.Get("/service-usage", eventHandler.ServiceUsage)
		r.Get("/{id}", eventHandler.GetEvent)
		r.Put("/{id}", eventHandler.UpdateEvent)
		r.Patch("/update-partial/{id}", eventHandler.PatchEvent)
		r.Patch("/{id}/category", eventHandler.UpdateEventCategory)
		r.Patch("/{id}/status", eventHandler.UpdateEventStatus)

		// Ownership is checked in the service layer; the generic delete
		// route is additionally admin-gated.
		r.With(middleware.Admin(log)).Delete("/{id}", eventHandler.DeleteEvent)

		r.Post("/{eventId}/add-service", eventHandler.AddService)
		r.Delete("/{eventId}/remove-service/{serviceId}", eventHandler.RemoveService)
		r.Put("/{eventId}/update-service/{serviceId}", eventHandler.UpdateService)

		r.Get("/{eventId}/invoice", invoiceHandler.GetOrCreateForEvent)
	})
}
