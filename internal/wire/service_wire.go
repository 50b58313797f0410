package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/adaptor"
	"github.com/kweeen04/EandP/internal/data/repository"
	"github.com/kweeen04/EandP/pkg/middleware"
)

func wireService(
	r chi.Router,
	serviceHandler *adaptor.ServiceHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/services", func(r chi.Router) {
		r.Get("/", serviceHandler.ListServices)
		r.Get("/{id}", serviceHandler.GetService)

		// Catalog mutations are admin-only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthSession(repo.Session, repo.User, log))
			r.Use(middleware.Admin(log))

			r.Post("/create", serviceHandler.CreateService)
			r.Put("/{id}", serviceHandler.UpdateService)
			r.Delete("/{id}", serviceHandler.DeleteService)
		})
	})
}
