package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/adaptor"
	"github.com/kweeen04/EandP/internal/data/repository"
	"github.com/kweeen04/EandP/pkg/middleware"
)

func wireCategory(
	r chi.Router,
	categoryHandler *adaptor.CategoryHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", categoryHandler.ListCategories)

		// Mutations are admin-only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthSession(repo.Session, repo.User, log))
			r.Use(middleware.Admin(log))

			r.Post("/", categoryHandler.CreateCategory)
			r.Put("/{id}", categoryHandler.UpdateCategory)
			r.Delete("/{id}", categoryHandler.DeleteCategory)
		})
	})
}
