package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/adaptor"
	"github.com/kweeen04/EandP/internal/data/repository"
	"github.com/kweeen04/EandP/pkg/middleware"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Post("/api/users/register", authHandler.Register)
	r.Post("/api/users/login", authHandler.Login)
	r.Post("/api/users/reset-password-request", authHandler.RequestPasswordReset)
	r.Post("/api/users/reset-password", authHandler.ResetPassword)

	r.With(middleware.AuthSession(repo.Session, repo.User, log)).
		Post("/api/users/logout", authHandler.Logout)
}
