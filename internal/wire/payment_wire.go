package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/adaptor"
	"github.com/kweeen04/EandP/internal/data/repository"
	"github.com/kweeen04/EandP/pkg/middleware"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/payments", func(r chi.Router) {
		// The gateway posts asynchronous payment results here; it cannot
		// carry a session token.
		r.Post("/momo/notify", paymentHandler.MomoNotify)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthSession(repo.Session, repo.User, log))

			r.Post("/momo/create", paymentHandler.CreateMomoPayment)
			r.Get("/status/{orderId}", paymentHandler.GetPaymentStatus)
		})
	})
}
