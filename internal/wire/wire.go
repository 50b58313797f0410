package wire

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/adaptor"
	"github.com/kweeen04/EandP/internal/data/repository"
	"github.com/kweeen04/EandP/internal/gateway"
	"github.com/kweeen04/EandP/internal/usecase"
	"github.com/kweeen04/EandP/pkg/middleware"
	"github.com/kweeen04/EandP/pkg/utils"
)

type App struct {
	Router *chi.Mux
}

func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	momo := gateway.NewMomoClient(config.Momo, logger)
	service := usecase.NewService(repo, config, momo, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, repo, logger)
	wireCategory(r, handler.Category, repo, logger)
	wireService(r, handler.Service, repo, logger)
	wireEvent(r, handler.Event, handler.Invoice, repo, logger)
	wireInvoice(r, handler.Invoice, repo, logger)
	wirePayment(r, handler.Payment, repo, logger)

	// Uploaded event images are served straight from disk.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(config.Upload.Dir))))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
