package wire

import (
	"net/http"

	"eventmate/internal/adaptor"
	"eventmate/internal/data/repository"
	"eventmate/internal/usecase"
	"eventmate/pkg/metrics"
	"eventmate/pkg/middleware"
	"eventmate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the assembled router and the pieces the server manages
type App struct {
	Router      *chi.Mux
	Service     *usecase.Service
	RateLimiter *middleware.RateLimiter
}

// Wiring builds services, handlers and routes on top of repo
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)
	limiter := middleware.NewRateLimiter(config.RateLimit.RequestsPerSecond, config.RateLimit.Burst, logger)

	router := setupRouter(handler, service, limiter, config, logger)

	return &App{
		Router:      router,
		Service:     service,
		RateLimiter: limiter,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	limiter *middleware.RateLimiter,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware, outermost first
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))
	r.Use(metrics.InstrumentHandler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	wireAuth(r, handler.Auth, handler.User, service.Auth, limiter, logger)
	wireEvent(r, handler.Event, service.Auth, logger)
	wireReview(r, handler.Review, service.Auth, logger)
	wireBooking(r, handler.Booking, service.Auth, logger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "Welcome to EventMate API", nil)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
