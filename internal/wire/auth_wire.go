package wire

import (
	"eventmate/internal/adaptor"
	"eventmate/internal/usecase"
	"eventmate/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	userHandler *adaptor.UserHandler,
	auth usecase.AuthService,
	limiter *middleware.RateLimiter,
	log *zap.Logger,
) {
	r.Route("/auth", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.With(limiter.Handler).Post("/register", authHandler.Register)
		r.With(limiter.Handler).Post("/login", authHandler.Login)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(auth, log))

			r.Post("/logout", authHandler.Logout)
			r.Get("/profile", userHandler.GetProfile)
			r.Put("/profile", userHandler.UpdateProfile)
			r.Delete("/profile", userHandler.DeleteProfile)
		})
	})
}
