package wire

import (
	"eventmate/internal/adaptor"
	"eventmate/internal/usecase"
	"eventmate/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireEvent(
	r chi.Router,
	eventHandler *adaptor.EventHandler,
	auth usecase.AuthService,
	log *zap.Logger,
) {
	r.Route("/events", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", eventHandler.ListEvents)
		r.Get("/search", eventHandler.SearchEvents)
		r.Get("/nearby", eventHandler.NearbyEvents)
		r.Get("/stats/categories", eventHandler.CategoryStats)
		r.Get("/{id}", eventHandler.GetEvent)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(auth, log))
			r.Use(middleware.Admin(auth, log))

			r.Post("/", eventHandler.CreateEvent)
			r.Put("/{id}", eventHandler.UpdateEvent)
			r.Delete("/{id}", eventHandler.DeleteEvent)
		})
	})
}
