package wire

import (
	"eventmate/internal/adaptor"
	"eventmate/internal/usecase"
	"eventmate/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	auth usecase.AuthService,
	log *zap.Logger,
) {
	r.Route("/reviews/{event_id}", func(r chi.Router) {
		// Public
		r.Get("/", reviewHandler.ListReviews)

		// Protected
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(auth, log))

			r.Post("/", reviewHandler.AddReview)
			r.Put("/{review_id}", reviewHandler.UpdateReview)
			r.Delete("/{review_id}", reviewHandler.DeleteReview)
		})
	})
}
