package wire

import (
	"eventmate/internal/adaptor"
	"eventmate/internal/usecase"
	"eventmate/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	auth usecase.AuthService,
	log *zap.Logger,
) {
	// Every booking route is scoped to the authenticated user
	r.Route("/bookings", func(r chi.Router) {
		r.Use(middleware.Auth(auth, log))

		r.Get("/", bookingHandler.ListBookings)
		r.Post("/", bookingHandler.CreateBooking)
		r.Get("/{id}", bookingHandler.GetBooking)
		r.Put("/{id}", bookingHandler.UpdateBooking)
		r.Delete("/{id}", bookingHandler.DeleteBooking)
	})
}
