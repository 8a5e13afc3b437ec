package adaptor

import (
	"net/http"

	"eventmate/internal/dto/request"
	"eventmate/internal/usecase"
	"eventmate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// ListBookings handles GET /bookings?status= (protected)
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	req := &request.ListBookingsRequest{Status: r.URL.Query().Get("status")}
	bookings, err := h.service.List(r.Context(), userID, req)
	if err != nil {
		h.handleServiceError(w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "Bookings retrieved successfully", bookings)
}

// GetBooking handles GET /bookings/{id} (protected)
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	booking, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "Booking retrieved successfully", booking)
}

// CreateBooking handles POST /bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, req) {
		return
	}

	booking, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking successful", booking)
}

// UpdateBooking handles PUT /bookings/{id} (protected)
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.UpdateBookingRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, req) {
		return
	}

	booking, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "update booking")
		return
	}

	utils.ResponseSuccess(w, "Booking updated successfully", booking)
}

// DeleteBooking handles DELETE /bookings/{id} (protected)
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete booking")
		return
	}

	utils.ResponseSuccess(w, "Booking deleted successfully", nil)
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	respondServiceError(w, h.log, err, operation)
}
