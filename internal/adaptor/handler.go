package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"eventmate/internal/usecase"
	"eventmate/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Event   *EventHandler
	Review  *ReviewHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Event:   NewEventHandler(service.Event, log),
		Review:  NewReviewHandler(service.Review, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}

// decodeJSON reads the body into dst, answering 400 itself when it cannot
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// validateRequest answers 400 with per-field messages when req is invalid
func validateRequest(w http.ResponseWriter, req any) bool {
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}

// currentUser returns the authenticated user id, answering 401 when absent
func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return "", false
	}
	return userID, true
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unclassified is logged in full and answered with a fixed message.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrConflict),
		errors.Is(err, usecase.ErrInsufficientCapacity):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
