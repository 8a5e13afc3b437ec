package adaptor

import (
	"net/http"

	"eventmate/internal/dto/request"
	"eventmate/internal/usecase"
	"eventmate/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetProfile handles GET /auth/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
}

// UpdateProfile handles PUT /auth/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.UpdateProfile(r.Context(), userID, &req); err != nil {
		h.handleServiceError(w, err, "update profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated successfully", nil)
}

// DeleteProfile handles DELETE /auth/profile
func (h *UserHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	claims, _ := utils.GetClaimsFromContext(r.Context())

	if err := h.service.DeleteProfile(r.Context(), userID, claims); err != nil {
		h.handleServiceError(w, err, "delete profile")
		return
	}

	utils.ResponseSuccess(w, "User account deleted successfully", nil)
}

func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	respondServiceError(w, h.log, err, operation)
}
