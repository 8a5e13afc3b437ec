package adaptor

import (
	"net/http"

	"eventmate/internal/dto/request"
	"eventmate/internal/usecase"
	"eventmate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// ListReviews handles GET /reviews/{event_id}
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.List(r.Context(), chi.URLParam(r, "event_id"))
	if err != nil {
		h.handleServiceError(w, err, "list reviews")
		return
	}

	utils.ResponseSuccess(w, "Reviews retrieved successfully", reviews)
}

// AddReview handles POST /reviews/{event_id} (protected)
func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateReviewRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, req) {
		return
	}

	created, err := h.service.Add(r.Context(), userID, chi.URLParam(r, "event_id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "add review")
		return
	}

	utils.ResponseCreated(w, "Review added successfully", created)
}

// UpdateReview handles PUT /reviews/{event_id}/{review_id} (protected)
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateReviewRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, req) {
		return
	}

	err := h.service.Update(r.Context(), chi.URLParam(r, "event_id"), chi.URLParam(r, "review_id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "Review updated successfully", nil)
}

// DeleteReview handles DELETE /reviews/{event_id}/{review_id} (protected)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), chi.URLParam(r, "event_id"), chi.URLParam(r, "review_id"))
	if err != nil {
		h.handleServiceError(w, err, "delete review")
		return
	}

	utils.ResponseSuccess(w, "Review deleted successfully", nil)
}

func (h *ReviewHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	respondServiceError(w, h.log, err, operation)
}
