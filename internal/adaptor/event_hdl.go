package adaptor

import (
	"net/http"

	"eventmate/internal/dto/request"
	"eventmate/internal/usecase"
	"eventmate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type EventHandler struct {
	service usecase.EventService
	log     *zap.Logger
}

func NewEventHandler(service usecase.EventService, log *zap.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		log:     log.With(zap.String("handler", "event")),
	}
}

// ListEvents handles GET /events?page=&limit=&sort=
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:  utils.ParseInt(query.Get("page"), 1),
		Limit: utils.ParseInt(query.Get("limit"), 0),
		Sort:  query.Get("sort"),
	}

	events, err := h.service.List(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "list events")
		return
	}

	utils.ResponseSuccess(w, "Events retrieved successfully", events)
}

// GetEvent handles GET /events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get event")
		return
	}

	utils.ResponseSuccess(w, "Event retrieved successfully", event)
}

// CreateEvent handles POST /events (admin)
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req request.CreateEventRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, req) {
		return
	}

	created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create event")
		return
	}

	utils.ResponseCreated(w, "Event created successfully", created)
}

// UpdateEvent handles PUT /events/{id} (admin)
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req); err != nil {
		h.handleServiceError(w, err, "update event")
		return
	}

	utils.ResponseSuccess(w, "Event updated successfully", nil)
}

// DeleteEvent handles DELETE /events/{id} (admin)
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete event")
		return
	}

	utils.ResponseSuccess(w, "Event deleted successfully", nil)
}

// SearchEvents handles GET /events/search?category=&city=&location=&max_price=
func (h *EventHandler) SearchEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.SearchEventRequest{
		Category: query.Get("category"),
		City:     query.Get("city"),
		Location: query.Get("location"),
		MaxPrice: query.Get("max_price"),
	}

	events, err := h.service.Search(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "search events")
		return
	}

	utils.ResponseSuccess(w, "Events retrieved successfully", events)
}

// NearbyEvents handles GET /events/nearby?lat=&lon=&radius=
func (h *EventHandler) NearbyEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.NearbyEventRequest{
		Lat:    query.Get("lat"),
		Lon:    query.Get("lon"),
		Radius: query.Get("radius"),
	}

	events, err := h.service.Nearby(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "nearby events")
		return
	}

	utils.ResponseSuccess(w, "Events retrieved successfully", events)
}

// CategoryStats handles GET /events/stats/categories
func (h *EventHandler) CategoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.CategoryStats(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "category stats")
		return
	}

	utils.ResponseSuccess(w, "Category stats retrieved successfully", stats)
}

func (h *EventHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	respondServiceError(w, h.log, err, operation)
}
