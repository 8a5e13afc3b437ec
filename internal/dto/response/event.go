package response

import (
	"time"

	"eventmate/internal/data/entity"
)

type EventResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Category       string           `json:"category"`
	City           string           `json:"city,omitempty"`
	Date           string           `json:"date"`
	Price          float64          `json:"price"`
	AvailableSeats int              `json:"available_seats"`
	Location       *entity.GeoPoint `json:"location,omitempty"`
	Tags           []string         `json:"tags,omitempty"`
	Reviews        []ReviewResponse `json:"reviews"`
	CreatedAt      time.Time        `json:"created_at"`
}

type EventCreatedResponse struct {
	EventID string `json:"event_id"`
}

type CategoryStatResponse struct {
	Category    string `json:"category"`
	TotalEvents int    `json:"total_events"`
}

func EventToResponse(event *entity.Event) EventResponse {
	return EventResponse{
		ID:             event.ID.Hex(),
		Name:           event.Name,
		Description:    event.Description,
		Category:       event.Category,
		City:           event.City,
		Date:           event.Date,
		Price:          event.Price,
		AvailableSeats: event.AvailableSeats,
		Location:       event.Location,
		Tags:           event.Tags,
		Reviews:        ReviewsToResponse(event.Reviews),
		CreatedAt:      event.CreatedAt,
	}
}

func EventsToResponse(events []*entity.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, EventToResponse(event))
	}
	return out
}

func CategoryStatsToResponse(stats []*entity.CategoryStat) []CategoryStatResponse {
	out := make([]CategoryStatResponse, 0, len(stats))
	for _, stat := range stats {
		out = append(out, CategoryStatResponse{
			Category:    stat.Category,
			TotalEvents: stat.TotalEvents,
		})
	}
	return out
}
