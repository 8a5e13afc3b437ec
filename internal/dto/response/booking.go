package response

import (
	"time"

	"eventmate/internal/data/entity"
)

type BookingResponse struct {
	ID          string               `json:"id"`
	UserID      string               `json:"user_id"`
	EventID     string               `json:"event_id"`
	TicketCount int                  `json:"ticket_count"`
	Status      entity.BookingStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:          booking.ID.Hex(),
		UserID:      booking.UserID.Hex(),
		EventID:     booking.EventID.Hex(),
		TicketCount: booking.TicketCount,
		Status:      booking.Status,
		CreatedAt:   booking.CreatedAt,
		UpdatedAt:   booking.UpdatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		out = append(out, BookingToResponse(booking))
	}
	return out
}
