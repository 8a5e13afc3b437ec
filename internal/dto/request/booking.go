package request

type CreateBookingRequest struct {
	EventID     string `json:"event_id" validate:"required,objectid"`
	TicketCount *int   `json:"ticket_count,omitempty" validate:"omitempty,min=1"`
}

type UpdateBookingRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type ListBookingsRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=pending confirmed cancelled"`
}
