package entity

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	Base        `bson:",inline"`
	UserID      primitive.ObjectID `bson:"user_id"`
	EventID     primitive.ObjectID `bson:"event_id"`
	TicketCount int                `bson:"ticket_count"`
	Status      BookingStatus      `bson:"status"`
}
