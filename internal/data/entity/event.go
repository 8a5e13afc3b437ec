package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoPoint is a GeoJSON point; Coordinates are [longitude, latitude]
type GeoPoint struct {
	Type        string    `bson:"type,omitempty" json:"type,omitempty"`
	Coordinates []float64 `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	Name        string    `bson:"name,omitempty" json:"name,omitempty"`
}

type Event struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Description    string             `bson:"description"`
	Category       string             `bson:"category"`
	City           string             `bson:"city,omitempty"`
	Date           string             `bson:"date"`
	Price          float64            `bson:"price"`
	AvailableSeats int                `bson:"available_seats"`
	Location       *GeoPoint          `bson:"location,omitempty"`
	Tags           []string           `bson:"tags,omitempty"`
	Reviews        []Review           `bson:"reviews"`
	CreatedAt      time.Time          `bson:"created_at"`
}

// EventFilter narrows Search; empty fields are not applied
type EventFilter struct {
	Category string
	City     string
	Location string
	MaxPrice *float64
}

type CategoryStat struct {
	Category    string `bson:"_id"`
	TotalEvents int    `bson:"total_events"`
}
