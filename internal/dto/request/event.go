package request

type GeoPointRequest struct {
	Type        string    `json:"type,omitempty" validate:"omitempty,eq=Point"`
	Coordinates []float64 `json:"coordinates" validate:"required,len=2"`
	Name        string    `json:"name,omitempty"`
}

type CreateEventRequest struct {
	Name           string           `json:"name" validate:"required"`
	Description    string           `json:"description"`
	Category       string           `json:"category"`
	City           string           `json:"city"`
	Date           string           `json:"date" validate:"required"`
	Price          *float64         `json:"price,omitempty" validate:"omitempty,gte=0"`
	AvailableSeats *int             `json:"available_seats,omitempty" validate:"omitempty,gte=0"`
	Location       *GeoPointRequest `json:"location,omitempty"`
	Tags           []string         `json:"tags,omitempty"`
}

// UpdateEventRequest is a partial update. Identifier and reviews are not accepted;
// unknown keys are ignored by the decoder.
type UpdateEventRequest struct {
	Name           *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	Description    *string          `json:"description,omitempty"`
	Category       *string          `json:"category,omitempty"`
	City           *string          `json:"city,omitempty"`
	Date           *string          `json:"date,omitempty" validate:"omitempty,min=1"`
	Price          *float64         `json:"price,omitempty" validate:"omitempty,gte=0"`
	AvailableSeats *int             `json:"available_seats,omitempty" validate:"omitempty,gte=0"`
	Location       *GeoPointRequest `json:"location,omitempty"`
	Tags           []string         `json:"tags,omitempty"`
}

type SearchEventRequest struct {
	Category string
	City     string
	Location string
	MaxPrice string `json:"max_price" validate:"omitempty,numeric"`
}

type NearbyEventRequest struct {
	Lat    string `json:"lat" validate:"required,latitude"`
	Lon    string `json:"lon" validate:"required,longitude"`
	Radius string `json:"radius" validate:"omitempty,numeric"`
}
