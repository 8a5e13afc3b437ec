package utils

import (
	"github.com/google/uuid"
)

// GenerateRequestID returns a random identifier used to correlate logs of one request
func GenerateRequestID() string {
	return uuid.New().String()
}
