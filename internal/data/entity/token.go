package entity

import (
	"time"
)

// RevokedToken marks an access token (by its jti) as unusable until it would have expired anyway
type RevokedToken struct {
	TokenID   string
	UserID    string
	ExpiresAt time.Time
	RevokedAt time.Time
}
