package repository

import (
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Event   EventRepository
	Review  ReviewRepository
	Booking BookingRepository
	Token   TokenRepository
	Tx      Transactor
}

// NewRepository builds every repository on top of db. rdb may be nil, in which case
// revoked tokens are tracked in process memory.
func NewRepository(db *mongo.Database, rdb *redis.Client, transactions bool, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Event:   NewEventRepository(db, log),
		Review:  NewReviewRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Token:   NewTokenRepository(rdb, log),
		Tx:      NewTransactor(db.Client(), transactions, log),
	}
}
