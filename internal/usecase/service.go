package usecase

import (
	"time"

	"eventmate/internal/data/repository"
	"eventmate/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Event   EventService
	Review  ReviewService
	Booking BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	expiry := config.JWT.ExpiryHours
	if expiry < 1 {
		expiry = 2
	}
	tokens := utils.NewTokenManager(config.JWT.Secret, time.Duration(expiry)*time.Hour)

	return &Service{
		Auth:    NewAuthService(repo, tokens, log),
		User:    NewUserService(repo.User, repo.Token, log),
		Event:   NewEventService(repo.Event, config.Pagination, log),
		Review:  NewReviewService(repo.Review, log),
		Booking: NewBookingService(repo, log),
	}
}
