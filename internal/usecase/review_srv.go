package usecase

import (
	"context"
	"errors"
	"fmt"

	"eventmate/internal/data/entity"
	"eventmate/internal/data/repository"
	"eventmate/internal/dto/request"
	"eventmate/internal/dto/response"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ReviewService interface {
	List(ctx context.Context, eventID string) ([]response.ReviewResponse, error)
	Add(ctx context.Context, userID, eventID string, req *request.CreateReviewRequest) (*response.ReviewCreatedResponse, error)
	Update(ctx context.Context, eventID, reviewID string, req *request.UpdateReviewRequest) error
	Delete(ctx context.Context, eventID, reviewID string) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	log        *zap.Logger
}

func NewReviewService(reviewRepo repository.ReviewRepository, log *zap.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		log:        log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) List(ctx context.Context, eventID string) ([]response.ReviewResponse, error) {
	id, err := parseID(eventID, "event")
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByEventID(ctx, id)
	if err != nil {
		return nil, mapReviewError(err)
	}

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) Add(ctx context.Context, userID, eventID string, req *request.CreateReviewRequest) (*response.ReviewCreatedResponse, error) {
	id, err := parseID(eventID, "event")
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	review := &entity.Review{
		ID:      primitive.NewObjectID().Hex(),
		UserID:  req.UserID,
		Comment: req.Comment,
		Rating:  req.Rating,
		Date:    req.Date,
	}
	if review.UserID == "" {
		review.UserID = userID
	}

	if err := s.reviewRepo.Append(ctx, id, review); err != nil {
		return nil, mapReviewError(err)
	}

	s.log.Info("Review added",
		zap.String("event_id", eventID),
		zap.String("review_id", review.ID),
		zap.String("user_id", review.UserID))

	return &response.ReviewCreatedResponse{ReviewID: review.ID}, nil
}

// Update overwrites only the fields present in req
func (s *reviewService) Update(ctx context.Context, eventID, reviewID string, req *request.UpdateReviewRequest) error {
	id, err := parseID(eventID, "event")
	if err != nil {
		return err
	}
	if err := validate(req); err != nil {
		return err
	}

	update := entity.ReviewUpdate{
		Comment: req.Comment,
		Rating:  req.Rating,
		Date:    req.Date,
	}

	if err := s.reviewRepo.Update(ctx, id, reviewID, update); err != nil {
		return mapReviewError(err)
	}

	s.log.Info("Review updated",
		zap.String("event_id", eventID),
		zap.String("review_id", reviewID))
	return nil
}

func (s *reviewService) Delete(ctx context.Context, eventID, reviewID string) error {
	id, err := parseID(eventID, "event")
	if err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, id, reviewID); err != nil {
		return mapReviewError(err)
	}

	s.log.Info("Review deleted",
		zap.String("event_id", eventID),
		zap.String("review_id", reviewID))
	return nil
}

func mapReviewError(err error) error {
	switch {
	case errors.Is(err, repository.ErrReviewNotFound):
		return fmt.Errorf("review %w", ErrNotFound)
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("event %w", ErrNotFound)
	}
	return err
}
