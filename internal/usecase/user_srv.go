package usecase

import (
	"context"
	"errors"
	"fmt"

	"eventmate/internal/data/repository"
	"eventmate/internal/dto/request"
	"eventmate/internal/dto/response"
	"eventmate/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest) error
	DeleteProfile(ctx context.Context, userID string, claims *utils.TokenClaims) error
}

type userService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	log       *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		log:       log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}

	if req.Username == nil && req.Password == nil {
		return invalid("no valid fields to update")
	}
	if err := validate(req); err != nil {
		return err
	}

	update := repository.UserUpdate{Username: req.Username}

	if req.Username != nil {
		existing, err := us.userRepo.FindByUsername(ctx, *req.Username)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != id {
			return fmt.Errorf("%w: username already exists", ErrConflict)
		}
	}

	if req.Password != nil {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			us.log.Error("Failed to hash password", zap.Error(err))
			return fmt.Errorf("hash password: %w", err)
		}
		update.PasswordHash = &hashed
	}

	if err := us.userRepo.Update(ctx, id, update); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return fmt.Errorf("%w: username already exists", ErrConflict)
		case errors.Is(err, repository.ErrNotFound):
			return fmt.Errorf("user %w", ErrNotFound)
		}
		return err
	}

	us.log.Info("Profile updated", zap.String("user_id", userID))
	return nil
}

// DeleteProfile removes the account and revokes the token used for the request
func (us *userService) DeleteProfile(ctx context.Context, userID string, claims *utils.TokenClaims) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}

	if err := us.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("user %w", ErrNotFound)
		}
		return err
	}

	if claims != nil {
		if err := revokeToken(ctx, us.tokenRepo, claims); err != nil {
			// account is already gone; the token dies with its expiry
			us.log.Error("Failed to revoke token of deleted user",
				zap.Error(err),
				zap.String("user_id", userID))
		}
	}

	us.log.Info("Profile deleted", zap.String("user_id", userID))
	return nil
}

// parseUserID reads the authenticated subject; a malformed one means a bad token
func parseUserID(userID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed user id", ErrUnauthorized)
	}
	return id, nil
}

func parseID(value, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, invalid("invalid %s id %q", what, value)
	}
	return id, nil
}
