package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventmate/internal/data/entity"
	"eventmate/internal/data/repository"
	"eventmate/internal/dto/request"
	"eventmate/internal/dto/response"
	"eventmate/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error)
	Logout(ctx context.Context, claims *utils.TokenClaims) error

	// Used by middleware
	Authenticate(ctx context.Context, token string) (*utils.TokenClaims, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)

	// Startup
	EnsureAdmin(ctx context.Context, username, password string) error
}

type authService struct {
	repo   *repository.Repository // user and token repos
	tokens *utils.TokenManager
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, tokens *utils.TokenManager, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	user, err := s.createUser(ctx, req.Username, req.Password, entity.RoleUser)
	if err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.Hex()),
		zap.String("username", user.Username))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) createUser(ctx context.Context, username, password string, role entity.UserRole) (*entity.User, error) {
	// 1. Username must be free; the unique index catches races
	existing, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username already exists", ErrConflict)
	}

	// 2. Hash password
	hashed, err := utils.HashPassword(password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. Save
	now := time.Now().UTC()
	user := &entity.User{
		Base: entity.Base{
			ID:        primitive.NewObjectID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     username,
		PasswordHash: hashed,
		Role:         role,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username already exists", ErrConflict)
		}
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	// same answer for unknown user and wrong password
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login failed", zap.String("username", req.Username))
		return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}

	token, claims, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.Hex()))

	resp := response.TokenToResponse(token, claims.ExpiresAt.Time)
	return &resp, nil
}

// Authenticate verifies the token and rejects revoked ones
func (s *authService) Authenticate(ctx context.Context, token string) (*utils.TokenClaims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	revoked, err := s.repo.Token.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, fmt.Errorf("%w: token has been revoked", ErrUnauthorized)
	}

	return claims, nil
}

func (s *authService) Logout(ctx context.Context, claims *utils.TokenClaims) error {
	if claims == nil {
		return fmt.Errorf("%w: missing token", ErrUnauthorized)
	}
	return revokeToken(ctx, s.repo.Token, claims)
}

func (s *authService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, fmt.Errorf("%w: malformed subject", ErrUnauthorized)
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
	}

	return user.Role == entity.RoleAdmin, nil
}

// EnsureAdmin creates the configured admin account when it is missing.
// An existing user with that name keeps its record and is not promoted.
func (s *authService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		s.log.Info("Admin bootstrap skipped, no credentials configured")
		return nil
	}

	existing, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if existing != nil {
		if existing.Role != entity.RoleAdmin {
			s.log.Warn("Configured admin username belongs to a regular user",
				zap.String("username", username))
		}
		return nil
	}

	user, err := s.createUser(ctx, username, password, entity.RoleAdmin)
	if errors.Is(err, ErrConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	s.log.Info("Admin user created", zap.String("user_id", user.ID.Hex()))
	return nil
}

func revokeToken(ctx context.Context, tokens repository.TokenRepository, claims *utils.TokenClaims) error {
	revoked := &entity.RevokedToken{
		TokenID:   claims.ID,
		UserID:    claims.Subject,
		RevokedAt: time.Now().UTC(),
	}
	if claims.ExpiresAt != nil {
		revoked.ExpiresAt = claims.ExpiresAt.Time
	}

	if err := tokens.Revoke(ctx, revoked); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
