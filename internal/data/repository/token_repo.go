package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"eventmate/internal/data/entity"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const revokedKeyPrefix = "revoked:"

// TokenRepository is the access-token denylist. Entries only need to live until the
// token would have expired on its own.
type TokenRepository interface {
	Revoke(ctx context.Context, token *entity.RevokedToken) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NewTokenRepository stores revocations in Redis, or in process memory when rdb is nil
func NewTokenRepository(rdb *redis.Client, log *zap.Logger) TokenRepository {
	log = log.With(zap.String("repository", "token"))
	if rdb == nil {
		return NewMemoryTokenRepository(log)
	}
	return &redisTokenRepository{rdb: rdb, log: log}
}

type redisTokenRepository struct {
	rdb *redis.Client
	log *zap.Logger
}

func (r *redisTokenRepository) Revoke(ctx context.Context, token *entity.RevokedToken) error {
	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := r.rdb.Set(ctx, revokedKeyPrefix+token.TokenID, token.UserID, ttl).Err(); err != nil {
		r.log.Error("Failed to revoke token",
			zap.Error(err),
			zap.String("user_id", token.UserID),
		)
		return fmt.Errorf("revoke token: %w", err)
	}

	return nil
}

func (r *redisTokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.rdb.Get(ctx, revokedKeyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		r.log.Error("Failed to check revoked token", zap.Error(err))
		return false, fmt.Errorf("check revoked token: %w", err)
	}

	return true, nil
}

type memoryTokenRepository struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
	log     *zap.Logger
}

func NewMemoryTokenRepository(log *zap.Logger) TokenRepository {
	return &memoryTokenRepository{
		revoked: make(map[string]time.Time),
		now:     time.Now,
		log:     log,
	}
}

func (r *memoryTokenRepository) Revoke(_ context.Context, token *entity.RevokedToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if !token.ExpiresAt.After(now) {
		return nil
	}

	// drop entries whose tokens have expired anyway
	for id, exp := range r.revoked {
		if !exp.After(now) {
			delete(r.revoked, id)
		}
	}

	r.revoked[token.TokenID] = token.ExpiresAt
	return nil
}

func (r *memoryTokenRepository) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exp, ok := r.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !exp.After(r.now()) {
		delete(r.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
