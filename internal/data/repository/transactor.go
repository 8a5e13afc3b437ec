package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Transactor runs fn so that every repository call made with the ctx it receives
// commits or aborts together.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	Enabled() bool
}

type mongoTransactor struct {
	client  *mongo.Client
	enabled bool
	log     *zap.Logger
}

// NewTransactor returns a Transactor backed by MongoDB sessions. Multi-document
// transactions need a replica set; with enabled=false fn simply runs on ctx.
func NewTransactor(client *mongo.Client, enabled bool, log *zap.Logger) Transactor {
	return &mongoTransactor{
		client:  client,
		enabled: enabled,
		log:     log.With(zap.String("repository", "transactor")),
	}
}

func (t *mongoTransactor) Enabled() bool {
	return t.enabled
}

func (t *mongoTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		t.log.Error("Failed to start session", zap.Error(err))
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
