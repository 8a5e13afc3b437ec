package database

import (
	"context"
	"fmt"
	"time"

	"eventmate/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UsersCollection    = "users"
	EventsCollection   = "events"
	BookingsCollection = "bookings"
)

// Mongo bundles the client with the application database
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Close disconnects the client
func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// InitMongo connects to MongoDB and verifies the connection
func InitMongo(config utils.MongoConfig) (*Mongo, error) {
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	clientOptions := options.Client().
		ApplyURI(config.URI).
		SetTimeout(timeout).
		SetConnectTimeout(5 * time.Second).
		SetMaxConnIdleTime(5 * time.Minute)

	client, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo failed: %w", err)
	}

	return &Mongo{
		Client: client,
		DB:     client.Database(config.Database),
	}, nil
}

// EnsureIndexes creates the indexes the repositories rely on
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("username_unique"),
			},
		},
		EventsCollection: {
			{
				Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
				Options: options.Index().SetName("location_2dsphere"),
			},
			{
				Keys:    bson.D{{Key: "category", Value: 1}},
				Options: options.Index().SetName("category"),
			},
			{
				Keys:    bson.D{{Key: "date", Value: 1}},
				Options: options.Index().SetName("date"),
			},
		},
		BookingsCollection: {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("user_created"),
			},
			{
				// at most one confirmed booking per user and event
				Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "event_id", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetName("user_event_confirmed_unique").
					SetPartialFilterExpression(bson.M{"status": "confirmed"}),
			},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", collection, err)
		}
	}

	return nil
}
