package repository

import (
	"context"
	"errors"
	"fmt"

	"eventmate/internal/data/entity"
	"eventmate/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type EventRepository interface {
	// CRUD Event
	Create(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Event, error)
	FindAll(ctx context.Context, offset, limit int, sortField string) ([]*entity.Event, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Discovery
	Search(ctx context.Context, filter entity.EventFilter) ([]*entity.Event, error)
	Nearby(ctx context.Context, lon, lat, radiusKm float64) ([]*entity.Event, error)
	CategoryStats(ctx context.Context, limit int) ([]*entity.CategoryStat, error)

	// Seat inventory
	ReserveSeats(ctx context.Context, id primitive.ObjectID, count int) error
	ReleaseSeats(ctx context.Context, id primitive.ObjectID, count int) error
}

type eventRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewEventRepository(db *mongo.Database, log *zap.Logger) EventRepository {
	return &eventRepository{
		coll: db.Collection(database.EventsCollection),
		log:  log.With(zap.String("repository", "event")),
	}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Reviews == nil {
		event.Reviews = []entity.Review{}
	}

	_, err := r.coll.InsertOne(ctx, event)
	if err != nil {
		r.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("name", event.Name),
		)
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

func (r *eventRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Event, error) {
	var event entity.Event
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find event by ID",
			zap.Error(err),
			zap.String("event_id", id.Hex()),
		)
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	return &event, nil
}

func (r *eventRepository) FindAll(ctx context.Context, offset, limit int, sortField string) ([]*entity.Event, error) {
	if !IsSortableEventField(sortField) {
		return nil, fmt.Errorf("unsupported sort field %q", sortField)
	}

	// _id as a tiebreaker keeps pages stable when sort values repeat
	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	events, err := r.find(ctx, bson.M{}, opts)
	if err != nil {
		r.log.Error("Failed to find all events",
			zap.Error(err),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
			zap.String("sort", sortField),
		)
		return nil, fmt.Errorf("failed to find events: %w", err)
	}

	return events, nil
}

func (r *eventRepository) CountAll(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		r.log.Error("Failed to count events", zap.Error(err))
		return 0, fmt.Errorf("failed to count events: %w", err)
	}

	return count, nil
}

// Update applies fields with $set; callers strip keys that must not change
func (r *eventRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		r.log.Error("Failed to update event",
			zap.Error(err),
			zap.String("event_id", id.Hex()),
		)
		return fmt.Errorf("failed to update event: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("event %s: %w", id.Hex(), ErrNotFound)
	}

	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.log.Error("Failed to delete event",
			zap.Error(err),
			zap.String("event_id", id.Hex()),
		)
		return fmt.Errorf("failed to delete event: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("event %s: %w", id.Hex(), ErrNotFound)
	}

	return nil
}

func (r *eventRepository) Search(ctx context.Context, filter entity.EventFilter) ([]*entity.Event, error) {
	events, err := r.find(ctx, BuildSearchFilter(filter), options.Find())
	if err != nil {
		r.log.Error("Failed to search events",
			zap.Error(err),
			zap.Any("filter", filter),
		)
		return nil, fmt.Errorf("failed to search events: %w", err)
	}

	return events, nil
}

func (r *eventRepository) Nearby(ctx context.Context, lon, lat, radiusKm float64) ([]*entity.Event, error) {
	events, err := r.find(ctx, BuildNearFilter(lon, lat, radiusKm), options.Find())
	if err != nil {
		r.log.Error("Failed to find nearby events",
			zap.Error(err),
			zap.Float64("lon", lon),
			zap.Float64("lat", lat),
			zap.Float64("radius_km", radiusKm),
		)
		return nil, fmt.Errorf("failed to find nearby events: %w", err)
	}

	return events, nil
}

func (r *eventRepository) CategoryStats(ctx context.Context, limit int) ([]*entity.CategoryStat, error) {
	cursor, err := r.coll.Aggregate(ctx, CategoryStatsPipeline(limit))
	if err != nil {
		r.log.Error("Failed to aggregate category stats", zap.Error(err))
		return nil, fmt.Errorf("failed to aggregate category stats: %w", err)
	}
	defer cursor.Close(ctx)

	stats := []*entity.CategoryStat{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode category stats: %w", err)
	}

	return stats, nil
}

// ReserveSeats debits count seats only if that many are still available
func (r *eventRepository) ReserveSeats(ctx context.Context, id primitive.ObjectID, count int) error {
	filter := bson.M{
		"_id":             id,
		"available_seats": bson.M{"$gte": count},
	}
	update := bson.M{"$inc": bson.M{"available_seats": -count}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		r.log.Error("Failed to reserve seats",
			zap.Error(err),
			zap.String("event_id", id.Hex()),
			zap.Int("count", count),
		)
		return fmt.Errorf("failed to reserve seats: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("event %s: %w", id.Hex(), ErrInsufficientSeats)
	}

	return nil
}

func (r *eventRepository) ReleaseSeats(ctx context.Context, id primitive.ObjectID, count int) error {
	update := bson.M{"$inc": bson.M{"available_seats": count}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.log.Error("Failed to release seats",
			zap.Error(err),
			zap.String("event_id", id.Hex()),
			zap.Int("count", count),
		)
		return fmt.Errorf("failed to release seats: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("event %s: %w", id.Hex(), ErrNotFound)
	}

	return nil
}

func (r *eventRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.Event, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []*entity.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	return events, nil
}
