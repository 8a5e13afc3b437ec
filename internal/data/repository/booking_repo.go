package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventmate/internal/data/entity"
	"eventmate/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// BookingRepository scopes every lookup and write to the owning user
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id, userID primitive.ObjectID) (*entity.Booking, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID, status *entity.BookingStatus) ([]*entity.Booking, error)
	FindConfirmed(ctx context.Context, userID, eventID primitive.ObjectID) (*entity.Booking, error)

	// Compare-and-swap writes; ErrNotFound when the booking is gone or its status moved on
	UpdateStatus(ctx context.Context, id, userID primitive.ObjectID, from, to entity.BookingStatus) error
	Delete(ctx context.Context, id, userID primitive.ObjectID, status entity.BookingStatus) error
}

type bookingRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewBookingRepository(db *mongo.Database, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		coll: db.Collection(database.BookingsCollection),
		log:  log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}

	_, err := r.coll.InsertOne(ctx, booking)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("create booking for event %s by user %s: %w",
			booking.EventID.Hex(), booking.UserID.Hex(), ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.Hex()),
			zap.String("event_id", booking.EventID.Hex()),
		)
		return fmt.Errorf("create booking for event %s by user %s: %w",
			booking.EventID.Hex(), booking.UserID.Hex(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id, userID primitive.ObjectID) (*entity.Booking, error) {
	return r.findOne(ctx, bson.M{"_id": id, "user_id": userID})
}

func (r *bookingRepository) FindConfirmed(ctx context.Context, userID, eventID primitive.ObjectID) (*entity.Booking, error) {
	return r.findOne(ctx, bson.M{
		"user_id":  userID,
		"event_id": eventID,
		"status":   entity.BookingStatusConfirmed,
	})
}

func (r *bookingRepository) findOne(ctx context.Context, filter bson.M) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.coll.FindOne(ctx, filter).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking",
			zap.Error(err),
			zap.Any("filter", filter),
		)
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByUser(ctx context.Context, userID primitive.ObjectID, status *entity.BookingStatus) ([]*entity.Booking, error) {
	filter := bson.M{"user_id": userID}
	if status != nil {
		filter["status"] = *status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		r.log.Error("Failed to find bookings by user",
			zap.Error(err),
			zap.String("user_id", userID.Hex()),
		)
		return nil, fmt.Errorf("find bookings for user %s: %w", userID.Hex(), err)
	}
	defer cursor.Close(ctx)

	bookings := []*entity.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings for user %s: %w", userID.Hex(), err)
	}

	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id, userID primitive.ObjectID, from, to entity.BookingStatus) error {
	filter := bson.M{"_id": id, "user_id": userID, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updated_at": time.Now().UTC()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("update booking %s status to %s: %w", id.Hex(), to, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.Hex()),
			zap.String("status", string(to)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", id.Hex(), to, err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("booking %s with status %s: %w", id.Hex(), from, ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id, userID primitive.ObjectID, status entity.BookingStatus) error {
	filter := bson.M{"_id": id, "user_id": userID, "status": status}

	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.Hex()),
		)
		return fmt.Errorf("delete booking %s: %w", id.Hex(), err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("booking %s with status %s: %w", id.Hex(), status, ErrNotFound)
	}

	return nil
}
