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

// ReviewRepository manages the reviews array embedded in event documents
type ReviewRepository interface {
	FindByEventID(ctx context.Context, eventID primitive.ObjectID) ([]entity.Review, error)
	Append(ctx context.Context, eventID primitive.ObjectID, review *entity.Review) error
	Update(ctx context.Context, eventID primitive.ObjectID, reviewID string, update entity.ReviewUpdate) error
	Delete(ctx context.Context, eventID primitive.ObjectID, reviewID string) error
}

type reviewRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewReviewRepository(db *mongo.Database, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		coll: db.Collection(database.EventsCollection),
		log:  log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) FindByEventID(ctx context.Context, eventID primitive.ObjectID) ([]entity.Review, error) {
	opts := options.FindOne().SetProjection(bson.M{"reviews": 1})

	var doc struct {
		Reviews []entity.Review `bson:"reviews"`
	}
	err := r.coll.FindOne(ctx, bson.M{"_id": eventID}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("event %s: %w", eventID.Hex(), ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find reviews",
			zap.Error(err),
			zap.String("event_id", eventID.Hex()),
		)
		return nil, fmt.Errorf("find reviews for event %s: %w", eventID.Hex(), err)
	}

	if doc.Reviews == nil {
		doc.Reviews = []entity.Review{}
	}
	return doc.Reviews, nil
}

// Append pushes review to the end of the event's reviews, assigning an id if unset
func (r *reviewRepository) Append(ctx context.Context, eventID primitive.ObjectID, review *entity.Review) error {
	if review.ID == "" {
		review.ID = primitive.NewObjectID().Hex()
	}

	update := bson.M{"$push": bson.M{"reviews": review}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": eventID}, update)
	if err != nil {
		r.log.Error("Failed to add review",
			zap.Error(err),
			zap.String("event_id", eventID.Hex()),
		)
		return fmt.Errorf("add review to event %s: %w", eventID.Hex(), err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("event %s: %w", eventID.Hex(), ErrNotFound)
	}

	return nil
}

func (r *reviewRepository) Update(ctx context.Context, eventID primitive.ObjectID, reviewID string, update entity.ReviewUpdate) error {
	set := bson.M{}
	if update.Comment != nil {
		set["reviews.$.comment"] = *update.Comment
	}
	if update.Rating != nil {
		set["reviews.$.rating"] = *update.Rating
	}
	if update.Date != nil {
		set["reviews.$.date"] = *update.Date
	}

	filter := bson.M{"_id": eventID, "reviews._id": reviewID}

	var matched int64
	if len(set) == 0 {
		// nothing to write, only confirm the review is there
		count, err := r.coll.CountDocuments(ctx, filter)
		if err != nil {
			return fmt.Errorf("find review %s: %w", reviewID, err)
		}
		matched = count
	} else {
		result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
		if err != nil {
			r.log.Error("Failed to update review",
				zap.Error(err),
				zap.String("event_id", eventID.Hex()),
				zap.String("review_id", reviewID),
			)
			return fmt.Errorf("update review %s: %w", reviewID, err)
		}
		matched = result.MatchedCount
	}

	if matched == 0 {
		return r.missing(ctx, eventID, reviewID)
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, eventID primitive.ObjectID, reviewID string) error {
	update := bson.M{"$pull": bson.M{"reviews": bson.M{"_id": reviewID}}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": eventID}, update)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("event_id", eventID.Hex()),
			zap.String("review_id", reviewID),
		)
		return fmt.Errorf("delete review %s: %w", reviewID, err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("event %s: %w", eventID.Hex(), ErrNotFound)
	}
	if result.ModifiedCount == 0 {
		return fmt.Errorf("review %s: %w", reviewID, ErrReviewNotFound)
	}

	return nil
}

// missing tells apart a missing event from a missing review
func (r *reviewRepository) missing(ctx context.Context, eventID primitive.ObjectID, reviewID string) error {
	count, err := r.coll.CountDocuments(ctx, bson.M{"_id": eventID})
	if err != nil {
		return fmt.Errorf("find event %s: %w", eventID.Hex(), err)
	}
	if count == 0 {
		return fmt.Errorf("event %s: %w", eventID.Hex(), ErrNotFound)
	}
	return fmt.Errorf("review %s: %w", reviewID, ErrReviewNotFound)
}
