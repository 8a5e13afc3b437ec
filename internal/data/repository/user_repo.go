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
	"go.uber.org/zap"
)

// UserUpdate holds the profile fields to overwrite; nil fields are left alone
type UserUpdate struct {
	Username     *string
	PasswordHash *string
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, id primitive.ObjectID, update UserUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type userRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewUserRepository(db *mongo.Database, log *zap.Logger) UserRepository {
	return &userRepository{
		coll: db.Collection(database.UsersCollection),
		log:  log.With(zap.String("repository", "user")),
	}
}

// Create inserts a new user document and sets user.ID
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	_, err := ur.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("create user %s: %w", user.Username, ErrDuplicate)
	}
	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	return ur.findOne(ctx, bson.M{"_id": id})
}

func (ur *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return ur.findOne(ctx, bson.M{"username": username})
}

func (ur *userRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var user entity.User
	err := ur.coll.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user", zap.Error(err), zap.Any("filter", filter))
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &user, nil
}

func (ur *userRepository) Update(ctx context.Context, id primitive.ObjectID, update UserUpdate) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Username != nil {
		set["username"] = *update.Username
	}
	if update.PasswordHash != nil {
		set["password"] = *update.PasswordHash
	}

	result, err := ur.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("update user %s: %w", id.Hex(), ErrDuplicate)
	}
	if err != nil {
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", id.Hex()),
		)
		return fmt.Errorf("update user %s: %w", id.Hex(), err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", id.Hex(), ErrNotFound)
	}

	return nil
}

func (ur *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := ur.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		ur.log.Error("Failed to delete user",
			zap.Error(err),
			zap.String("user_id", id.Hex()),
		)
		return fmt.Errorf("delete user %s: %w", id.Hex(), err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("user %s: %w", id.Hex(), ErrNotFound)
	}

	ur.log.Info("User deleted", zap.String("user_id", id.Hex()))
	return nil
}
