package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingserrors "hotelier/internal/bookings/errors"
	"hotelier/pkg/config"
	"hotelier/pkg/model"
)

const (
	RoomLockCollectionName = "Room_locks"

	roomLockPrefix = "room_lock_"
)

// RoomLockRepository serializes writers per room. A lock is a document whose
// _id encodes the room; the unique index on _id makes acquisition atomic, and
// the TTL index on expires_at reaps locks orphaned by a crashed holder.
type RoomLockRepository interface {
	Acquire(ctx context.Context, roomID string) error
	Release(ctx context.Context, roomID string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoRoomLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoRoomLockRepository(cfg *config.Config) RoomLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomLockRepository{
		cfg:        cfg,
		collection: db.Collection(RoomLockCollectionName),
	}
}

func lockID(roomID string) string {
	return roomLockPrefix + roomID
}

func (r *mongoRoomLockRepository) Acquire(ctx context.Context, roomID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC()
	lock := model.RoomLock{
		ID:        lockID(roomID),
		ExpiresAt: now.Add(r.cfg.RoomLockTTL),
		CreatedAt: now,
	}

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrLockHeld
		}
		return fmt.Errorf("failed to acquire room lock: %w", err)
	}

	return nil
}

func (r *mongoRoomLockRepository) Release(ctx context.Context, roomID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID(roomID)})
	if err != nil {
		return fmt.Errorf("failed to release room lock: %w", err)
	}

	return nil
}

func (r *mongoRoomLockRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("failed to create room lock TTL index: %w", err)
	}

	return nil
}
