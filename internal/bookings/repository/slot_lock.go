package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	bookingerrors "homestay/internal/bookings/errors"
	"homestay/pkg/config"
	"homestay/pkg/model"
)

const LockCollectionName = "Booking_locks"

// SlotLockRepository provides the advisory lock held across a booking's
// conflict check and insert. The collection carries a unique _id and a TTL
// index on expires_at, so abandoned locks expire on their own.
type SlotLockRepository interface {
	Acquire(ctx context.Context, lock *model.SlotLock) error
	Release(ctx context.Context, lockID string) error
}

type mongoSlotLockRepository struct {
	collection *mongo.Collection
}

func NewSlotLockRepository(cfg *config.Config) SlotLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSlotLockRepository{
		collection: db.Collection(LockCollectionName),
	}
}

func (r *mongoSlotLockRepository) Acquire(ctx context.Context, lock *model.SlotLock) error {
	lock.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingerrors.ErrSlotLocked
		}
		return err
	}
	return nil
}

func (r *mongoSlotLockRepository) Release(ctx context.Context, lockID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}
