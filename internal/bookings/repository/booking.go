package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingerrors "homestay/internal/bookings/errors"
	"homestay/pkg/config"
	mongotx "homestay/pkg/db/mongo"
	"homestay/pkg/model"
)

const CollectionName = "Bookings"

type BookingRepository interface {
	FindBookingByID(ctx context.Context, id string) (*model.Booking, error)
	FindBookingsForListing(ctx context.Context, listingID string) ([]*model.Booking, error)
	FindBookingsForGuest(ctx context.Context, listingID, guestID string) ([]*model.Booking, error)
	CreateBooking(ctx context.Context, booking *model.Booking) error
	DeleteBooking(ctx context.Context, id string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout unless we are already inside
// a transaction; a SessionContext cannot be wrapped without breaking
// transaction semantics.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) FindBookingByID(ctx context.Context, id string) (*model.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, bookingerrors.ErrInvalidID
	}

	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var booking model.Booking
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingerrors.ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// FindBookingsForListing returns the full reservation snapshot for a
// listing in natural collection order; the conflict detector relies on that
// order for its first-match-wins scan.
func (r *mongoBookingRepository) FindBookingsForListing(ctx context.Context, listingID string) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{"listing_id": listingID})
}

func (r *mongoBookingRepository) FindBookingsForGuest(ctx context.Context, listingID, guestID string) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{"listing_id": listingID, "guest_id": guestID})
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, options.Find())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoBookingRepository) CreateBooking(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	_, err := r.collection.InsertOne(ctx, booking)
	return err
}

func (r *mongoBookingRepository) DeleteBooking(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return bookingerrors.ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
