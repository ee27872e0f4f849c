package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	listingerrors "homestay/internal/listings/errors"
	"homestay/pkg/config"
	"homestay/pkg/model"
)

const CollectionName = "Listings"

type ListingRepository interface {
	FindListingByID(ctx context.Context, id string) (*model.Listing, error)
	FindListingsByOwner(ctx context.Context, ownerID string) ([]*model.Listing, error)
	CreateListing(ctx context.Context, listing *model.Listing) error
}

type mongoListingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoListingRepository(cfg *config.Config) ListingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoListingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoListingRepository) FindListingByID(ctx context.Context, id string) (*model.Listing, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, listingerrors.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var listing model.Listing
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&listing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, listingerrors.ErrNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (r *mongoListingRepository) FindListingsByOwner(ctx context.Context, ownerID string) ([]*model.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var listings []*model.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *mongoListingRepository) CreateListing(ctx context.Context, listing *model.Listing) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if listing.ID == "" {
		listing.ID = uuid.NewString()
	}
	listing.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	_, err := r.collection.InsertOne(ctx, listing)
	return err
}
