package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	reviewerrors "homestay/internal/reviews/errors"
	"homestay/pkg/config"
	"homestay/pkg/model"
)

const CollectionName = "Reviews"

type ReviewRepository interface {
	FindReviewByID(ctx context.Context, id string) (*model.Review, error)
	FindReviewsForListing(ctx context.Context, listingID string) ([]*model.Review, error)
	CreateReview(ctx context.Context, review *model.Review) error
	UpdateReview(ctx context.Context, id string, review *model.Review) error
	DeleteReview(ctx context.Context, id string) error
}

type mongoReviewRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoReviewRepository(cfg *config.Config) ReviewRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReviewRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoReviewRepository) FindReviewByID(ctx context.Context, id string) (*model.Review, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, reviewerrors.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var review model.Review
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reviewerrors.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *mongoReviewRepository) FindReviewsForListing(ctx context.Context, listingID string) ([]*model.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"listing_id": listingID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []*model.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *mongoReviewRepository) CreateReview(ctx context.Context, review *model.Review) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	review.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	_, err := r.collection.InsertOne(ctx, review)
	return err
}

func (r *mongoReviewRepository) UpdateReview(ctx context.Context, id string, review *model.Review) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, review)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return reviewerrors.ErrNotFound
	}
	return nil
}

func (r *mongoReviewRepository) DeleteReview(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return reviewerrors.ErrNotFound
	}
	return nil
}
