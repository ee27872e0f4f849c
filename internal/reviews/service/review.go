package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	reviewerrors "homestay/internal/reviews/errors"
	"homestay/internal/reviews/repository"
	"homestay/internal/reviews/validator"
	apperrors "homestay/pkg/errors"
	"homestay/pkg/logger"
	"homestay/pkg/model"
)

type ReviewService interface {
	Create(ctx context.Context, listing *model.Listing, author *model.User, req *model.ReviewRequest) (*model.Review, error)
	ListForListing(ctx context.Context, listing *model.Listing) ([]*model.Review, error)
	Update(ctx context.Context, review *model.Review, update *model.ReviewUpdate) (*model.Review, error)
	Delete(ctx context.Context, review *model.Review) error
}

type reviewService struct {
	repo      repository.ReviewRepository
	validator *validator.ReviewValidator
	log       *logger.Logger
	now       func() time.Time
}

func NewReviewService(repo repository.ReviewRepository, v *validator.ReviewValidator, log *logger.Logger) ReviewService {
	return &reviewService{
		repo:      repo,
		validator: v,
		log:       log,
		now:       time.Now,
	}
}

func (s *reviewService) Create(ctx context.Context, listing *model.Listing, author *model.User, req *model.ReviewRequest) (*model.Review, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, validationError(err)
	}

	review := &model.Review{
		ID:        uuid.NewString(),
		ListingID: listing.ID,
		AuthorID:  author.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.CreateReview(ctx, review); err != nil {
		return nil, apperrors.Internal("Failed to create review", err)
	}

	s.log.Info("Review created",
		"review_id", review.ID,
		"listing_id", listing.ID,
		"author_id", author.ID,
	)
	return review, nil
}

func (s *reviewService) ListForListing(ctx context.Context, listing *model.Listing) ([]*model.Review, error) {
	reviews, err := s.repo.FindReviewsForListing(ctx, listing.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list reviews", err)
	}
	return reviews, nil
}

// Update applies a partial edit to the caller's review. Ownership has been
// established by the guard chain before the service is reached.
func (s *reviewService) Update(ctx context.Context, review *model.Review, update *model.ReviewUpdate) (*model.Review, error) {
	if err := s.validator.ValidateUpdate(update); err != nil {
		return nil, validationError(err)
	}

	edited := *review
	if update.Rating != nil {
		edited.Rating = *update.Rating
	}
	if update.Comment != nil {
		edited.Comment = *update.Comment
	}

	if err := s.repo.UpdateReview(ctx, review.ID, &edited); err != nil {
		if errors.Is(err, reviewerrors.ErrNotFound) {
			return nil, apperrors.NotFound("Review")
		}
		return nil, apperrors.Internal("Failed to update review", err)
	}
	return &edited, nil
}

func (s *reviewService) Delete(ctx context.Context, review *model.Review) error {
	if err := s.repo.DeleteReview(ctx, review.ID); err != nil {
		if errors.Is(err, reviewerrors.ErrNotFound) {
			return apperrors.NotFound("Review")
		}
		return apperrors.Internal("Failed to delete review", err)
	}

	s.log.Info("Review deleted", "review_id", review.ID, "listing_id", review.ListingID)
	return nil
}

func validationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return apperrors.Validation("Validation failed", validationErrs.FieldMap())
	}
	return apperrors.Internal("Failed to validate review", err)
}
