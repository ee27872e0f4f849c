package service

import (
	"context"
	"testing"
	"time"

	reviewerrors "homestay/internal/reviews/errors"
	"homestay/internal/reviews/validator"
	apperrors "homestay/pkg/errors"
	"homestay/pkg/logger"
	"homestay/pkg/model"
)

type mockReviewRepository struct {
	reviews   []*model.Review
	created   []*model.Review
	updated   map[string]*model.Review
	deleted   []string
	createErr error
	updateErr error
	deleteErr error
}

func (m *mockReviewRepository) FindReviewByID(ctx context.Context, id string) (*model.Review, error) {
	for _, rv := range m.reviews {
		if rv.ID == id {
			return rv, nil
		}
	}
	return nil, reviewerrors.ErrNotFound
}

func (m *mockReviewRepository) FindReviewsForListing(ctx context.Context, listingID string) ([]*model.Review, error) {
	return m.reviews, nil
}

func (m *mockReviewRepository) CreateReview(ctx context.Context, review *model.Review) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, review)
	return nil
}

func (m *mockReviewRepository) UpdateReview(ctx context.Context, id string, review *model.Review) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if m.updated == nil {
		m.updated = make(map[string]*model.Review)
	}
	m.updated[id] = review
	return nil
}

func (m *mockReviewRepository) DeleteReview(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func fixtureService(repo *mockReviewRepository) *reviewService {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	svc := NewReviewService(repo, validator.NewReviewValidator(log), log).(*reviewService)
	svc.now = func() time.Time {
		return time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

var (
	fixtureListing = &model.Listing{ID: "listing-1", OwnerID: "owner-1"}
	fixtureAuthor  = &model.User{ID: "author-1", Username: "author"}
)

func TestCreate(t *testing.T) {
	t.Run("persists a valid review", func(t *testing.T) {
		repo := &mockReviewRepository{}
		svc := fixtureService(repo)

		review, err := svc.Create(context.Background(), fixtureListing, fixtureAuthor, &model.ReviewRequest{
			Rating:  4,
			Comment: "Quiet street, great host",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.created) != 1 {
			t.Fatalf("expected one created review, got %d", len(repo.created))
		}
		if review.AuthorID != fixtureAuthor.ID || review.ListingID != fixtureListing.ID {
			t.Errorf("review not bound to author and listing: %+v", review)
		}
		if review.ID == "" {
			t.Error("review must be assigned an ID")
		}
	})

	t.Run("rejects an out-of-range rating", func(t *testing.T) {
		repo := &mockReviewRepository{}
		svc := fixtureService(repo)

		_, err := svc.Create(context.Background(), fixtureListing, fixtureAuthor, &model.ReviewRequest{Rating: 6})
		if err == nil {
			t.Fatal("expected validation error")
		}

		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeValidation {
			t.Fatalf("expected %s, got %s", apperrors.CodeValidation, appErr.Code)
		}
		if appErr.Fields["rating"] == "" {
			t.Errorf("expected rating field error, got %v", appErr.Fields)
		}
		if len(repo.created) != 0 {
			t.Error("invalid review must not be persisted")
		}
	})
}

func TestUpdate(t *testing.T) {
	existing := &model.Review{ID: "rv-1", ListingID: "listing-1", AuthorID: "author-1", Rating: 3, Comment: "fine"}

	t.Run("applies partial edits", func(t *testing.T) {
		repo := &mockReviewRepository{reviews: []*model.Review{existing}}
		svc := fixtureService(repo)

		rating := 5
		edited, err := svc.Update(context.Background(), existing, &model.ReviewUpdate{Rating: &rating})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if edited.Rating != 5 || edited.Comment != "fine" {
			t.Errorf("expected only rating to change, got %+v", edited)
		}
		if repo.updated["rv-1"] == nil {
			t.Error("expected repository update for rv-1")
		}
	})

	t.Run("rejects an empty update", func(t *testing.T) {
		svc := fixtureService(&mockReviewRepository{})

		_, err := svc.Update(context.Background(), existing, &model.ReviewUpdate{})
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeValidation {
			t.Fatalf("expected %s, got %s", apperrors.CodeValidation, appErr.Code)
		}
	})

	t.Run("vanished review maps to 404", func(t *testing.T) {
		repo := &mockReviewRepository{updateErr: reviewerrors.ErrNotFound}
		svc := fixtureService(repo)

		rating := 2
		_, err := svc.Update(context.Background(), existing, &model.ReviewUpdate{Rating: &rating})
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeNotFound {
			t.Errorf("expected %s, got %s", apperrors.CodeNotFound, appErr.Code)
		}
	})
}

func TestDelete(t *testing.T) {
	existing := &model.Review{ID: "rv-1", ListingID: "listing-1", AuthorID: "author-1"}

	t.Run("deletes the review", func(t *testing.T) {
		repo := &mockReviewRepository{reviews: []*model.Review{existing}}
		svc := fixtureService(repo)

		if err := svc.Delete(context.Background(), existing); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.deleted) != 1 || repo.deleted[0] != "rv-1" {
			t.Errorf("expected rv-1 deleted, got %v", repo.deleted)
		}
	})

	t.Run("vanished review maps to 404", func(t *testing.T) {
		repo := &mockReviewRepository{deleteErr: reviewerrors.ErrNotFound}
		svc := fixtureService(repo)

		err := svc.Delete(context.Background(), existing)
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeNotFound {
			t.Errorf("expected %s, got %s", apperrors.CodeNotFound, appErr.Code)
		}
	})
}
