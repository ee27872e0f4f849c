package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"homestay/internal/bookings/conflict"
	bookingerrors "homestay/internal/bookings/errors"
	"homestay/internal/bookings/repository"
	"homestay/internal/bookings/validator"
	"homestay/pkg/config"
	apperrors "homestay/pkg/errors"
	"homestay/pkg/events"
	"homestay/pkg/model"
)

type BookingService interface {
	Create(ctx context.Context, listing *model.Listing, guest *model.User, req *model.BookingRequest) (*model.Booking, error)
	ListForListing(ctx context.Context, listing *model.Listing, caller *model.User) ([]*model.Booking, error)
	Cancel(ctx context.Context, booking *model.Booking) error
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.SlotLockRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.SlotLockRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Create runs the candidate interval through the conflict policy and
// persists the booking. The listing's slot lock is held across the check
// and insert so a concurrent request cannot slip an overlapping reservation
// between them.
func (s *bookingService) Create(ctx context.Context, listing *model.Listing, guest *model.User, req *model.BookingRequest) (*model.Booking, error) {
	start, end, err := s.validator.Parse(req)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			s.cfg.Log.Warn("Booking validation failed", "listing_id", listing.ID, "error", err)
			return nil, apperrors.Validation("Invalid booking dates", validationErrs.FieldMap())
		}
		return nil, apperrors.Internal("Failed to validate booking request", err)
	}

	lockID, err := s.acquireSlotLock(ctx, listing.ID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.lockRepo.Release(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	booking := &model.Booking{
		ListingID: listing.ID,
		GuestID:   guest.ID,
		StartDate: start,
		EndDate:   end,
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		snapshot, err := s.repo.FindBookingsForListing(sessCtx, listing.ID)
		if err != nil {
			return apperrors.Internal("Failed to load existing bookings", err)
		}

		if verdict := conflict.Evaluate(start, end, snapshot, s.now()); verdict.Rejected {
			return verdict.AppError()
		}

		if err := s.repo.CreateBooking(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeBookingCreated, booking)
	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"listing_id", booking.ListingID,
		"guest_id", booking.GuestID,
		"start_date", booking.StartDate,
		"end_date", booking.EndDate,
	)
	return booking, nil
}

// ListForListing returns the listing's reservations: all of them for the
// owner, only the caller's own otherwise.
func (s *bookingService) ListForListing(ctx context.Context, listing *model.Listing, caller *model.User) ([]*model.Booking, error) {
	var bookings []*model.Booking
	var err error
	if caller.ID == listing.OwnerID {
		bookings, err = s.repo.FindBookingsForListing(ctx, listing.ID)
	} else {
		bookings, err = s.repo.FindBookingsForGuest(ctx, listing.ID, caller.ID)
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) Cancel(ctx context.Context, booking *model.Booking) error {
	if err := s.repo.DeleteBooking(ctx, booking.ID); err != nil {
		if errors.Is(err, bookingerrors.ErrNotFound) {
			return apperrors.NotFound("Booking")
		}
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.publish(ctx, events.TypeBookingCancelled, booking)
	s.cfg.Log.Info("Booking cancelled", "id", booking.ID, "listing_id", booking.ListingID)
	return nil
}

func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	if s.publisher == nil {
		return
	}
	event := events.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		ListingID:  booking.ListingID,
		GuestID:    booking.GuestID,
		StartDate:  booking.StartDate,
		EndDate:    booking.EndDate,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.PublishBookingEvent(ctx, event); err != nil {
		// Event delivery is best-effort; the booking itself is already
		// persisted.
		s.cfg.Log.Error("Failed to publish booking event",
			"type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}

func (s *bookingService) acquireSlotLock(ctx context.Context, listingID string) (string, error) {
	lockID := "booking_lock_" + listingID

	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: s.now().Add(config.SlotLockTTL),
	}

	if err := s.lockRepo.Acquire(ctx, lock); err != nil {
		if errors.Is(err, bookingerrors.ErrSlotLocked) {
			return "", apperrors.Conflict("This listing is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lockID, nil
}
