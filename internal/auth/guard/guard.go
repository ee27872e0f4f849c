package guard

import (
	"context"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"homestay/internal/auth/identity"
	bookingerrors "homestay/internal/bookings/errors"
	listingerrors "homestay/internal/listings/errors"
	reviewerrors "homestay/internal/reviews/errors"
	apperrors "homestay/pkg/errors"
	"homestay/pkg/logger"
	"homestay/pkg/model"
)

type ListingFinder interface {
	FindListingByID(ctx context.Context, id string) (*model.Listing, error)
}

type ReviewFinder interface {
	FindReviewByID(ctx context.Context, id string) (*model.Review, error)
}

type BookingFinder interface {
	FindBookingByID(ctx context.Context, id string) (*model.Booking, error)
}

// Guard holds the per-resource authorization predicates composed on routes.
// Guards are order-sensitive: existence checks must run before ownership
// checks, since ownership dereferences the resolved resource.
type Guard struct {
	listings ListingFinder
	reviews  ReviewFinder
	bookings BookingFinder
	log      *logger.Logger
}

func New(listings ListingFinder, reviews ReviewFinder, bookings BookingFinder, log *logger.Logger) *Guard {
	return &Guard{
		listings: listings,
		reviews:  reviews,
		bookings: bookings,
		log:      log,
	}
}

// RequireAuthenticated rejects anonymous callers with 401.
func RequireAuthenticated(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if _, ok := identity.CallerFrom(r.Context()); !ok {
			apperrors.WriteError(w, apperrors.Unauthorized())
			return
		}
		next(w, r, ps)
	}
}

// RequireListing resolves the listing named by the route parameter and makes
// it available downstream, or rejects with 404.
func (g *Guard) RequireListing(param string, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		listing, err := g.listings.FindListingByID(r.Context(), ps.ByName(param))
		if err != nil {
			g.writeLookupError(w, r, "Listing", err, listingerrors.ErrNotFound, listingerrors.ErrInvalidID)
			return
		}
		next(w, r.WithContext(withListing(r.Context(), listing)), ps)
	}
}

// RequireNotOwner blocks a listing's owner from acting on their own listing
// (booking it, reviewing it). The caller must already be authenticated and
// the listing resolved; violating that is a programming error in the route
// composition, not a recoverable request failure.
func (g *Guard) RequireNotOwner(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		caller, ok := identity.CallerFrom(r.Context())
		if !ok {
			panic("guard: RequireNotOwner composed before RequireAuthenticated")
		}
		listing, ok := ListingFrom(r.Context())
		if !ok {
			panic("guard: RequireNotOwner composed before RequireListing")
		}

		if caller.ID == listing.OwnerID {
			apperrors.WriteError(w, apperrors.Forbidden())
			return
		}
		next(w, r, ps)
	}
}

// RequireReviewOwner resolves the review and verifies the caller authored
// it. Absence is checked first (404), then authorship (403).
func (g *Guard) RequireReviewOwner(param string, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		caller, ok := identity.CallerFrom(r.Context())
		if !ok {
			panic("guard: RequireReviewOwner composed before RequireAuthenticated")
		}

		review, err := g.reviews.FindReviewByID(r.Context(), ps.ByName(param))
		if err != nil {
			g.writeLookupError(w, r, "Review", err, reviewerrors.ErrNotFound, reviewerrors.ErrInvalidID)
			return
		}

		if review.AuthorID != caller.ID {
			apperrors.WriteError(w, apperrors.Forbidden())
			return
		}
		next(w, r.WithContext(withReview(r.Context(), review)), ps)
	}
}

// RequireBooking resolves the booking named by the route parameter, or
// rejects with 404.
func (g *Guard) RequireBooking(param string, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		booking, err := g.bookings.FindBookingByID(r.Context(), ps.ByName(param))
		if err != nil {
			g.writeLookupError(w, r, "Booking", err, bookingerrors.ErrNotFound, bookingerrors.ErrInvalidID)
			return
		}
		next(w, r.WithContext(withBooking(r.Context(), booking)), ps)
	}
}

// RequireBookingOwner verifies the caller requested the resolved booking.
// Existence is checked by RequireBooking earlier in the chain.
func (g *Guard) RequireBookingOwner(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		caller, ok := identity.CallerFrom(r.Context())
		if !ok {
			panic("guard: RequireBookingOwner composed before RequireAuthenticated")
		}
		booking, ok := BookingFrom(r.Context())
		if !ok {
			panic("guard: RequireBookingOwner composed before RequireBooking")
		}

		if booking.GuestID != caller.ID {
			apperrors.WriteError(w, apperrors.Forbidden())
			return
		}
		next(w, r, ps)
	}
}

func (g *Guard) writeLookupError(w http.ResponseWriter, r *http.Request, kind string, err error, absent, invalidID error) {
	if errors.Is(err, absent) || errors.Is(err, invalidID) {
		apperrors.WriteError(w, apperrors.NotFound(kind))
		return
	}
	g.log.Error("Resource lookup failed",
		"kind", kind,
		"path", r.URL.Path,
		"error", err,
	)
	apperrors.WriteError(w, apperrors.Internal("Failed to resolve "+kind, err))
}
