package guard

import (
	"context"

	"homestay/pkg/model"
)

type listingKey struct{}
type reviewKey struct{}
type bookingKey struct{}

func withListing(ctx context.Context, l *model.Listing) context.Context {
	return context.WithValue(ctx, listingKey{}, l)
}

// ListingFrom returns the listing resolved by RequireListing.
func ListingFrom(ctx context.Context) (*model.Listing, bool) {
	l, ok := ctx.Value(listingKey{}).(*model.Listing)
	return l, ok
}

func withReview(ctx context.Context, rv *model.Review) context.Context {
	return context.WithValue(ctx, reviewKey{}, rv)
}

// ReviewFrom returns the review resolved by RequireReviewOwner.
func ReviewFrom(ctx context.Context) (*model.Review, bool) {
	rv, ok := ctx.Value(reviewKey{}).(*model.Review)
	return rv, ok
}

func withBooking(ctx context.Context, b *model.Booking) context.Context {
	return context.WithValue(ctx, bookingKey{}, b)
}

// BookingFrom returns the booking resolved by RequireBooking.
func BookingFrom(ctx context.Context) (*model.Booking, bool) {
	b, ok := ctx.Value(bookingKey{}).(*model.Booking)
	return b, ok
}
