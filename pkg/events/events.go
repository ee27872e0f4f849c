package events

import (
	"context"
	"time"
)

const (
	TypeBookingCreated   = "booking.created"
	TypeBookingCancelled = "booking.cancelled"
)

// BookingEvent is the payload published on the booking events topic after a
// reservation is persisted or removed.
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	ListingID  string    `json:"listing_id"`
	GuestID    string    `json:"guest_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishBookingEvent(ctx context.Context, event BookingEvent) error
	Close() error
}
