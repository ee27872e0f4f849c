package model

import "time"

// Booking occupies a date range on exactly one listing for one guest.
// StartDate and EndDate are calendar dates stored at midnight UTC.
type Booking struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	ListingID string    `json:"listing_id" bson:"listing_id" validate:"required,uuid4"`
	GuestID   string    `json:"guest_id" bson:"guest_id" validate:"required,uuid4"`
	StartDate time.Time `json:"start_date" bson:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" bson:"end_date" validate:"required,gtfield=StartDate"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
