package model

import "time"

// SlotLock is a short-lived advisory lock held while a booking's conflict
// check and insert run, so two concurrent requests cannot both pass the
// check and persist overlapping reservations on the same listing.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
