package model

import "time"

type Listing struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	OwnerID       string    `json:"owner_id" bson:"owner_id" validate:"required,uuid4"`
	Title         string    `json:"title" bson:"title" validate:"required,min=2,max=120"`
	Description   string    `json:"description" bson:"description" validate:"omitempty,max=2000"`
	City          string    `json:"city" bson:"city" validate:"required,min=2,max=80"`
	PricePerNight int       `json:"price_per_night" bson:"price_per_night" validate:"required,min=1"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
