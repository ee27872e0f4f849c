package model

import "time"

type User struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	Email        string    `json:"email" bson:"email" validate:"required,email"`
	Username     string    `json:"username" bson:"username" validate:"required,min=2,max=40"`
	PasswordHash []byte    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// PublicUser is the subset of User safe to embed in credentials and API
// responses. The password hash never leaves the users collection.
type PublicUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
	}
}
