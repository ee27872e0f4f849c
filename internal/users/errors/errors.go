package errors

import "errors"

var (
	ErrNotFound = errors.New("user not found")

	ErrInvalidCredentials = errors.New("invalid email or password")
)
