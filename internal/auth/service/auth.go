package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"homestay/internal/auth/token"
	usererrors "homestay/internal/users/errors"
	"homestay/internal/users/repository"
	apperrors "homestay/pkg/errors"
	"homestay/pkg/logger"
	"homestay/pkg/model"
)

type AuthService interface {
	// Login verifies the credentials and returns the user with a freshly
	// issued credential string.
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

type authService struct {
	users repository.UserRepository
	codec *token.Codec
	log   *logger.Logger
}

func NewAuthService(users repository.UserRepository, codec *token.Codec, log *logger.Logger) AuthService {
	return &authService{
		users: users,
		codec: codec,
		log:   log,
	}
}

// Login deliberately returns the same error for an unknown email and a wrong
// password so callers cannot probe which accounts exist.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, usererrors.ErrNotFound) {
			return nil, "", apperrors.InvalidCredentials()
		}
		return nil, "", apperrors.Internal("Failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, "", apperrors.InvalidCredentials()
	}

	raw, claims, err := s.codec.Issue(user.Public())
	if err != nil {
		return nil, "", apperrors.Internal("Failed to issue credential", err)
	}

	s.log.Info("User logged in", "user_id", user.ID, "expires_at", claims.ExpiresAt)
	return user, raw, nil
}
