// Package auth implements registration, login and bearer-token handling.
package auth

import (
	"context"
	"errors"
	"fmt"

	"moviehub/backend/internal/model"
	"moviehub/backend/internal/store"

	"github.com/go-playground/validator/v10"
)

var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrUsernameTaken      = errors.New("username taken")
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so callers cannot tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore is the part of the credential store the service needs.
type UserStore interface {
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

type credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type Service struct {
	users    UserStore
	hasher   Hasher
	tokens   *TokenIssuer
	validate *validator.Validate
}

func NewService(users UserStore, hasher Hasher, tokens *TokenIssuer) *Service {
	return &Service{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *Service) checkCredentials(username, password string) error {
	if err := s.validate.Struct(credentials{Username: username, Password: password}); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return ErrMissingCredentials
		}
		return err
	}
	return nil
}

// Register creates a user. The username must not exist yet.
func (s *Service) Register(ctx context.Context, username, password string) (model.User, error) {
	if err := s.checkCredentials(username, password); err != nil {
		return model.User{}, err
	}

	_, err := s.users.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return model.User{}, ErrUsernameTaken
	case !errors.Is(err, store.ErrNotFound):
		return model.User{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return model.User{}, err
	}

	created, err := s.users.CreateUser(ctx, model.User{Username: username, PasswordHash: hash})
	if err != nil {
		// Lost a race against a concurrent registration.
		if errors.Is(err, store.ErrConflict) {
			return model.User{}, ErrUsernameTaken
		}
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Login verifies the credentials and returns a signed bearer token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if err := s.checkCredentials(username, password); err != nil {
		return "", err
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := s.hasher.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("verify password: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Authenticate resolves a bearer token to the user id it was issued for.
func (s *Service) Authenticate(token string) (string, error) {
	return s.tokens.Verify(token)
}
