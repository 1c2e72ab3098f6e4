package store

import (
	"context"
	"errors"

	"moviehub/backend/internal/model"
)

var (
	ErrNotFound = errors.New("not_found")
	ErrConflict = errors.New("conflict")
)

// Store is the credential store. Usernames are matched exactly (case-sensitive).
type Store interface {
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	Ping(ctx context.Context) error
}
