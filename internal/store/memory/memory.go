package memory

import (
	"context"
	"sync"

	"moviehub/backend/internal/model"
)

type Store struct {
	mu sync.Mutex

	users      map[string]model.User
	byUsername map[string]string
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]model.User),
		byUsername: make(map[string]string),
	}
}

func (s *Store) Ping(_ context.Context) error {
	return nil
}
