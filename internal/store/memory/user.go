package memory

import (
	"context"
	"errors"
	"time"

	"moviehub/backend/internal/model"
	"moviehub/backend/internal/store"
)

func (s *Store) CreateUser(_ context.Context, u model.User) (model.User, error) {
	if u.Username == "" {
		return model.User{}, errors.New("username_required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The uniqueness check and the insert share the lock, so concurrent
	// registrations of one username cannot both succeed.
	if _, ok := s.byUsername[u.Username]; ok {
		return model.User{}, store.ErrConflict
	}

	u.ID = newID()
	u.CreatedAt = time.Now().UTC()
	s.users[u.ID] = u
	s.byUsername[u.Username] = u.ID
	return u, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	u := s.users[id]
	return &u, nil
}
