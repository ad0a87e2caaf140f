// Package tokenstore keeps the current bearer token in memory and mirrors it
// to durable storage so a later process start can restore the session.
package tokenstore

import (
	"context"
	"fmt"
	"sync"

	"auth-panel/internal/repository"
)

// StorageKey is the durable key holding the bearer token.
const StorageKey = "auth_token"

// Store is safe for concurrent use.
type Store struct {
	repo repository.KeyValueRepository

	mu     sync.RWMutex
	token  string
	loaded bool
}

func New(repo repository.KeyValueRepository) *Store {
	return &Store{repo: repo}
}

// Load returns the persisted token. Storage is only consulted on the first
// call; afterwards the in-memory value is authoritative.
func (s *Store) Load(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.token, nil
	}

	value, ok, err := s.repo.Get(ctx, StorageKey)
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	s.loaded = true
	if ok {
		s.token = value
	}
	return s.token, nil
}

// Token returns the in-memory token, "" when none is set.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set installs token and persists it. An empty token clears the store.
func (s *Store) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Set(ctx, StorageKey, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	s.token = token
	s.loaded = true
	return nil
}

// Clear removes the durable copy and forgets the in-memory token. Memory is
// cleared even when the durable delete fails.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.loaded = true
	if err := s.repo.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
