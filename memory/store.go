// Package memory implements the profile repository on an in-process map.
// It is the reference backend for tests and local wiring.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/heartmarshall/profilekit"
)

// Store is a mutex-guarded in-memory profile repository. The zero value is
// not usable; use New. Safe for concurrent use: every mutation holds the
// write lock across its existence check and the write, so two concurrent
// creates for the same id cannot both succeed.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]profilekit.UserProfile
}

var _ profilekit.Repository = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{profiles: make(map[string]profilekit.UserProfile)}
}

// GetByID returns a copy of the stored profile, or (nil, nil) when absent.
func (s *Store) GetByID(ctx context.Context, id string) (*profilekit.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

// Create stores a copy of the profile under its id.
func (s *Store) Create(ctx context.Context, profile *profilekit.UserProfile) error {
	if profile == nil {
		return profilekit.NewInvalidInput("profile is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[profile.ID]; ok {
		return fmt.Errorf("user_profile %s: %w", profile.ID, profilekit.ErrAlreadyExists)
	}
	s.profiles[profile.ID] = *profile.Clone()
	return nil
}

// Update replaces the stored profile carrying the same id.
func (s *Store) Update(ctx context.Context, profile *profilekit.UserProfile) error {
	if profile == nil {
		return profilekit.NewInvalidInput("profile is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[profile.ID]; !ok {
		return fmt.Errorf("user_profile %s: %w", profile.ID, profilekit.ErrNotFound)
	}
	s.profiles[profile.ID] = *profile.Clone()
	return nil
}

// Delete removes the profile with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[id]; !ok {
		return fmt.Errorf("user_profile %s: %w", id, profilekit.ErrNotFound)
	}
	delete(s.profiles, id)
	return nil
}
