// Package redis implements the profile repository on Redis. Each profile is
// stored as one JSON document, which doubles as the wire format when the
// store is shared with other services.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/profilekit"
	"github.com/heartmarshall/profilekit/config"
)

const keyPrefix = "profile:"

// Store is a Redis-backed profile repository. Atomicity of the contract's
// mutations comes from single Redis commands: SET NX for create, SET XX for
// update, DEL for delete.
type Store struct {
	client *goredis.Client
}

var _ profilekit.Repository = (*Store)(nil)

// New creates a store on top of an existing client.
func New(client *goredis.Client) *Store {
	return &Store{client: client}
}

// NewClient creates a Redis client from RedisConfig.
func NewClient(cfg config.RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func key(id string) string { return keyPrefix + id }

// GetByID returns the profile stored under the id's key, or (nil, nil) when
// absent.
func (s *Store) GetByID(ctx context.Context, id string) (*profilekit.UserProfile, error) {
	data, err := s.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err, id)
	}

	var p profilekit.UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("user_profile %s: decode: %w", id, profilekit.NewDatabaseError(err.Error()))
	}
	return &p, nil
}

// Create stores the profile under a fresh key; SET NX refuses an existing one.
func (s *Store) Create(ctx context.Context, profile *profilekit.UserProfile) error {
	if profile == nil {
		return profilekit.NewInvalidInput("profile is required")
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("user_profile %s: encode: %w", profile.ID, err)
	}

	ok, err := s.client.SetNX(ctx, key(profile.ID), payload, 0).Result()
	if err != nil {
		return mapError(err, profile.ID)
	}
	if !ok {
		return fmt.Errorf("user_profile %s: %w", profile.ID, profilekit.ErrAlreadyExists)
	}
	return nil
}

// Update replaces the stored profile; SET XX refuses a missing key.
func (s *Store) Update(ctx context.Context, profile *profilekit.UserProfile) error {
	if profile == nil {
		return profilekit.NewInvalidInput("profile is required")
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("user_profile %s: encode: %w", profile.ID, err)
	}

	ok, err := s.client.SetXX(ctx, key(profile.ID), payload, 0).Result()
	if err != nil {
		return mapError(err, profile.ID)
	}
	if !ok {
		return fmt.Errorf("user_profile %s: %w", profile.ID, profilekit.ErrNotFound)
	}
	return nil
}

// Delete removes the profile's key; zero deleted keys maps to ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, key(id)).Result()
	if err != nil {
		return mapError(err, id)
	}
	if n == 0 {
		return fmt.Errorf("user_profile %s: %w", id, profilekit.ErrNotFound)
	}
	return nil
}

// mapError converts go-redis errors to the profilekit taxonomy. Context
// errors pass through; everything else becomes a DatabaseError so go-redis
// types never cross the repository boundary.
func mapError(err error, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("user_profile %s: %w", id, err)
	}
	return fmt.Errorf("user_profile %s: %w", id, profilekit.NewDatabaseError(err.Error()))
}
