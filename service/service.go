// Package service is a thin validation and workflow layer on top of the
// profile repository contract. The model itself has no failure modes; the
// rules here (input validation, required-existence fetches, required
// preferences) are where the reserved error kinds originate.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/profilekit"
)

// Manager implements profile workflows over any Repository backend.
type Manager struct {
	log      *slog.Logger
	profiles profilekit.Repository
}

// New creates a profile manager.
func New(logger *slog.Logger, profiles profilekit.Repository) *Manager {
	return &Manager{
		log:      logger.With("service", "profile"),
		profiles: profiles,
	}
}

// Register validates the input and persists a new profile. A blank id is
// replaced with a generated one; email casing is normalized by the model.
func (m *Manager) Register(ctx context.Context, input RegisterInput) (*profilekit.UserProfile, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	id := input.ID
	if id == "" {
		id = newID()
	}

	p := profilekit.NewUserProfile(id, input.Email)
	if err := m.profiles.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("profile.Register: %w", err)
	}

	m.log.InfoContext(ctx, "profile registered", slog.String("profile_id", p.ID))
	return p, nil
}

// GetProfile fetches a profile whose existence the caller requires.
// Unlike Repository.GetByID, absence here is ErrNotFound.
func (m *Manager) GetProfile(ctx context.Context, id string) (*profilekit.UserProfile, error) {
	p, err := m.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("profile.GetProfile: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("profile.GetProfile: %s: %w", id, profilekit.ErrNotFound)
	}
	return p, nil
}

// UpdateAttributes replaces the attributes record of an existing profile.
// Passing nil clears it.
func (m *Manager) UpdateAttributes(ctx context.Context, id string, attributes *profilekit.UserAttributes) (*profilekit.UserProfile, error) {
	p, err := m.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	p.SetAttributes(attributes)
	if err := m.profiles.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("profile.UpdateAttributes: %w", err)
	}

	m.log.InfoContext(ctx, "attributes updated", slog.String("profile_id", id))
	return p, nil
}

// UpdatePreferences replaces the preferences record of an existing profile.
// Passing nil clears it.
func (m *Manager) UpdatePreferences(ctx context.Context, id string, preferences *profilekit.UserPreferences) (*profilekit.UserProfile, error) {
	p, err := m.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	p.SetPreferences(preferences)
	if err := m.profiles.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("profile.UpdatePreferences: %w", err)
	}

	m.log.InfoContext(ctx, "preferences updated", slog.String("profile_id", id))
	return p, nil
}

// NewsletterStatus reports the newsletter opt-in of an existing profile.
// A profile without preferences yields ErrMissingPreferences.
func (m *Manager) NewsletterStatus(ctx context.Context, id string) (bool, error) {
	p, err := m.GetProfile(ctx, id)
	if err != nil {
		return false, err
	}
	if p.Preferences == nil {
		return false, fmt.Errorf("profile.NewsletterStatus: %s: %w", id, profilekit.ErrMissingPreferences)
	}
	return p.Preferences.NewsletterOptIn, nil
}

// newID returns a time-ordered id in the dashless form registration uses
// for generated identifiers.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return strings.ReplaceAll(id.String(), "-", "")
}
