// Package postgres implements the profile repository on PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/heartmarshall/profilekit"
)

const table = "user_profiles"

var columns = []string{"id", "email", "attributes", "preferences"}

// builder produces queries with $N placeholders.
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides user profile persistence backed by PostgreSQL.
type Repo struct {
	q Querier
}

var _ profilekit.Repository = (*Repo)(nil)

// New creates a new profile repository on top of a pool or transaction.
func New(q Querier) *Repo {
	return &Repo{q: q}
}

// profileRow mirrors the user_profiles columns. The JSONB documents come out
// as raw bytes and are decoded by the model's own codec.
type profileRow struct {
	ID          string `db:"id"`
	Email       string `db:"email"`
	Attributes  []byte `db:"attributes"`
	Preferences []byte `db:"preferences"`
}

// GetByID returns the profile with the given id, or (nil, nil) when absent.
func (r *Repo) GetByID(ctx context.Context, id string) (*profilekit.UserProfile, error) {
	sql, args, err := builder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, mapError(err, id)
	}

	var row profileRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, mapError(err, id)
	}

	return row.toDomain()
}

// Create inserts a new profile. A unique violation on id maps to
// ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, profile *profilekit.UserProfile) error {
	if profile == nil {
		return profilekit.NewInvalidInput("profile is required")
	}

	attrs, prefs, err := encodeNested(profile)
	if err != nil {
		return fmt.Errorf("user_profile %s: %w", profile.ID, err)
	}

	sql, args, err := builder.Insert(table).
		Columns(columns...).
		Values(profile.ID, profile.Email, attrs, prefs).
		ToSql()
	if err != nil {
		return mapError(err, profile.ID)
	}

	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return mapError(err, profile.ID)
	}
	return nil
}

// Update replaces the stored row carrying the profile's id. Zero rows
// affected maps to ErrNotFound.
func (r *Repo) Update(ctx context.Context, profile *profilekit.UserProfile) error {
	if profile == nil {
		return profilekit.NewInvalidInput("profile is required")
	}

	attrs, prefs, err := encodeNested(profile)
	if err != nil {
		return fmt.Errorf("user_profile %s: %w", profile.ID, err)
	}

	sql, args, err := builder.Update(table).
		Set("email", profile.Email).
		Set("attributes", attrs).
		Set("preferences", prefs).
		Where(squirrel.Eq{"id": profile.ID}).
		ToSql()
	if err != nil {
		return mapError(err, profile.ID)
	}

	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err, profile.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user_profile %s: %w", profile.ID, profilekit.ErrNotFound)
	}
	return nil
}

// Delete removes the row with the given id. Zero rows affected maps to
// ErrNotFound.
func (r *Repo) Delete(ctx context.Context, id string) error {
	sql, args, err := builder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return mapError(err, id)
	}

	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user_profile %s: %w", id, profilekit.ErrNotFound)
	}
	return nil
}

// encodeNested serializes the optional nested records. A nil record becomes
// a NULL column, not an empty JSON object.
func encodeNested(profile *profilekit.UserProfile) (attrs, prefs []byte, err error) {
	if profile.Attributes != nil {
		attrs, err = json.Marshal(profile.Attributes)
		if err != nil {
			return nil, nil, err
		}
	}
	if profile.Preferences != nil {
		prefs, err = json.Marshal(profile.Preferences)
		if err != nil {
			return nil, nil, err
		}
	}
	return attrs, prefs, nil
}

// toDomain converts a row into a domain profile.
func (row profileRow) toDomain() (*profilekit.UserProfile, error) {
	p := &profilekit.UserProfile{
		ID:    row.ID,
		Email: row.Email,
	}
	if len(row.Attributes) > 0 {
		var a profilekit.UserAttributes
		if err := json.Unmarshal(row.Attributes, &a); err != nil {
			return nil, fmt.Errorf("user_profile %s: decode attributes: %w", row.ID, err)
		}
		p.Attributes = &a
	}
	if len(row.Preferences) > 0 {
		var pr profilekit.UserPreferences
		if err := json.Unmarshal(row.Preferences, &pr); err != nil {
			return nil, fmt.Errorf("user_profile %s: decode preferences: %w", row.ID, err)
		}
		p.Preferences = &pr
	}
	return p, nil
}
