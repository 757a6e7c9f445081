package postgres

import "context"

// Schema is the DDL for the user_profiles table. Attributes and preferences
// are stored as whole JSONB documents; NULL means "record absent", never an
// empty object.
const Schema = `
CREATE TABLE IF NOT EXISTS user_profiles (
    id          TEXT PRIMARY KEY,
    email       TEXT NOT NULL,
    attributes  JSONB,
    preferences JSONB
);`

// EnsureSchema creates the user_profiles table if it does not exist.
// It is a bootstrap convenience for tools and tests, not a migration system.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, Schema); err != nil {
		return mapError(err, "")
	}
	return nil
}
