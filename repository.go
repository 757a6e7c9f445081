package profilekit

import "context"

// Repository is the contract a storage backend implements to persist user
// profiles. Implementations exist for in-memory maps, PostgreSQL, and Redis;
// remote-service clients fit the same shape.
//
// Mutating operations are fail-fast and leave prior state untouched on
// error. Each call must be atomic as observed by callers: two concurrent
// Create calls for the same id must not both succeed. Scheduling is up to
// the backend; the contract itself is stateless request/response.
//
// Backends map their internal failures onto the error taxonomy in this
// package instead of leaking backend-specific error types.
type Repository interface {
	// GetByID returns the profile with the given id, or (nil, nil) when no
	// such profile exists. Absence on read is a normal outcome, distinct
	// from a backend failure.
	GetByID(ctx context.Context, id string) (*UserProfile, error)

	// Create persists a new profile. Returns ErrAlreadyExists (wrapped)
	// when the id is already present.
	Create(ctx context.Context, profile *UserProfile) error

	// Update replaces the stored profile carrying the same id. Returns
	// ErrNotFound (wrapped) when the id does not exist.
	Update(ctx context.Context, profile *UserProfile) error

	// Delete removes the profile with the given id. Returns ErrNotFound
	// (wrapped) when the id does not exist.
	Delete(ctx context.Context, id string) error
}
