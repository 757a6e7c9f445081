package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/profilekit"
)

// mapError converts pgx/pgconn errors to the profilekit taxonomy.
// context.DeadlineExceeded and context.Canceled are NOT mapped and pass
// through. Anything unrecognized becomes a DatabaseError so pgx types never
// cross the repository boundary.
func mapError(err error, id string) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("user_profile %s: %w", id, err)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("user_profile %s: %w", id, profilekit.ErrAlreadyExists)
		}
		return fmt.Errorf("user_profile %s: %w", id, profilekit.NewDatabaseError(pgErr.Message))
	}

	return fmt.Errorf("user_profile %s: %w", id, profilekit.NewDatabaseError(err.Error()))
}
