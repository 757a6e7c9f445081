package profilekit

import "errors"

// Sentinel errors forming the closed taxonomy storage backends and layers
// above the model map their failures onto. Callers branch with errors.Is.
var (
	// ErrNotFound reports that the targeted profile does not exist
	// (update, delete, or a caller-level fetch that requires existence).
	ErrNotFound = errors.New("user profile not found")

	// ErrAlreadyExists reports a create targeting an id already present.
	ErrAlreadyExists = errors.New("user profile already exists")

	// ErrInvalidInput reports structurally invalid caller-supplied data.
	// The model itself never raises it; validation layers do.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingPreferences reports an operation that required preferences
	// to be present but found none.
	ErrMissingPreferences = errors.New("user preferences are missing")

	// ErrDatabase reports a backend failure with diagnostic detail;
	// carried by DatabaseError.
	ErrDatabase = errors.New("database error")

	// ErrStorage reports a backend failure without further detail.
	ErrStorage = errors.New("storage error")
)

// DatabaseError is a backend-level failure carrying the underlying message.
// It unwraps to ErrDatabase so callers can branch on kind without caring
// about the detail.
type DatabaseError struct {
	Message string
}

func (e *DatabaseError) Error() string { return "database error: " + e.Message }

func (e *DatabaseError) Unwrap() error { return ErrDatabase }

// NewDatabaseError wraps a backend failure message into the taxonomy.
func NewDatabaseError(message string) *DatabaseError {
	return &DatabaseError{Message: message}
}

// InvalidInputError describes why caller-supplied data was rejected.
// It unwraps to ErrInvalidInput.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return "invalid input: " + e.Message }

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// NewInvalidInput creates an InvalidInputError with the given reason.
func NewInvalidInput(message string) *InvalidInputError {
	return &InvalidInputError{Message: message}
}
