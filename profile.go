package profilekit

import (
	"strings"
)

// UserProfile is the root record: identity, contact, and two optional nested
// records. A nil Attributes or Preferences means "no data", not "empty data",
// and is omitted from the serialized form entirely.
type UserProfile struct {
	ID          string           `json:"id"`
	Email       string           `json:"email"`
	Attributes  *UserAttributes  `json:"attributes,omitempty"`
	Preferences *UserPreferences `json:"preferences,omitempty"`
}

// NewUserProfile creates a profile with the given id and email.
// The id is caller-supplied; uniqueness is the repository's concern.
// Email is stored lowercase.
func NewUserProfile(id, email string) *UserProfile {
	return &UserProfile{
		ID:    id,
		Email: strings.ToLower(email),
	}
}

// SetEmail replaces the email address. The stored value is always lowercase,
// regardless of input casing.
func (p *UserProfile) SetEmail(email string) {
	p.Email = strings.ToLower(email)
}

// SetAttributes replaces the attributes record. Passing nil clears it.
func (p *UserProfile) SetAttributes(attributes *UserAttributes) {
	p.Attributes = attributes
}

// SetPreferences replaces the preferences record. Passing nil clears it.
func (p *UserProfile) SetPreferences(preferences *UserPreferences) {
	p.Preferences = preferences
}

// Clone returns a deep copy. Backends store and return copies so callers
// never alias backend-owned state.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	return &UserProfile{
		ID:          p.ID,
		Email:       p.Email,
		Attributes:  p.Attributes.Clone(),
		Preferences: p.Preferences.Clone(),
	}
}
