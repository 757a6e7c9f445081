package profilekit

import "encoding/json"

// Known attribute field names in the serialized form. Extra entries under
// these keys are shadowed by the corresponding field.
const (
	fieldFirstName = "first_name"
	fieldLastName  = "last_name"
)

// UserAttributes holds optional personal attributes plus an open map of
// additional fields. Known fields and Extra entries share one flat namespace
// in the serialized form.
type UserAttributes struct {
	FirstName *string
	LastName  *string
	Extra     map[string]any
}

// NewUserAttributes creates an empty attributes record.
func NewUserAttributes() *UserAttributes {
	return &UserAttributes{Extra: map[string]any{}}
}

// SetFirstName sets the first name.
func (a *UserAttributes) SetFirstName(firstName string) {
	a.FirstName = &firstName
}

// SetLastName sets the last name.
func (a *UserAttributes) SetLastName(lastName string) {
	a.LastName = &lastName
}

// SetExtra inserts or overwrites one additional attribute. Any JSON-shaped
// value is accepted. A key equal to a known field name is shadowed by that
// field during both encoding and decoding.
func (a *UserAttributes) SetExtra(key string, value any) {
	if a.Extra == nil {
		a.Extra = map[string]any{}
	}
	a.Extra[key] = value
}

// GetExtra returns the additional attribute stored under key.
func (a *UserAttributes) GetExtra(key string) (any, bool) {
	v, ok := a.Extra[key]
	return v, ok
}

// Clone returns a deep copy, nil in for nil out.
func (a *UserAttributes) Clone() *UserAttributes {
	if a == nil {
		return nil
	}
	c := &UserAttributes{
		FirstName: clonePtr(a.FirstName),
		LastName:  clonePtr(a.LastName),
		Extra:     cloneExtra(a.Extra),
	}
	return c
}

// MarshalJSON merges known fields and Extra into one flat object. Absent
// known fields are omitted, never emitted as null.
func (a UserAttributes) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(a.Extra)+2)
	for k, v := range a.Extra {
		m[k] = v
	}
	if a.FirstName != nil {
		m[fieldFirstName] = *a.FirstName
	}
	if a.LastName != nil {
		m[fieldLastName] = *a.LastName
	}
	return json.Marshal(m)
}

// UnmarshalJSON splits a flat object back into known fields and Extra. Keys
// matching known field names populate the fields and are not duplicated into
// Extra; everything else lands in Extra with its decoded value.
func (a *UserAttributes) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	*a = UserAttributes{Extra: make(map[string]any, len(m))}
	for k, v := range m {
		switch k {
		case fieldFirstName:
			s, err := stringField(k, v)
			if err != nil {
				return err
			}
			a.FirstName = s
		case fieldLastName:
			s, err := stringField(k, v)
			if err != nil {
				return err
			}
			a.LastName = s
		default:
			a.Extra[k] = v
		}
	}
	return nil
}
