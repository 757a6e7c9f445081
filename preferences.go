package profilekit

import "encoding/json"

// Known preference field names in the serialized form.
const (
	fieldNewsletterOptIn = "newsletter_opt_in"
	fieldLanguage        = "language"
	fieldCurrency        = "currency"
)

// UserPreferences holds application preferences plus an open map of
// additional settings. NewsletterOptIn is non-optional and always present in
// the serialized form; it defaults to false.
type UserPreferences struct {
	NewsletterOptIn bool
	Language        *string
	Currency        *string
	Extra           map[string]any
}

// NewUserPreferences creates a preferences record with default values.
func NewUserPreferences() *UserPreferences {
	return &UserPreferences{Extra: map[string]any{}}
}

// SetNewsletterOptIn sets the newsletter opt-in flag.
func (p *UserPreferences) SetNewsletterOptIn(optIn bool) {
	p.NewsletterOptIn = optIn
}

// SetLanguage sets the preferred language (e.g. "en", "id").
func (p *UserPreferences) SetLanguage(language string) {
	p.Language = &language
}

// SetCurrency sets the preferred currency (e.g. "USD", "IDR").
func (p *UserPreferences) SetCurrency(currency string) {
	p.Currency = &currency
}

// SetExtra inserts or overwrites one additional preference. A key equal to a
// known field name is shadowed by that field during both encoding and
// decoding.
func (p *UserPreferences) SetExtra(key string, value any) {
	if p.Extra == nil {
		p.Extra = map[string]any{}
	}
	p.Extra[key] = value
}

// GetExtra returns the additional preference stored under key.
func (p *UserPreferences) GetExtra(key string) (any, bool) {
	v, ok := p.Extra[key]
	return v, ok
}

// Clone returns a deep copy, nil in for nil out.
func (p *UserPreferences) Clone() *UserPreferences {
	if p == nil {
		return nil
	}
	return &UserPreferences{
		NewsletterOptIn: p.NewsletterOptIn,
		Language:        clonePtr(p.Language),
		Currency:        clonePtr(p.Currency),
		Extra:           cloneExtra(p.Extra),
	}
}

// MarshalJSON merges known fields and Extra into one flat object.
// newsletter_opt_in is always emitted; language and currency only when set.
func (p UserPreferences) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Extra)+3)
	for k, v := range p.Extra {
		m[k] = v
	}
	m[fieldNewsletterOptIn] = p.NewsletterOptIn
	if p.Language != nil {
		m[fieldLanguage] = *p.Language
	}
	if p.Currency != nil {
		m[fieldCurrency] = *p.Currency
	}
	return json.Marshal(m)
}

// UnmarshalJSON splits a flat object back into known fields and Extra.
// A missing newsletter_opt_in decodes to false.
func (p *UserPreferences) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	*p = UserPreferences{Extra: make(map[string]any, len(m))}
	for k, v := range m {
		switch k {
		case fieldNewsletterOptIn:
			b, err := boolField(k, v)
			if err != nil {
				return err
			}
			if b != nil {
				p.NewsletterOptIn = *b
			}
		case fieldLanguage:
			s, err := stringField(k, v)
			if err != nil {
				return err
			}
			p.Language = s
		case fieldCurrency:
			s, err := stringField(k, v)
			if err != nil {
				return err
			}
			p.Currency = s
		default:
			p.Extra[k] = v
		}
	}
	return nil
}
