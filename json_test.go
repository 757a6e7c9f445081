package profilekit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_FullProfile(t *testing.T) {
	t.Parallel()

	attrs := NewUserAttributes()
	attrs.SetFirstName("Alice")
	attrs.SetLastName("Smith")
	attrs.SetExtra("nickname", "Al")

	prefs := NewUserPreferences()
	prefs.SetNewsletterOptIn(true)
	prefs.SetLanguage("id")
	prefs.SetCurrency("IDR")
	prefs.SetExtra("timezone", "Asia/Jakarta")

	p := NewUserProfile("789", "Alice@Example.COM")
	p.SetAttributes(attrs)
	p.SetPreferences(prefs)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": "789",
		"email": "alice@example.com",
		"attributes": {
			"first_name": "Alice",
			"last_name": "Smith",
			"nickname": "Al"
		},
		"preferences": {
			"newsletter_opt_in": true,
			"language": "id",
			"currency": "IDR",
			"timezone": "Asia/Jakarta"
		}
	}`, string(data))
}

func TestMarshal_AbsentRecordsAreOmitted(t *testing.T) {
	t.Parallel()

	p := NewUserProfile("42", "user@example.com")

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &m))

	assert.Contains(t, m, "id")
	assert.Contains(t, m, "email")
	assert.NotContains(t, m, "attributes")
	assert.NotContains(t, m, "preferences")
}

func TestMarshal_AbsentKnownFieldsAreOmitted(t *testing.T) {
	t.Parallel()

	attrs := NewUserAttributes()
	attrs.SetExtra("nickname", "Al")

	data, err := json.Marshal(attrs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nickname": "Al"}`, string(data))

	prefs := NewUserPreferences()
	data, err = json.Marshal(prefs)
	require.NoError(t, err)

	// newsletter_opt_in is non-optional and always present.
	assert.JSONEq(t, `{"newsletter_opt_in": false}`, string(data))
}

func TestUnmarshal_SplitsKnownAndExtra(t *testing.T) {
	t.Parallel()

	var attrs UserAttributes
	require.NoError(t, json.Unmarshal([]byte(`{
		"first_name": "Jane",
		"roles": ["admin", "editor"],
		"age": 30
	}`), &attrs))

	require.NotNil(t, attrs.FirstName)
	assert.Equal(t, "Jane", *attrs.FirstName)
	assert.Nil(t, attrs.LastName)

	// Known keys are not duplicated into Extra.
	_, ok := attrs.GetExtra("first_name")
	assert.False(t, ok)

	roles, ok := attrs.GetExtra("roles")
	require.True(t, ok)
	assert.Equal(t, []any{"admin", "editor"}, roles)

	age, ok := attrs.GetExtra("age")
	require.True(t, ok)
	assert.Equal(t, float64(30), age)
}

func TestUnmarshal_KnownFieldWinsOverCollidingExtra(t *testing.T) {
	t.Parallel()

	// An extra entry colliding with a known field name is shadowed by the
	// known field on encode, and the key always decodes into the field.
	attrs := NewUserAttributes()
	attrs.SetFirstName("Real")
	attrs.SetExtra("first_name", "Shadowed")

	data, err := json.Marshal(attrs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"first_name": "Real"}`, string(data))

	var decoded UserAttributes
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.FirstName)
	assert.Equal(t, "Real", *decoded.FirstName)
	_, ok := decoded.GetExtra("first_name")
	assert.False(t, ok)
}

func TestUnmarshal_RejectsWrongKnownFieldType(t *testing.T) {
	t.Parallel()

	var attrs UserAttributes
	err := json.Unmarshal([]byte(`{"first_name": 7}`), &attrs)
	require.Error(t, err)

	var prefs UserPreferences
	err = json.Unmarshal([]byte(`{"newsletter_opt_in": "yes"}`), &prefs)
	require.Error(t, err)
}

func TestUnmarshal_MissingOptInDefaultsFalse(t *testing.T) {
	t.Parallel()

	var prefs UserPreferences
	require.NoError(t, json.Unmarshal([]byte(`{"language": "en"}`), &prefs))

	assert.False(t, prefs.NewsletterOptIn)
	require.NotNil(t, prefs.Language)
	assert.Equal(t, "en", *prefs.Language)
}

func TestRoundTrip_Profiles(t *testing.T) {
	t.Parallel()

	bare := NewUserProfile("1", "bare@example.com")

	withAttrs := NewUserProfile("2", "attrs@example.com")
	a := NewUserAttributes()
	a.SetFirstName("Jane")
	a.SetExtra("extra_field", "value")
	a.SetExtra("nested", map[string]any{"k": []any{"v", float64(1)}})
	withAttrs.SetAttributes(a)

	withPrefs := NewUserProfile("3", "prefs@example.com")
	pr := NewUserPreferences()
	pr.SetCurrency("EUR")
	pr.SetExtra("flag", true)
	withPrefs.SetPreferences(pr)

	full := NewUserProfile("4", "full@example.com")
	full.SetAttributes(a.Clone())
	full.SetPreferences(pr.Clone())

	for _, p := range []*UserProfile{bare, withAttrs, withPrefs, full} {
		data, err := json.Marshal(p)
		require.NoError(t, err, "profile %s", p.ID)

		var decoded UserProfile
		require.NoError(t, json.Unmarshal(data, &decoded), "profile %s", p.ID)

		// serialize(deserialize(x)) is structurally equal to x.
		again, err := json.Marshal(&decoded)
		require.NoError(t, err, "profile %s", p.ID)
		assert.JSONEq(t, string(data), string(again), "profile %s", p.ID)

		assert.Equal(t, p.ID, decoded.ID)
		assert.Equal(t, p.Email, decoded.Email)
		assert.Equal(t, p.Attributes, decoded.Attributes)
		assert.Equal(t, p.Preferences, decoded.Preferences)
	}
}
