package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"supersecretvalue", "supers…"},
		{"$2a$12$longbcrypthash", "$2a$12…"},
		{"short", "short…"},
		{"", "…"},
		{"päss wörd!", "päss w…"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, maskValue(tt.in), "input %q", tt.in)
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.com", "user.name@sub.domain.org", "x@y.io"}
	invalid := []string{"", "plain", "a@b", "a b@c.com", "a@b c.com", "@b.com", "a@.com"}

	for _, email := range valid {
		assert.True(t, validEmail(email), "expected valid: %q", email)
	}
	for _, email := range invalid {
		assert.False(t, validEmail(email), "expected invalid: %q", email)
	}
}

func TestBoolFlagDefaultsTrue(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/users", nil)
	assert.True(t, boolFlag(r, "mask"))

	r = httptest.NewRequest("GET", "/api/users?mask=false", nil)
	assert.False(t, boolFlag(r, "mask"))

	// Anything other than the literal "false" counts as true.
	r = httptest.NewRequest("GET", "/api/users?mask=0", nil)
	assert.True(t, boolFlag(r, "mask"))

	r = httptest.NewRequest("GET", "/api/users?mask=FALSE", nil)
	assert.True(t, boolFlag(r, "mask"))
}

func TestMaskPassword(t *testing.T) {
	assert.Nil(t, maskPassword(nil, true))

	raw := "supersecretvalue"
	assert.Equal(t, &raw, maskPassword(&raw, false))

	masked := maskPassword(&raw, true)
	assert.Equal(t, "supers…", *masked)
	// The stored value is untouched.
	assert.Equal(t, "supersecretvalue", raw)
}
