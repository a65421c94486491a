package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Sup3rSecret!")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret!", hash)

	assert.True(t, CheckPasswordHash("Sup3rSecret!", hash))
	assert.False(t, CheckPasswordHash("sup3rsecret!", hash))
	assert.False(t, CheckPasswordHash("Sup3rSecret!", "not-a-hash"))
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	valid := []string{
		"Abcdef1!",
		"Sup3rSecret!",
		"P@ssw0rd with spaces",
	}
	for _, p := range valid {
		assert.True(t, ValidatePassword(p), "expected %q to pass", p)
	}

	invalid := []string{
		"",
		"Ab1!",           // too short
		"abcdefg1!",      // no upper
		"ABCDEFG1!",      // no lower
		"Abcdefgh!",      // no digit
		"Abcdefg1",       // no special
		"password123",    // lower and digits only
	}
	for _, p := range invalid {
		assert.False(t, ValidatePassword(p), "expected %q to fail", p)
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidateEmail("worker@example.com"))
	assert.True(t, ValidateEmail("first.last+tag@sub.example.sa"))

	assert.False(t, ValidateEmail(""))
	assert.False(t, ValidateEmail("no-at-sign"))
	assert.False(t, ValidateEmail("missing@tld"))
	assert.False(t, ValidateEmail("@example.com"))
	assert.False(t, ValidateEmail(strings.Repeat("a", 250)+"@x.com"), "overlong addresses are rejected")
}
