package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	digest, err := HashPassword("Sup3r$ecret!")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("Sup3r$ecret!", digest))
	assert.False(t, VerifyPassword("wrong-password", digest))
}

func TestHashPassword_FreshSaltEachCall(t *testing.T) {
	d1, err := HashPassword("Sup3r$ecret!")
	require.NoError(t, err)
	d2, err := HashPassword("Sup3r$ecret!")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2)
	assert.True(t, VerifyPassword("Sup3r$ecret!", d1))
	assert.True(t, VerifyPassword("Sup3r$ecret!", d2))
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	// Must return false, never panic.
	assert.False(t, VerifyPassword("anything", ""))
	assert.False(t, VerifyPassword("anything", "not-a-bcrypt-digest"))
	assert.False(t, VerifyPassword("anything", "$2b$truncated"))
}

func TestIsHashed(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"$2a$10$abcdefghijklmnopqrstuv", true},
		{"$2b$12$abcdefghijklmnopqrstuv", true},
		{"$2y$10$abcdefghijklmnopqrstuv", true},
		{"plaintext123", false},
		{"", false},
		{"$1$md5style", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, IsHashed(tc.in), "IsHashed(%q)", tc.in)
	}
}

func TestGeneratePassword(t *testing.T) {
	p1, err := GeneratePassword(12)
	require.NoError(t, err)
	require.Len(t, p1, 12)

	p2, err := GeneratePassword(12)
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)

	for _, r := range p1 {
		assert.Contains(t, passwordCharset, string(r))
	}

	_, err = GeneratePassword(0)
	require.Error(t, err)
}
