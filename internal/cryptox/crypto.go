// Package cryptox implements credential hashing and random password
// generation for the account manager.
package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// passwordCharset is the alphabet used for generated passwords: uppercase,
// lowercase, digits, and the full punctuation set accepted by the password
// strength policy.
const passwordCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz" +
	"0123456789" +
	"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// hashPrefixes are the recognized bcrypt digest prefixes. Stored passwords
// are always in this form; anything else is treated as legacy plaintext.
var hashPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// HashPassword produces a salted bcrypt digest of the given plaintext.
// A fresh salt is generated on every call, so hashing the same plaintext
// twice yields different digests.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(digest), nil
}

// VerifyPassword reports whether plaintext hashes to digest. It returns
// false, never panics, on malformed digests.
func VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// IsHashed reports whether s already looks like a bcrypt digest.
func IsHashed(s string) bool {
	for _, p := range hashPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// GeneratePassword returns a random password of the given length drawn from
// the full printable character set. Generated passwords are accepted without
// a strength re-check.
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid password length %d", length)
	}

	max := big.NewInt(int64(len(passwordCharset)))
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generating password: %w", err)
		}
		b.WriteByte(passwordCharset[n.Int64()])
	}
	return b.String(), nil
}
