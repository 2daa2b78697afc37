package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_JSONKeys(t *testing.T) {
	a := &Account{
		FirstName:    "John",
		LastName:     "Smith",
		Username:     "johnsmith1",
		PhoneNumber:  "8735551234",
		Password:     "$2b$10$abcdefghijklmnopqrstuv",
		Email:        "john@mail.com",
		Role:         RoleUser,
		DateCreated:  "2025-01-02T10:00:00Z",
		DateModified: "2025-01-02T10:00:00Z",
	}

	data, err := json.Marshal(a)
	require.NoError(t, err)

	s := string(data)
	for _, key := range []string{
		`"first name"`, `"last name"`, `"username"`, `"phone number"`,
		`"password"`, `"email"`, `"role"`, `"is_locked"`,
		`"date_created"`, `"date_modified"`,
	} {
		assert.Contains(t, s, key)
	}
	// lock_time is omitted while unlocked
	assert.NotContains(t, s, `"lock_time"`)
	assert.NotContains(t, s, `"date modified"`)
}

func TestAccount_UnmarshalLegacyDateModified(t *testing.T) {
	raw := `{
		"first name": "Jane",
		"last name": "Doe",
		"username": "janedoe99",
		"phone number": "5145551234",
		"password": "$2b$10$abcdefghijklmnopqrstuv",
		"email": "jane@mail.com",
		"role": "user",
		"is_locked": false,
		"date_created": "2025-01-02T10:00:00Z",
		"date modified": "2025-03-04T11:00:00Z"
	}`

	var a Account
	require.NoError(t, json.Unmarshal([]byte(raw), &a))
	assert.Equal(t, "2025-03-04T11:00:00Z", a.DateModified)

	// Re-encoding migrates to the canonical key.
	out, err := json.Marshal(&a)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"date_modified"`)
	assert.NotContains(t, string(out), `"date modified"`)
}

func TestAccount_UnmarshalDefaultsRole(t *testing.T) {
	var a Account
	require.NoError(t, json.Unmarshal([]byte(`{"username":"someuser1"}`), &a))
	assert.Equal(t, RoleUser, a.Role)
}

func TestAccount_IsAdmin(t *testing.T) {
	assert.True(t, (&Account{Role: RoleAdmin}).IsAdmin())
	assert.True(t, (&Account{Role: "Admin"}).IsAdmin())
	assert.False(t, (&Account{Role: RoleUser}).IsAdmin())
}

func TestAccount_LockUnlock(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var a Account
	a.Lock(now)
	require.True(t, a.IsLocked)
	require.NotEmpty(t, a.LockTime)

	since, err := a.LockedSince()
	require.NoError(t, err)
	assert.True(t, since.Equal(now))

	a.Unlock()
	assert.False(t, a.IsLocked)
	assert.Empty(t, a.LockTime)
}

func TestParseTimestamp_LegacyLayout(t *testing.T) {
	// Zone-less ISO string as written by the previous implementation.
	got, err := ParseTimestamp("2025-06-01T12:30:45.123456")
	require.NoError(t, err)
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, 30, got.Minute())

	_, err = ParseTimestamp("garbage")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "garbage"))
}
