// Package models defines the persisted account entity. The JSON key names
// (including the ones containing spaces) are the on-disk compatibility
// contract with existing account files and must not be changed.
package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Role classifies an account as a regular user or an administrator.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// TimeLayout is the format used for all persisted timestamps.
const TimeLayout = time.RFC3339

// legacyTimeLayout covers timestamps written by the previous implementation,
// an ISO 8601 string without a timezone offset.
const legacyTimeLayout = "2006-01-02T15:04:05.999999999"

// Account is a single stored user profile.
//
// LockTime is present if and only if IsLocked is true; use Lock and Unlock to
// keep the two in sync.
type Account struct {
	FirstName    string `json:"first name"`
	LastName     string `json:"last name"`
	Username     string `json:"username"`
	PhoneNumber  string `json:"phone number"`
	Password     string `json:"password"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	IsLocked     bool   `json:"is_locked"`
	LockTime     string `json:"lock_time,omitempty"`
	DateCreated  string `json:"date_created"`
	DateModified string `json:"date_modified"`
}

// UnmarshalJSON decodes an account, accepting the legacy "date modified" key
// (space, no underscore) that older files may contain alongside or instead of
// "date_modified". Encoding always writes the canonical key, so a
// load-then-save migrates legacy records.
func (a *Account) UnmarshalJSON(data []byte) error {
	type alias Account
	aux := struct {
		*alias
		LegacyDateModified string `json:"date modified"`
	}{alias: (*alias)(a)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if a.DateModified == "" && aux.LegacyDateModified != "" {
		a.DateModified = aux.LegacyDateModified
	}
	if a.Role == "" {
		a.Role = RoleUser
	}
	return nil
}

// IsAdmin reports whether the account has the admin role.
func (a *Account) IsAdmin() bool {
	return strings.EqualFold(string(a.Role), string(RoleAdmin))
}

// Touch records a mutation by updating the date_modified timestamp.
func (a *Account) Touch(now time.Time) {
	a.DateModified = now.Format(TimeLayout)
}

// Lock marks the account locked and stamps the lock time.
func (a *Account) Lock(now time.Time) {
	a.IsLocked = true
	a.LockTime = now.Format(TimeLayout)
}

// Unlock clears the lock state and the lock timestamp.
func (a *Account) Unlock() {
	a.IsLocked = false
	a.LockTime = ""
}

// LockedSince parses the stored lock timestamp. It understands both the
// canonical layout and the legacy zone-less one.
func (a *Account) LockedSince() (time.Time, error) {
	return ParseTimestamp(a.LockTime)
}

// ParseTimestamp parses a persisted timestamp in either supported layout.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err == nil {
		return t, nil
	}
	return time.ParseInLocation(legacyTimeLayout, s, time.Local)
}
