// Package common defines shared sentinel errors used across accountkeeper
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound       = errors.New("not found")
	ErrStoreCorrupted = errors.New("accounts store corrupted")

	// Authentication errors.
	ErrUnauthorized     = errors.New("unauthorized")
	ErrLockedOut        = errors.New("account locked")
	ErrPasswordMismatch = errors.New("passwords do not match")

	// Generic flow control.
	ErrInternal = errors.New("internal error")
)
