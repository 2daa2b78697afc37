package accounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/arzm/accountkeeper/internal/common"
	"github.com/arzm/accountkeeper/internal/cryptox"
	"github.com/arzm/accountkeeper/internal/models"
)

// Field names an editable profile field.
type Field string

const (
	FieldFirstName Field = "first name"
	FieldLastName  Field = "last name"
	FieldPhone     Field = "phone number"
	FieldEmail     Field = "email"
	FieldPassword  Field = "password"
)

// Edit applies a single field change to the account and rewrites the whole
// store. Values are normalized per field: names are title-cased, emails are
// lower-cased, phone numbers are trimmed. A password value is hashed before
// it is stored. The edit is atomic with respect to the file: either the full
// store is rewritten with the new value or nothing is written.
func (s *Service) Edit(ctx context.Context, accounts []*models.Account, account *models.Account, field Field, value string) error {
	switch field {
	case FieldFirstName:
		account.FirstName = titleCase(value)
	case FieldLastName:
		account.LastName = titleCase(value)
	case FieldPhone:
		account.PhoneNumber = strings.TrimSpace(value)
	case FieldEmail:
		account.Email = normalizeEmail(value)
	case FieldPassword:
		digest, err := cryptox.HashPassword(value)
		if err != nil {
			return err
		}
		account.Password = digest
	default:
		return fmt.Errorf("unknown field %q", field)
	}

	account.Touch(s.now())
	if err := s.store.Save(ctx, accounts); err != nil {
		return fmt.Errorf("saving profile edit: %w", err)
	}
	s.log.Info(ctx, "profile updated", "username", account.Username, "field", string(field))
	return nil
}

// ResetPassword replaces the account's credential after checking the new
// password is non-empty and matches its confirmation, then rewrites the
// store.
func (s *Service) ResetPassword(ctx context.Context, accounts []*models.Account, account *models.Account, newPassword, confirm string) error {
	newPassword = strings.TrimSpace(newPassword)
	if newPassword == "" {
		return fmt.Errorf("new password cannot be empty: %w", common.ErrPasswordMismatch)
	}
	if newPassword != strings.TrimSpace(confirm) {
		return common.ErrPasswordMismatch
	}

	digest, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}
	account.Password = digest
	account.Touch(s.now())

	if err := s.store.Save(ctx, accounts); err != nil {
		return fmt.Errorf("saving password reset: %w", err)
	}
	s.log.Info(ctx, "password reset", "username", account.Username)
	return nil
}

// Remove deletes the given account and rewrites the store. The filtered
// collection is returned for the caller to keep using.
func (s *Service) Remove(ctx context.Context, accounts []*models.Account, account *models.Account) ([]*models.Account, error) {
	return s.RemoveByUsername(ctx, accounts, account.Username)
}

// RemoveByUsername deletes the account matching the username
// (case-insensitive) and rewrites the store.
func (s *Service) RemoveByUsername(ctx context.Context, accounts []*models.Account, username string) ([]*models.Account, error) {
	username = strings.TrimSpace(username)
	idx := -1
	for i, a := range accounts {
		if strings.EqualFold(strings.TrimSpace(a.Username), username) {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.log.Warn(ctx, "account to remove not found", "username", username)
		return accounts, common.ErrNotFound
	}

	removed := accounts[idx]
	accounts = append(accounts[:idx], accounts[idx+1:]...)
	if err := s.store.Save(ctx, accounts); err != nil {
		return accounts, fmt.Errorf("saving account removal: %w", err)
	}
	s.log.Info(ctx, "account deleted", "username", removed.Username)
	return accounts, nil
}

// ListLocked returns every currently locked account.
func (s *Service) ListLocked(accounts []*models.Account) []*models.Account {
	var locked []*models.Account
	for _, a := range accounts {
		if a.IsLocked {
			locked = append(locked, a)
		}
	}
	return locked
}

// Unlock clears the lock on the named account and rewrites the store.
func (s *Service) Unlock(ctx context.Context, accounts []*models.Account, username string) error {
	for _, a := range accounts {
		if strings.EqualFold(strings.TrimSpace(a.Username), strings.TrimSpace(username)) && a.IsLocked {
			a.Unlock()
			a.Touch(s.now())
			if err := s.store.Save(ctx, accounts); err != nil {
				return fmt.Errorf("saving unlock: %w", err)
			}
			s.log.Info(ctx, "account unlocked", "username", a.Username)
			return nil
		}
	}
	return common.ErrNotFound
}

// titleCase capitalizes the first letter of each space-separated word and
// lower-cases the rest, matching the original profile normalization.
func titleCase(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
