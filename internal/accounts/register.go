package accounts

import (
	"context"
	"fmt"

	"github.com/arzm/accountkeeper/internal/cryptox"
	"github.com/arzm/accountkeeper/internal/models"
	"github.com/arzm/accountkeeper/internal/validation"
)

// RegistrationInput carries the already-obtained values for one full
// registration attempt. The credential can arrive three ways: a plaintext
// Password with its PasswordConfirm, a GeneratePassword request for a random
// credential, or a PasswordDigest already prepared by PreparePassword or
// GenerateCredential (the interactive flow, where the credential gate has
// run before the email gate).
type RegistrationInput struct {
	FirstName        string
	LastName         string
	Username         string
	PhoneNumber      string
	Password         string
	PasswordConfirm  string
	GeneratePassword bool
	PasswordDigest   string
	Email            string
}

// CheckName is the first registration gate: both names must pass the name
// validator. Reasons for both fields are reported together.
func (s *Service) CheckName(ctx context.Context, first, last string) *ValidationResult {
	reasons := validation.NameReasons(first, last)
	s.warnReasons(ctx, "name validation failed", reasons)
	return failure(reasons)
}

// CheckUsername is the second gate: uniqueness against the freshest load,
// then the username format validator.
func (s *Service) CheckUsername(ctx context.Context, username string) (*ValidationResult, error) {
	existing, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !validation.IsUnique("username", username, existing) {
		reasons := []string{"this username is already taken"}
		s.warnReasons(ctx, "duplicate username", reasons)
		return failure(reasons), nil
	}

	reasons := validation.UsernameReasons(username)
	s.warnReasons(ctx, "username validation failed", reasons)
	return failure(reasons), nil
}

// CheckPhone is the third gate: format, then the prefix allow-list, then
// uniqueness. The first failing rule short-circuits.
func (s *Service) CheckPhone(ctx context.Context, phone string) (*ValidationResult, error) {
	return s.CheckPhoneFor(ctx, phone, "")
}

// CheckPhoneFor is CheckPhone with the named account excluded from the
// uniqueness scan, so a profile edit can re-enter its own current number.
func (s *Service) CheckPhoneFor(ctx context.Context, phone, ownerUsername string) (*ValidationResult, error) {
	if reasons := validation.PhoneReasons(phone, s.cfg.PhonePrefixes); len(reasons) > 0 {
		s.warnReasons(ctx, "phone validation failed", reasons)
		return failure(reasons), nil
	}

	existing, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !validation.IsUniqueExcept("phone number", phone, existing, ownerUsername) {
		reasons := []string{"this phone number is already taken"}
		s.warnReasons(ctx, "duplicate phone number", reasons)
		return failure(reasons), nil
	}
	return failure(nil), nil
}

// CheckEmail is the final gate: uniqueness, then format, then the domain
// suffix allow-list.
func (s *Service) CheckEmail(ctx context.Context, email string) (*ValidationResult, error) {
	return s.CheckEmailFor(ctx, email, "")
}

// CheckEmailFor is CheckEmail with the named account excluded from the
// uniqueness scan.
func (s *Service) CheckEmailFor(ctx context.Context, email, ownerUsername string) (*ValidationResult, error) {
	existing, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !validation.IsUniqueExcept("email", email, existing, ownerUsername) {
		reasons := []string{"this email is already taken"}
		s.warnReasons(ctx, "duplicate email", reasons)
		return failure(reasons), nil
	}

	reasons := validation.EmailReasons(email, s.cfg.EmailSuffixes)
	s.warnReasons(ctx, "email validation failed", reasons)
	return failure(reasons), nil
}

// PreparePassword runs the credential gate for a user-supplied password:
// strength policy plus a confirmation match. On success it returns the
// digest; the plaintext is never stored.
func (s *Service) PreparePassword(ctx context.Context, password, confirm string) (string, *ValidationResult, error) {
	if reasons := validation.PasswordReasons(password); len(reasons) > 0 {
		s.warnReasons(ctx, "password validation failed", reasons)
		return "", failure(reasons), nil
	}
	if password != confirm {
		reasons := []string{"password confirmation does not match"}
		s.warnReasons(ctx, "password confirmation failed", reasons)
		return "", failure(reasons), nil
	}

	digest, err := cryptox.HashPassword(password)
	if err != nil {
		return "", nil, err
	}
	return digest, failure(nil), nil
}

// GenerateCredential issues a random password of the configured length. The
// plaintext is returned exactly once so the caller can show it to the user;
// only the digest is retained. Generated passwords are accepted without a
// strength re-check.
func (s *Service) GenerateCredential(ctx context.Context) (plaintext, digest string, err error) {
	plaintext, err = cryptox.GeneratePassword(s.cfg.GeneratedPasswordLength)
	if err != nil {
		return "", "", err
	}
	digest, err = cryptox.HashPassword(plaintext)
	if err != nil {
		return "", "", err
	}
	s.log.Info(ctx, "generated password issued")
	return plaintext, digest, nil
}

// Register runs every gate in order over the given input and, if all pass,
// builds the new account and appends it to the store. The first failing gate
// stops the run and its reasons are returned; later gates are not evaluated.
func (s *Service) Register(ctx context.Context, in RegistrationInput) (*models.Account, *ValidationResult, error) {
	if vr := s.CheckName(ctx, in.FirstName, in.LastName); !vr.OK {
		return nil, vr, nil
	}
	vr, err := s.CheckUsername(ctx, in.Username)
	if err != nil {
		return nil, nil, err
	}
	if !vr.OK {
		return nil, vr, nil
	}
	if vr, err = s.CheckPhone(ctx, in.PhoneNumber); err != nil {
		return nil, nil, err
	} else if !vr.OK {
		return nil, vr, nil
	}

	var digest string
	switch {
	case in.PasswordDigest != "":
		digest = in.PasswordDigest
	case in.GeneratePassword:
		if _, digest, err = s.GenerateCredential(ctx); err != nil {
			return nil, nil, err
		}
	default:
		digest, vr, err = s.PreparePassword(ctx, in.Password, in.PasswordConfirm)
		if err != nil {
			return nil, nil, err
		}
		if !vr.OK {
			return nil, vr, nil
		}
	}

	if vr, err = s.CheckEmail(ctx, in.Email); err != nil {
		return nil, nil, err
	} else if !vr.OK {
		return nil, vr, nil
	}

	now := s.now()
	ts := now.Format(models.TimeLayout)
	account := &models.Account{
		FirstName:    titleCase(in.FirstName),
		LastName:     titleCase(in.LastName),
		Username:     in.Username,
		PhoneNumber:  in.PhoneNumber,
		Password:     digest,
		Email:        normalizeEmail(in.Email),
		Role:         models.RoleUser,
		IsLocked:     false,
		DateCreated:  ts,
		DateModified: ts,
	}

	if err := s.store.Append(ctx, account); err != nil {
		return nil, nil, fmt.Errorf("persisting new account: %w", err)
	}
	s.log.Info(ctx, "registration complete", "username", account.Username)
	return account, failure(nil), nil
}

func (s *Service) warnReasons(ctx context.Context, msg string, reasons []string) {
	for _, r := range reasons {
		s.log.Warn(ctx, msg, "reason", r)
	}
}
