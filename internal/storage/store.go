// Package storage persists the account collection as a single JSON array on
// disk. Every mutation follows a read-modify-write-whole-file discipline;
// there is no append log and no partial update.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/arzm/accountkeeper/internal/common"
	"github.com/arzm/accountkeeper/internal/cryptox"
	"github.com/arzm/accountkeeper/internal/logging"
	"github.com/arzm/accountkeeper/internal/models"
)

// Default admin account seeded into an adminless store.
const (
	seedAdminFirstName = "Alpha"
	seedAdminLastName  = "Admin"
	seedAdminUsername  = "AlphaAdmin"
	seedAdminPhone     = "8735522273"
	seedAdminEmail     = "alphaadmin@echo.ca"
	seedAdminPassword  = "AlphaAdmin051192"
)

// Store owns the accounts file. All access to the file goes through it.
type Store struct {
	path string
	log  logging.Logger
	now  func() time.Time
}

// NewStore constructs a Store for the given file path.
func NewStore(path string, log logging.Logger) *Store {
	return &Store{path: path, log: log, now: time.Now}
}

// Load reads the persisted account array.
//
// A missing file is the normal first-run condition: Load logs a warning and
// returns an empty collection with a nil error. An unparsable file returns an
// empty collection and an error wrapping common.ErrStoreCorrupted, so the
// caller can offer a confirmed reset; it never crashes the caller.
//
// On a successful read, any account whose password is not in hashed form is
// re-hashed in memory (migration safety net for legacy plaintext entries).
// The fix reaches disk on the next full-store save; Load itself never writes.
func (s *Store) Load(ctx context.Context) ([]*models.Account, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Warn(ctx, "accounts file not found, starting empty", "path", s.path)
			return []*models.Account{}, nil
		}
		return []*models.Account{}, fmt.Errorf("reading %s: %w: %w", s.path, common.ErrStoreCorrupted, err)
	}

	var accounts []*models.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		s.log.Warn(ctx, "accounts file unparsable", "path", s.path, "error", err.Error())
		return []*models.Account{}, fmt.Errorf("parsing %s: %w: %w", s.path, common.ErrStoreCorrupted, err)
	}

	for _, a := range accounts {
		if err := s.healPassword(ctx, a); err != nil {
			return []*models.Account{}, err
		}
	}

	s.log.Info(ctx, "accounts loaded", "count", len(accounts))
	return accounts, nil
}

// healPassword re-hashes a plaintext-looking password field in memory. A
// record whose password cannot be hashed is surfaced as corrupted, never
// silently accepted.
func (s *Store) healPassword(ctx context.Context, a *models.Account) error {
	if cryptox.IsHashed(a.Password) {
		return nil
	}
	digest, err := cryptox.HashPassword(a.Password)
	if err != nil {
		return fmt.Errorf("account %q has an unhashable password: %w: %w",
			a.Username, common.ErrStoreCorrupted, err)
	}
	s.log.Warn(ctx, "re-hashed legacy plaintext password", "username", a.Username)
	a.Password = digest
	return nil
}

// Save serializes the full collection, overwriting the file. The write goes
// to a temp file in the same directory followed by a rename, so a crash
// mid-write leaves either the old file or the new one, never a torn mix.
// A failed save is always reported to the caller.
func (s *Store) Save(ctx context.Context, accounts []*models.Account) error {
	data, err := json.MarshalIndent(accounts, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding accounts: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing accounts: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}

	s.log.Info(ctx, "accounts file updated", "count", len(accounts))
	return nil
}

// Append adds one account to the freshest persisted collection and rewrites
// the store. The password is hashed first if it is not already a digest.
func (s *Store) Append(ctx context.Context, account *models.Account) error {
	if err := s.healPassword(ctx, account); err != nil {
		return err
	}

	accounts, err := s.Load(ctx)
	if err != nil {
		return err
	}
	accounts = append(accounts, account)

	if err := s.Save(ctx, accounts); err != nil {
		return err
	}
	s.log.Info(ctx, "account created", "username", account.Username)
	return nil
}

// Reset destructively replaces the store with an empty collection. Asking the
// user for confirmation is the caller's job.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.Save(ctx, []*models.Account{}); err != nil {
		return err
	}
	s.log.Info(ctx, "accounts file reset")
	return nil
}

// EnsureAdminSeed inserts the default admin account if no account has the
// admin role. It is idempotent: with an admin present it is a no-op.
func (s *Store) EnsureAdminSeed(ctx context.Context) error {
	accounts, err := s.Load(ctx)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		if a.IsAdmin() {
			return nil
		}
	}

	digest, err := cryptox.HashPassword(seedAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing seed admin password: %w", err)
	}

	ts := s.now().Format(models.TimeLayout)
	admin := &models.Account{
		FirstName:    seedAdminFirstName,
		LastName:     seedAdminLastName,
		Username:     seedAdminUsername,
		PhoneNumber:  seedAdminPhone,
		Password:     digest,
		Email:        seedAdminEmail,
		Role:         models.RoleAdmin,
		DateCreated:  ts,
		DateModified: ts,
	}

	accounts = append(accounts, admin)
	if err := s.Save(ctx, accounts); err != nil {
		return err
	}
	s.log.Info(ctx, "seeded default admin account", "username", admin.Username)
	return nil
}
