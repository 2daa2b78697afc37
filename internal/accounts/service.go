// Package accounts contains the account-lifecycle core: registration gates,
// the login state machine with retry/lockout policy, and profile mutation.
// All terminal interaction lives in the presentation layer; every operation
// here takes already-obtained input and returns a result.
package accounts

import (
	"context"
	"time"

	"github.com/arzm/accountkeeper/internal/config"
	"github.com/arzm/accountkeeper/internal/logging"
	"github.com/arzm/accountkeeper/internal/models"
	"github.com/arzm/accountkeeper/internal/storage"
)

// Service wires the account store to the lockout/validation policy in the
// configuration. The clock is injectable for tests.
type Service struct {
	store *storage.Store
	cfg   *config.Config
	log   logging.Logger
	now   func() time.Time
}

func NewService(store *storage.Store, cfg *config.Config, log logging.Logger) *Service {
	return &Service{store: store, cfg: cfg, log: log, now: time.Now}
}

// ValidationResult is the outcome of one registration gate. Reasons holds
// every violated rule the gate reports for the attempt.
type ValidationResult struct {
	OK      bool
	Reasons []string
}

func failure(reasons []string) *ValidationResult {
	return &ValidationResult{OK: len(reasons) == 0, Reasons: reasons}
}

// Load exposes the store's freshest account collection to collaborators that
// render or mutate profiles.
func (s *Service) Load(ctx context.Context) ([]*models.Account, error) {
	return s.store.Load(ctx)
}

// ResetStore destructively clears the account store. The caller is
// responsible for obtaining explicit confirmation first.
func (s *Service) ResetStore(ctx context.Context) error {
	return s.store.Reset(ctx)
}
