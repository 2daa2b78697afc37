package accounts

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arzm/accountkeeper/internal/config"
	"github.com/arzm/accountkeeper/internal/cryptox"
	"github.com/arzm/accountkeeper/internal/logging"
	"github.com/arzm/accountkeeper/internal/models"
	"github.com/arzm/accountkeeper/internal/storage"
)

// fixedNow is the reference instant used by the fake clocks in this package.
var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestService builds a Service over a temp-dir store with a fake clock.
func newTestService(t *testing.T) (*Service, *storage.Store) {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	store := storage.NewStore(filepath.Join(t.TempDir(), "user_accounts.json"), log)

	cfg := &config.Config{}
	cfg.LoadDefaults()

	svc := NewService(store, cfg, log)
	svc.now = func() time.Time { return fixedNow }
	return svc, store
}

// seedAccount persists one account with the given plaintext password and
// returns it as stored.
func seedAccount(t *testing.T, store *storage.Store, username, password string) *models.Account {
	t.Helper()
	digest, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	a := &models.Account{
		FirstName:    "John",
		LastName:     "Smith",
		Username:     username,
		PhoneNumber:  "8735551234",
		Password:     digest,
		Email:        username + "@mail.com",
		Role:         models.RoleUser,
		DateCreated:  fixedNow.Format(models.TimeLayout),
		DateModified: fixedNow.Format(models.TimeLayout),
	}
	require.NoError(t, store.Append(context.Background(), a))
	return a
}

func reload(t *testing.T, store *storage.Store, username string) *models.Account {
	t.Helper()
	accounts, err := store.Load(context.Background())
	require.NoError(t, err)
	for _, a := range accounts {
		if a.Username == username {
			return a
		}
	}
	t.Fatalf("account %q not found after reload", username)
	return nil
}
