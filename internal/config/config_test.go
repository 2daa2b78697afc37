package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "user_accounts.json", c.AccountsPath)
	assert.Equal(t, "to_do_list.json", c.TasksPath)
	assert.Equal(t, 3, c.RetryBudget)
	assert.Equal(t, 30*time.Minute, c.LockoutDuration)
	assert.Equal(t, []string{"873", "514", "438", "263"}, c.PhonePrefixes)
	assert.Equal(t, []string{".com", ".org", ".net", ".ca"}, c.EmailSuffixes)
	assert.Equal(t, 12, c.GeneratedPasswordLength)
}

func TestParseEnv_Overlay(t *testing.T) {
	t.Setenv(EnvAccountsPath, "/tmp/accounts.json")
	t.Setenv(EnvRetryBudget, "5")
	t.Setenv(EnvLockoutDuration, "15m")
	t.Setenv(EnvPhonePrefixes, "873, 514")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "/tmp/accounts.json", c.AccountsPath)
	assert.Equal(t, 5, c.RetryBudget)
	assert.Equal(t, 15*time.Minute, c.LockoutDuration)
	assert.Equal(t, []string{"873", "514"}, c.PhonePrefixes)
	// untouched fields keep defaults
	assert.Equal(t, "to_do_list.json", c.TasksPath)
}

func TestParseEnv_IgnoresMalformedValues(t *testing.T) {
	t.Setenv(EnvRetryBudget, "not-a-number")
	t.Setenv(EnvLockoutDuration, "-10m")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, 3, c.RetryBudget)
	assert.Equal(t, 30*time.Minute, c.LockoutDuration)
}

func TestLoadConfig_UsesDefaults(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, 3, cfg.RetryBudget)
	assert.Equal(t, 30*time.Minute, cfg.LockoutDuration)
}
