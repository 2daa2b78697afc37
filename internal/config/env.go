package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names recognized by parseEnv. List-valued variables
// take comma-separated values.
const (
	EnvAccountsPath            = "ACCOUNTKEEPER_ACCOUNTS_FILE"
	EnvTasksPath               = "ACCOUNTKEEPER_TASKS_FILE"
	EnvRetryBudget             = "ACCOUNTKEEPER_RETRY_BUDGET"
	EnvLockoutDuration         = "ACCOUNTKEEPER_LOCKOUT_DURATION"
	EnvPhonePrefixes           = "ACCOUNTKEEPER_PHONE_PREFIXES"
	EnvEmailSuffixes           = "ACCOUNTKEEPER_EMAIL_SUFFIXES"
	EnvGeneratedPasswordLength = "ACCOUNTKEEPER_GENERATED_PASSWORD_LENGTH"
)

// parseEnv overlays configuration values from the process environment.
// A .env file in the working directory is loaded first if present; real
// environment variables win over .env entries. Malformed numeric or
// duration values are ignored, keeping the previous value.
func parseEnv(cfg *Config) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	if v := os.Getenv(EnvAccountsPath); v != "" {
		cfg.AccountsPath = v
	}
	if v := os.Getenv(EnvTasksPath); v != "" {
		cfg.TasksPath = v
	}
	if v := os.Getenv(EnvRetryBudget); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RetryBudget = n
		}
	}
	if v := os.Getenv(EnvLockoutDuration); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.LockoutDuration = d
		}
	}
	if v := os.Getenv(EnvPhonePrefixes); v != "" {
		cfg.PhonePrefixes = splitList(v)
	}
	if v := os.Getenv(EnvEmailSuffixes); v != "" {
		cfg.EmailSuffixes = splitList(v)
	}
	if v := os.Getenv(EnvGeneratedPasswordLength); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.GeneratedPasswordLength = n
		}
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
