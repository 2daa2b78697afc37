// Package config handles runtime configuration for accountkeeper,
// including defaults and an optional .env overlay. The program has no
// command-line flags; everything is driven by defaults and environment.
package config

import "time"

// Config holds runtime settings for the account manager.
//
// Fields:
//   - AccountsPath: path of the JSON file holding the account array.
//   - TasksPath: path of the JSON file holding per-user to-do lists.
//   - RetryBudget: total username/password attempts per login session.
//   - LockoutDuration: how long a locked account stays locked before
//     auto-unlock is allowed.
//   - PhonePrefixes: allowed leading digits of a phone number.
//   - EmailSuffixes: allowed trailing domain suffixes of an email address.
//   - GeneratedPasswordLength: length of auto-generated passwords.
type Config struct {
	AccountsPath            string
	TasksPath               string
	RetryBudget             int
	LockoutDuration         time.Duration
	PhonePrefixes           []string
	EmailSuffixes           []string
	GeneratedPasswordLength int
}

// LoadDefaults populates Config with the stock policy of the account manager.
func (c *Config) LoadDefaults() {
	c.AccountsPath = "user_accounts.json"
	c.TasksPath = "to_do_list.json"
	c.RetryBudget = 3
	c.LockoutDuration = 30 * time.Minute
	c.PhonePrefixes = []string{"873", "514", "438", "263"}
	c.EmailSuffixes = []string{".com", ".org", ".net", ".ca"}
	c.GeneratedPasswordLength = 12
}

// LoadConfig builds a Config by applying defaults and then overlaying values
// from the environment (optionally sourced from a .env file).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	return cfg
}
