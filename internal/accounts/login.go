package accounts

import (
	"context"
	"strings"

	"github.com/arzm/accountkeeper/internal/common"
	"github.com/arzm/accountkeeper/internal/cryptox"
	"github.com/arzm/accountkeeper/internal/models"
)

// LoginOutcome is one step result of the login state machine.
type LoginOutcome int

const (
	// OutcomeProceed means the username matched an unlocked account; the
	// caller should prompt for the password.
	OutcomeProceed LoginOutcome = iota
	// OutcomeUnknownUser consumed one attempt; the caller should prompt for
	// the username again.
	OutcomeUnknownUser
	// OutcomeLockedOut is terminal: the account is locked and the auto-unlock
	// window has not elapsed. No attempt is consumed.
	OutcomeLockedOut
	// OutcomeAuthenticated is terminal: the password verified.
	OutcomeAuthenticated
	// OutcomeRetry consumed one attempt; the caller should restart the
	// username/password cycle.
	OutcomeRetry
	// OutcomeOfferReset consumed one attempt and left exactly one remaining;
	// the caller should offer the password-reset path before the last cycle.
	OutcomeOfferReset
	// OutcomeExhausted is terminal: the attempt budget reached zero. If a
	// known account was involved it has been locked and persisted.
	OutcomeExhausted
)

// LoginSession drives one interactive login: a shared attempt budget across
// username and password failures, lockout with persisted lock time, and
// auto-unlock once the lockout window has elapsed.
type LoginSession struct {
	svc          *Service
	accounts     []*models.Account
	attempts     int
	matched      *models.Account
	autoUnlocked bool
	done         bool
}

// NewLogin loads the freshest account collection and opens a session with
// the configured retry budget. An empty store yields common.ErrNotFound.
func (s *Service) NewLogin(ctx context.Context) (*LoginSession, error) {
	accounts, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		s.log.Warn(ctx, "no accounts found")
		return nil, common.ErrNotFound
	}
	return &LoginSession{svc: s, accounts: accounts, attempts: s.cfg.RetryBudget}, nil
}

// AttemptsLeft reports the remaining shared attempt budget.
func (l *LoginSession) AttemptsLeft() int { return l.attempts }

// Account returns the matched account once the session is authenticated.
func (l *LoginSession) Account() *models.Account { return l.matched }

// WasAutoUnlocked reports whether the last SubmitUsername cleared an expired
// lock on its way to the password prompt.
func (l *LoginSession) WasAutoUnlocked() bool { return l.autoUnlocked }

// SubmitUsername advances the state machine with a username.
//
// An unknown username consumes one attempt. A known, locked, non-admin
// account either auto-unlocks (when the lockout window has elapsed; the
// unlock is persisted immediately) or terminates the session with
// OutcomeLockedOut, consuming nothing. Admin accounts skip the lock branch
// entirely.
func (l *LoginSession) SubmitUsername(ctx context.Context, username string) (LoginOutcome, error) {
	if l.done || l.attempts <= 0 {
		return OutcomeExhausted, nil
	}
	l.autoUnlocked = false

	username = strings.TrimSpace(username)
	account := l.find(username)
	if account == nil {
		l.attempts--
		l.svc.log.Warn(ctx, "unknown username", "username", username, "attempts_left", l.attempts)
		if l.attempts == 0 {
			// Nothing to lock: the budget ran out without matching an account.
			l.done = true
			return OutcomeExhausted, nil
		}
		return OutcomeUnknownUser, nil
	}

	l.matched = account

	if account.IsLocked && !account.IsAdmin() {
		unlocked, err := l.tryAutoUnlock(ctx, account)
		if err != nil {
			return OutcomeLockedOut, err
		}
		if !unlocked {
			l.done = true
			l.svc.log.Warn(ctx, "login rejected, account locked", "username", account.Username)
			return OutcomeLockedOut, nil
		}
		l.autoUnlocked = true
	}

	return OutcomeProceed, nil
}

// SubmitPassword advances the state machine with a password for the account
// matched by the preceding SubmitUsername.
//
// A wrong password consumes one attempt. Exhausting the budget locks the
// account, persists the lock, and terminates the session. When exactly one
// attempt remains after a failure, the caller is told to offer the
// password-reset path; declining it leaves the final attempt usable.
func (l *LoginSession) SubmitPassword(ctx context.Context, password string) (LoginOutcome, error) {
	if l.done || l.attempts <= 0 {
		return OutcomeExhausted, nil
	}
	if l.matched == nil {
		return OutcomeRetry, common.ErrInternal
	}

	if cryptox.VerifyPassword(strings.TrimSpace(password), l.matched.Password) {
		l.done = true
		l.svc.log.Info(ctx, "login successful", "username", l.matched.Username)
		return OutcomeAuthenticated, nil
	}

	l.attempts--
	l.svc.log.Warn(ctx, "login failed", "username", l.matched.Username, "attempts_left", l.attempts)

	if l.attempts == 0 {
		l.done = true
		now := l.svc.now()
		l.matched.Lock(now)
		l.matched.Touch(now)
		if err := l.svc.store.Save(ctx, l.accounts); err != nil {
			return OutcomeExhausted, err
		}
		l.svc.log.Warn(ctx, "account locked after exhausting attempts", "username", l.matched.Username)
		return OutcomeExhausted, nil
	}
	if l.attempts == 1 {
		return OutcomeOfferReset, nil
	}
	return OutcomeRetry, nil
}

// ResetPassword is the reset-offer path. A successful reset re-hashes the
// credential, persists the store, and counts as authentication.
func (l *LoginSession) ResetPassword(ctx context.Context, newPassword, confirm string) (LoginOutcome, error) {
	if l.matched == nil {
		return OutcomeRetry, common.ErrInternal
	}
	if err := l.svc.ResetPassword(ctx, l.accounts, l.matched, newPassword, confirm); err != nil {
		return OutcomeRetry, err
	}
	l.done = true
	return OutcomeAuthenticated, nil
}

func (l *LoginSession) find(username string) *models.Account {
	for _, a := range l.accounts {
		if strings.EqualFold(strings.TrimSpace(a.Username), username) {
			return a
		}
	}
	return nil
}

// tryAutoUnlock clears the lock when the configured lockout duration has
// elapsed since lock_time, persisting the change. A lock_time that cannot be
// parsed counts as still locked.
func (l *LoginSession) tryAutoUnlock(ctx context.Context, account *models.Account) (bool, error) {
	if account.LockTime == "" {
		// Defensive: is_locked without lock_time should not happen.
		account.Unlock()
		return true, l.svc.store.Save(ctx, l.accounts)
	}

	since, err := account.LockedSince()
	if err != nil {
		l.svc.log.Warn(ctx, "unparsable lock_time", "username", account.Username, "lock_time", account.LockTime)
		return false, nil
	}
	if l.svc.now().Sub(since) < l.svc.cfg.LockoutDuration {
		return false, nil
	}

	account.Unlock()
	account.Touch(l.svc.now())
	if err := l.svc.store.Save(ctx, l.accounts); err != nil {
		return false, err
	}
	l.svc.log.Info(ctx, "account auto-unlocked", "username", account.Username)
	return true, nil
}
