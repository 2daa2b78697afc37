package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arzm/accountkeeper/internal/accounts"
	"github.com/arzm/accountkeeper/internal/common"
	"github.com/arzm/accountkeeper/internal/models"
)

// Root runs the pre-login loop: register, login, or exit.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to accountkeeper (type 'help' for commands)")

	for {
		line, err := GetSimpleText(a.reader, "accountkeeper>", a.out)
		if err != nil {
			return
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "help":
			fmt.Fprintln(a.out, "Available commands: register, login, exit")
		case "register":
			if account := a.register(ctx); account != nil {
				a.postLogin(ctx, account)
			}
		case "login":
			if account := a.login(ctx); account != nil {
				a.postLogin(ctx, account)
			}
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		case "":
			continue
		default:
			fmt.Fprintln(a.out, "Unknown command:", line)
		}
	}
}

func (a *App) postLogin(ctx context.Context, account *models.Account) {
	if account.IsAdmin() {
		a.adminMenu(ctx, account)
	} else {
		a.userMenu(ctx, account)
	}
}

// register walks the five registration gates, looping each one until it is
// satisfied, then persists the new profile.
func (a *App) register(ctx context.Context) *models.Account {
	in := accounts.RegistrationInput{}

	// Name gate.
	for {
		first, err := GetSimpleText(a.reader, "Please enter your first name", a.out)
		if err != nil {
			return nil
		}
		last, err := GetSimpleText(a.reader, "Please enter your last name", a.out)
		if err != nil {
			return nil
		}
		if vr := a.svc.CheckName(ctx, first, last); a.gateOK(vr, "User info is valid!") {
			in.FirstName, in.LastName = first, last
			break
		}
	}

	// Username gate.
	for {
		username, err := GetSimpleText(a.reader, "Please enter your username", a.out)
		if err != nil {
			return nil
		}
		vr, err := a.svc.CheckUsername(ctx, username)
		if err != nil {
			a.reportStoreError(ctx, err)
			return nil
		}
		if a.gateOK(vr, "Username is valid!") {
			in.Username = username
			break
		}
	}

	// Phone gate.
	for {
		phone, err := GetSimpleText(a.reader, "Please enter your phone number", a.out)
		if err != nil {
			return nil
		}
		vr, err := a.svc.CheckPhone(ctx, phone)
		if err != nil {
			a.reportStoreError(ctx, err)
			return nil
		}
		if a.gateOK(vr, "Phone number is valid!") {
			in.PhoneNumber = phone
			break
		}
	}

	// Credential gate.
	for {
		password, err := GetPassword("Enter your password (or press Enter to generate one)", a.out)
		if err != nil {
			return nil
		}
		if password == "" {
			plaintext, digest, genErr := a.svc.GenerateCredential(ctx)
			if genErr != nil {
				a.reportStoreError(ctx, genErr)
				return nil
			}
			fmt.Fprintf(a.out, "Generated password: %s\n", plaintext)
			in.PasswordDigest = digest
			break
		}

		confirm, err := GetPassword("Confirm your password", a.out)
		if err != nil {
			return nil
		}
		digest, vr, prepErr := a.svc.PreparePassword(ctx, password, confirm)
		if prepErr != nil {
			a.reportStoreError(ctx, prepErr)
			return nil
		}
		if a.gateOK(vr, "Password confirmation successful!") {
			in.PasswordDigest = digest
			break
		}
	}

	// Email gate.
	for {
		email, err := GetSimpleText(a.reader, "Enter your email", a.out)
		if err != nil {
			return nil
		}
		vr, err := a.svc.CheckEmail(ctx, email)
		if err != nil {
			a.reportStoreError(ctx, err)
			return nil
		}
		if a.gateOK(vr, "Email is valid!") {
			in.Email = email
			break
		}
	}

	account, vr, err := a.svc.Register(ctx, in)
	if err != nil {
		a.reportStoreError(ctx, err)
		return nil
	}
	if !vr.OK {
		// The store changed between the gate check and the final run.
		a.gateOK(vr, "")
		return nil
	}

	fmt.Fprintln(a.out, "Account created successfully!")
	a.printProfile(account)
	return account
}

// login drives the login state machine until a terminal outcome.
func (a *App) login(ctx context.Context) *models.Account {
	fmt.Fprintln(a.out, "Logging in...")

	sess, err := a.svc.NewLogin(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintln(a.out, "No accounts found. Please create an account first.")
			return nil
		}
		a.reportStoreError(ctx, err)
		return nil
	}

	for sess.AttemptsLeft() > 0 {
		username, err := GetSimpleText(a.reader, "Enter your username", a.out)
		if err != nil {
			return nil
		}

		outcome, err := sess.SubmitUsername(ctx, username)
		if err != nil {
			a.reportStoreError(ctx, err)
			return nil
		}
		switch outcome {
		case accounts.OutcomeUnknownUser:
			fmt.Fprintln(a.out, "Username not found. Please try again.")
			continue
		case accounts.OutcomeLockedOut:
			fmt.Fprintln(a.out, "Your account is locked. Please contact the admin.")
			return nil
		case accounts.OutcomeExhausted:
			fmt.Fprintln(a.out, "Too many attempts.")
			return nil
		}
		if sess.WasAutoUnlocked() {
			fmt.Fprintln(a.out, "Your account has been auto-unlocked. Please continue.")
		}

		password, err := GetPassword("Enter your password", a.out)
		if err != nil {
			return nil
		}
		outcome, err = sess.SubmitPassword(ctx, password)
		if err != nil {
			a.reportStoreError(ctx, err)
			return nil
		}
		switch outcome {
		case accounts.OutcomeAuthenticated:
			account := sess.Account()
			fmt.Fprintf(a.out, "Login successful! Welcome back, %s\n", account.FirstName)
			return account
		case accounts.OutcomeRetry:
			fmt.Fprintf(a.out, "Login failed. %d attempts remaining.\n", sess.AttemptsLeft())
		case accounts.OutcomeOfferReset:
			fmt.Fprintf(a.out, "Login failed. %d attempt remaining.\n", sess.AttemptsLeft())
			if account := a.offerReset(ctx, sess); account != nil {
				return account
			}
			if sess.AttemptsLeft() == 0 {
				return nil
			}
		case accounts.OutcomeExhausted:
			fmt.Fprintln(a.out, "Too many attempts. Your account is now locked.")
			return nil
		}
	}
	return nil
}

// offerReset runs the forgot-password path. Declining keeps the session's
// remaining attempt usable; a failed reset ends the login.
func (a *App) offerReset(ctx context.Context, sess *accounts.LoginSession) *models.Account {
	if !Confirm(a.reader, "Forgot your password?", a.out) {
		return nil
	}

	fmt.Fprintln(a.out, "Password Reset:")
	newPassword, err := GetPassword("Enter your new password", a.out)
	if err != nil {
		return nil
	}
	confirm, err := GetPassword("Confirm your new password", a.out)
	if err != nil {
		return nil
	}

	outcome, err := sess.ResetPassword(ctx, newPassword, confirm)
	if err != nil {
		if errors.Is(err, common.ErrPasswordMismatch) {
			fmt.Fprintln(a.out, "Passwords do not match or are empty. Reset aborted.")
		} else {
			a.reportStoreError(ctx, err)
		}
		return nil
	}
	if outcome != accounts.OutcomeAuthenticated {
		return nil
	}
	fmt.Fprintln(a.out, "Password reset successfully!")
	return sess.Account()
}

// gateOK prints either the gate's success line or every reason it reported.
func (a *App) gateOK(vr *accounts.ValidationResult, success string) bool {
	if vr.OK {
		if success != "" {
			fmt.Fprintln(a.out, success)
		}
		return true
	}
	for _, r := range vr.Reasons {
		fmt.Fprintln(a.out, r)
	}
	return false
}

// reportStoreError surfaces a storage failure and, for a corrupted store,
// offers the confirmed destructive reset.
func (a *App) reportStoreError(ctx context.Context, err error) {
	if !errors.Is(err, common.ErrStoreCorrupted) {
		fmt.Fprintf(a.out, "Something went wrong: %v\n", err)
		return
	}

	fmt.Fprintln(a.out, "The accounts file appears to be corrupted. Resetting it will result in data loss.")
	if !Confirm(a.reader, "Are you sure you want to reset the accounts file?", a.out) {
		fmt.Fprintln(a.out, "The reset operation was canceled. No changes were made.")
		return
	}
	if resetErr := a.svc.ResetStore(ctx); resetErr != nil {
		fmt.Fprintf(a.out, "Reset failed: %v\n", resetErr)
		return
	}
	fmt.Fprintln(a.out, "Accounts file has been reset successfully.")
}

func (a *App) printProfile(account *models.Account) {
	fmt.Fprintln(a.out, "*********************** User Profile ***********************")
	fmt.Fprintf(a.out, "First Name: %s\n", account.FirstName)
	fmt.Fprintf(a.out, "Last Name: %s\n", account.LastName)
	fmt.Fprintf(a.out, "Username: %s\n", account.Username)
	fmt.Fprintf(a.out, "Phone Number: %s\n", account.PhoneNumber)
	fmt.Fprintf(a.out, "Email: %s\n", account.Email)
	fmt.Fprintf(a.out, "Role: %s\n", account.Role)
	fmt.Fprintf(a.out, "Locked: %t\n", account.IsLocked)
	fmt.Fprintf(a.out, "Date Created: %s\n", account.DateCreated)
	fmt.Fprintf(a.out, "Date Modified: %s\n", account.DateModified)
	fmt.Fprintln(a.out, "************************************************************")
}
