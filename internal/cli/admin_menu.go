package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/arzm/accountkeeper/internal/models"
)

// adminMenu is the post-login panel for administrators.
func (a *App) adminMenu(ctx context.Context, account *models.Account) {
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Admin Menu:")
		fmt.Fprintln(a.out, "1. View all accounts")
		fmt.Fprintln(a.out, "2. Search for an account")
		fmt.Fprintln(a.out, "3. Edit an account")
		fmt.Fprintln(a.out, "4. Remove an account")
		fmt.Fprintln(a.out, "5. Locked accounts")
		fmt.Fprintln(a.out, "6. My profile")
		fmt.Fprintln(a.out, "7. Log out")

		choice, ok := MenuChoice(a.reader, "Select an option", 1, 7, a.out)
		if !ok {
			return
		}
		switch choice {
		case 1:
			a.listAccounts(ctx)
		case 2:
			a.searchAccount(ctx)
		case 3:
			a.adminEdit(ctx, account)
		case 4:
			a.adminRemove(ctx, account)
		case 5:
			a.lockedAccounts(ctx)
		case 6:
			a.printProfile(account)
		case 7:
			fmt.Fprintf(a.out, "Goodbye, %s!\n", account.FirstName)
			return
		}
	}
}

func (a *App) listAccounts(ctx context.Context) {
	all, err := a.svc.Load(ctx)
	if err != nil {
		a.reportStoreError(ctx, err)
		return
	}
	if len(all) == 0 {
		fmt.Fprintln(a.out, "No accounts found.")
		return
	}
	fmt.Fprintf(a.out, "%d account(s):\n", len(all))
	for _, acc := range all {
		a.printSummary(acc)
	}
}

func (a *App) printSummary(acc *models.Account) {
	status := "active"
	if acc.IsLocked {
		status = "locked"
	}
	fmt.Fprintf(a.out, "- %s %s (%s) %s %s [%s, %s]\n",
		acc.FirstName, acc.LastName, acc.Username, acc.PhoneNumber, acc.Email, acc.Role, status)
}

func (a *App) searchAccount(ctx context.Context) {
	query, err := GetSimpleText(a.reader, "Enter a username, phone number, or email", a.out)
	if err != nil {
		return
	}
	all, err := a.svc.Load(ctx)
	if err != nil {
		a.reportStoreError(ctx, err)
		return
	}
	for _, acc := range all {
		if strings.EqualFold(acc.Username, query) ||
			acc.PhoneNumber == strings.TrimSpace(query) ||
			strings.EqualFold(acc.Email, query) {
			a.printProfile(acc)
			return
		}
	}
	fmt.Fprintln(a.out, "No matching account found.")
}

// adminEdit lets the administrator change any account's fields through the
// same validated submenu regular users get for their own profile.
func (a *App) adminEdit(ctx context.Context, admin *models.Account) {
	username, err := GetSimpleText(a.reader, "Enter the username of the account to edit", a.out)
	if err != nil {
		return
	}
	all, err := a.svc.Load(ctx)
	if err != nil {
		a.reportStoreError(ctx, err)
		return
	}
	var target *models.Account
	for _, acc := range all {
		if strings.EqualFold(acc.Username, username) {
			target = acc
			break
		}
	}
	if target == nil {
		fmt.Fprintln(a.out, "No account with that username.")
		return
	}
	a.editProfile(ctx, target)
	if strings.EqualFold(target.Username, admin.Username) {
		*admin = *target
	}
}

func (a *App) adminRemove(ctx context.Context, admin *models.Account) {
	username, err := GetSimpleText(a.reader, "Enter the username of the account to remove", a.out)
	if err != nil {
		return
	}
	if strings.EqualFold(username, admin.Username) {
		fmt.Fprintln(a.out, "You cannot remove the account you are logged in with.")
		return
	}
	if !Confirm(a.reader, fmt.Sprintf("Remove account %q?", username), a.out) {
		fmt.Fprintln(a.out, "Removal canceled.")
		return
	}

	all, err := a.svc.Load(ctx)
	if err != nil {
		a.reportStoreError(ctx, err)
		return
	}
	if _, err := a.svc.RemoveByUsername(ctx, all, username); err != nil {
		fmt.Fprintf(a.out, "Could not remove account: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Account removed.")
}

// lockedAccounts lists every locked account and offers to unlock one.
func (a *App) lockedAccounts(ctx context.Context) {
	all, err := a.svc.Load(ctx)
	if err != nil {
		a.reportStoreError(ctx, err)
		return
	}
	locked := a.svc.ListLocked(all)
	if len(locked) == 0 {
		fmt.Fprintln(a.out, "No locked accounts.")
		return
	}
	fmt.Fprintf(a.out, "%d locked account(s):\n", len(locked))
	for _, acc := range locked {
		fmt.Fprintf(a.out, "- %s (locked since %s)\n", acc.Username, acc.LockTime)
	}

	if !Confirm(a.reader, "Unlock an account?", a.out) {
		return
	}
	username, err := GetSimpleText(a.reader, "Enter the username to unlock", a.out)
	if err != nil {
		return
	}
	if err := a.svc.Unlock(ctx, all, username); err != nil {
		fmt.Fprintf(a.out, "Could not unlock account: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Account unlocked.")
}
