package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/arzm/accountkeeper/internal/accounts"
	"github.com/arzm/accountkeeper/internal/models"
)

// userMenu is the post-login panel for regular users.
func (a *App) userMenu(ctx context.Context, account *models.Account) {
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "User Menu:")
		fmt.Fprintln(a.out, "1. View profile")
		fmt.Fprintln(a.out, "2. Edit profile")
		fmt.Fprintln(a.out, "3. To-do list")
		fmt.Fprintln(a.out, "4. Games")
		fmt.Fprintln(a.out, "5. Delete my account")
		fmt.Fprintln(a.out, "6. Log out")

		choice, ok := MenuChoice(a.reader, "Select an option", 1, 6, a.out)
		if !ok {
			return
		}
		switch choice {
		case 1:
			a.printProfile(account)
		case 2:
			a.editProfile(ctx, account)
		case 3:
			a.todoMenu(ctx, account)
		case 4:
			a.gamesMenu()
		case 5:
			if a.deleteOwnAccount(ctx, account) {
				return
			}
		case 6:
			fmt.Fprintf(a.out, "Goodbye, %s!\n", account.FirstName)
			return
		}
	}
}

// editProfile loops the field submenu until the user is done. Each change is
// validated through the same gates registration uses before it is applied.
func (a *App) editProfile(ctx context.Context, account *models.Account) {
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Edit Profile:")
		fmt.Fprintln(a.out, "1. First name")
		fmt.Fprintln(a.out, "2. Last name")
		fmt.Fprintln(a.out, "3. Phone number")
		fmt.Fprintln(a.out, "4. Email")
		fmt.Fprintln(a.out, "5. Password")
		fmt.Fprintln(a.out, "6. Back")

		choice, ok := MenuChoice(a.reader, "Select a field to edit", 1, 6, a.out)
		if !ok || choice == 6 {
			return
		}

		all, err := a.svc.Load(ctx)
		if err != nil {
			a.reportStoreError(ctx, err)
			return
		}
		// Edit mutates the in-memory record, so point at the loaded copy.
		current := a.findLoaded(all, account)
		if current == nil {
			fmt.Fprintln(a.out, "Your account could not be found anymore.")
			return
		}

		switch choice {
		case 1:
			value, err := GetSimpleText(a.reader, "Enter your new first name", a.out)
			if err != nil {
				return
			}
			if vr := a.svc.CheckName(ctx, value, current.LastName); !a.gateOK(vr, "") {
				continue
			}
			err = a.svc.Edit(ctx, all, current, accounts.FieldFirstName, value)
			a.finishEdit(ctx, account, current, err)
		case 2:
			value, err := GetSimpleText(a.reader, "Enter your new last name", a.out)
			if err != nil {
				return
			}
			if vr := a.svc.CheckName(ctx, current.FirstName, value); !a.gateOK(vr, "") {
				continue
			}
			err = a.svc.Edit(ctx, all, current, accounts.FieldLastName, value)
			a.finishEdit(ctx, account, current, err)
		case 3:
			value, err := GetSimpleText(a.reader, "Enter your new phone number", a.out)
			if err != nil {
				return
			}
			vr, checkErr := a.svc.CheckPhoneFor(ctx, value, current.Username)
			if checkErr != nil {
				a.reportStoreError(ctx, checkErr)
				return
			}
			if !a.gateOK(vr, "") {
				continue
			}
			err = a.svc.Edit(ctx, all, current, accounts.FieldPhone, value)
			a.finishEdit(ctx, account, current, err)
		case 4:
			value, err := GetSimpleText(a.reader, "Enter your new email", a.out)
			if err != nil {
				return
			}
			vr, checkErr := a.svc.CheckEmailFor(ctx, value, current.Username)
			if checkErr != nil {
				a.reportStoreError(ctx, checkErr)
				return
			}
			if !a.gateOK(vr, "") {
				continue
			}
			err = a.svc.Edit(ctx, all, current, accounts.FieldEmail, value)
			a.finishEdit(ctx, account, current, err)
		case 5:
			password, err := GetPassword("Enter your new password", a.out)
			if err != nil {
				return
			}
			confirm, err := GetPassword("Confirm your new password", a.out)
			if err != nil {
				return
			}
			_, vr, prepErr := a.svc.PreparePassword(ctx, password, confirm)
			if prepErr != nil {
				a.reportStoreError(ctx, prepErr)
				return
			}
			if !a.gateOK(vr, "") {
				continue
			}
			err = a.svc.Edit(ctx, all, current, accounts.FieldPassword, password)
			a.finishEdit(ctx, account, current, err)
		}
	}
}

// finishEdit copies the edited record back into the session's account and
// reports the result.
func (a *App) finishEdit(ctx context.Context, session, edited *models.Account, err error) {
	if err != nil {
		a.reportStoreError(ctx, err)
		return
	}
	*session = *edited
	fmt.Fprintln(a.out, "Profile updated successfully!")
}

// findLoaded locates the session's account inside a freshly loaded slice.
func (a *App) findLoaded(all []*models.Account, account *models.Account) *models.Account {
	for _, candidate := range all {
		if strings.EqualFold(candidate.Username, account.Username) {
			return candidate
		}
	}
	return nil
}

// deleteOwnAccount removes the logged-in user's record after a confirmation.
// It reports whether the account was deleted, which ends the session.
func (a *App) deleteOwnAccount(ctx context.Context, account *models.Account) bool {
	fmt.Fprintln(a.out, "Deleting your account is permanent and cannot be undone.")
	if !Confirm(a.reader, "Are you sure you want to delete your account?", a.out) {
		fmt.Fprintln(a.out, "Account deletion canceled.")
		return false
	}

	all, err := a.svc.Load(ctx)
	if err != nil {
		a.reportStoreError(ctx, err)
		return false
	}
	if _, err := a.svc.RemoveByUsername(ctx, all, account.Username); err != nil {
		a.reportStoreError(ctx, err)
		return false
	}
	fmt.Fprintln(a.out, "Your account has been deleted.")
	return true
}

// todoMenu manages the logged-in user's personal task list.
func (a *App) todoMenu(ctx context.Context, account *models.Account) {
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "To-Do List:")
		fmt.Fprintln(a.out, "1. View tasks")
		fmt.Fprintln(a.out, "2. Add a task")
		fmt.Fprintln(a.out, "3. Complete a task")
		fmt.Fprintln(a.out, "4. Remove a task")
		fmt.Fprintln(a.out, "5. Back")

		choice, ok := MenuChoice(a.reader, "Select an option", 1, 5, a.out)
		if !ok || choice == 5 {
			return
		}
		switch choice {
		case 1:
			a.printTasks(ctx, account.Username)
		case 2:
			task, err := GetSimpleText(a.reader, "Enter the new task", a.out)
			if err != nil {
				return
			}
			if err := a.tasks.Add(ctx, account.Username, task); err != nil {
				fmt.Fprintf(a.out, "Could not add task: %v\n", err)
				continue
			}
			fmt.Fprintln(a.out, "Task added!")
		case 3:
			index, ok := a.pickTask(ctx, account.Username, "Enter the number of the task to complete")
			if !ok {
				continue
			}
			if err := a.tasks.Complete(ctx, account.Username, index); err != nil {
				fmt.Fprintf(a.out, "Could not complete task: %v\n", err)
				continue
			}
			fmt.Fprintln(a.out, "Task marked as done!")
		case 4:
			index, ok := a.pickTask(ctx, account.Username, "Enter the number of the task to remove")
			if !ok {
				continue
			}
			removed, err := a.tasks.Remove(ctx, account.Username, index)
			if err != nil {
				fmt.Fprintf(a.out, "Could not remove task: %v\n", err)
				continue
			}
			fmt.Fprintf(a.out, "Removed task: %s\n", removed)
		}
	}
}

func (a *App) printTasks(ctx context.Context, username string) {
	tasks := a.tasks.Tasks(ctx, username)
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "Your to-do list is empty.")
		return
	}
	fmt.Fprintln(a.out, "Your tasks:")
	for i, task := range tasks {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, task)
	}
}

// pickTask lists the user's tasks and prompts for a 1-based selection,
// returning the 0-based index.
func (a *App) pickTask(ctx context.Context, username, prompt string) (int, bool) {
	tasks := a.tasks.Tasks(ctx, username)
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "Your to-do list is empty.")
		return 0, false
	}
	a.printTasks(ctx, username)
	choice, ok := MenuChoice(a.reader, prompt, 1, len(tasks), a.out)
	if !ok {
		return 0, false
	}
	return choice - 1, true
}

// gamesMenu offers the five mini-games.
func (a *App) gamesMenu() {
	g := a.games()
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Games:")
		fmt.Fprintln(a.out, "1. Lottery")
		fmt.Fprintln(a.out, "2. Number guessing")
		fmt.Fprintln(a.out, "3. Rock, paper, scissors")
		fmt.Fprintln(a.out, "4. Hangman")
		fmt.Fprintln(a.out, "5. Quiz")
		fmt.Fprintln(a.out, "6. Back")

		choice, ok := MenuChoice(a.reader, "Select a game", 1, 6, a.out)
		if !ok || choice == 6 {
			return
		}
		switch choice {
		case 1:
			g.Lottery()
		case 2:
			g.NumberGuessing()
		case 3:
			g.RockPaperScissors()
		case 4:
			g.Hangman()
		case 5:
			g.Quiz()
		}
	}
}
