package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arzm/accountkeeper/internal/accounts"
	"github.com/arzm/accountkeeper/internal/config"
	"github.com/arzm/accountkeeper/internal/logging"
	"github.com/arzm/accountkeeper/internal/storage"
	"github.com/arzm/accountkeeper/internal/todo"
)

// newTestApp wires an App against temp-file stores, a scripted input stream,
// and a captured output buffer.
func newTestApp(t *testing.T, script string) (*App, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.AccountsPath = filepath.Join(dir, "user_accounts.json")
	cfg.TasksPath = filepath.Join(dir, "to_do_list.json")

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	store := storage.NewStore(cfg.AccountsPath, log)
	svc := accounts.NewService(store, cfg, log)
	tasks := todo.NewStore(cfg.TasksPath, log)

	var out bytes.Buffer
	app := &App{
		cfg:    cfg,
		svc:    svc,
		tasks:  tasks,
		log:    log,
		reader: bufio.NewReader(strings.NewReader(script)),
		out:    &out,
		rng:    rand.New(rand.NewSource(1)),
	}
	return app, &out
}

// stubPasswords feeds GetPassword from a fixed queue for the duration of the
// test.
func stubPasswords(t *testing.T, passwords ...string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	queue := passwords
	readPassword = func(int) ([]byte, error) {
		if len(queue) == 0 {
			return nil, io.EOF
		}
		next := queue[0]
		queue = queue[1:]
		return []byte(next), nil
	}
}

func TestRoot_RegisterThenLogout(t *testing.T) {
	// register -> names, username, phone -> (password, confirm) -> email,
	// land in the user menu, log out, exit.
	script := strings.Join([]string{
		"register",
		"Maria",
		"Santos",
		"mariasantos",
		"8735551234",
		"maria@example.com",
		"6", // log out
		"exit",
	}, "\n") + "\n"
	stubPasswords(t, "Sup3rStr0ng!", "Sup3rStr0ng!")

	app, out := newTestApp(t, script)
	app.Root(context.Background())

	require.Contains(t, out.String(), "Account created successfully!")
	require.Contains(t, out.String(), "Username: mariasantos")

	all, err := app.svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "Maria", all[0].FirstName)
}

func TestRoot_RegisterLoopsInvalidGate(t *testing.T) {
	// The first username is too short, so the gate repeats before accepting
	// the second one.
	script := strings.Join([]string{
		"register",
		"Maria",
		"Santos",
		"ab", // rejected: too short
		"mariasantos",
		"8735551234",
		"maria@example.com",
		"6",
		"exit",
	}, "\n") + "\n"
	stubPasswords(t, "Sup3rStr0ng!", "Sup3rStr0ng!")

	app, out := newTestApp(t, script)
	app.Root(context.Background())

	require.Contains(t, out.String(), "username is too short (min 8 characters)")
	require.Contains(t, out.String(), "Account created successfully!")
}

func TestRoot_LoginWrongThenRight(t *testing.T) {
	register := strings.Join([]string{
		"register",
		"Maria",
		"Santos",
		"mariasantos",
		"8735551234",
		"maria@example.com",
		"6",
	}, "\n") + "\n"
	login := strings.Join([]string{
		"login",
		"mariasantos",
		"mariasantos",
		"6",
		"exit",
	}, "\n") + "\n"
	stubPasswords(t,
		"Sup3rStr0ng!", "Sup3rStr0ng!", // registration
		"wrongpass",    // first login attempt
		"Sup3rStr0ng!", // second login attempt
	)

	app, out := newTestApp(t, register+login)
	app.Root(context.Background())

	require.Contains(t, out.String(), "Login failed. 2 attempts remaining.")
	require.Contains(t, out.String(), "Welcome back, Maria")
}

func TestRoot_LoginEmptyStore(t *testing.T) {
	app, out := newTestApp(t, "login\nexit\n")
	app.Root(context.Background())
	require.Contains(t, out.String(), "No accounts found. Please create an account first.")
}

func TestRoot_UnknownCommand(t *testing.T) {
	app, out := newTestApp(t, "frobnicate\nexit\n")
	app.Root(context.Background())
	require.Contains(t, out.String(), "Unknown command: frobnicate")
	require.Contains(t, out.String(), "Bye!")
}

func TestEditProfile_ReenterOwnContactInfo(t *testing.T) {
	register := strings.Join([]string{
		"register",
		"Maria",
		"Santos",
		"mariasantos",
		"8735551234",
		"maria@example.com",
	}, "\n") + "\n"
	// Re-enter the current phone unchanged, then the current email in a
	// different case; neither may collide with the account's own record.
	editFlow := strings.Join([]string{
		"2", // edit profile
		"3", // phone number
		"8735551234",
		"4", // email
		"MARIA@EXAMPLE.COM",
		"6", // back
		"6", // log out
		"exit",
	}, "\n") + "\n"
	stubPasswords(t, "Sup3rStr0ng!", "Sup3rStr0ng!")

	app, out := newTestApp(t, register+editFlow)
	app.Root(context.Background())

	require.NotContains(t, out.String(), "already taken")
	require.Equal(t, 2, strings.Count(out.String(), "Profile updated successfully!"))

	all, err := app.svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "maria@example.com", all[0].Email)
}

func TestTodoMenu_AddViewComplete(t *testing.T) {
	register := strings.Join([]string{
		"register",
		"Maria",
		"Santos",
		"mariasantos",
		"8735551234",
		"maria@example.com",
	}, "\n") + "\n"
	todoFlow := strings.Join([]string{
		"3",          // to-do list
		"2",          // add
		"buy coffee", // task text
		"3",          // complete
		"1",          // task number
		"1",          // view
		"5",          // back
		"6",          // log out
		"exit",
	}, "\n") + "\n"
	stubPasswords(t, "Sup3rStr0ng!", "Sup3rStr0ng!")

	app, out := newTestApp(t, register+todoFlow)
	app.Root(context.Background())

	require.Contains(t, out.String(), "Task added!")
	require.Contains(t, out.String(), "Task marked as done!")
	require.Contains(t, out.String(), todo.CompletedPrefix+"buy coffee")
}
