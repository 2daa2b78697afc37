// Package cli implements the interactive terminal surface of accountkeeper:
// the root register/login loop and the post-login user and admin panels. All
// business rules live in the accounts service; this package only collects
// input, renders results, and loops until each workflow step is satisfied.
package cli

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/arzm/accountkeeper/internal/accounts"
	"github.com/arzm/accountkeeper/internal/config"
	"github.com/arzm/accountkeeper/internal/games"
	"github.com/arzm/accountkeeper/internal/logging"
	"github.com/arzm/accountkeeper/internal/todo"
)

type App struct {
	cfg    *config.Config
	svc    *accounts.Service
	tasks  *todo.Store
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
	rng    *rand.Rand
}

func NewApp(cfg *config.Config, svc *accounts.Service, tasks *todo.Store, log logging.Logger) *App {
	return &App{
		cfg:    cfg,
		svc:    svc,
		tasks:  tasks,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run attaches a session correlation id to the logger and enters the root
// loop.
func (a *App) Run(ctx context.Context) {
	a.log = a.log.With("session", uuid.NewString())
	a.Root(ctx)
}

func (a *App) games() *games.Games {
	return games.New(a.rng, a.reader, a.out)
}
