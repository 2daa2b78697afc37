package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/arzm/accountkeeper/internal/accounts"
	"github.com/arzm/accountkeeper/internal/cli"
	"github.com/arzm/accountkeeper/internal/config"
	"github.com/arzm/accountkeeper/internal/logging"
	"github.com/arzm/accountkeeper/internal/storage"
	"github.com/arzm/accountkeeper/internal/todo"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	store := storage.NewStore(cfg.AccountsPath, logger)
	if err := store.EnsureAdminSeed(ctx); err != nil {
		log.Fatalf("seeding admin account: %v", err)
	}

	svc := accounts.NewService(store, cfg, logger)
	tasks := todo.NewStore(cfg.TasksPath, logger)

	app := cli.NewApp(cfg, svc, tasks, logger)
	app.Run(ctx)
}
