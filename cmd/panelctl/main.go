package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"auth-panel/internal/apiclient"
	"auth-panel/internal/cli"
	"auth-panel/internal/config"
	"auth-panel/internal/logging"
	"auth-panel/internal/repository/sqlite"
	"auth-panel/internal/session"
	"auth-panel/internal/tokenstore"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Command output goes to stdout; keep the log quiet unless configured.
	cfg, err := config.Load(config.WithDefaultLogLevel("warn"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	logger, closer, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup logging: %v\n", err)
		return 1
	}
	defer closer.Close()
	if cfg.Log.File == "" {
		logger.SetOutput(os.Stderr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(ctx, cfg.Database.Path)
	if err != nil {
		logger.Errorf("open database: %v", err)
		return 1
	}
	defer db.Close()

	tokens := tokenstore.New(sqlite.NewKeyValueRepository(db))
	client, err := apiclient.New(cfg.API.BaseURL, apiclient.Options{
		Tokens:  tokens,
		Timeout: cfg.API.Timeout,
		Logger:  logger,
	})
	if err != nil {
		logger.Errorf("setup api client: %v", err)
		return 1
	}

	app := cli.NewApp(session.NewService(client, tokens, logger), os.Stdin, os.Stdout)
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		switch {
		case errors.Is(err, cli.ErrUsage):
			fmt.Fprintln(os.Stderr, err)
			return 2
		case errors.Is(err, cli.ErrInvalidInput):
			return 1
		default:
			fmt.Fprintf(os.Stderr, "panelctl: %v\n", err)
			return 1
		}
	}
	return 0
}
