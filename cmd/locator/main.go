package main

import (
	"context"
	"fmt"
	"location-lookup/internal/cli"
	"location-lookup/internal/config"
	"location-lookup/internal/platform/obs"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
)

// main is the application composition root.
// It loads configuration, builds the logger and hands the command line to the CLI.
func main() {
	os.Exit(run())
}

func run() int {
	envLoaded := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "locator:", err)
		return cli.ExitInvalid
	}

	log, err := obs.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "locator:", err)
		return cli.ExitInvalid
	}
	defer log.Sync()

	if !envLoaded {
		log.Debug("no .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = obs.WithRunID(ctx, uuid.NewString())

	app := &cli.App{
		Config:   cfg,
		Log:      log,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Terminal: cli.StdioIsTerminal,
	}
	return app.Run(ctx, os.Args[1:])
}
