package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"budgetbook/internal/cli"
	"budgetbook/internal/config"
	"budgetbook/internal/log"
	"budgetbook/internal/session"
	"budgetbook/internal/store"
)

func main() {
	// .env is optional, for local development
	_ = godotenv.Load()

	cfg := config.Load()
	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: "budgetbook",
	})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	st, err := store.Open(store.Config{
		Type:          store.Backend(cfg.StoreBackend),
		DataDirectory: cfg.DataDir,
		SQLiteDBPath:  cfg.SQLiteDBPath,
	}, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize document store", "error", err, "backend", cfg.StoreBackend)
		os.Exit(1)
	}
	defer st.Close()

	sess := session.New(st, logger)
	shell := cli.New(sess, os.Stdin, os.Stdout, logger)

	if err := shell.Run(context.Background()); err != nil {
		logger.Error("Shell error", "error", err)
		os.Exit(1)
	}
}
