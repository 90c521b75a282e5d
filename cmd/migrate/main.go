package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"librarian/internal/config"
	"librarian/internal/platform/logging"
	"librarian/internal/platform/postgres"
)

type options struct {
	command string
	name    string
	dir     string
}

func main() {
	var opts options
	flag.StringVar(&opts.command, "command", "up", "Migration command: up, down, status, create")
	flag.StringVar(&opts.name, "name", "", "Name for 'create' command")
	flag.StringVar(&opts.dir, "dir", "", "Migrations directory (default: MIGRATIONS_DIR or db/migrations)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel, "text")
	if err != nil {
		slog.Error("invalid logging configuration", "error", err)
		os.Exit(1)
	}

	if err := run(context.Background(), cfg, opts, logger); err != nil {
		logger.Error("migrate failed", "command", opts.command, "error", err)
		os.Exit(1)
	}
}

func migrationsDir(cfg config.Config, override string) string {
	if override != "" {
		return override
	}
	return cfg.MigrationsDir
}

func run(ctx context.Context, cfg config.Config, opts options, logger *slog.Logger) error {
	dir := migrationsDir(cfg, opts.dir)

	switch opts.command {
	case "create":
		if opts.name == "" {
			return errors.New("name is required for 'create' command")
		}
		goose.SetSequential(true)
		if err := goose.Create(nil, dir, opts.name, "sql"); err != nil {
			return fmt.Errorf("create migration: %w", err)
		}
		logger.Info("migration created", "name", opts.name, "dir", dir)
		return nil
	case "up", "down", "status":
	default:
		return fmt.Errorf("unknown command %q, use: up, down, status, create", opts.command)
	}

	pool, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch opts.command {
	case "up":
		if err := goose.UpContext(ctx, db, dir); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("migrations applied", "dir", dir)
	case "down":
		if err := goose.DownContext(ctx, db, dir); err != nil {
			return fmt.Errorf("roll back migration: %w", err)
		}
		logger.Info("migration rolled back", "dir", dir)
	case "status":
		if err := goose.StatusContext(ctx, db, dir); err != nil {
			return fmt.Errorf("migration status: %w", err)
		}
	}
	return nil
}
