package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"librarian/internal/book"
	"librarian/internal/config"
	"librarian/internal/platform/logging"
	"librarian/internal/platform/postgres"
)

func main() {
	file := flag.String("file", "db/seed/books.yaml", "YAML catalog to load")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		slog.Error("invalid logging configuration", "error", err)
		os.Exit(1)
	}

	if err := run(context.Background(), cfg, *file, logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, file string, logger *slog.Logger) error {
	inputs, err := book.LoadSeedFile(file)
	if err != nil {
		return err
	}

	pool, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	svc := book.NewService(book.NewPostgresRepo(pool, cfg.DBTimeout), logger)
	res, err := svc.Import(ctx, inputs)
	if err != nil {
		return err
	}
	logger.Info("seed complete", "file", file, "created", res.Created, "skipped", res.Skipped)
	return nil
}
