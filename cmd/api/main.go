package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"librarian/internal/auth"
	"librarian/internal/book"
	"librarian/internal/config"
	"librarian/internal/history"
	"librarian/internal/httpx"
	"librarian/internal/ledger"
	"librarian/internal/platform/logging"
	"librarian/internal/platform/postgres"
	"librarian/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.ValidateAPI()
	}
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		slog.Error("invalid logging configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("database connection OK", "dsn", postgres.RedactDSN(cfg.DatabaseDSN))

	router := newRouter(newHandlers(pool, cfg, logger))

	trusted, err := cfg.TrustedProxyPrefixes()
	if err != nil {
		return err
	}
	limiter := httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst, trusted)
	handler := httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSAllowedOrigins),
		limiter.Middleware,
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
	)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server exited")
	return nil
}

func newHandlers(pool *pgxpool.Pool, cfg config.Config, logger *slog.Logger) handlers {
	userService := user.NewService(user.NewPostgresRepo(pool, cfg.DBTimeout), logger)
	bookService := book.NewService(book.NewPostgresRepo(pool, cfg.DBTimeout), logger)
	ledgerService := ledger.NewService(ledger.NewPostgresRepo(pool, cfg.DBTimeout), logger)
	historyService := history.NewService(history.NewPostgresRepo(pool, cfg.DBTimeout), userService, logger)
	authService := auth.NewService(cfg.JWTSecret, cfg.AccessTokenTTL, userService,
		auth.NewRevocationPostgresRepo(pool, cfg.DBTimeout), logger)

	return handlers{
		auth:    auth.NewHTTPHandler(authService, logger),
		users:   user.NewHTTPHandler(userService, logger),
		books:   book.NewHTTPHandler(bookService, logger),
		ledger:  ledger.NewHTTPHandler(ledgerService, userService, logger),
		history: history.NewHTTPHandler(historyService, logger),
		authn:   authService,
		ready:   pool.Ping,
		logger:  logger,
	}
}
