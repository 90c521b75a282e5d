package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"librarian/internal/auth"
	"librarian/internal/book"
	"librarian/internal/config"
	"librarian/internal/platform/logging"
	"librarian/internal/platform/postgres"
	"librarian/internal/user"
)

func main() {
	a := &app{out: os.Stdout, readPassword: readPassword}
	err := newRootCmd(a, a.connect).Execute()
	a.close()
	if err != nil {
		os.Exit(1)
	}
}

// connect opens the database and builds the services the commands need.
func (a *app) connect(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel, "text")
	if err != nil {
		return err
	}

	pool, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	a.closeFn = pool.Close

	userService := user.NewService(user.NewPostgresRepo(pool, cfg.DBTimeout), logger)
	a.users = userService
	a.books = book.NewService(book.NewPostgresRepo(pool, cfg.DBTimeout), logger)
	a.revocations = auth.NewService(cfg.JWTSecret, cfg.AccessTokenTTL, userService, auth.NewRevocationPostgresRepo(pool, cfg.DBTimeout), logger)
	return nil
}

func (a *app) close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// readPassword prompts on stderr and reads without echo when stdin is a terminal.
func readPassword(prompt string) (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
