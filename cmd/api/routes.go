package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"librarian/internal/auth"
	"librarian/internal/book"
	"librarian/internal/history"
	"librarian/internal/httpx"
	"librarian/internal/ledger"
	"librarian/internal/user"
)

type handlers struct {
	auth    *auth.HTTPHandler
	users   *user.HTTPHandler
	books   *book.HTTPHandler
	ledger  *ledger.HTTPHandler
	history *history.HTTPHandler
	authn   httpx.Authenticator
	ready   func(ctx context.Context) error
	logger  *slog.Logger
}

func newRouter(h handlers) *http.ServeMux {
	protected := httpx.AuthMiddleware(h.authn, h.logger)
	adminOnly := func(next http.HandlerFunc) http.Handler {
		return protected(httpx.RequireRole(user.RoleAdmin)(next))
	}
	authed := func(next http.HandlerFunc) http.Handler {
		return protected(next)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := h.ready(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	mux.HandleFunc("POST /auth/login", h.auth.Login)
	mux.Handle("POST /auth/logout", authed(h.auth.Logout))

	mux.HandleFunc("POST /users/register", h.users.Register)
	mux.Handle("GET /users/me", authed(h.users.Me))
	mux.Handle("GET /users/book", authed(h.ledger.MyBooks))
	mux.Handle("GET /users/history", adminOnly(h.history.Search))

	mux.HandleFunc("GET /books", h.books.List)
	mux.HandleFunc("GET /books/{$}", h.books.List)
	mux.Handle("POST /books", adminOnly(h.books.Create))
	mux.Handle("POST /books/{$}", adminOnly(h.books.Create))
	mux.HandleFunc("GET /books/{id}", h.books.Get)
	mux.Handle("PUT /books/{id}", adminOnly(h.books.Update))
	mux.Handle("DELETE /books/{id}", adminOnly(h.books.Delete))

	mux.Handle("POST /books/{id}/borrow", authed(h.ledger.Borrow))
	mux.Handle("PUT /books/{id}/return", authed(h.ledger.Return))

	return mux
}
