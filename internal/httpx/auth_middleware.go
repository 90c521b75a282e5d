package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"librarian/internal/apperr"
)

// Principal is the identity an access token resolves to.
type Principal struct {
	UserID  int64
	Role    string
	TokenID string
}

// Authenticator resolves a bearer token into a principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (Principal, error)
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(h[7:])
	return tok, tok != ""
}

// AuthMiddleware answers 401 for rejected credentials. Any other error from
// authn is a server fault and goes through Fail.
func AuthMiddleware(authn Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", "Bearer")
				JSONError(w, r, http.StatusUnauthorized, CodeUnauthorized, "Missing or malformed bearer token", nil)
				return
			}

			p, err := authn.Authenticate(r.Context(), token)
			if err != nil && !errors.Is(err, apperr.ErrUnauthorized) {
				Fail(w, r, logger, err)
				return
			}
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				JSONError(w, r, http.StatusUnauthorized, CodeUnauthorized, "Could not validate credentials", nil)
				return
			}

			ctx := ContextWithUser(r.Context(), p.UserID, p.Role)
			ctx = ContextWithTokenID(ctx, p.TokenID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFrom(r) != role {
				JSONError(w, r, http.StatusForbidden, CodeForbidden, "Insufficient permissions", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
