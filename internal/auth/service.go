package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"librarian/internal/httpx"
	"librarian/internal/platform/crypto"
	"librarian/internal/user"
)

type Service struct {
	secret      string
	ttl         time.Duration
	users       UserStore
	revocations RevocationStore
	logger      *slog.Logger
}

func NewService(secret string, ttl time.Duration, users UserStore, revocations RevocationStore, logger *slog.Logger) *Service {
	return &Service{
		secret:      secret,
		ttl:         ttl,
		users:       users,
		revocations: revocations,
		logger:      logger,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (Token, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Token{}, ErrInvalidCredentials
		}
		return Token{}, err
	}
	if !crypto.VerifyPassword(u.PasswordHash, password) {
		s.logger.WarnContext(ctx, "login failed", "user_id", u.ID)
		return Token{}, ErrInvalidCredentials
	}
	if !u.IsActive {
		return Token{}, ErrInactiveUser
	}

	access, _, err := crypto.GenerateToken(s.secret, strconv.FormatInt(u.ID, 10), u.Role, s.ttl)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}

	s.logger.InfoContext(ctx, "login", "user_id", u.ID)
	return Token{
		AccessToken: access,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   int(s.ttl.Seconds()),
	}, nil
}

// Authenticate verifies the token and resolves it to the stored account.
// The role comes from storage so a demotion takes effect immediately.
func (s *Service) Authenticate(ctx context.Context, token string) (httpx.Principal, error) {
	claims, err := crypto.ParseToken(s.secret, token)
	if err != nil {
		return httpx.Principal{}, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(claims.Sub, 10, 64)
	if err != nil {
		return httpx.Principal{}, ErrInvalidToken
	}

	if claims.ID != "" {
		revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return httpx.Principal{}, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return httpx.Principal{}, ErrInvalidToken
		}
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return httpx.Principal{}, ErrInvalidToken
		}
		return httpx.Principal{}, err
	}
	if !u.IsActive {
		return httpx.Principal{}, ErrInactiveUser
	}
	return httpx.Principal{UserID: u.ID, Role: u.Role, TokenID: claims.ID}, nil
}

// Logout revokes the presented token.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := crypto.ParseToken(s.secret, token)
	if err != nil {
		return ErrInvalidToken
	}
	if claims.ID == "" {
		return ErrInvalidToken
	}
	userID, err := strconv.ParseInt(claims.Sub, 10, 64)
	if err != nil {
		return ErrInvalidToken
	}

	if err := s.revocations.Revoke(ctx, claims.ID, userID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.logger.InfoContext(ctx, "logout", "user_id", userID)
	return nil
}

// PurgeExpired drops revocations of tokens that have expired on their own.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.revocations.PurgeExpired(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.InfoContext(ctx, "expired revocations purged", "count", n)
	return n, nil
}
