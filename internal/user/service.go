package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"librarian/internal/platform/crypto"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Register creates an active account with the user role.
func (s *Service) Register(ctx context.Context, name, email, password string) (User, error) {
	return s.create(ctx, name, email, password, RoleUser)
}

// CreateAdmin is only reachable from operator tooling.
func (s *Service) CreateAdmin(ctx context.Context, name, email, password string) (User, error) {
	return s.create(ctx, name, email, password, RoleAdmin)
}

func (s *Service) create(ctx context.Context, name, email, password, role string) (User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return User{}, ErrAlreadyExists
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		Role:         role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", u.ID, "role", u.Role)
	return *u, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// SetRole changes the role of the account registered under email.
func (s *Service) SetRole(ctx context.Context, email, role string) (User, error) {
	if !ValidRole(role) {
		return User{}, ErrInvalidRole
	}
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	if u.Role == role {
		return u, nil
	}
	if err := s.repo.SetRole(ctx, u.ID, role); err != nil {
		return User{}, err
	}
	u.Role = role

	s.logger.InfoContext(ctx, "user role changed", "user_id", u.ID, "role", role)
	return u, nil
}
