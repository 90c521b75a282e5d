package user

import (
	"time"

	"librarian/internal/apperr"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var (
	ErrNotFound      = apperr.New(apperr.ErrNotFound, "user not found")
	ErrAlreadyExists = apperr.New(apperr.ErrConflict, "user with this email or name already exists")
	ErrInvalidRole   = apperr.New(apperr.ErrValidation, "role must be admin or user")
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
