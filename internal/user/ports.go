package user

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=user

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	SetRole(ctx context.Context, id int64, role string) error
}
