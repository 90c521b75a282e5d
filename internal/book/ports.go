package book

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=book

import (
	"context"
)

// Repository defines the contract for book data storage.
type Repository interface {
	Create(ctx context.Context, b *Book) error
	List(ctx context.Context, limit, offset int) ([]Book, int, error)
	GetByID(ctx context.Context, id int64) (Book, error)
	Update(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id int64) error
}
