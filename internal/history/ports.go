package history

import (
	"context"

	"librarian/internal/ledger"
	"librarian/internal/user"
)

type Repository interface {
	Search(ctx context.Context, f Filter) ([]ledger.Entry, error)
}

// UserFinder resolves the email filter to a user id.
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}
