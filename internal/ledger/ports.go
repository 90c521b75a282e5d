package ledger

import (
	"context"
	"time"

	"librarian/internal/book"
)

// Tx is the unit of work a borrow or return runs in. Reads through Tx lock
// the rows they return until the unit of work ends.
type Tx interface {
	// LockBook returns book.ErrNotFound when the book does not exist.
	LockBook(ctx context.Context, bookID int64) (book.Book, error)
	// FindOpen returns the most recent open transaction for the book, or
	// ErrNoActiveBorrow.
	FindOpen(ctx context.Context, bookID int64) (Transaction, error)
	Insert(ctx context.Context, t *Transaction) error
	MarkReturned(ctx context.Context, id int64, at time.Time) error
}

type Repository interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// ListByBorrower returns every transaction of the user, oldest first.
	ListByBorrower(ctx context.Context, userID int64) ([]Entry, error)
}
