package ledger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"librarian/internal/book"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now as the source of borrow and return timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{repo: repo, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Borrow opens a transaction for the book on behalf of userID.
//
// It fails with book.ErrNotFound when the book does not exist and with
// ErrUnavailable when the book has no copies in circulation or is already out.
func (s *Service) Borrow(ctx context.Context, bookID, userID int64) (Receipt, error) {
	if userID < 1 {
		return Receipt{}, ErrInvalidBorrower
	}

	var receipt Receipt
	err := s.repo.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		b, err := tx.LockBook(ctx, bookID)
		if err != nil {
			return err
		}
		if b.Count <= 0 {
			return ErrUnavailable
		}

		_, err = tx.FindOpen(ctx, bookID)
		switch {
		case err == nil:
			return ErrUnavailable
		case !errors.Is(err, ErrNoActiveBorrow):
			return err
		}

		t := Transaction{
			BookID:     bookID,
			BorrowedBy: userID,
			Borrowed:   true,
			Returned:   false,
			BorrowedAt: s.now().UTC(),
		}
		if err := tx.Insert(ctx, &t); err != nil {
			return err
		}
		receipt = Receipt{Book: &b, Transaction: t}
		return nil
	})
	if err != nil {
		return Receipt{}, err
	}

	s.logger.InfoContext(ctx, "book borrowed",
		"book_id", bookID,
		"user_id", userID,
		"transaction_id", receipt.Transaction.ID,
	)
	return receipt, nil
}

// Return closes the open transaction of the book. A second return of the same
// borrow fails with ErrNoActiveBorrow.
func (s *Service) Return(ctx context.Context, bookID int64) (Receipt, error) {
	var receipt Receipt
	err := s.repo.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		// Same lock order as Borrow: book row first.
		b, err := tx.LockBook(ctx, bookID)
		switch {
		case err == nil:
			receipt.Book = &b
		case !errors.Is(err, book.ErrNotFound):
			return err
		}

		t, err := tx.FindOpen(ctx, bookID)
		if err != nil {
			return err
		}

		at := s.now().UTC()
		if err := tx.MarkReturned(ctx, t.ID, at); err != nil {
			return err
		}
		t.Returned = true
		t.ReturnedAt = &at
		receipt.Transaction = t
		return nil
	})
	if err != nil {
		return Receipt{}, err
	}

	s.logger.InfoContext(ctx, "book returned",
		"book_id", bookID,
		"user_id", receipt.Transaction.BorrowedBy,
		"transaction_id", receipt.Transaction.ID,
	)
	return receipt, nil
}

// ListBorrowedBy returns every transaction of the user, open or closed.
// A user who never borrowed anything gets an empty list.
func (s *Service) ListBorrowedBy(ctx context.Context, userID int64) ([]Entry, error) {
	entries, err := s.repo.ListByBorrower(ctx, userID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
