// Package ledger records who borrowed which book and closes the record on return.
//
// A book is Available when it has no open transaction and Borrowed when it has
// exactly one. Borrow and Return each run inside a single storage transaction
// that locks the rows they read, so two requests racing for the same book are
// serialized and the loser observes the winner's write.
package ledger

import (
	"time"

	"librarian/internal/apperr"
	"librarian/internal/book"
)

var (
	ErrUnavailable     = apperr.New(apperr.ErrUnavailable, "book is not available for borrowing")
	ErrNoActiveBorrow  = apperr.New(apperr.ErrNotFound, "no active borrow for this book")
	ErrInvalidBorrower = apperr.New(apperr.ErrValidation, "borrower is required")
)

// Transaction is one borrow of one book. It is open until Returned is set.
type Transaction struct {
	ID         int64      `json:"id"`
	BookID     int64      `json:"book_id"`
	BorrowedBy int64      `json:"borrowed_by"`
	Borrowed   bool       `json:"borrowed"`
	Returned   bool       `json:"returned"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	ReturnedAt *time.Time `json:"returned_at"`
}

func (t Transaction) Open() bool {
	return !t.Returned
}

// Receipt is the result of a borrow or a return.
// Book is nil when the book was deleted while it was out.
type Receipt struct {
	Book        *book.Book  `json:"book"`
	Transaction Transaction `json:"borrowed_book"`
}

// Entry pairs a transaction with its book, which may no longer exist.
type Entry struct {
	Book        *book.Book
	Transaction Transaction
}

// Row is the flat transport shape of an Entry. BorrowedBy carries either the
// borrower's name or id depending on the report.
type Row struct {
	ID            int64      `json:"id"`
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Author        *string    `json:"author"`
	Count         *int       `json:"count"`
	BorrowedBy    any        `json:"borrowed_by"`
	Borrowed      bool       `json:"borrowed"`
	Returned      bool       `json:"returned"`
	BorrowedAt    time.Time  `json:"borrowed_at"`
	ReturnedAt    *time.Time `json:"returned_at"`
	TransactionID int64      `json:"transaction_id"`
}

func NewRow(e Entry, borrowedBy any) Row {
	row := Row{
		ID:            e.Transaction.BookID,
		BorrowedBy:    borrowedBy,
		Borrowed:      e.Transaction.Borrowed,
		Returned:      e.Transaction.Returned,
		BorrowedAt:    e.Transaction.BorrowedAt,
		ReturnedAt:    e.Transaction.ReturnedAt,
		TransactionID: e.Transaction.ID,
	}
	if b := e.Book; b != nil {
		row.Title = &b.Title
		row.Description = &b.Description
		row.Author = &b.Author
		row.Count = &b.Count
	}
	return row
}
