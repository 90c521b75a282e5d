package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"librarian/internal/book"
	"librarian/internal/platform/postgres"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return pgx.BeginFunc(timeoutCtx, r.db, func(tx pgx.Tx) error {
		return fn(timeoutCtx, pgTx{tx: tx})
	})
}

// EntryColumns is the select list read by ScanEntry, for a query over
// book_transactions t LEFT JOIN books b.
var EntryColumns = []string{
	"t.id", "t.book_id", "t.borrowed_by", "t.borrowed", "t.returned", "t.borrowed_at", "t.returned_at",
	"b.id", "b.title", "b.description", "b.author", "b.count", "b.created_at", "b.updated_at",
}

// ScanEntry reads one row selected with EntryColumns.
func ScanEntry(row pgx.Row) (Entry, error) {
	var (
		e       Entry
		bookID  *int64
		title   *string
		desc    *string
		author  *string
		count   *int
		created *time.Time
		updated *time.Time
	)
	t := &e.Transaction
	err := row.Scan(
		&t.ID, &t.BookID, &t.BorrowedBy, &t.Borrowed, &t.Returned, &t.BorrowedAt, &t.ReturnedAt,
		&bookID, &title, &desc, &author, &count, &created, &updated,
	)
	if err != nil {
		return Entry{}, err
	}
	if bookID != nil {
		e.Book = &book.Book{
			ID:          *bookID,
			Title:       deref(title),
			Description: deref(desc),
			Author:      deref(author),
			Count:       deref(count),
			CreatedAt:   deref(created),
			UpdatedAt:   deref(updated),
		}
	}
	return e, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func (r *PostgresRepo) ListByBorrower(ctx context.Context, userID int64) ([]Entry, error) {
	query := `SELECT ` + strings.Join(EntryColumns, ", ") + `
		FROM book_transactions t
		LEFT JOIN books b ON b.id = t.book_id
		WHERE t.borrowed_by = $1
		ORDER BY t.borrowed_at ASC, t.id ASC`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := ScanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type pgTx struct {
	tx pgx.Tx
}

func (p pgTx) LockBook(ctx context.Context, bookID int64) (book.Book, error) {
	return book.Scan(p.tx.QueryRow(ctx, `SELECT `+book.Columns+` FROM books WHERE id = $1 FOR UPDATE`, bookID))
}

func (p pgTx) FindOpen(ctx context.Context, bookID int64) (Transaction, error) {
	const query = `
		SELECT id, book_id, borrowed_by, borrowed, returned, borrowed_at, returned_at
		FROM book_transactions
		WHERE book_id = $1 AND NOT returned
		ORDER BY borrowed_at DESC, id DESC
		LIMIT 1
		FOR UPDATE`

	var t Transaction
	err := p.tx.QueryRow(ctx, query, bookID).Scan(
		&t.ID, &t.BookID, &t.BorrowedBy, &t.Borrowed, &t.Returned, &t.BorrowedAt, &t.ReturnedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrNoActiveBorrow
	}
	return t, err
}

func (p pgTx) Insert(ctx context.Context, t *Transaction) error {
	const query = `
		INSERT INTO book_transactions (book_id, borrowed_by, borrowed, returned, borrowed_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := p.tx.QueryRow(ctx, query, t.BookID, t.BorrowedBy, t.Borrowed, t.Returned, t.BorrowedAt).Scan(&t.ID)
	if postgres.IsUniqueViolation(err) {
		return ErrUnavailable
	}
	return err
}

func (p pgTx) MarkReturned(ctx context.Context, id int64, at time.Time) error {
	tag, err := p.tx.Exec(ctx,
		`UPDATE book_transactions SET returned = TRUE, returned_at = $1 WHERE id = $2 AND NOT returned`, at, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoActiveBorrow
	}
	return nil
}
