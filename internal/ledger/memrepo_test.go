package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"librarian/internal/book"
)

// memRepo serializes units of work behind one mutex and restores the
// transaction log when a unit of work fails.
type memRepo struct {
	mu         sync.Mutex
	books      map[int64]book.Book
	txs        []Transaction
	nextID     int64
	failInsert error
	failMark   error
}

func newMemRepo(books ...book.Book) *memRepo {
	m := &memRepo{books: map[int64]book.Book{}}
	for _, b := range books {
		m.books[b.ID] = b
	}
	return m
}

func (m *memRepo) WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := append([]Transaction(nil), m.txs...)
	nextID := m.nextID
	if err := fn(ctx, memTx{m}); err != nil {
		m.txs = snapshot
		m.nextID = nextID
		return err
	}
	return nil
}

func (m *memRepo) ListByBorrower(_ context.Context, userID int64) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Entry
	for _, t := range m.txs {
		if t.BorrowedBy != userID {
			continue
		}
		e := Entry{Transaction: t}
		if b, ok := m.books[t.BookID]; ok {
			e.Book = &b
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *memRepo) deleteBook(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.books, id)
}

func (m *memRepo) openFor(bookID int64) []Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Transaction
	for _, t := range m.txs {
		if t.BookID == bookID && t.Open() {
			out = append(out, t)
		}
	}
	return out
}

type memTx struct {
	m *memRepo
}

func (t memTx) LockBook(_ context.Context, bookID int64) (book.Book, error) {
	b, ok := t.m.books[bookID]
	if !ok {
		return book.Book{}, book.ErrNotFound
	}
	return b, nil
}

func (t memTx) FindOpen(_ context.Context, bookID int64) (Transaction, error) {
	var open []Transaction
	for _, tr := range t.m.txs {
		if tr.BookID == bookID && tr.Open() {
			open = append(open, tr)
		}
	}
	if len(open) == 0 {
		return Transaction{}, ErrNoActiveBorrow
	}
	sort.Slice(open, func(i, j int) bool {
		if open[i].BorrowedAt.Equal(open[j].BorrowedAt) {
			return open[i].ID > open[j].ID
		}
		return open[i].BorrowedAt.After(open[j].BorrowedAt)
	})
	return open[0], nil
}

func (t memTx) Insert(_ context.Context, tr *Transaction) error {
	t.m.nextID++
	tr.ID = t.m.nextID
	t.m.txs = append(t.m.txs, *tr)
	if t.m.failInsert != nil {
		return t.m.failInsert
	}
	return nil
}

func (t memTx) MarkReturned(_ context.Context, id int64, at time.Time) error {
	if t.m.failMark != nil {
		return t.m.failMark
	}
	for i := range t.m.txs {
		if t.m.txs[i].ID == id && t.m.txs[i].Open() {
			t.m.txs[i].Returned = true
			t.m.txs[i].ReturnedAt = &at
			return nil
		}
	}
	return ErrNoActiveBorrow
}
