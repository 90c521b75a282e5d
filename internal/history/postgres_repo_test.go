package history

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarian/internal/ledger"
	"librarian/internal/testutil"
)

func exec(t *testing.T, db *pgxpool.Pool, sql string, args ...any) int64 {
	t.Helper()
	var id int64
	require.NoError(t, db.QueryRow(context.Background(), sql, args...).Scan(&id))
	return id
}

func ids(entries []ledger.Entry) map[int64]bool {
	out := map[int64]bool{}
	for _, e := range entries {
		out[e.Transaction.ID] = true
	}
	return out
}

// Every filter narrows the unfiltered result.
func TestPostgresRepo_FiltersNarrow(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	repo := NewPostgresRepo(db, 5*time.Second)

	alice := exec(t, db, `INSERT INTO users (name, email, password_hash) VALUES ('alice', 'alice@example.com', 'x') RETURNING id`)
	bob := exec(t, db, `INSERT INTO users (name, email, password_hash) VALUES ('bob', 'bob@example.com', 'x') RETURNING id`)
	dune := exec(t, db, `INSERT INTO books (title, author, count) VALUES ('Dune', 'Herbert', 1) RETURNING id`)
	emma := exec(t, db, `INSERT INTO books (title, author, count) VALUES ('Emma', 'Austen', 1) RETURNING id`)

	mar1 := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	mar2 := time.Date(2024, 3, 2, 0, 10, 0, 0, time.UTC)
	const insert = `INSERT INTO book_transactions (book_id, borrowed_by, borrowed, returned, borrowed_at, returned_at)
		VALUES ($1, $2, TRUE, $3, $4, $5) RETURNING id`
	exec(t, db, insert, dune, alice, true, mar1, mar2)
	exec(t, db, insert, dune, bob, false, mar2, nil)
	exec(t, db, insert, emma, alice, false, mar2, nil)

	all, err := repo.Search(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	universe := ids(all)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		f    Filter
		want int
	}{
		{name: "user", f: Filter{UserID: &alice}, want: 2},
		{name: "title", f: Filter{BookTitle: "Dune"}, want: 2},
		{name: "open", f: Filter{Type: "Borrow"}, want: 2},
		{name: "returned", f: Filter{Type: "return"}, want: 1},
		{name: "date", f: Filter{Date: &day}, want: 1},
		{name: "user and title", f: Filter{UserID: &alice, BookTitle: "Dune"}, want: 1},
		{name: "user and open", f: Filter{UserID: &bob, Type: "borrow"}, want: 1},
		{name: "disjoint", f: Filter{UserID: &bob, Type: "return"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Search(ctx, tt.f)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
			for id := range ids(got) {
				assert.True(t, universe[id])
			}
		})
	}

	_, err = db.Exec(ctx, `DELETE FROM books WHERE id = $1`, emma)
	require.NoError(t, err)
	all, err = repo.Search(ctx, Filter{UserID: &alice})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Nil(t, all[1].Book)
}
