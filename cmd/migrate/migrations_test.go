package main

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repoMigrationsDir(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed")
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", "db", "migrations"))
}

func TestCollectMigrations_SequentialVersions(t *testing.T) {
	migrations, err := goose.CollectMigrations(repoMigrationsDir(t), 0, goose.MaxVersion)
	require.NoError(t, err)

	versions := make([]int64, 0, len(migrations))
	for _, m := range migrations {
		versions = append(versions, m.Version)
	}
	assert.Equal(t, []int64{1, 2, 3, 4}, versions)
}

func TestBookTransactionsMigration_OneOpenBorrowPerBook(t *testing.T) {
	b, err := os.ReadFile(filepath.Join(repoMigrationsDir(t), "00003_create_book_transactions.sql"))
	require.NoError(t, err)
	sql := string(b)

	assert.Regexp(t, regexp.MustCompile(`(?is)CREATE UNIQUE INDEX[^;]*ON book_transactions \(book_id\)\s*WHERE NOT returned`), sql)
	assert.NotRegexp(t, regexp.MustCompile(`(?i)book_id\s+BIGINT[^,]*REFERENCES`), sql, "history must survive book deletion")
	assert.Regexp(t, regexp.MustCompile(`(?i)CHECK \(returned = \(returned_at IS NOT NULL\)\)`), sql)
}
