package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarian/internal/testutil"
)

func TestRevocationPostgresRepo(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewRevocationPostgresRepo(db, 5*time.Second)
	ctx := context.Background()

	revoked, err := repo.IsRevoked(ctx, "jti-live")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "jti-live", 1, time.Now().Add(time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "jti-live", 1, time.Now().Add(time.Hour)), "revoking twice is a no-op")
	require.NoError(t, repo.Revoke(ctx, "jti-old", 1, time.Now().Add(-time.Minute)))

	revoked, err = repo.IsRevoked(ctx, "jti-live")
	require.NoError(t, err)
	assert.True(t, revoked)

	n, err := repo.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	revoked, err = repo.IsRevoked(ctx, "jti-old")
	require.NoError(t, err)
	assert.False(t, revoked)
}
