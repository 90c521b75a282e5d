package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RevocationPostgresRepo stores revoked token ids in token_blacklist.
type RevocationPostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewRevocationPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *RevocationPostgresRepo {
	return &RevocationPostgresRepo{db: db, timeout: timeout}
}

func (r *RevocationPostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *RevocationPostgresRepo) Revoke(ctx context.Context, jti string, userID int64, expiresAt time.Time) error {
	const query = `
	INSERT INTO token_blacklist (jti, user_id, expires_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (jti) DO NOTHING
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query, jti, userID, expiresAt)
	return err
}

func (r *RevocationPostgresRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	const query = `SELECT 1 FROM token_blacklist WHERE jti = $1 LIMIT 1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var one int
	err := r.db.QueryRow(timeoutCtx, query, jti).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *RevocationPostgresRepo) PurgeExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM token_blacklist WHERE expires_at < now()`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
