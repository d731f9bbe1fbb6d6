package repository

import (
	"context"
	"time"

	"nftgame/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdViewRepository struct {
	db *pgxpool.Pool
}

func NewAdViewRepository(db *pgxpool.Pool) *AdViewRepository {
	return &AdViewRepository{db: db}
}

// CountCompletedSinceWithTx counts completed views recorded at or
// after the given instant. Called inside the quota transaction while
// the user row is locked, so concurrent watch calls serialize.
func (r *AdViewRepository) CountCompletedSinceWithTx(ctx context.Context, dbTx pgx.Tx, userID int64, since time.Time) (int64, error) {
	var n int64
	err := dbTx.QueryRow(ctx,
		`SELECT COUNT(*) FROM ad_views
		 WHERE user_id = $1 AND completed AND created_at >= $2`,
		userID, since).Scan(&n)
	return n, err
}

// CreateWithTx records a completed view. created_at is set explicitly
// to the single timestamp captured at the start of the watch call.
// The unique index on ad_token makes a token consumable exactly once.
func (r *AdViewRepository) CreateWithTx(ctx context.Context, dbTx pgx.Tx, v *domain.AdView) error {
	return dbTx.QueryRow(ctx,
		`INSERT INTO ad_views (user_id, provider, ad_token, gold_reward, completed, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		v.UserID, v.Provider, v.AdToken, v.GoldReward, v.Completed, v.CreatedAt,
	).Scan(&v.ID)
}

// CountCompletedSince is the pool-backed variant used for read-only
// stats outside a quota transaction.
func (r *AdViewRepository) CountCompletedSince(ctx context.Context, userID int64, since time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM ad_views
		 WHERE user_id = $1 AND completed AND created_at >= $2`,
		userID, since).Scan(&n)
	return n, err
}
