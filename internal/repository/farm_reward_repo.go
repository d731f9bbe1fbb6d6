package repository

import (
	"context"
	"errors"
	"time"

	"nftgame/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FarmRewardRepository struct {
	db *pgxpool.Pool
}

func NewFarmRewardRepository(db *pgxpool.Pool) *FarmRewardRepository {
	return &FarmRewardRepository{db: db}
}

// LastClaimAtWithTx returns the most recent claim time, or ok=false if
// the user has never claimed.
func (r *FarmRewardRepository) LastClaimAtWithTx(ctx context.Context, dbTx pgx.Tx, userID int64) (time.Time, bool, error) {
	var at time.Time
	err := dbTx.QueryRow(ctx,
		`SELECT claimed_at FROM farm_rewards
		 WHERE user_id = $1
		 ORDER BY claimed_at DESC
		 LIMIT 1`,
		userID).Scan(&at)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return at, true, nil
}

// LastClaimAt is the pool-backed variant for read-only stats
func (r *FarmRewardRepository) LastClaimAt(ctx context.Context, userID int64) (time.Time, bool, error) {
	var at time.Time
	err := r.db.QueryRow(ctx,
		`SELECT claimed_at FROM farm_rewards
		 WHERE user_id = $1
		 ORDER BY claimed_at DESC
		 LIMIT 1`,
		userID).Scan(&at)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return at, true, nil
}

// CreateWithTx appends one claim record inside the claiming transaction
func (r *FarmRewardRepository) CreateWithTx(ctx context.Context, dbTx pgx.Tx, fr *domain.FarmReward) error {
	return dbTx.QueryRow(ctx,
		`INSERT INTO farm_rewards (user_id, amount, claimed_at)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		fr.UserID, fr.Amount, fr.ClaimedAt,
	).Scan(&fr.ID)
}
