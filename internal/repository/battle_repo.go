package repository

import (
	"context"

	"nftgame/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BattleRepository struct {
	db *pgxpool.Pool
}

func NewBattleRepository(db *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{db: db}
}

// CreateWithTx appends an immutable battle record inside the resolving
// transaction, so the record and the balance effects commit together.
func (r *BattleRepository) CreateWithTx(ctx context.Context, dbTx pgx.Tx, b *domain.Battle) error {
	return dbTx.QueryRow(ctx,
		`INSERT INTO battles (user_id, entry_fee, reward, result, opponent_name)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		b.UserID, b.EntryFee, b.Reward, b.Result, b.OpponentName,
	).Scan(&b.ID, &b.CreatedAt)
}

// GetByUserID returns recent battles, newest first
func (r *BattleRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]*domain.Battle, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, entry_fee, reward, result, opponent_name, created_at
		 FROM battles
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Battle
	for rows.Next() {
		var b domain.Battle
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.EntryFee, &b.Reward,
			&b.Result, &b.OpponentName, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &b)
	}
	return result, rows.Err()
}
