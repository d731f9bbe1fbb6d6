package repository

import (
	"context"

	"nftgame/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// CreateWithTx appends a ledger row inside an existing database
// transaction. The ledger is append-only; rows are never updated.
func (r *TransactionRepository) CreateWithTx(ctx context.Context, dbTx pgx.Tx, tx *domain.Transaction) error {
	return dbTx.QueryRow(ctx,
		`INSERT INTO transactions (user_id, type, gold_amount, usd_amount, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		tx.UserID, tx.Type, tx.GoldAmount, tx.USDAmount, tx.Description,
	).Scan(&tx.ID, &tx.CreatedAt)
}

// GetByUserID returns recent transactions for a user
func (r *TransactionRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, gold_amount, usd_amount, description, created_at
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactionRows(rows)
}

// GetByUserIDAndType returns transactions filtered by type
func (r *TransactionRepository) GetByUserIDAndType(ctx context.Context, userID int64, txType string, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, gold_amount, usd_amount, description, created_at
		 FROM transactions
		 WHERE user_id = $1 AND type = $2
		 ORDER BY created_at DESC
		 LIMIT $3`,
		userID, txType, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactionRows(rows)
}

func scanTransactionRows(rows pgx.Rows) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.Type,
			&tx.GoldAmount, &tx.USDAmount, &tx.Description, &tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &tx)
	}
	return result, rows.Err()
}
