package repository

import (
	"context"
	"errors"

	"nftgame/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ConfigRepository struct {
	db *pgxpool.Pool
}

func NewConfigRepository(db *pgxpool.Pool) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// Get returns the stored value, or ok=false when the key is absent
func (r *ConfigRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(ctx,
		`SELECT value FROM config WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Upsert creates or replaces a key
func (r *ConfigRepository) Upsert(ctx context.Context, key, value string) (*domain.Config, error) {
	var cfg domain.Config
	err := r.db.QueryRow(ctx,
		`INSERT INTO config (key, value)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
		 RETURNING key, value`,
		key, value).Scan(&cfg.Key, &cfg.Value)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// List returns all stored keys
func (r *ConfigRepository) List(ctx context.Context) ([]*domain.Config, error) {
	rows, err := r.db.Query(ctx, `SELECT key, value FROM config ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Config
	for rows.Next() {
		var cfg domain.Config
		if err := rows.Scan(&cfg.Key, &cfg.Value); err != nil {
			return nil, err
		}
		result = append(result, &cfg)
	}
	return result, rows.Err()
}
