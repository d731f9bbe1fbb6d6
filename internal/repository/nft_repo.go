package repository

import (
	"context"

	"nftgame/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NFTRepository struct {
	db *pgxpool.Pool
}

func NewNFTRepository(db *pgxpool.Pool) *NFTRepository {
	return &NFTRepository{db: db}
}

const nftColumns = `id, owner_id, name, description, image_url, rarity,
	 farm_power, battle_power, price_gold, price_usd, created_at`

// ListByOwner returns the user's assets, newest first
func (r *NFTRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.NFT, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+nftColumns+` FROM nfts WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNFTRows(rows)
}

// ListCatalog returns unowned assets available in the catalog
func (r *NFTRepository) ListCatalog(ctx context.Context) ([]*domain.NFT, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+nftColumns+` FROM nfts WHERE owner_id IS NULL ORDER BY price_gold ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNFTRows(rows)
}

func (r *NFTRepository) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM nfts WHERE owner_id = $1`, ownerID).Scan(&n)
	return n, err
}

// TotalFarmPower sums farm power over the user's owned assets
func (r *NFTRepository) TotalFarmPower(ctx context.Context, ownerID int64) (int64, error) {
	var power int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(farm_power), 0) FROM nfts WHERE owner_id = $1`,
		ownerID).Scan(&power)
	return power, err
}

// TotalFarmPowerWithTx is the claim-transaction variant, read while
// the user row is locked.
func (r *NFTRepository) TotalFarmPowerWithTx(ctx context.Context, dbTx pgx.Tx, ownerID int64) (int64, error) {
	var power int64
	err := dbTx.QueryRow(ctx,
		`SELECT COALESCE(SUM(farm_power), 0) FROM nfts WHERE owner_id = $1`,
		ownerID).Scan(&power)
	return power, err
}

// TotalBattlePowerWithTx sums battle power inside the battle
// transaction.
func (r *NFTRepository) TotalBattlePowerWithTx(ctx context.Context, dbTx pgx.Tx, ownerID int64) (int64, error) {
	var power int64
	err := dbTx.QueryRow(ctx,
		`SELECT COALESCE(SUM(battle_power), 0) FROM nfts WHERE owner_id = $1`,
		ownerID).Scan(&power)
	return power, err
}

// Create inserts a catalog asset (bootstrap seeding)
func (r *NFTRepository) Create(ctx context.Context, n *domain.NFT) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO nfts (owner_id, name, description, image_url, rarity,
		  farm_power, battle_power, price_gold, price_usd)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		n.OwnerID, n.Name, n.Description, n.ImageURL, n.Rarity,
		n.FarmPower, n.BattlePower, n.PriceGold, n.PriceUSD,
	).Scan(&n.ID, &n.CreatedAt)
}

func scanNFTRows(rows pgx.Rows) ([]*domain.NFT, error) {
	var result []*domain.NFT
	for rows.Next() {
		var n domain.NFT
		if err := rows.Scan(
			&n.ID, &n.OwnerID, &n.Name, &n.Description, &n.ImageURL, &n.Rarity,
			&n.FarmPower, &n.BattlePower, &n.PriceGold, &n.PriceUSD, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &n)
	}
	return result, rows.Err()
}
