package repository

import (
	"context"

	"nftgame/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, username, password_hash, gold_balance, usd_balance,
	 energy, max_energy, last_energy_update, is_admin, created_at`

// Create inserts a new user with the starting bonus already applied.
// The bonus is part of the initial state, not a ledger transaction.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	const startingGold = 100
	const startingUSD = 5.0

	return r.db.QueryRow(ctx,
		`INSERT INTO users (email, username, password_hash, gold_balance, usd_balance, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, gold_balance, usd_balance, energy, max_energy, last_energy_update, created_at`,
		u.Email, u.Username, u.PasswordHash, startingGold, startingUSD, u.IsAdmin,
	).Scan(&u.ID, &u.GoldBalance, &u.USDBalance, &u.Energy, &u.MaxEnergy, &u.LastEnergyUpdate, &u.CreatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	var u domain.User
	if err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash,
		&u.GoldBalance, &u.USDBalance,
		&u.Energy, &u.MaxEnergy, &u.LastEnergyUpdate,
		&u.IsAdmin, &u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	var u domain.User
	if err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash,
		&u.GoldBalance, &u.USDBalance,
		&u.Energy, &u.MaxEnergy, &u.LastEnergyUpdate,
		&u.IsAdmin, &u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// ExistsByEmailOrUsername is used at registration to reject duplicates
func (r *UserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 OR username = $2)`,
		email, username,
	).Scan(&exists)
	return exists, err
}

// AdminExists reports whether any admin account has been created
func (r *UserRepository) AdminExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE is_admin)`,
	).Scan(&exists)
	return exists, err
}
