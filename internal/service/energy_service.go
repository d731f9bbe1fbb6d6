package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nftgame/internal/domain"
	"nftgame/internal/economy"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnergyService owns the energy fields of the user row. Energy is
// recomputed lazily from (last_energy_update, energy) on every spend,
// purchase and read; no background regeneration runs anywhere.
type EnergyService struct {
	db     *pgxpool.Pool
	ledger *LedgerService
	config *ConfigService
}

func NewEnergyService(db *pgxpool.Pool, ledger *LedgerService, config *ConfigService) *EnergyService {
	return &EnergyService{db: db, ledger: ledger, config: config}
}

// EnergyStatus is the lazily recomputed view of a user's energy
type EnergyStatus struct {
	Energy       int   `json:"energy"`
	MaxEnergy    int   `json:"max_energy"`
	RegenMinutes int   `json:"regen_minutes"`
	NextRegenSec int64 `json:"next_regen_sec"`
}

// Spend recomputes current energy and deducts amount, resetting the
// regen timestamp. Fails with ErrInsufficientEnergy without mutation.
func (s *EnergyService) Spend(ctx context.Context, userID int64, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	regenMinutes := int(s.config.GetInt64(ctx, domain.KeyEnergyRegenMinutes))

	return inTx(ctx, s.db, func(tx pgx.Tx) error {
		stored, maxEnergy, lastUpdate, err := lockEnergyRow(ctx, tx, userID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		current := economy.CurrentEnergy(stored, maxEnergy, lastUpdate, now, regenMinutes)
		if current < amount {
			return ErrInsufficientEnergy
		}

		_, err = tx.Exec(ctx,
			`UPDATE users SET energy = $1, last_energy_update = $2 WHERE id = $3`,
			current-amount, now, userID)
		return err
	})
}

// Buy purchases amount energy points at ENERGY_COST_GOLD each. The
// debit and the energy update commit together; an InsufficientFunds
// failure from the ledger leaves the energy state untouched. Purchases
// above the cap are accepted but the surplus is discarded.
func (s *EnergyService) Buy(ctx context.Context, userID int64, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	costPerPoint := s.config.GetInt64(ctx, domain.KeyEnergyCostGold)
	regenMinutes := int(s.config.GetInt64(ctx, domain.KeyEnergyRegenMinutes))
	cost, ok := economy.PurchaseCost(amount, costPerPoint)
	if !ok {
		return ErrInvalidAmount
	}

	return inTx(ctx, s.db, func(tx pgx.Tx) error {
		stored, maxEnergy, lastUpdate, err := lockEnergyRow(ctx, tx, userID)
		if err != nil {
			return err
		}

		if _, err := s.ledger.ApplyWithTx(ctx, tx, userID, -cost, domain.TxEnergyPurchase,
			fmt.Sprintf("Bought %d energy", amount)); err != nil {
			return err
		}

		now := time.Now().UTC()
		current := economy.CurrentEnergy(stored, maxEnergy, lastUpdate, now, regenMinutes)
		current += amount
		if current > maxEnergy {
			current = maxEnergy
		}

		_, err = tx.Exec(ctx,
			`UPDATE users SET energy = $1, last_energy_update = $2 WHERE id = $3`,
			current, now, userID)
		return err
	})
}

// Status returns the current energy without mutating anything
func (s *EnergyService) Status(ctx context.Context, userID int64) (*EnergyStatus, error) {
	var stored, maxEnergy int
	var lastUpdate time.Time
	err := s.db.QueryRow(ctx,
		`SELECT energy, max_energy, last_energy_update FROM users WHERE id = $1`,
		userID).Scan(&stored, &maxEnergy, &lastUpdate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	regenMinutes := int(s.config.GetInt64(ctx, domain.KeyEnergyRegenMinutes))
	now := time.Now().UTC()

	return &EnergyStatus{
		Energy:       economy.CurrentEnergy(stored, maxEnergy, lastUpdate, now, regenMinutes),
		MaxEnergy:    maxEnergy,
		RegenMinutes: regenMinutes,
		NextRegenSec: int64(economy.NextRegenIn(stored, maxEnergy, lastUpdate, now, regenMinutes).Seconds()),
	}, nil
}

// lockEnergyRow locks the user row for the duration of the transaction
// and returns the stored energy state.
func lockEnergyRow(ctx context.Context, tx pgx.Tx, userID int64) (stored, maxEnergy int, lastUpdate time.Time, err error) {
	err = tx.QueryRow(ctx,
		`SELECT energy, max_energy, last_energy_update FROM users WHERE id = $1 FOR UPDATE`,
		userID).Scan(&stored, &maxEnergy, &lastUpdate)
	if errors.Is(err, pgx.ErrNoRows) {
		err = ErrUserNotFound
	}
	return
}
