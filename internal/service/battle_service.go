package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"nftgame/internal/domain"
	"nftgame/internal/economy"
	"nftgame/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BattleService resolves wagered combat. The outcome draw is injected
// so tests can force wins and losses; production uses math/rand.
type BattleService struct {
	db          *pgxpool.Pool
	ledger      *LedgerService
	energy      *EnergyService
	battleRepo  *repository.BattleRepository
	nftRepo     *repository.NFTRepository
	minEntryFee int64
	draw        func() float64
}

func NewBattleService(db *pgxpool.Pool, ledger *LedgerService, energy *EnergyService, minEntryFee int64) *BattleService {
	return NewBattleServiceWithDraw(db, ledger, energy, minEntryFee, rand.Float64)
}

func NewBattleServiceWithDraw(db *pgxpool.Pool, ledger *LedgerService, energy *EnergyService, minEntryFee int64, draw func() float64) *BattleService {
	if minEntryFee <= 0 {
		minEntryFee = 10
	}
	return &BattleService{
		db:          db,
		ledger:      ledger,
		energy:      energy,
		battleRepo:  repository.NewBattleRepository(db),
		nftRepo:     repository.NewNFTRepository(db),
		minEntryFee: minEntryFee,
		draw:        draw,
	}
}

// BattleOutcome is the result of one resolved wager
type BattleOutcome struct {
	Result    domain.BattleResult `json:"result"`
	Reward    int64               `json:"reward"`
	EntryFee  int64               `json:"entry_fee"`
	WinChance float64             `json:"win_chance"`
}

// Start runs one battle: verify funds, spend 10 energy, debit the
// entry fee, draw the outcome, credit 2x on a win and record the
// battle. The debit, credit and record are a single transaction. The
// energy spend commits on its own and is not refunded if the debit
// fails afterwards; entering a battle costs energy regardless.
func (s *BattleService) Start(ctx context.Context, userID, entryFee int64) (*BattleOutcome, error) {
	if entryFee < s.minEntryFee {
		return nil, ErrInvalidAmount
	}

	// Read-only pre-check; the conditional debit below is still the
	// authoritative atomic check.
	var balance int64
	err := s.db.QueryRow(ctx,
		`SELECT gold_balance FROM users WHERE id = $1`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if balance < entryFee {
		return nil, ErrInsufficientFunds
	}

	if err := s.energy.Spend(ctx, userID, economy.BattleEnergyCost); err != nil {
		return nil, err
	}

	outcome := &BattleOutcome{EntryFee: entryFee}
	err = inTx(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := s.ledger.ApplyWithTx(ctx, tx, userID, -entryFee, domain.TxBattleEntry,
			fmt.Sprintf("Battle entry fee: %d GOLD", entryFee)); err != nil {
			return err
		}

		battlePower, err := s.nftRepo.TotalBattlePowerWithTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		sim := economy.NewSimulation(battlePower)
		sim.Resolve(s.draw())
		outcome.WinChance = sim.WinChance

		var reward int64
		result := domain.BattleLoss
		if sim.Won {
			result = domain.BattleWin
			reward = sim.RewardFor(entryFee)
			if _, err := s.ledger.ApplyWithTx(ctx, tx, userID, reward, domain.TxBattleWin,
				fmt.Sprintf("Battle won: %d GOLD", reward)); err != nil {
				return err
			}
		}

		outcome.Result = result
		outcome.Reward = reward

		return s.battleRepo.CreateWithTx(ctx, tx, &domain.Battle{
			UserID:       userID,
			EntryFee:     entryFee,
			Reward:       reward,
			Result:       result,
			OpponentName: economy.OpponentName,
		})
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// History returns the user's recent battles
func (s *BattleService) History(ctx context.Context, userID int64, limit int) ([]*domain.Battle, error) {
	return s.battleRepo.GetByUserID(ctx, userID, limit)
}
