package service

import (
	"context"
	"errors"

	"nftgame/internal/domain"
	"nftgame/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GoldPerUSD is the fixed display peg: 20 GOLD = 1 USD. USD is never
// mutated independently; the ledger derives it from every gold delta.
const GoldPerUSD = 20

// LedgerService is the single component allowed to mutate balances.
// Every change goes through Apply/ApplyWithTx, which updates both
// currencies and appends one transaction row as a single atomic unit.
type LedgerService struct {
	db              *pgxpool.Pool
	transactionRepo *repository.TransactionRepository
}

func NewLedgerService(db *pgxpool.Pool) *LedgerService {
	return &LedgerService{
		db:              db,
		transactionRepo: repository.NewTransactionRepository(db),
	}
}

// Apply moves goldDelta (signed) on the user's balance in its own
// transaction. Fails with ErrInsufficientFunds, leaving no mutation,
// if the resulting gold balance would be negative.
func (s *LedgerService) Apply(ctx context.Context, userID, goldDelta int64, txType, description string) (*domain.Transaction, error) {
	var out *domain.Transaction
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		t, err := s.ApplyWithTx(ctx, tx, userID, goldDelta, txType, description)
		out = t
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyWithTx is Apply inside an existing transaction. The balance
// check and the update are one conditional statement, never a separate
// read-then-write, so concurrent appliers can not interleave between
// them. The row lock it takes also serializes the rest of the caller's
// transaction against other writers of the same user.
func (s *LedgerService) ApplyWithTx(ctx context.Context, tx pgx.Tx, userID, goldDelta int64, txType, description string) (*domain.Transaction, error) {
	var gold int64
	var usd float64
	err := tx.QueryRow(ctx,
		`UPDATE users
		 SET gold_balance = gold_balance + $1,
		     usd_balance  = (gold_balance + $1)::double precision / $3
		 WHERE id = $2 AND gold_balance + $1 >= 0
		 RETURNING gold_balance, usd_balance`,
		goldDelta, userID, GoldPerUSD,
	).Scan(&gold, &usd)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// no row updated: either the user is missing or the
			// balance would go negative
			var exists bool
			_ = tx.QueryRow(ctx,
				`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
			if !exists {
				return nil, ErrUserNotFound
			}
			return nil, ErrInsufficientFunds
		}
		return nil, err
	}

	t := &domain.Transaction{
		UserID:      userID,
		Type:        txType,
		GoldAmount:  goldDelta,
		USDAmount:   float64(goldDelta) / GoldPerUSD,
		Description: description,
	}
	if err := s.transactionRepo.CreateWithTx(ctx, tx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetBalance returns the user's current gold and usd balances
func (s *LedgerService) GetBalance(ctx context.Context, userID int64) (int64, float64, error) {
	var gold int64
	var usd float64
	err := s.db.QueryRow(ctx,
		`SELECT gold_balance, usd_balance FROM users WHERE id = $1`, userID).Scan(&gold, &usd)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, ErrUserNotFound
		}
		return 0, 0, err
	}
	return gold, usd, nil
}

// History returns the user's recent ledger entries
func (s *LedgerService) History(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	return s.transactionRepo.GetByUserID(ctx, userID, limit)
}

// HistoryByType returns recent ledger entries of one transaction type
func (s *LedgerService) HistoryByType(ctx context.Context, userID int64, txType string, limit int) ([]*domain.Transaction, error) {
	return s.transactionRepo.GetByUserIDAndType(ctx, userID, txType, limit)
}
