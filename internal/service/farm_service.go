package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nftgame/internal/domain"
	"nftgame/internal/economy"
	"nftgame/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FarmService computes and claims the passive per-hour reward derived
// from owned-asset farm power.
type FarmService struct {
	db         *pgxpool.Pool
	ledger     *LedgerService
	nftRepo    *repository.NFTRepository
	rewardRepo *repository.FarmRewardRepository
}

func NewFarmService(db *pgxpool.Pool, ledger *LedgerService) *FarmService {
	return &FarmService{
		db:         db,
		ledger:     ledger,
		nftRepo:    repository.NewNFTRepository(db),
		rewardRepo: repository.NewFarmRewardRepository(db),
	}
}

// FarmStats is the read-only farming view
type FarmStats struct {
	NFTCount            int64   `json:"nft_count"`
	FarmPower           int64   `json:"farm_power"`
	PendingReward       int64   `json:"pending_reward"`
	HoursSinceLastClaim float64 `json:"hours_since_last_claim"`
}

// ClaimResult reports one successful (or empty) claim
type ClaimResult struct {
	GoldCredited int64   `json:"gold_credited"`
	HoursAccrued float64 `json:"hours_accrued"`
}

// Stats computes the pending reward without claiming it
func (s *FarmService) Stats(ctx context.Context, userID int64) (*FarmStats, error) {
	nftCount, err := s.nftRepo.CountByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	farmPower, err := s.nftRepo.TotalFarmPower(ctx, userID)
	if err != nil {
		return nil, err
	}

	lastClaim, err := s.lastClaimOrSignup(ctx, userID)
	if err != nil {
		return nil, err
	}

	hours := economy.AccruedHours(lastClaim, time.Now().UTC())
	return &FarmStats{
		NFTCount:            nftCount,
		FarmPower:           farmPower,
		PendingReward:       economy.PendingReward(farmPower, hours),
		HoursSinceLastClaim: hours,
	}, nil
}

// Claim credits the pending reward and records the claim, atomically.
// The user row is locked first, so a concurrent claim for the same
// user waits and then observes this claim's timestamp, computing zero.
// A zero pending amount is a no-op: nothing is credited or recorded.
func (s *FarmService) Claim(ctx context.Context, userID int64) (*ClaimResult, error) {
	now := time.Now().UTC()
	result := &ClaimResult{}

	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		var createdAt time.Time
		err := tx.QueryRow(ctx,
			`SELECT created_at FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&createdAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrUserNotFound
			}
			return err
		}

		lastClaim, claimed, err := s.rewardRepo.LastClaimAtWithTx(ctx, tx, userID)
		if err != nil {
			return err
		}
		if !claimed {
			lastClaim = createdAt
		}

		farmPower, err := s.nftRepo.TotalFarmPowerWithTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		hours := economy.AccruedHours(lastClaim, now)
		pending := economy.PendingReward(farmPower, hours)
		result.HoursAccrued = hours
		if pending == 0 {
			return nil
		}

		if _, err := s.ledger.ApplyWithTx(ctx, tx, userID, pending, domain.TxFarmReward,
			fmt.Sprintf("Farm reward for %.1f hours", hours)); err != nil {
			return err
		}

		if err := s.rewardRepo.CreateWithTx(ctx, tx, &domain.FarmReward{
			UserID:    userID,
			Amount:    pending,
			ClaimedAt: now,
		}); err != nil {
			return err
		}

		result.GoldCredited = pending
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *FarmService) lastClaimOrSignup(ctx context.Context, userID int64) (time.Time, error) {
	lastClaim, claimed, err := s.rewardRepo.LastClaimAt(ctx, userID)
	if err != nil {
		return time.Time{}, err
	}
	if claimed {
		return lastClaim, nil
	}

	var createdAt time.Time
	err = s.db.QueryRow(ctx,
		`SELECT created_at FROM users WHERE id = $1`, userID).Scan(&createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, ErrUserNotFound
		}
		return time.Time{}, err
	}
	return createdAt, nil
}
