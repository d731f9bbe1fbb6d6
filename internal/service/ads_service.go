package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nftgame/internal/domain"
	"nftgame/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdsService pays the rate-limited reward for completed ad views. The
// quota window is the current UTC calendar day.
type AdsService struct {
	db         *pgxpool.Pool
	ledger     *LedgerService
	config     *ConfigService
	adViewRepo *repository.AdViewRepository
	tokens     *AdTokenIssuer
}

func NewAdsService(db *pgxpool.Pool, ledger *LedgerService, config *ConfigService, tokens *AdTokenIssuer) *AdsService {
	return &AdsService{
		db:         db,
		ledger:     ledger,
		config:     config,
		adViewRepo: repository.NewAdViewRepository(db),
		tokens:     tokens,
	}
}

// WatchResult reports one rewarded view and the remaining quota
type WatchResult struct {
	Reward    int64 `json:"reward"`
	Remaining int64 `json:"remaining"`
}

// IssueToken returns a signed single-use token for the given provider
func (s *AdsService) IssueToken(userID int64, provider domain.AdProvider) (string, error) {
	if !domain.ValidProvider(provider) {
		return "", ErrInvalidProvider
	}
	return s.tokens.Issue(userID, provider, time.Now().UTC()), nil
}

// Watch verifies the token, checks the daily quota and credits the
// reward, all-or-nothing. The same "now" instant is used for the
// window-start computation and the recorded view, so a call can not
// straddle the UTC midnight boundary.
func (s *AdsService) Watch(ctx context.Context, userID int64, provider domain.AdProvider, adToken string) (*WatchResult, error) {
	if !domain.ValidProvider(provider) {
		return nil, ErrInvalidProvider
	}
	if len(adToken) < 32 {
		return nil, ErrInvalidToken
	}

	now := time.Now().UTC()
	if err := s.tokens.Verify(userID, provider, adToken, now); err != nil {
		return nil, err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dailyLimit := s.config.GetInt64(ctx, domain.KeyDailyAdLimit)
	reward := s.config.GetInt64(ctx, domain.KeyAdRewardGold)

	result := &WatchResult{}
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		// Lock the user row so concurrent watch calls for the same
		// user serialize around the quota count.
		var exists int64
		if err := tx.QueryRow(ctx,
			`SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&exists); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrUserNotFound
			}
			return err
		}

		count, err := s.adViewRepo.CountCompletedSinceWithTx(ctx, tx, userID, dayStart)
		if err != nil {
			return err
		}
		if count >= dailyLimit {
			return ErrDailyQuotaExceeded
		}

		if err := s.adViewRepo.CreateWithTx(ctx, tx, &domain.AdView{
			UserID:     userID,
			Provider:   provider,
			AdToken:    adToken,
			GoldReward: reward,
			Completed:  true,
			CreatedAt:  now,
		}); err != nil {
			if uniqueViolation(err) {
				// token replay
				return ErrInvalidToken
			}
			return err
		}

		if _, err := s.ledger.ApplyWithTx(ctx, tx, userID, reward, domain.TxAdReward,
			fmt.Sprintf("Watched %s ad", provider)); err != nil {
			return err
		}

		result.Reward = reward
		result.Remaining = dailyLimit - count - 1
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RemainingToday returns how many rewarded views the user has left in
// the current UTC day.
func (s *AdsService) RemainingToday(ctx context.Context, userID int64) (int64, error) {
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	count, err := s.adViewRepo.CountCompletedSince(ctx, userID, dayStart)
	if err != nil {
		return 0, err
	}

	remaining := s.config.GetInt64(ctx, domain.KeyDailyAdLimit) - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
