package service

import (
	"context"
	"strconv"

	"nftgame/internal/domain"
	"nftgame/internal/logger"
	"nftgame/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// configDefaults backs every recognized key so a read never fails the
// caller: an absent row (or an unreachable config table) falls back to
// the bootstrap value.
var configDefaults = map[string]string{
	domain.KeyGoldBuyRate:        "10",
	domain.KeyGoldSellRate:       "20",
	domain.KeyDailyAdLimit:       "20",
	domain.KeyAdRewardGold:       "5",
	domain.KeyEnergyRegenMinutes: "5",
	domain.KeyEnergyCostGold:     "10",
}

// DefaultConfigValue returns the built-in default for a recognized key
func DefaultConfigValue(key string) (string, bool) {
	v, ok := configDefaults[key]
	return v, ok
}

// ConfigService reads and updates tunable economic parameters. Config
// changes are rare and brief staleness is tolerated, so values are read
// straight from the store on each use.
type ConfigService struct {
	repo *repository.ConfigRepository
}

func NewConfigService(db *pgxpool.Pool) *ConfigService {
	return &ConfigService{repo: repository.NewConfigRepository(db)}
}

// Get returns the current value for key, or its default when unset.
// Read errors are logged and degrade to the default.
func (s *ConfigService) Get(ctx context.Context, key string) string {
	value, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		logger.Error("config read failed, using default", "key", key, "error", err)
		return configDefaults[key]
	}
	if !ok {
		return configDefaults[key]
	}
	return value
}

// GetInt64 parses the value as an integer, falling back to the default
// when the stored value is malformed.
func (s *ConfigService) GetInt64(ctx context.Context, key string) int64 {
	raw := s.Get(ctx, key)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logger.Warn("config value is not numeric, using default", "key", key, "value", raw)
		n, _ = strconv.ParseInt(configDefaults[key], 10, 64)
	}
	return n
}

// Set upserts a key. Admin-only, enforced by the route middleware.
func (s *ConfigService) Set(ctx context.Context, key, value string) (*domain.Config, error) {
	return s.repo.Upsert(ctx, key, value)
}

// List returns all stored overrides
func (s *ConfigService) List(ctx context.Context) ([]*domain.Config, error) {
	return s.repo.List(ctx)
}
