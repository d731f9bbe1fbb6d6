package handlers

import (
	"errors"
	"net/http"

	"nftgame/internal/logger"
	"nftgame/internal/repository"
	"nftgame/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HandlerConfig holds the knobs the handlers need beyond the store
type HandlerConfig struct {
	MinEntryFee int64
	AdTokenKey  string
}

type Handler struct {
	DB       *pgxpool.Pool
	Config   *service.ConfigService
	Ledger   *service.LedgerService
	Energy   *service.EnergyService
	Farm     *service.FarmService
	Battle   *service.BattleService
	Ads      *service.AdsService
	Auth     *service.AuthService
	UserRepo *repository.UserRepository
	NFTRepo  *repository.NFTRepository
}

func NewHandler(db *pgxpool.Pool, cfg HandlerConfig) *Handler {
	configSvc := service.NewConfigService(db)
	ledger := service.NewLedgerService(db)
	energy := service.NewEnergyService(db, ledger, configSvc)

	return &Handler{
		DB:       db,
		Config:   configSvc,
		Ledger:   ledger,
		Energy:   energy,
		Farm:     service.NewFarmService(db, ledger),
		Battle:   service.NewBattleService(db, ledger, energy, cfg.MinEntryFee),
		Ads:      service.NewAdsService(db, ledger, configSvc, service.NewAdTokenIssuer(cfg.AdTokenKey)),
		Auth:     service.NewAuthService(db),
		UserRepo: repository.NewUserRepository(db),
		NFTRepo:  repository.NewNFTRepository(db),
	}
}

// getUserID extracts the trusted user id set by the JWT middleware
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// econError maps business errors to HTTP responses. Anything outside
// the taxonomy is an unexpected persistence failure and surfaces as a
// generic 500.
func econError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDailyQuotaExceeded):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientFunds),
		errors.Is(err, service.ErrInsufficientEnergy),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidProvider),
		errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
