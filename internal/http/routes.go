package http

import (
	"os"
	"strconv"
	"time"

	"nftgame/internal/config"
	"nftgame/internal/http/handlers"
	"nftgame/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	h := handlers.NewHandler(db, handlers.HandlerConfig{
		MinEntryFee: cfg.MinEntryFee,
		AdTokenKey:  cfg.AdTokenKey,
	})
	healthHandler := handlers.NewHealthHandler(db, version)

	// read limits from env, with safe defaults
	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	authRateLimit := 5
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateLimit = n
		}
	}
	authRateWindow := time.Minute
	if v := os.Getenv("AUTH_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateWindow = time.Duration(n) * time.Second
		}
	}

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	actionRateWindow := time.Duration(cfg.ActionRateWindow) * time.Second

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))
	registerAPIRoutes(v1, h, authRateLimit, authRateWindow, cfg.ActionRateLimit, actionRateWindow)

	// Legacy /api routes kept for older clients
	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))
	api.GET("/health", healthHandler.Health)
	registerAPIRoutes(api, h, authRateLimit, authRateWindow, cfg.ActionRateLimit, actionRateWindow)
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, authRateLimit int, authRateWindow time.Duration, actionRateLimit int, actionRateWindow time.Duration) {
	// Auth (tighter per-IP limit to slow credential stuffing)
	authRL := middleware.RedisRateLimit(authRateLimit, authRateWindow)
	api.POST("/auth/register", authRL, h.Register)
	api.POST("/auth/login", authRL, h.Login)

	// User profile
	api.GET("/me", middleware.JWT(), h.Me)
	api.GET("/history", middleware.JWT(), h.History)

	// NFT assets
	api.GET("/nfts", middleware.JWT(), h.MyNFTs)
	api.GET("/nfts/catalog", h.NFTCatalog)

	// Economy actions get a per-user rate limiter on top of the
	// per-IP one.
	actionRL := middleware.ActionRateLimit(actionRateLimit, actionRateWindow)

	// Farming
	api.GET("/farm/stats", middleware.JWT(), h.FarmStats)
	api.POST("/farm/claim", middleware.JWT(), actionRL, h.FarmClaim)

	// Battles
	api.POST("/battle/start", middleware.JWT(), actionRL, h.BattleStart)
	api.GET("/battles", middleware.JWT(), h.BattleHistory)

	// Energy
	api.GET("/energy/status", middleware.JWT(), h.EnergyStatus)
	api.POST("/energy/buy", middleware.JWT(), actionRL, h.EnergyBuy)

	// Ad rewards
	api.GET("/ads/token", middleware.JWT(), h.AdToken)
	api.GET("/ads/status", middleware.JWT(), h.AdStatus)
	api.POST("/ads/watch", middleware.JWT(), actionRL, h.AdWatch)

	// Admin config
	admin := api.Group("/admin")
	admin.Use(middleware.JWT(), middleware.AdminOnly())
	{
		admin.GET("/config", h.GetConfig)
		admin.POST("/config", h.SetConfig)
	}
}
