package config

import (
	"os"
	"strconv"

	"nftgame/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string
	AdTokenKey  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel string
	LogJSON  bool

	// Battle limits
	MinEntryFee int64

	// Per-user action rate limiting on economy endpoints
	ActionRateLimit  int
	ActionRateWindow int
}

// Load reads configuration from the environment
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	// Ad tokens are signed separately from session tokens so the two
	// secrets can be rotated independently.
	adTokenKey := os.Getenv("AD_TOKEN_KEY")
	if adTokenKey == "" {
		adTokenKey = jwtSecret
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	minEntryFee := int64(10)
	if v := os.Getenv("MIN_ENTRY_FEE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			minEntryFee = n
		}
	}

	actionRateLimit := 30 // economy actions per window
	if v := os.Getenv("ACTION_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			actionRateLimit = n
		}
	}

	actionRateWindow := 60 // seconds
	if v := os.Getenv("ACTION_RATE_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			actionRateWindow = n
		}
	}

	return &Config{
		AppPort:          port,
		DatabaseURL:      dbURL,
		JWTSecret:        jwtSecret,
		AdTokenKey:       adTokenKey,
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          redisDB,
		LogLevel:         os.Getenv("LOG_LEVEL"),
		LogJSON:          os.Getenv("LOG_JSON") == "true",
		MinEntryFee:      minEntryFee,
		ActionRateLimit:  actionRateLimit,
		ActionRateWindow: actionRateWindow,
	}
}
