package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const DefaultBaseURL = "https://api.tdameritrade.com/v1"

type Config struct {
	// TD Ameritrade API
	BaseURL     string
	AccountID   string
	AccessToken string
	HTTPTimeout time.Duration

	// Retry
	MaxAttempts       int
	RetryInitialDelay time.Duration
	RetryMaxDelay     time.Duration

	// Contract rules (strike grid, expiration) per ticker
	ContractRulesPath string

	// Telemetry
	LogLevel string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		BaseURL:     envStr("TDA_BASE_URL", DefaultBaseURL),
		AccountID:   envStr("TDA_ACCOUNT_ID", ""),
		AccessToken: envStr("TDA_ACCESS_TOKEN", ""),
		HTTPTimeout: time.Duration(envInt("TDA_HTTP_TIMEOUT_SEC", 10)) * time.Second,

		MaxAttempts:       envInt("TDA_MAX_ATTEMPTS", 3),
		RetryInitialDelay: time.Duration(envInt("TDA_RETRY_INITIAL_MS", 500)) * time.Millisecond,
		RetryMaxDelay:     time.Duration(envInt("TDA_RETRY_MAX_MS", 5000)) * time.Millisecond,

		ContractRulesPath: envStr("CONTRACT_RULES_PATH", ""),

		LogLevel: envStr("LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
