package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string
	LogPretty   bool
	// ReadOnly rejects every mutating request except webhooks.
	ReadOnly    bool
	CORSOrigins []string

	PlaidClientID string
	PlaidSecret   string
	PlaidEnv      string
	// PlaidWebhookURL is registered on new Link tokens when set.
	PlaidWebhookURL string
	JWTSecret       string

	AnalysisLookbackMonths  int
	PaycheckMinAmount       float64
	PaycheckAmountTolerance float64
	PaycheckMinOccurrences  int
	AllocationHorizon       int
	CacheMaxCost            int64
	// CacheTTL bounds how long a derived snapshot is served.
	CacheTTL time.Duration
}

func Load() (Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	var errs []error
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogPretty:       getBool("LOG_PRETTY", false, &errs),
		ReadOnly:        getBool("READ_ONLY", false, &errs),
		PlaidClientID:   getEnv("PLAID_CLIENT_ID", ""),
		PlaidSecret:     getEnv("PLAID_SECRET", ""),
		PlaidEnv:        getEnv("PLAID_ENV", "sandbox"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		PlaidWebhookURL: getEnv("PLAID_WEBHOOK_URL", ""),
		CORSOrigins:     getList("CORS_ORIGINS", []string{"https://budgeeapp.com", "https://www.budgeeapp.com"}),

		AnalysisLookbackMonths:  getInt("ANALYSIS_LOOKBACK_MONTHS", 6, &errs),
		PaycheckMinAmount:       getFloat("PAYCHECK_MIN_AMOUNT", 500, &errs),
		PaycheckAmountTolerance: getFloat("PAYCHECK_AMOUNT_TOLERANCE", 0.10, &errs),
		PaycheckMinOccurrences:  getInt("PAYCHECK_MIN_OCCURRENCES", 2, &errs),
		AllocationHorizon:       getInt("ALLOCATION_HORIZON", 6, &errs),
		CacheMaxCost:            int64(getInt("CACHE_MAX_COST", 10000, &errs)),
		CacheTTL:                getDuration("CACHE_TTL", 15*time.Minute, &errs),
	}

	if cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if cfg.PlaidEnv != "sandbox" && cfg.PlaidEnv != "production" {
		errs = append(errs, fmt.Errorf("invalid PLAID_ENV %q", cfg.PlaidEnv))
	}
	if cfg.PaycheckMinOccurrences < 2 {
		errs = append(errs, errors.New("PAYCHECK_MIN_OCCURRENCES must be at least 2"))
	}
	return cfg, errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getInt(key string, fallback int, errs *[]error) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64, errs *[]error) float64 {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return f
}

func getBool(key string, fallback bool, errs *[]error) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}
