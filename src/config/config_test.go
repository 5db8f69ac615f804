package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/budgee")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sandbox", cfg.PlaidEnv)
	assert.Equal(t, 6, cfg.AnalysisLookbackMonths)
	assert.Equal(t, 500.0, cfg.PaycheckMinAmount)
	assert.Equal(t, 0.10, cfg.PaycheckAmountTolerance)
	assert.Equal(t, 2, cfg.PaycheckMinOccurrences)
	assert.Equal(t, 6, cfg.AllocationHorizon)
	assert.Equal(t, int64(10000), cfg.CacheMaxCost)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.False(t, cfg.ReadOnly)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ANALYSIS_LOOKBACK_MONTHS", "12")
	t.Setenv("PAYCHECK_MIN_AMOUNT", "750.5")
	t.Setenv("READ_ONLY", "true")
	t.Setenv("PLAID_ENV", "production")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("CACHE_TTL", "90s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.AnalysisLookbackMonths)
	assert.Equal(t, 750.5, cfg.PaycheckMinAmount)
	assert.True(t, cfg.ReadOnly)
	assert.Equal(t, "production", cfg.PlaidEnv)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
}

func TestLoadReportsEveryProblem(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PLAID_ENV", "staging")
	t.Setenv("PAYCHECK_MIN_OCCURRENCES", "two")

	_, err := Load()
	require.Error(t, err)
	for _, want := range []string{"DATABASE_URL", "JWT_SECRET", "PLAID_ENV", "PAYCHECK_MIN_OCCURRENCES"} {
		assert.Contains(t, err.Error(), want)
	}
}
