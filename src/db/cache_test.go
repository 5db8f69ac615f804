package db

import (
	"testing"
	"time"

	"budgee-insights/src/models"
	"budgee-insights/src/paycheck"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	c, err := NewCache(100, ttl)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestCacheAnalysisRoundTrip(t *testing.T) {
	c := newTestCache(t, time.Minute)

	_, ok := c.GetAnalysis(1)
	assert.False(t, ok)

	a := models.Analysis{Flow: models.MonthlyFlow{Income: 3600}}
	assert.True(t, c.SetAnalysis(1, c.Generation(1), a))

	got, ok := c.GetAnalysis(1)
	require.True(t, ok)
	assert.Equal(t, 3600.0, got.Flow.Income)
}

func TestCacheInvalidateUser(t *testing.T) {
	c := newTestCache(t, time.Minute)

	c.SetAnalysis(1, c.Generation(1), models.Analysis{})
	c.SetDetection(1, c.Generation(1), paycheck.Detection{Message: "detected"})
	c.SetAnalysis(2, c.Generation(2), models.Analysis{})

	c.InvalidateUser(1)

	_, ok := c.GetAnalysis(1)
	assert.False(t, ok)
	_, ok = c.GetDetection(1)
	assert.False(t, ok)
	_, ok = c.GetAnalysis(2)
	assert.True(t, ok)
}

func TestCacheDropsSnapshotsFromBeforeInvalidation(t *testing.T) {
	c := newTestCache(t, time.Minute)

	// A computation starts, then a sync invalidates the user before it finishes.
	gen := c.Generation(1)
	c.InvalidateUser(1)

	assert.False(t, c.SetAnalysis(1, gen, models.Analysis{Flow: models.MonthlyFlow{Income: 1}}))
	assert.False(t, c.SetDetection(1, gen, paycheck.Detection{Message: "stale"}))
	_, ok := c.GetAnalysis(1)
	assert.False(t, ok)
	_, ok = c.GetDetection(1)
	assert.False(t, ok)

	// Other users are unaffected and a fresh generation is accepted.
	assert.True(t, c.SetAnalysis(2, gen, models.Analysis{}))
	assert.True(t, c.SetAnalysis(1, c.Generation(1), models.Analysis{}))
	_, ok = c.GetAnalysis(1)
	assert.True(t, ok)
}

func TestCacheEntriesExpire(t *testing.T) {
	c := newTestCache(t, 50*time.Millisecond)

	require.True(t, c.SetAnalysis(1, c.Generation(1), models.Analysis{}))
	_, ok := c.GetAnalysis(1)
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := c.GetAnalysis(1)
		return !ok
	}, 2*time.Second, 20*time.Millisecond)
}

func TestNilCacheIsANoop(t *testing.T) {
	var c *Cache
	assert.False(t, c.SetAnalysis(1, c.Generation(1), models.Analysis{}))
	_, ok := c.GetAnalysis(1)
	assert.False(t, ok)
	c.InvalidateUser(1)
	c.Close()
}
