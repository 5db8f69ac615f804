package db

import (
	"fmt"
	"sync"
	"time"

	"budgee-insights/src/models"
	"budgee-insights/src/paycheck"

	"github.com/dgraph-io/ristretto"
)

const defaultCacheTTL = 15 * time.Minute

// Cache holds derived per-user snapshots. Keys are tracked per user so a
// sync or an override can drop everything derived from the old data.
//
// Each user also carries a generation that InvalidateUser bumps. A snapshot
// is only stored if the generation read before computing it is still
// current, so a result built from data that changed underneath it is dropped.
type Cache struct {
	store *ristretto.Cache
	ttl   time.Duration

	mu       sync.Mutex
	userKeys map[int64]map[string]struct{}
	gens     map[int64]uint64
}

func NewCache(maxCost int64, ttl time.Duration) (*Cache, error) {
	if maxCost <= 0 {
		maxCost = 10000
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxCost * 10, // number of keys to track frequency of
		MaxCost:     maxCost,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	return &Cache{
		store:    store,
		ttl:      ttl,
		userKeys: make(map[int64]map[string]struct{}),
		gens:     make(map[int64]uint64),
	}, nil
}

func analysisKey(userID int64) string {
	return fmt.Sprintf("analysis:%d", userID)
}

func detectionKey(userID int64) string {
	return fmt.Sprintf("paycheck:%d", userID)
}

// Generation returns the user's current generation. Read it before loading
// the data a snapshot is computed from and hand it back to the setter.
func (c *Cache) Generation(userID int64) uint64 {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[userID]
}

// GetAnalysis is safe on a nil cache.
func (c *Cache) GetAnalysis(userID int64) (models.Analysis, bool) {
	if c == nil {
		return models.Analysis{}, false
	}
	v, ok := c.store.Get(analysisKey(userID))
	if !ok {
		return models.Analysis{}, false
	}
	a, ok := v.(models.Analysis)
	return a, ok
}

// SetAnalysis reports whether the snapshot was stored.
func (c *Cache) SetAnalysis(userID int64, gen uint64, a models.Analysis) bool {
	return c.set(userID, gen, analysisKey(userID), a)
}

// GetDetection returns the last paycheck detection computed for a user.
func (c *Cache) GetDetection(userID int64) (paycheck.Detection, bool) {
	if c == nil {
		return paycheck.Detection{}, false
	}
	v, ok := c.store.Get(detectionKey(userID))
	if !ok {
		return paycheck.Detection{}, false
	}
	d, ok := v.(paycheck.Detection)
	return d, ok
}

func (c *Cache) SetDetection(userID int64, gen uint64, d paycheck.Detection) bool {
	return c.set(userID, gen, detectionKey(userID), d)
}

func (c *Cache) set(userID int64, gen uint64, key string, value interface{}) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[userID] != gen {
		return false
	}
	keys, ok := c.userKeys[userID]
	if !ok {
		keys = make(map[string]struct{})
		c.userKeys[userID] = keys
	}
	keys[key] = struct{}{}

	// Held across Wait so an invalidation cannot slip in before the write lands.
	stored := c.store.SetWithTTL(key, value, 1, c.ttl)
	c.store.Wait()
	return stored
}

// InvalidateUser drops every snapshot derived for the user and retires the
// generation any in-flight computation started from.
func (c *Cache) InvalidateUser(userID int64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[userID]++
	for key := range c.userKeys[userID] {
		c.store.Del(key)
	}
	delete(c.userKeys, userID)
}

func (c *Cache) Close() {
	if c != nil {
		c.store.Close()
	}
}
