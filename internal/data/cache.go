package data

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"route-profitability/internal/model"
	"route-profitability/internal/sweep"
)

type cacheEntry struct {
	table     sweep.GridTable
	expiresAt time.Time
}

// GridCache keeps recently computed grids in memory so repeated surface and
// export requests for the same sweep are not recomputed.
// A nil *GridCache is valid and caches nothing.
// Cached tables are shared; callers must not modify them.
type GridCache struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewGridCache returns nil (caching disabled) when ttl <= 0.
func NewGridCache(ttl time.Duration) *GridCache {
	if ttl <= 0 {
		return nil
	}
	return &GridCache{
		store: make(map[string]cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get retrieves a cached grid if present and not expired.
func (c *GridCache) Get(key string) (sweep.GridTable, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.store[key]
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.table, true
}

func (c *GridCache) Set(key string, table sweep.GridTable) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = cacheEntry{table: table, expiresAt: c.now().Add(c.ttl)}
}

func (c *GridCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

func (c *GridCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]cacheEntry)
}

// Prune removes expired entries and returns how many were dropped.
func (c *GridCache) Prune() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	n := 0
	for k, e := range c.store {
		if now.After(e.expiresAt) {
			delete(c.store, k)
			n++
		}
	}
	return n
}

// Run prunes every interval until ctx is done.
func (c *GridCache) Run(ctx context.Context, interval time.Duration) {
	if c == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Prune()
		}
	}
}

// GridCacheKey derives a deterministic key from everything that affects a sweep.
func GridCacheKey(req sweep.Request, costs model.CostParams) string {
	a := req.Aircraft
	keyStr := fmt.Sprintf("%v|%s:%d:%v:%v:%v|%v|%v|%v|%v:%v:%v:%v",
		req.DistanceNM,
		a.AircraftType, a.Seats, a.CruiseSpeedKts, a.FuelBurnKgph, a.FixedCostsPerFlight,
		req.FuelPricePerKg,
		req.Fares,
		req.LoadFactors,
		costs.AncillariesPerPassenger, costs.CrewCostPerFlight, costs.MaintenancePerBlockHour, costs.AirportFees,
	)
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
