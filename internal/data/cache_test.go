package data

import (
	"testing"
	"time"

	"route-profitability/internal/model"
	"route-profitability/internal/sweep"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cacheReq = sweep.Request{
	DistanceNM:     1000,
	Aircraft:       model.AircraftProfile{AircraftType: "A320", Seats: 180, CruiseSpeedKts: 450, FuelBurnKgph: 2500},
	FuelPricePerKg: 0.9,
	Fares:          sweep.Range{Start: 50, Stop: 501, Step: 25},
	LoadFactors:    sweep.Range{Start: 0.5, Stop: 0.96, Step: 0.05},
}

func TestGridCache_Expiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewGridCache(time.Minute)
	c.now = func() time.Time { return now }

	table := sweep.GridTable{{AvgFare: 50, LoadFactor: 0.5}}
	c.Set("k", table)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, table, got)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.Prune())
	assert.Equal(t, 0, c.Len())
}

func TestGridCache_NilIsDisabled(t *testing.T) {
	c := NewGridCache(0)
	assert.Nil(t, c)
	c.Set("k", sweep.GridTable{})
	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Prune())
	c.Clear()
}

func TestGridCacheKey(t *testing.T) {
	costs := model.DefaultCostParams()
	k1 := GridCacheKey(cacheReq, costs)
	assert.Equal(t, k1, GridCacheKey(cacheReq, costs))
	assert.Len(t, k1, 64)

	other := cacheReq
	other.LoadFactors.Stop = 0.95
	assert.NotEqual(t, k1, GridCacheKey(other, costs))

	costs.AirportFees = 1200
	assert.NotEqual(t, k1, GridCacheKey(cacheReq, costs))
}
