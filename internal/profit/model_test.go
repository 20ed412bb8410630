package profit

import (
	"math"
	"testing"

	"route-profitability/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var a320 = model.AircraftProfile{
	AircraftType:        "A320",
	Seats:               180,
	CruiseSpeedKts:      450,
	FuelBurnKgph:        2500,
	FixedCostsPerFlight: 500,
}

func TestBlockTime(t *testing.T) {
	assert.InDelta(t, 1000.0/450.0+0.75, BlockTime(1000, 450), 1e-12)
	assert.Equal(t, 2.0, BlockTimeWith(900, 450, BlockAllowances{}))
	assert.Equal(t, 3.0, BlockTimeWith(900, 450, BlockAllowances{TaxiMinutes: 45, ContingencyMinutes: 15}))
	assert.True(t, math.IsInf(BlockTime(1000, 0), 1))
}

func TestComputeProfit_ReferenceScenario(t *testing.T) {
	res := ComputeProfit(model.NewScenario(1000, a320, 200, 0.85, 0.9))

	assert.Equal(t, model.ProfitResult{
		DistanceNM:         1000,
		BlockTimeH:         2.972,
		Revenue:            33660.00,
		TotalCost:          11673.61,
		Profit:             21986.39,
		ProfitMargin:       0.6532,
		ProfitPerPassenger: 143.70,
	}, res)
}

func TestComputeProfit_NoFixedCosts(t *testing.T) {
	ac := a320
	ac.FixedCostsPerFlight = 0
	res := ComputeProfit(model.NewScenario(1000, ac, 200, 0.85, 0.9))

	assert.Equal(t, 11173.61, res.TotalCost)
	assert.Equal(t, 22486.39, res.Profit)
	assert.Equal(t, 0.668, res.ProfitMargin)
	assert.Equal(t, 146.97, res.ProfitPerPassenger)
}

func TestComputeProfit_CostOverrides(t *testing.T) {
	s := model.NewScenario(2500, a320, 150, 0.7, 1.1)
	s.Costs = model.CostParams{
		AncillariesPerPassenger: 25,
		CrewCostPerFlight:       2500,
		MaintenancePerBlockHour: 600,
		AirportFees:             1500,
	}
	res := ComputeProfit(s)

	assert.Equal(t, 6.306, res.BlockTimeH)
	assert.Equal(t, 22050.0, res.Revenue)
	assert.Equal(t, 25623.61, res.TotalCost)
	assert.Equal(t, -3573.61, res.Profit)
	assert.Equal(t, -0.1621, res.ProfitMargin)
	assert.Equal(t, -28.36, res.ProfitPerPassenger)
}

func TestComputeProfit_ZeroLoadFactor(t *testing.T) {
	res := ComputeProfit(model.NewScenario(1000, a320, 200, 0, 0.9))

	assert.Equal(t, 0.0, res.Revenue)
	assert.Equal(t, 0.0, res.ProfitPerPassenger)
	assert.Equal(t, 0.0, res.ProfitMargin)
	assert.Equal(t, -11673.61, res.Profit)

	b := Compute(model.NewScenario(1000, a320, 200, 0, 0.9))
	assert.Equal(t, 0.0, b.Passengers)
}

func TestComputeProfit_ZeroRevenueWithPassengers(t *testing.T) {
	// A fare of -20 cancels the 20 ancillary revenue exactly.
	res := ComputeProfit(model.NewScenario(1000, a320, -20, 0.5, 0.9))

	assert.Equal(t, 0.0, res.Revenue)
	assert.Equal(t, 0.0, res.ProfitMargin)
	assert.Equal(t, -129.71, res.ProfitPerPassenger)
}

func TestComputeProfit_NegativeMargin(t *testing.T) {
	res := ComputeProfit(model.NewScenario(1000, a320, 0, 0.5, 0.9))

	assert.Equal(t, 1800.0, res.Revenue)
	assert.Equal(t, -5.4853, res.ProfitMargin)
	assert.Equal(t, -109.71, res.ProfitPerPassenger)
}

func TestComputeProfit_Deterministic(t *testing.T) {
	s := model.NewScenario(1234.5, a320, 187.3, 0.777, 0.83)
	first := ComputeProfit(s)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, ComputeProfit(s))
	}
}

func TestComputeProfit_ProfitIsRevenueMinusCost(t *testing.T) {
	for _, fare := range []float64{49.99, 120, 333.33, 512.5} {
		for _, lf := range []float64{0.13, 0.5, 0.81, 1} {
			res := ComputeProfit(model.NewScenario(873, a320, fare, lf, 0.77))
			assert.InDelta(t, res.Revenue-res.TotalCost, res.Profit, 0.01+1e-9, "fare=%v lf=%v", fare, lf)
		}
	}
}

func TestComputeProfit_ZeroCruiseSpeedPassesThrough(t *testing.T) {
	ac := a320
	ac.CruiseSpeedKts = 0
	res := ComputeProfit(model.NewScenario(1000, ac, 200, 0.85, 0.9))

	assert.True(t, math.IsInf(res.BlockTimeH, 1))
	assert.True(t, math.IsInf(res.TotalCost, 1))
	assert.True(t, math.IsInf(res.Profit, -1))
	assert.Equal(t, 33660.0, res.Revenue)
	assert.False(t, res.Finite())
}

func TestRound(t *testing.T) {
	cases := []struct {
		in       float64
		decimals int
		want     float64
	}{
		{2.9722222222222223, 3, 2.972},
		{2.675, 2, 2.67}, // 2.675 is stored as 2.67499999...
		{0.125, 2, 0.12}, // exact tie goes to even
		{0.375, 2, 0.38},
		{-0.005, 2, -0.01},
		{21986.388888, 2, 21986.39},
		{0.65319999, 4, 0.6532},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Round(c.in, c.decimals), "Round(%v, %d)", c.in, c.decimals)
	}
	assert.True(t, math.IsNaN(Round(math.NaN(), 2)))
	assert.True(t, math.IsInf(Round(math.Inf(-1), 2), -1))
}
