package analysis

import (
	"math"
	"testing"

	"route-profitability/internal/model"
	"route-profitability/internal/profit"
	"route-profitability/internal/sweep"

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

func exampleGrid(t *testing.T) sweep.GridTable {
	t.Helper()
	table, err := sweep.Generate(1000, a320, 0.9,
		sweep.Range{Start: 50, Stop: 501, Step: 25},
		sweep.Range{Start: 0.5, Stop: 0.96, Step: 0.05})
	require.NoError(t, err)
	return table
}

func TestSummarize_ExampleGrid(t *testing.T) {
	s := Summarize(exampleGrid(t))

	assert.Equal(t, "A320", s.AircraftType)
	assert.Equal(t, 190, s.Cells)
	assert.Equal(t, 190, s.Finite)
	assert.Equal(t, 176, s.Profitable)

	require.NotNil(t, s.Best)
	assert.Equal(t, 500.0, s.Best.AvgFare)
	assert.Equal(t, 77246.39, s.Best.Profit)
	require.NotNil(t, s.Worst)
	assert.Equal(t, 50.0, s.Worst.AvgFare)
	assert.Equal(t, 0.5, s.Worst.LoadFactor)
	assert.Equal(t, -5373.61, s.Worst.Profit)

	assert.LessOrEqual(t, s.P05Profit, s.P50Profit)
	assert.LessOrEqual(t, s.P50Profit, s.P95Profit)
	assert.Greater(t, s.MeanProfit, s.Worst.Profit)
	assert.Less(t, s.MeanProfit, s.Best.Profit)

	// Every fare in the example grid breaks even somewhere.
	require.Len(t, s.BreakEven, 19)
	assert.Equal(t, 50.0, s.BreakEven[0].AvgFare)
	assert.InDelta(t, 0.95, s.BreakEven[0].LoadFactor, 1e-9)
	assert.Equal(t, 75.0, s.BreakEven[1].AvgFare)
	assert.InDelta(t, 0.70, s.BreakEven[1].LoadFactor, 1e-9)
	assert.Equal(t, 100.0, s.BreakEven[2].AvgFare)
	assert.InDelta(t, 0.55, s.BreakEven[2].LoadFactor, 1e-9)
	for _, be := range s.BreakEven {
		assert.GreaterOrEqual(t, be.Profit, 0.0)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Cells)
	assert.Nil(t, s.Best)
	assert.Empty(t, s.BreakEven)
}

func TestSummarize_SkipsNonFiniteCells(t *testing.T) {
	stalled := a320
	stalled.CruiseSpeedKts = 0
	table, err := sweep.Generate(1000, stalled, 0.9,
		sweep.Range{Start: 100, Stop: 201, Step: 100},
		sweep.Range{Start: 0.5, Stop: 0.6, Step: 0.1})
	require.NoError(t, err)
	require.Len(t, table, 2)

	s := Summarize(table)
	assert.Equal(t, 2, s.Cells)
	assert.Zero(t, s.Finite)
	assert.Nil(t, s.Best)
	assert.Empty(t, s.BreakEven)
}

func TestPercentileSorted(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 1.0, percentileSorted(xs, 0))
	assert.Equal(t, 5.0, percentileSorted(xs, 1))
	assert.Equal(t, 3.0, percentileSorted(xs, 0.5))
	assert.InDelta(t, 1.2, percentileSorted(xs, 0.05), 1e-12)
	assert.Equal(t, 0.0, percentileSorted(nil, 0.5))
}

func TestBreakEvenLoadFactor(t *testing.T) {
	s := model.NewScenario(1000, a320, 200, 0.85, 0.9)
	lf, ok := BreakEvenLoadFactor(s)
	require.True(t, ok)
	assert.InDelta(t, 0.2947881593714927, lf, 1e-12)

	s.LoadFactor = lf
	assert.InDelta(t, 0, profit.Compute(s).Profit, 1e-6)
}

func TestBreakEvenLoadFactor_NoRevenuePerSeat(t *testing.T) {
	s := model.NewScenario(1000, a320, -20, 0.85, 0.9)
	_, ok := BreakEvenLoadFactor(s)
	assert.False(t, ok)
}

func TestBreakEvenFare(t *testing.T) {
	s := model.NewScenario(1000, a320, 200, 0.85, 0.9)
	fare, ok := BreakEvenFare(s)
	require.True(t, ok)
	assert.InDelta(t, 56.298111837327525, fare, 1e-9)

	s.AvgFare = fare
	assert.InDelta(t, 0, profit.Compute(s).Profit, 1e-6)

	s.LoadFactor = 0
	_, ok = BreakEvenFare(s)
	assert.False(t, ok)
}

func TestBreakEven_ZeroSpeed(t *testing.T) {
	stalled := a320
	stalled.CruiseSpeedKts = 0
	_, ok := BreakEvenLoadFactor(model.NewScenario(1000, stalled, 200, 0.85, 0.9))
	assert.False(t, ok)
	assert.True(t, math.IsInf(profit.BlockTime(1000, 0), 1))
}

func TestRankAircraft(t *testing.T) {
	fleet := []model.AircraftProfile{
		{AircraftType: "E190", Seats: 100, CruiseSpeedKts: 447, FuelBurnKgph: 1800, FixedCostsPerFlight: 400},
		a320,
		{AircraftType: "B737-800", Seats: 189, CruiseSpeedKts: 455, FuelBurnKgph: 2600, FixedCostsPerFlight: 600},
	}
	ranked := RankAircraft(1000, fleet, 200, 0.85, 0.9, model.DefaultCostParams())
	require.Len(t, ranked, 3)

	assert.Equal(t, "B737-800", ranked[0].Aircraft.AircraftType)
	assert.Equal(t, 23371.24, ranked[0].Result.Profit)
	assert.Equal(t, "A320", ranked[1].Aircraft.AircraftType)
	assert.Equal(t, 21986.39, ranked[1].Result.Profit)
	assert.Equal(t, "E190", ranked[2].Aircraft.AircraftType)
	assert.Equal(t, 8967.27, ranked[2].Result.Profit)

	for _, r := range ranked {
		assert.Equal(t, model.OutcomeProfit, r.Outcome)
		require.NotNil(t, r.BreakEvenLoadFactor)
		assert.Less(t, *r.BreakEvenLoadFactor, 0.85)
	}
}

func TestRankAircraft_LossAndCosts(t *testing.T) {
	costs := model.DefaultCostParams()
	costs.CrewCostPerFlight = 50000
	ranked := RankAircraft(1000, []model.AircraftProfile{a320}, 200, 0.85, 0.9, costs)
	require.Len(t, ranked, 1)
	assert.Equal(t, model.OutcomeLoss, ranked[0].Outcome)
	require.NotNil(t, ranked[0].BreakEvenLoadFactor)
	assert.Greater(t, *ranked[0].BreakEvenLoadFactor, 1.0)
}
