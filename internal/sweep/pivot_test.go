package sweep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPivot_ExampleGrid(t *testing.T) {
	table, err := Generate(1000, a320, 0.9, exampleFares, exampleLFs)
	require.NoError(t, err)

	s, err := Pivot(table)
	require.NoError(t, err)
	require.Len(t, s.Fares, 19)
	require.Len(t, s.LoadFactors, 10)
	require.Len(t, s.Values, 10)
	assert.Equal(t, MetricProfit, s.Metric)

	// rows are load factors, columns are fares
	for i, row := range table {
		fi, li := i/10, i%10
		assert.Equal(t, row.Profit, s.Values[li][fi])
	}
	lo, hi, ok := s.Range()
	require.True(t, ok)
	assert.Equal(t, -5373.61, lo)
	assert.Equal(t, 77246.39, hi)
}

func TestPivot_SortsAxesAndFillsGaps(t *testing.T) {
	table := GridTable{
		{AvgFare: 200, LoadFactor: 0.9},
		{AvgFare: 100, LoadFactor: 0.5},
	}
	table[0].Profit = 2
	table[1].Profit = 1

	s, err := Pivot(table)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 200}, s.Fares)
	assert.Equal(t, []float64{0.5, 0.9}, s.LoadFactors)
	assert.Equal(t, 1.0, s.Values[0][0])
	assert.Equal(t, 2.0, s.Values[1][1])
	assert.True(t, math.IsNaN(s.Values[0][1]))
	assert.True(t, math.IsNaN(s.Values[1][0]))
}

func TestPivot_DuplicateCell(t *testing.T) {
	table, err := Generate(1000, a320, 0.9, Range{Start: 100, Stop: 200, Step: 50}, exampleLFs)
	require.NoError(t, err)
	table = append(table, table[0])

	_, err = Pivot(table)
	assert.ErrorIs(t, err, ErrDuplicateCell)
}

func TestPivotBy_Metric(t *testing.T) {
	table, err := Generate(1000, a320, 0.9, Range{Start: 200, Stop: 201, Step: 1}, Range{Start: 0.85, Stop: 0.86, Step: 1})
	require.NoError(t, err)

	s, err := PivotBy(table, MetricProfitMargin)
	require.NoError(t, err)
	assert.Equal(t, 0.6532, s.Values[0][0])

	_, err = PivotBy(table, Metric("seats"))
	assert.ErrorIs(t, err, ErrUnknownMetric)
}
