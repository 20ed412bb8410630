package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange_LoadFactorAccumulation(t *testing.T) {
	vals, err := Range{Start: 0.5, Stop: 0.96, Step: 0.05}.Values()
	require.NoError(t, err)

	require.Len(t, vals, 10)
	assert.Equal(t, 0.5, vals[0])
	assert.Equal(t, 0.55, vals[1])
	assert.Equal(t, 0.6000000000000001, vals[2])
	assert.Equal(t, 0.9500000000000004, vals[9])
}

func TestRange_StopIsExclusive(t *testing.T) {
	vals, err := Range{Start: 50, Stop: 501, Step: 25}.Values()
	require.NoError(t, err)
	assert.Len(t, vals, 19)
	assert.Equal(t, 500.0, vals[18])

	vals, err = Range{Start: 50, Stop: 500, Step: 25}.Values()
	require.NoError(t, err)
	assert.Len(t, vals, 18)
	assert.Equal(t, 475.0, vals[17])
}

func TestRange_AccumulationCanOvershootClosedForm(t *testing.T) {
	// 0.1 added ten times is 0.9999999999999999 < 1, so an eleventh value appears.
	vals, err := Range{Start: 0, Stop: 1, Step: 0.1}.Values()
	require.NoError(t, err)
	assert.Len(t, vals, 11)
	assert.Equal(t, 0.9999999999999999, vals[10])
}

func TestRange_Empty(t *testing.T) {
	vals, err := Range{Start: 10, Stop: 10, Step: 1}.Values()
	require.NoError(t, err)
	assert.Empty(t, vals)

	vals, err = Range{Start: 10, Stop: 5, Step: 1}.Values()
	require.NoError(t, err)
	assert.Empty(t, vals)
}

func TestRange_NegativeStep(t *testing.T) {
	vals, err := Range{Start: 1, Stop: 0, Step: -0.25}.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0.75, 0.5, 0.25}, vals)
}

func TestRange_Invalid(t *testing.T) {
	_, err := Range{Start: 0, Stop: 1, Step: 0}.Values()
	assert.ErrorIs(t, err, ErrZeroStep)

	nan := 0.0
	nan = nan / nan
	_, err = Range{Start: nan, Stop: 1, Step: 0.1}.Values()
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestRange_Limit(t *testing.T) {
	_, err := Range{Start: 0, Stop: 100, Step: 1}.ValuesLimit(50)
	assert.ErrorIs(t, err, ErrTooManyValues)

	vals, err := Range{Start: 0, Stop: 50, Step: 1}.ValuesLimit(50)
	require.NoError(t, err)
	assert.Len(t, vals, 50)
}

func TestRange_StallingStep(t *testing.T) {
	_, err := Range{Start: 1e20, Stop: 2e20, Step: 1}.Values()
	assert.ErrorIs(t, err, ErrZeroStep)
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("50:501:25")
	require.NoError(t, err)
	assert.Equal(t, Range{Start: 50, Stop: 501, Step: 25}, r)

	r, err = ParseRange(" 0.5 : 0.96 : 0.05 ")
	require.NoError(t, err)
	assert.Equal(t, Range{Start: 0.5, Stop: 0.96, Step: 0.05}, r)

	for _, bad := range []string{"", "1:2", "a:2:3", "1:2:0", "1:2:3:4", "1:NaN:1"} {
		_, err := ParseRange(bad)
		assert.Error(t, err, bad)
	}
}
