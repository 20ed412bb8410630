package sweep

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"route-profitability/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeGridCSV(t *testing.T) {
	table, err := Generate(1000, a320, 0.9, Range{Start: 50, Stop: 76, Step: 25}, Range{Start: 0.5, Stop: 0.56, Step: 0.05})
	require.NoError(t, err)
	require.Len(t, table, 4)

	var buf bytes.Buffer
	require.NoError(t, EncodeGridCSV(&buf, table))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "distance_nm,block_time_h,revenue,total_cost,profit,profit_margin,profit_per_passenger,avg_fare,load_factor,aircraft_type", lines[0])
	assert.Equal(t, "1000,2.972,6300,11673.61,-5373.61,-0.853,-59.71,50,0.5,A320", lines[1])
	assert.True(t, strings.HasSuffix(lines[2], ",50,0.55,A320"), lines[2])
	assert.True(t, strings.HasSuffix(lines[4], ",75,0.55,A320"), lines[4])
}

func TestWriteGridCSV_RoundTrip(t *testing.T) {
	table, err := Generate(1000, a320, 0.9, exampleFares, exampleLFs)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "grid.csv")
	require.NoError(t, WriteGridCSV(path, table))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	back, err := DecodeGridCSV(f)
	require.NoError(t, err)
	assert.Equal(t, table, back)
}

func TestDecodeGridCSV_Errors(t *testing.T) {
	_, err := DecodeGridCSV(strings.NewReader("distance_nm,profit\n1000,5\n"))
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	bad := strings.Join(GridHeader, ",") + "\n1000,2.972,x,1,1,1,1,50,0.5,A320\n"
	_, err = DecodeGridCSV(strings.NewReader(bad))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.Contains(t, err.Error(), "line 2 column revenue")
}
