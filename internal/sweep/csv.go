package sweep

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"route-profitability/internal/model"
)

// GridHeader is the column order of an exported grid.
var GridHeader = []string{
	"distance_nm",
	"block_time_h",
	"revenue",
	"total_cost",
	"profit",
	"profit_margin",
	"profit_per_passenger",
	"avg_fare",
	"load_factor",
	"aircraft_type",
}

func WriteGridCSV(path string, table GridTable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := EncodeGridCSV(f, table); err != nil {
		return err
	}
	return f.Close()
}

func EncodeGridCSV(out io.Writer, table GridTable) error {
	w := csv.NewWriter(out)

	if err := w.Write(GridHeader); err != nil {
		return err
	}

	for _, r := range table {
		row := []string{
			fmtFloat(r.DistanceNM),
			fmtFloat(r.BlockTimeH),
			fmtFloat(r.Revenue),
			fmtFloat(r.TotalCost),
			fmtFloat(r.Profit),
			fmtFloat(r.ProfitMargin),
			fmtFloat(r.ProfitPerPassenger),
			fmtFloat(r.AvgFare),
			fmtFloat(r.LoadFactor),
			r.AircraftType,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// DecodeGridCSV reads a grid written by EncodeGridCSV. Columns are located by
// header name; aircraft_type may be absent.
func DecodeGridCSV(in io.Reader) (GridTable, error) {
	r := csv.NewReader(in)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[h] = i
	}
	for _, name := range GridHeader[:len(GridHeader)-1] {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", model.ErrInvalidInput, name)
		}
	}

	var table GridTable
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		num := func(col string) (float64, error) {
			v, err := strconv.ParseFloat(rec[idx[col]], 64)
			if err != nil {
				return 0, fmt.Errorf("%w: line %d column %s: %v", model.ErrInvalidInput, line, col, err)
			}
			return v, nil
		}
		var row GridRow
		fields := []struct {
			col string
			dst *float64
		}{
			{"distance_nm", &row.DistanceNM},
			{"block_time_h", &row.BlockTimeH},
			{"revenue", &row.Revenue},
			{"total_cost", &row.TotalCost},
			{"profit", &row.Profit},
			{"profit_margin", &row.ProfitMargin},
			{"profit_per_passenger", &row.ProfitPerPassenger},
			{"avg_fare", &row.AvgFare},
			{"load_factor", &row.LoadFactor},
		}
		for _, f := range fields {
			if *f.dst, err = num(f.col); err != nil {
				return nil, err
			}
		}
		if i, ok := idx["aircraft_type"]; ok {
			row.AircraftType = rec[i]
		}
		table = append(table, row)
	}
	return table, nil
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
