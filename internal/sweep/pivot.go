package sweep

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrDuplicateCell is returned by Pivot when two rows share a (fare, load factor) pair,
	// which happens when overlapping sweeps are concatenated.
	ErrDuplicateCell = errors.New("duplicate (fare, load factor) cell")
	ErrUnknownMetric = errors.New("unknown metric")
)

// Metric selects the GridRow field shown on a surface.
type Metric string

const (
	MetricProfit             Metric = "profit"
	MetricProfitMargin       Metric = "profit_margin"
	MetricProfitPerPassenger Metric = "profit_per_passenger"
	MetricRevenue            Metric = "revenue"
	MetricTotalCost          Metric = "total_cost"
)

func (m Metric) value(r GridRow) (float64, error) {
	switch m {
	case MetricProfit, "":
		return r.Profit, nil
	case MetricProfitMargin:
		return r.ProfitMargin, nil
	case MetricProfitPerPassenger:
		return r.ProfitPerPassenger, nil
	case MetricRevenue:
		return r.Revenue, nil
	case MetricTotalCost:
		return r.TotalCost, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, string(m))
	}
}

// Surface is a grid table pivoted for display: rows are load factors,
// columns are fares, both ascending. Cells without a row are NaN.
type Surface struct {
	Metric      Metric      `json:"metric"`
	Fares       []float64   `json:"fares"`
	LoadFactors []float64   `json:"load_factors"`
	Values      [][]float64 `json:"values"`
}

// Pivot arranges the profit of every row into a Surface.
func Pivot(table GridTable) (*Surface, error) {
	return PivotBy(table, MetricProfit)
}

func PivotBy(table GridTable, metric Metric) (*Surface, error) {
	if metric == "" {
		metric = MetricProfit
	}
	if _, err := metric.value(GridRow{}); err != nil {
		return nil, err
	}

	type cell struct{ fare, lf float64 }
	seen := make(map[cell]float64, len(table))
	fareSet := map[float64]struct{}{}
	lfSet := map[float64]struct{}{}
	for _, r := range table {
		k := cell{r.AvgFare, r.LoadFactor}
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("%w: fare=%g load_factor=%g", ErrDuplicateCell, r.AvgFare, r.LoadFactor)
		}
		v, _ := metric.value(r)
		seen[k] = v
		fareSet[r.AvgFare] = struct{}{}
		lfSet[r.LoadFactor] = struct{}{}
	}

	s := &Surface{
		Metric:      metric,
		Fares:       sortedKeys(fareSet),
		LoadFactors: sortedKeys(lfSet),
	}
	s.Values = make([][]float64, len(s.LoadFactors))
	for i, lf := range s.LoadFactors {
		s.Values[i] = make([]float64, len(s.Fares))
		for j, fare := range s.Fares {
			v, ok := seen[cell{fare, lf}]
			if !ok {
				v = math.NaN()
			}
			s.Values[i][j] = v
		}
	}
	return s, nil
}

// Range returns the smallest and largest finite cell values.
// ok is false when the surface holds no finite value.
func (s *Surface) Range() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range s.Values {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			ok = true
		}
	}
	return lo, hi, ok
}

func sortedKeys(m map[float64]struct{}) []float64 {
	out := make([]float64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Float64s(out)
	return out
}
