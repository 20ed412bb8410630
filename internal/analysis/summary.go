package analysis

import (
	"math"
	"sort"

	"route-profitability/internal/sweep"
)

// GridSummary condenses a sweep into the figures worth reading first.
// Non-finite cells are counted in Cells but excluded from the statistics.
type GridSummary struct {
	AircraftType string `json:"aircraft_type"`

	Cells      int `json:"cells"`
	Finite     int `json:"finite"`
	Profitable int `json:"profitable"`

	Best  *sweep.GridRow `json:"best,omitempty"`
	Worst *sweep.GridRow `json:"worst,omitempty"`

	MeanProfit float64 `json:"mean_profit"`
	P05Profit  float64 `json:"p05_profit"`
	P50Profit  float64 `json:"p50_profit"`
	P95Profit  float64 `json:"p95_profit"`

	// BreakEven lists, per fare in sweep order, the lowest swept load factor
	// with a non-negative profit. Fares that never break even are omitted.
	BreakEven []BreakEvenCell `json:"break_even"`
}

type BreakEvenCell struct {
	AvgFare    float64 `json:"avg_fare"`
	LoadFactor float64 `json:"load_factor"`
	Profit     float64 `json:"profit"`
}

func Summarize(table sweep.GridTable) GridSummary {
	s := GridSummary{Cells: len(table)}
	if len(table) == 0 {
		return s
	}
	s.AircraftType = table[0].AircraftType

	profits := make([]float64, 0, len(table))
	sum := 0.0
	beByFare := map[float64]int{}
	var fares []float64
	for i := range table {
		r := &table[i]
		if _, seen := beByFare[r.AvgFare]; !seen {
			beByFare[r.AvgFare] = -1
			fares = append(fares, r.AvgFare)
		}
		if !finite(r.Profit) {
			continue
		}
		s.Finite++
		profits = append(profits, r.Profit)
		sum += r.Profit
		if r.Profit > 0 {
			s.Profitable++
		}
		if s.Best == nil || r.Profit > s.Best.Profit {
			s.Best = r
		}
		if s.Worst == nil || r.Profit < s.Worst.Profit {
			s.Worst = r
		}
		if r.Profit >= 0 {
			if j := beByFare[r.AvgFare]; j < 0 || r.LoadFactor < table[j].LoadFactor {
				beByFare[r.AvgFare] = i
			}
		}
	}
	for _, f := range fares {
		if j := beByFare[f]; j >= 0 {
			s.BreakEven = append(s.BreakEven, BreakEvenCell{
				AvgFare:    f,
				LoadFactor: table[j].LoadFactor,
				Profit:     table[j].Profit,
			})
		}
	}
	if len(profits) == 0 {
		return s
	}

	sort.Float64s(profits)
	s.MeanProfit = sum / float64(len(profits))
	s.P05Profit = percentileSorted(profits, 0.05)
	s.P50Profit = percentileSorted(profits, 0.50)
	s.P95Profit = percentileSorted(profits, 0.95)
	return s
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
