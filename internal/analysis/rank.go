package analysis

import (
	"sort"

	"route-profitability/internal/model"
	"route-profitability/internal/profit"
)

// RankedAircraft is one aircraft type priced on a route.
type RankedAircraft struct {
	Aircraft model.AircraftProfile `json:"aircraft"`
	Result   model.ProfitResult    `json:"result"`
	Outcome  model.Outcome         `json:"outcome"`

	// BreakEvenLoadFactor is omitted when it cannot be computed.
	BreakEvenLoadFactor *float64 `json:"break_even_load_factor,omitempty"`
}

// RankAircraft prices every profile on the same route and market and sorts
// descending by profit. Ties keep table order.
func RankAircraft(distanceNM float64, profiles []model.AircraftProfile, avgFare, loadFactor, fuelPricePerKg float64, costs model.CostParams) []RankedAircraft {
	out := make([]RankedAircraft, 0, len(profiles))
	for _, a := range profiles {
		s := model.NewScenario(distanceNM, a, avgFare, loadFactor, fuelPricePerKg)
		s.Costs = costs
		res := profit.ComputeProfit(s)
		r := RankedAircraft{
			Aircraft: a,
			Result:   res,
			Outcome:  model.OutcomeFromProfit(res.Profit),
		}
		if lf, ok := BreakEvenLoadFactor(s); ok {
			r.BreakEvenLoadFactor = &lf
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Result.Profit > out[j].Result.Profit
	})
	return out
}
