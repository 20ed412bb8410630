package analysis

import (
	"route-profitability/internal/model"
	"route-profitability/internal/profit"
)

// BreakEvenLoadFactor returns the load factor at which profit is exactly zero.
// Revenue grows linearly with load factor while cost does not depend on it, so
// lf = total_cost / (seats × (fare + ancillaries)).
// ok is false when revenue per seat is not positive or the cost is not finite.
// The result may exceed 1, meaning the flight cannot break even.
func BreakEvenLoadFactor(s model.Scenario) (lf float64, ok bool) {
	perSeat := float64(s.Aircraft.Seats) * (s.AvgFare + s.Costs.AncillariesPerPassenger)
	if perSeat <= 0 {
		return 0, false
	}
	b := profit.Compute(s)
	if !finite(b.TotalCost) {
		return 0, false
	}
	return b.TotalCost / perSeat, true
}

// BreakEvenFare returns the average fare at which profit is zero for the
// scenario's load factor. ok is false when there are no passengers.
func BreakEvenFare(s model.Scenario) (fare float64, ok bool) {
	pax := float64(s.Aircraft.Seats) * s.LoadFactor
	if pax <= 0 {
		return 0, false
	}
	b := profit.Compute(s)
	if !finite(b.TotalCost) {
		return 0, false
	}
	return b.TotalCost/pax - s.Costs.AncillariesPerPassenger, true
}
