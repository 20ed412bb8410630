// Package profit computes the per-flight economics of a route.
// Everything here is pure: the same Scenario always yields the same ProfitResult.
package profit

import "route-profitability/internal/model"

const (
	timeDecimals     = 3
	currencyDecimals = 2
	ratioDecimals    = 4
)

// Breakdown holds the unrounded intermediate figures of one computation.
type Breakdown struct {
	BlockTimeH       float64
	Passengers       float64
	TicketRevenue    float64
	AncillaryRevenue float64
	Revenue          float64
	FuelQuantityKg   float64
	FuelCost         float64
	MaintenanceCost  float64
	CrewCost         float64
	AirportFees      float64
	FixedCosts       float64
	TotalCost        float64
	Profit           float64
}

// Compute returns the unrounded breakdown for s.
// Passengers are not rounded: a fractional count models average load.
func Compute(s model.Scenario) Breakdown {
	a := s.Aircraft
	b := Breakdown{}
	b.BlockTimeH = BlockTime(s.DistanceNM, a.CruiseSpeedKts)
	b.Passengers = float64(a.Seats) * s.LoadFactor

	b.TicketRevenue = b.Passengers * s.AvgFare
	b.AncillaryRevenue = b.Passengers * s.Costs.AncillariesPerPassenger
	b.Revenue = b.TicketRevenue + b.AncillaryRevenue

	b.FuelQuantityKg = a.FuelBurnKgph * b.BlockTimeH
	b.FuelCost = b.FuelQuantityKg * s.FuelPricePerKg
	b.MaintenanceCost = s.Costs.MaintenancePerBlockHour * b.BlockTimeH
	b.CrewCost = s.Costs.CrewCostPerFlight
	b.AirportFees = s.Costs.AirportFees
	b.FixedCosts = a.FixedCostsPerFlight
	b.TotalCost = b.FuelCost + b.MaintenanceCost + b.CrewCost + b.AirportFees + b.FixedCosts

	b.Profit = b.Revenue - b.TotalCost
	return b
}

// ProfitPerPassenger is 0 when there are no passengers.
func (b Breakdown) ProfitPerPassenger() float64 {
	if b.Passengers > 0 {
		return b.Profit / b.Passengers
	}
	return 0
}

// ProfitMargin is 0 when there is no revenue.
func (b Breakdown) ProfitMargin() float64 {
	if b.Revenue > 0 {
		return b.Profit / b.Revenue
	}
	return 0
}

// Result rounds the breakdown into a ProfitResult.
func (b Breakdown) Result(distanceNM float64) model.ProfitResult {
	return model.ProfitResult{
		DistanceNM:         distanceNM,
		BlockTimeH:         Round(b.BlockTimeH, timeDecimals),
		Revenue:            Round(b.Revenue, currencyDecimals),
		TotalCost:          Round(b.TotalCost, currencyDecimals),
		Profit:             Round(b.Profit, currencyDecimals),
		ProfitMargin:       Round(b.ProfitMargin(), ratioDecimals),
		ProfitPerPassenger: Round(b.ProfitPerPassenger(), currencyDecimals),
	}
}

// ComputeProfit prices one flight.
// It cannot fail; a zero cruise speed produces non-finite figures which are
// returned as-is.
func ComputeProfit(s model.Scenario) model.ProfitResult {
	return Compute(s).Result(s.DistanceNM)
}
