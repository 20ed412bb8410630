package model

import (
	"fmt"
	"math"
)

// CostParams are the per-flight cost assumptions a caller may override.
type CostParams struct {
	AncillariesPerPassenger float64 `json:"ancillaries_per_passenger"`
	CrewCostPerFlight       float64 `json:"crew_cost_per_flight"`
	MaintenancePerBlockHour float64 `json:"maintenance_per_blockhour"`
	AirportFees             float64 `json:"airport_fees"`
}

// DefaultCostParams returns the assumptions used when a caller omits an override.
func DefaultCostParams() CostParams {
	return CostParams{
		AncillariesPerPassenger: 20.0,
		CrewCostPerFlight:       2000.0,
		MaintenancePerBlockHour: 500.0,
		AirportFees:             1000.0,
	}
}

// CostOverrides carries optional overrides from config files and API payloads.
// A nil field keeps the default.
type CostOverrides struct {
	AncillariesPerPassenger *float64 `json:"ancillaries_per_passenger,omitempty" yaml:"ancillaries_per_passenger" toml:"ancillaries_per_passenger"`
	CrewCostPerFlight       *float64 `json:"crew_cost_per_flight,omitempty" yaml:"crew_cost_per_flight" toml:"crew_cost_per_flight"`
	MaintenancePerBlockHour *float64 `json:"maintenance_per_blockhour,omitempty" yaml:"maintenance_per_blockhour" toml:"maintenance_per_blockhour"`
	AirportFees             *float64 `json:"airport_fees,omitempty" yaml:"airport_fees" toml:"airport_fees"`
}

// Apply overlays the non-nil overrides onto base.
func (o CostOverrides) Apply(base CostParams) CostParams {
	out := base
	if o.AncillariesPerPassenger != nil {
		out.AncillariesPerPassenger = *o.AncillariesPerPassenger
	}
	if o.CrewCostPerFlight != nil {
		out.CrewCostPerFlight = *o.CrewCostPerFlight
	}
	if o.MaintenancePerBlockHour != nil {
		out.MaintenancePerBlockHour = *o.MaintenancePerBlockHour
	}
	if o.AirportFees != nil {
		out.AirportFees = *o.AirportFees
	}
	return out
}

// Validate rejects non-numeric overrides (NaN/Inf). Negative values are allowed.
func (o CostOverrides) Validate() error {
	fields := []struct {
		name string
		v    *float64
	}{
		{"ancillaries_per_passenger", o.AncillariesPerPassenger},
		{"crew_cost_per_flight", o.CrewCostPerFlight},
		{"maintenance_per_blockhour", o.MaintenancePerBlockHour},
		{"airport_fees", o.AirportFees},
	}
	for _, f := range fields {
		if f.v != nil && !finite(*f.v) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, f.name)
		}
	}
	return nil
}

// Scenario is everything needed to price one flight.
// AvgFare may be <= 0 and LoadFactor is expected in [0,1]; neither is enforced.
type Scenario struct {
	DistanceNM     float64
	Aircraft       AircraftProfile
	AvgFare        float64
	LoadFactor     float64
	FuelPricePerKg float64
	Costs          CostParams
}

// NewScenario builds a Scenario with default cost parameters.
func NewScenario(distanceNM float64, aircraft AircraftProfile, avgFare, loadFactor, fuelPricePerKg float64) Scenario {
	return Scenario{
		DistanceNM:     distanceNM,
		Aircraft:       aircraft,
		AvgFare:        avgFare,
		LoadFactor:     loadFactor,
		FuelPricePerKg: fuelPricePerKg,
		Costs:          DefaultCostParams(),
	}
}

// ProfitResult is the rounded outcome of one Scenario.
// BlockTimeH has 3 decimals, currency fields 2, ProfitMargin 4. DistanceNM is not rounded.
type ProfitResult struct {
	DistanceNM         float64 `json:"distance_nm"`
	BlockTimeH         float64 `json:"block_time_h"`
	Revenue            float64 `json:"revenue"`
	TotalCost          float64 `json:"total_cost"`
	Profit             float64 `json:"profit"`
	ProfitMargin       float64 `json:"profit_margin"`
	ProfitPerPassenger float64 `json:"profit_per_passenger"`
}

// Finite reports whether every field is a finite number.
func (r ProfitResult) Finite() bool {
	for _, v := range []float64{r.DistanceNM, r.BlockTimeH, r.Revenue, r.TotalCost, r.Profit, r.ProfitMargin, r.ProfitPerPassenger} {
		if !finite(v) {
			return false
		}
	}
	return true
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

func positive(x float64) bool { return finite(x) && x > 0 }
