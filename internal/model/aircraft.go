package model

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks input rejected at a boundary (tables, config, API payloads).
var ErrInvalidInput = errors.New("invalid input")

// AircraftProfile describes the economics of one aircraft type.
// Units:
// - CruiseSpeedKts: knots (nm/h)
// - FuelBurnKgph: kg of fuel per block hour
// - FixedCostsPerFlight: currency per flight (lease, insurance, overhead)
type AircraftProfile struct {
	AircraftType        string  `json:"aircraft_type" yaml:"aircraft_type" toml:"aircraft_type"`
	Seats               int     `json:"seats" yaml:"seats" toml:"seats"`
	CruiseSpeedKts      float64 `json:"cruise_speed_kts" yaml:"cruise_speed_kts" toml:"cruise_speed_kts"`
	FuelBurnKgph        float64 `json:"fuel_burn_kgph" yaml:"fuel_burn_kgph" toml:"fuel_burn_kgph"`
	FixedCostsPerFlight float64 `json:"fixed_costs_per_flight" yaml:"fixed_costs_per_flight" toml:"fixed_costs_per_flight"`
}

// Validate checks the profile once, where it enters the system.
// The profit model itself never re-checks it.
func (a AircraftProfile) Validate() error {
	if a.AircraftType == "" {
		return fmt.Errorf("%w: aircraft_type is required", ErrInvalidInput)
	}
	if a.Seats <= 0 {
		return fmt.Errorf("%w: aircraft %s: seats must be > 0", ErrInvalidInput, a.AircraftType)
	}
	if !positive(a.CruiseSpeedKts) {
		return fmt.Errorf("%w: aircraft %s: cruise_speed_kts must be > 0", ErrInvalidInput, a.AircraftType)
	}
	if !positive(a.FuelBurnKgph) {
		return fmt.Errorf("%w: aircraft %s: fuel_burn_kgph must be > 0", ErrInvalidInput, a.AircraftType)
	}
	if !finite(a.FixedCostsPerFlight) || a.FixedCostsPerFlight < 0 {
		return fmt.Errorf("%w: aircraft %s: fixed_costs_per_flight must be >= 0", ErrInvalidInput, a.AircraftType)
	}
	return nil
}
