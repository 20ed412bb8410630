package data

import (
	"fmt"
	"io"
	"strings"

	"route-profitability/internal/model"
)

// LoadAircraftCSV reads an aircraft profile table:
// aircraft_type,seats,cruise_speed_kts,fuel_burn_kgph[,fixed_costs_per_flight]
// Every profile is validated; the first bad row fails the load.
func LoadAircraftCSV(path string) ([]model.AircraftProfile, error) {
	t, err := openTable(path, aircraftColumns...)
	if err != nil {
		return nil, err
	}
	return parseAircraft(t)
}

func DecodeAircraftCSV(name string, in io.Reader) ([]model.AircraftProfile, error) {
	t, err := readTable(name, in, aircraftColumns...)
	if err != nil {
		return nil, err
	}
	return parseAircraft(t)
}

var aircraftColumns = []string{"aircraft_type", "seats", "cruise_speed_kts", "fuel_burn_kgph"}

func parseAircraft(t *table) ([]model.AircraftProfile, error) {
	out := make([]model.AircraftProfile, 0, len(t.rows))
	for i := range t.rows {
		var (
			a   model.AircraftProfile
			err error
		)
		a.AircraftType = t.str(i, "aircraft_type")
		if a.Seats, err = t.int(i, "seats"); err != nil {
			return nil, err
		}
		if a.CruiseSpeedKts, err = t.requiredFloat(i, "cruise_speed_kts"); err != nil {
			return nil, err
		}
		if a.FuelBurnKgph, err = t.requiredFloat(i, "fuel_burn_kgph"); err != nil {
			return nil, err
		}
		if a.FixedCostsPerFlight, err = t.float(i, "fixed_costs_per_flight", 0); err != nil {
			return nil, err
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", t.name, t.lineNo[i], err)
		}
		out = append(out, a)
	}
	return out, nil
}

// LookupAircraft finds a profile by type, case-insensitively.
func LookupAircraft(profiles []model.AircraftProfile, aircraftType string) (model.AircraftProfile, bool) {
	for _, a := range profiles {
		if strings.EqualFold(a.AircraftType, aircraftType) {
			return a, true
		}
	}
	return model.AircraftProfile{}, false
}

// FindAircraft is LookupAircraft falling back to the first profile, the way a
// picker defaults to its first entry. ok is false only for an empty table.
func FindAircraft(profiles []model.AircraftProfile, aircraftType string) (model.AircraftProfile, bool) {
	if a, ok := LookupAircraft(profiles, aircraftType); ok {
		return a, true
	}
	if len(profiles) == 0 {
		return model.AircraftProfile{}, false
	}
	return profiles[0], true
}
