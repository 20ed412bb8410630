package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"route-profitability/internal/data"
	"route-profitability/internal/model"
	"route-profitability/internal/sweep"
	"route-profitability/pkg/logger"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk run configuration (YAML, or TOML when the file ends in .toml).
type Config struct {
	// Optional: load aircraft parameters from a separate file (e.g. examples/aircraft/*.yaml).
	// If both AircraftFile and Aircraft are provided, Aircraft overrides AircraftFile.
	AircraftFile string                `yaml:"aircraft_file" toml:"aircraft_file"`
	Aircraft     model.AircraftProfile `yaml:"aircraft" toml:"aircraft"`
	Route        model.Route           `yaml:"route" toml:"route"`
	Market       MarketConfig          `yaml:"market" toml:"market"`
	Costs        model.CostOverrides   `yaml:"costs" toml:"costs"`
	Sweep        SweepConfig           `yaml:"sweep" toml:"sweep"`
	Data         DataConfig            `yaml:"data" toml:"data"`
	Output       OutputConfig          `yaml:"output" toml:"output"`
	Log          logger.Config         `yaml:"log" toml:"log"`
}

type MarketConfig struct {
	AvgFare        float64 `yaml:"avg_fare" toml:"avg_fare"`
	LoadFactor     float64 `yaml:"load_factor" toml:"load_factor"`
	FuelPricePerKg float64 `yaml:"fuel_price_per_kg" toml:"fuel_price_per_kg"`
}

type SweepConfig struct {
	Fares       sweep.Range `yaml:"fares" toml:"fares"`
	LoadFactors sweep.Range `yaml:"load_factors" toml:"load_factors"`
	Workers     int         `yaml:"workers" toml:"workers"`
}

// DataConfig points at the aircraft and route tables. When set, an aircraft
// given only by aircraft_type and a route given only by route_name are looked up there.
type DataConfig struct {
	AircraftTable string `yaml:"aircraft_table" toml:"aircraft_table"`
	RouteTable    string `yaml:"route_table" toml:"route_table"`
}

type OutputConfig struct {
	Dir string `yaml:"dir" toml:"dir"`
}

// Default returns the example run: fares 50..500 step 25, load factors
// 0.5..0.95 step 0.05, fuel at 0.9/kg.
func Default() Config {
	return Config{
		Market: MarketConfig{AvgFare: 200, LoadFactor: 0.85, FuelPricePerKg: 0.9},
		Sweep: SweepConfig{
			Fares:       sweep.Range{Start: 50, Stop: 501, Step: 25},
			LoadFactors: sweep.Range{Start: 0.5, Stop: 0.96, Step: 0.05},
			Workers:     1,
		},
		Output: OutputConfig{Dir: "results"},
		Log:    logger.DefaultConfig(),
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads, defaults and resolves a config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if err := decodeFile(path, &c); err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	if c.AircraftFile != "" {
		loaded, err := LoadAircraftFile(resolvePath(base, c.AircraftFile))
		if err != nil {
			return nil, err
		}
		c.Aircraft = MergeAircraft(loaded, c.Aircraft)
	}
	if c.Data.AircraftTable != "" {
		c.Data.AircraftTable = resolvePath(base, c.Data.AircraftTable)
	}
	if c.Data.RouteTable != "" {
		c.Data.RouteTable = resolvePath(base, c.Data.RouteTable)
	}
	if err := c.ResolveTables(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ResolveTables fills an aircraft or route that was named but not described
// from the tables in Data. LoadUnchecked calls it; call it again after
// changing Aircraft or Route by hand.
func (c *Config) ResolveTables() error {
	if c.Data.AircraftTable != "" && c.Aircraft.AircraftType != "" && c.Aircraft.Seats == 0 {
		profiles, err := data.LoadAircraftCSV(c.Data.AircraftTable)
		if err != nil {
			return err
		}
		found, ok := data.LookupAircraft(profiles, c.Aircraft.AircraftType)
		if !ok {
			return fmt.Errorf("%w: aircraft %q not in %s", model.ErrInvalidInput, c.Aircraft.AircraftType, c.Data.AircraftTable)
		}
		c.Aircraft = MergeAircraft(found, c.Aircraft)
		c.Aircraft.AircraftType = found.AircraftType
	}
	if c.Data.RouteTable != "" && c.Route.Name != "" && c.Route.DistanceNM == 0 {
		routes, err := data.LoadRoutesCSV(c.Data.RouteTable)
		if err != nil {
			return err
		}
		found, ok := data.FindRoute(routes, c.Route.Name)
		if !ok {
			return fmt.Errorf("%w: route %q not in %s", model.ErrInvalidInput, c.Route.Name, c.Data.RouteTable)
		}
		c.Route = found
	}
	return nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Aircraft.Validate(); err != nil {
		return fmt.Errorf("aircraft config invalid: %w", err)
	}
	// A route needs a distance; the name only labels output files.
	if d := c.Route.DistanceNM; math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return fmt.Errorf("route config invalid: %w: distance_nm must be > 0", model.ErrInvalidInput)
	}
	for name, v := range map[string]float64{
		"market.avg_fare":          c.Market.AvgFare,
		"market.load_factor":       c.Market.LoadFactor,
		"market.fuel_price_per_kg": c.Market.FuelPricePerKg,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be a finite number", model.ErrInvalidInput, name)
		}
	}
	if err := c.Costs.Validate(); err != nil {
		return err
	}
	if err := c.Sweep.Fares.Validate(); err != nil {
		return fmt.Errorf("sweep.fares: %w", err)
	}
	if err := c.Sweep.LoadFactors.Validate(); err != nil {
		return fmt.Errorf("sweep.load_factors: %w", err)
	}
	if c.Sweep.Workers < 0 {
		return errors.New("sweep.workers must be >= 0")
	}
	return nil
}

// Scenario is the single-flight scenario described by the config.
func (c *Config) Scenario() model.Scenario {
	s := model.NewScenario(c.Route.DistanceNM, c.Aircraft, c.Market.AvgFare, c.Market.LoadFactor, c.Market.FuelPricePerKg)
	s.Costs = c.Costs.Apply(s.Costs)
	return s
}

// SweepRequest is the grid sweep described by the config.
func (c *Config) SweepRequest() sweep.Request {
	return sweep.Request{
		DistanceNM:     c.Route.DistanceNM,
		Aircraft:       c.Aircraft,
		FuelPricePerKg: c.Market.FuelPricePerKg,
		Fares:          c.Sweep.Fares,
		LoadFactors:    c.Sweep.LoadFactors,
	}
}

// GridFileName is profit_grid_<aircraft>[_<route>].csv.
func GridFileName(aircraftType, routeName string) string {
	name := "profit_grid_" + sanitize(aircraftType)
	if routeName != "" {
		name += "_" + sanitize(routeName)
	}
	return name + ".csv"
}

type aircraftFileWrapper struct {
	Aircraft model.AircraftProfile `yaml:"aircraft" toml:"aircraft"`
}

// LoadAircraftFile reads an `aircraft:` preset from a YAML or TOML file.
func LoadAircraftFile(path string) (model.AircraftProfile, error) {
	var w aircraftFileWrapper
	if err := decodeFile(path, &w); err != nil {
		return model.AircraftProfile{}, err
	}
	return w.Aircraft, nil
}

// MergeAircraft overlays non-zero fields from override onto base.
func MergeAircraft(base, override model.AircraftProfile) model.AircraftProfile {
	out := base
	if override.AircraftType != "" {
		out.AircraftType = override.AircraftType
	}
	if override.Seats != 0 {
		out.Seats = override.Seats
	}
	if override.CruiseSpeedKts != 0 {
		out.CruiseSpeedKts = override.CruiseSpeedKts
	}
	if override.FuelBurnKgph != 0 {
		out.FuelBurnKgph = override.FuelBurnKgph
	}
	// Note: 0 is a legitimate fixed cost, so a zero override cannot clear a preset value.
	if override.FixedCostsPerFlight != 0 {
		out.FixedCostsPerFlight = override.FixedCostsPerFlight
	}
	return out
}

func decodeFile(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(raw), v); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}
	if err := yaml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// resolvePath prefers interpreting relative paths as relative to the config file
// directory, falling back to the path as given (relative to cwd).
func resolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	cand := filepath.Join(base, p)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return p
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, s)
}
