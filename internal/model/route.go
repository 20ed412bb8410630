package model

import "fmt"

// Route is one row of the route table. Only DistanceNM feeds the profit model.
type Route struct {
	Name        string  `json:"route_name" yaml:"route_name" toml:"route_name"`
	DistanceNM  float64 `json:"distance_nm" yaml:"distance_nm" toml:"distance_nm"`
	Origin      string  `json:"origin,omitempty" yaml:"origin" toml:"origin"`
	Destination string  `json:"destination,omitempty" yaml:"destination" toml:"destination"`
}

func (r Route) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: route_name is required", ErrInvalidInput)
	}
	if !positive(r.DistanceNM) {
		return fmt.Errorf("%w: route %s: distance_nm must be > 0", ErrInvalidInput, r.Name)
	}
	return nil
}
