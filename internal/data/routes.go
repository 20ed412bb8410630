package data

import (
	"fmt"
	"io"
	"strings"

	"route-profitability/internal/model"
)

// LoadRoutesCSV reads a route table: route_name,distance_nm[,origin,destination]
func LoadRoutesCSV(path string) ([]model.Route, error) {
	t, err := openTable(path, "route_name", "distance_nm")
	if err != nil {
		return nil, err
	}
	return parseRoutes(t)
}

func DecodeRoutesCSV(name string, in io.Reader) ([]model.Route, error) {
	t, err := readTable(name, in, "route_name", "distance_nm")
	if err != nil {
		return nil, err
	}
	return parseRoutes(t)
}

func parseRoutes(t *table) ([]model.Route, error) {
	out := make([]model.Route, 0, len(t.rows))
	for i := range t.rows {
		r := model.Route{
			Name:        t.str(i, "route_name"),
			Origin:      t.str(i, "origin"),
			Destination: t.str(i, "destination"),
		}
		var err error
		if r.DistanceNM, err = t.requiredFloat(i, "distance_nm"); err != nil {
			return nil, err
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", t.name, t.lineNo[i], err)
		}
		out = append(out, r)
	}
	return out, nil
}

// FindRoute looks a route up by name, case-insensitively.
func FindRoute(routes []model.Route, name string) (model.Route, bool) {
	for _, r := range routes {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return model.Route{}, false
}
