// Package sweep evaluates the profit model over a fare × load factor grid.
package sweep

import (
	"context"
	"errors"
	"fmt"

	"route-profitability/internal/model"
	"route-profitability/internal/profit"

	"golang.org/x/sync/errgroup"
)

// ErrTooManyCells is returned when a sweep exceeds Sweeper.MaxCells.
var ErrTooManyCells = errors.New("grid has too many cells")

// GridRow is a ProfitResult tagged with the sweep coordinates that produced it.
type GridRow struct {
	model.ProfitResult
	AvgFare      float64 `json:"avg_fare"`
	LoadFactor   float64 `json:"load_factor"`
	AircraftType string  `json:"aircraft_type"`
}

// GridTable holds one row per (fare, load factor) pair.
// Fare varies slower than load factor: row i is fare i/M, load factor i%M.
type GridTable []GridRow

// Request describes one sweep.
type Request struct {
	DistanceNM     float64
	Aircraft       model.AircraftProfile
	FuelPricePerKg float64
	Fares          Range
	LoadFactors    Range
}

// Sweeper runs sweeps. The zero value is a serial sweeper with default costs.
type Sweeper struct {
	// Workers > 1 computes fare rows concurrently. Output order is unaffected.
	Workers int
	// Costs overrides model.DefaultCostParams for every cell when non-nil.
	Costs *model.CostParams
	// MaxCells bounds len(fares)*len(load factors) (0 = no bound).
	MaxCells int
}

// Generate sweeps fares (outer) and load factors (inner) with default costs.
// An empty range yields an empty table.
func Generate(distanceNM float64, aircraft model.AircraftProfile, fuelPricePerKg float64, fareRange, lfRange Range) (GridTable, error) {
	return Sweeper{}.Run(context.Background(), Request{
		DistanceNM:     distanceNM,
		Aircraft:       aircraft,
		FuelPricePerKg: fuelPricePerKg,
		Fares:          fareRange,
		LoadFactors:    lfRange,
	})
}

// Run executes the sweep. Cells with non-finite results are kept; a bad cell
// never aborts the sweep.
func (s Sweeper) Run(ctx context.Context, req Request) (GridTable, error) {
	fares, err := req.Fares.ValuesLimit(s.MaxCells)
	if err != nil {
		return nil, fmt.Errorf("fare range: %w", err)
	}
	lfs, err := req.LoadFactors.ValuesLimit(s.MaxCells)
	if err != nil {
		return nil, fmt.Errorf("load factor range: %w", err)
	}
	cells := len(fares) * len(lfs)
	if s.MaxCells > 0 && cells > s.MaxCells {
		return nil, fmt.Errorf("%w: %d x %d > %d", ErrTooManyCells, len(fares), len(lfs), s.MaxCells)
	}

	costs := model.DefaultCostParams()
	if s.Costs != nil {
		costs = *s.Costs
	}

	table := make(GridTable, cells)
	fill := func(i int) {
		fare := fares[i]
		for j, lf := range lfs {
			sc := model.NewScenario(req.DistanceNM, req.Aircraft, fare, lf, req.FuelPricePerKg)
			sc.Costs = costs
			table[i*len(lfs)+j] = GridRow{
				ProfitResult: profit.ComputeProfit(sc),
				AvgFare:      fare,
				LoadFactor:   lf,
				AircraftType: req.Aircraft.AircraftType,
			}
		}
	}

	if s.Workers <= 1 {
		for i := range fares {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			fill(i)
		}
		return table, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Workers)
	for i := range fares {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fill(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return table, nil
}
