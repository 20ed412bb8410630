package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"route-profitability/internal/analysis"
	"route-profitability/internal/config"
	"route-profitability/internal/model"
	"route-profitability/internal/profit"
	"route-profitability/internal/sweep"
	"route-profitability/pkg/logger"
)

// Demo:
// - Price one A320 flight over 1000 nm
// - Sweep fares 50..500 and load factors 0.5..0.95
// - Write the grid to results/profit_grid_A320.csv
func main() {
	outDir := flag.String("out", "results", "Directory to write the grid CSV to")
	n := flag.Int("n", 5, "Number of grid rows to print")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: *logLevel})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	distanceNM := 1000.0
	fuelPricePerKg := 0.9
	a320 := model.AircraftProfile{
		AircraftType:        "A320",
		Seats:               180,
		CruiseSpeedKts:      450,
		FuelBurnKgph:        2500,
		FixedCostsPerFlight: 500,
	}
	fares := sweep.Range{Start: 50, Stop: 501, Step: 25}
	loadFactors := sweep.Range{Start: 0.5, Stop: 0.96, Step: 0.05}

	single := profit.ComputeProfit(model.NewScenario(distanceNM, a320, 200, 0.85, fuelPricePerKg))
	fmt.Printf("A320 %g nm, fare 200, load factor 0.85: block %.3fh revenue=$%.2f cost=$%.2f profit=$%.2f margin=%.4f per pax=$%.2f\n",
		distanceNM, single.BlockTimeH, single.Revenue, single.TotalCost, single.Profit, single.ProfitMargin, single.ProfitPerPassenger)

	table, err := sweep.Generate(distanceNM, a320, fuelPricePerKg, fares, loadFactors)
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}
	path := filepath.Join(*outDir, config.GridFileName(a320.AircraftType, ""))
	if err := sweep.WriteGridCSV(path, table); err != nil {
		panic(err)
	}
	log.Info("grid written", logger.String("path", path), logger.Int("rows", len(table)))

	fmt.Printf("%-8s %-6s %-12s %-12s %-8s\n", "fare", "lf", "revenue", "profit", "margin")
	for i := 0; i < *n && i < len(table); i++ {
		r := table[i]
		fmt.Printf("%-8g %-6.2f %-12.2f %-12.2f %-8.4f\n", r.AvgFare, r.LoadFactor, r.Revenue, r.Profit, r.ProfitMargin)
	}

	s := analysis.Summarize(table)
	fmt.Printf("Wrote %d rows to %s\n", len(table), path)
	if s.Best != nil {
		fmt.Printf("Best cell: fare=%g lf=%.2f profit=$%.2f; %d/%d cells profitable\n",
			s.Best.AvgFare, s.Best.LoadFactor, s.Best.Profit, s.Profitable, s.Cells)
	}
}
