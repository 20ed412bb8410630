package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"text/tabwriter"

	"route-profitability/internal/analysis"
	"route-profitability/internal/config"
	"route-profitability/internal/data"
	"route-profitability/internal/model"
	"route-profitability/internal/profit"
	"route-profitability/internal/report"
	"route-profitability/internal/sweep"
	"route-profitability/pkg/logger"

	"github.com/spf13/cobra"
)

type globalOpts struct {
	configPath string
	logLevel   string
	logFormat  string
}

// scenarioOpts are the flags shared by every command. Flags that were set
// override the config file; unset flags leave it alone.
type scenarioOpts struct {
	aircraft      string
	aircraftFile  string
	aircraftTable string
	route         string
	routeTable    string
	distance      float64

	fare       float64
	loadFactor float64
	fuelPrice  float64

	ancillaries float64
	crew        float64
	maintenance float64
	airportFees float64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var g globalOpts

	root := &cobra.Command{
		Use:   "cli",
		Short: "Airline route profitability simulator",
		Long: `Prices a single flight or sweeps a fare × load factor grid for one aircraft
on one route.

Examples:
  cli profit --aircraft A320 --distance 1000 --fare 200 --load-factor 0.85 --fuel-price 0.9
  cli grid --config examples/config.yaml --summary
  cli surface --from results/profit_grid_A320.csv --pdf results/surface.pdf
  cli rank --route LHR-MAD --fare 180 --load-factor 0.8`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "YAML or TOML run config")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "console", "log format (console, json)")

	root.AddCommand(profitCmd(&g), gridCmd(&g), surfaceCmd(&g), rankCmd(&g))
	return root
}

func (o *scenarioOpts) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.aircraft, "aircraft", "a", "", "aircraft type, looked up in --aircraft-table")
	f.StringVar(&o.aircraftFile, "aircraft-file", "", "aircraft preset file (YAML or TOML)")
	f.StringVar(&o.aircraftTable, "aircraft-table", filepath.Join("data", "aircraft_profiles.csv"), "aircraft table CSV")
	f.StringVarP(&o.route, "route", "r", "", "route name, looked up in --route-table")
	f.StringVar(&o.routeTable, "route-table", filepath.Join("data", "sample_routes.csv"), "route table CSV")
	f.Float64VarP(&o.distance, "distance", "d", 0, "route distance in nm (overrides --route)")

	f.Float64Var(&o.fare, "fare", 0, "average fare")
	f.Float64Var(&o.loadFactor, "load-factor", 0, "load factor in [0,1]")
	f.Float64Var(&o.fuelPrice, "fuel-price", 0, "fuel price per kg")

	f.Float64Var(&o.ancillaries, "ancillaries", 0, "ancillary revenue per passenger (default 20)")
	f.Float64Var(&o.crew, "crew-cost", 0, "crew cost per flight (default 2000)")
	f.Float64Var(&o.maintenance, "maintenance", 0, "maintenance cost per block hour (default 500)")
	f.Float64Var(&o.airportFees, "airport-fees", 0, "airport fees per flight (default 1000)")
}

// load builds the run config from --config and the flags that were set, and validates it.
func (o *scenarioOpts) load(cmd *cobra.Command, g *globalOpts) (*config.Config, error) {
	cfg, err := o.build(cmd, g)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *scenarioOpts) build(cmd *cobra.Command, g *globalOpts) (*config.Config, error) {
	cfg := config.Default()
	if g.configPath != "" {
		loaded, err := config.LoadUnchecked(g.configPath)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	f := cmd.Flags()
	switch {
	case f.Changed("aircraft-file"):
		a, err := config.LoadAircraftFile(o.aircraftFile)
		if err != nil {
			return nil, err
		}
		if f.Changed("aircraft") {
			a.AircraftType = o.aircraft
		}
		cfg.Aircraft = a
	case f.Changed("aircraft"):
		cfg.Aircraft = model.AircraftProfile{AircraftType: o.aircraft}
	}
	if cfg.Data.AircraftTable == "" || f.Changed("aircraft-table") {
		cfg.Data.AircraftTable = existing(o.aircraftTable)
	}
	if f.Changed("route") {
		cfg.Route = model.Route{Name: o.route}
	}
	if cfg.Data.RouteTable == "" || f.Changed("route-table") {
		cfg.Data.RouteTable = existing(o.routeTable)
	}
	if err := cfg.ResolveTables(); err != nil {
		return nil, err
	}
	if f.Changed("distance") {
		cfg.Route.DistanceNM = o.distance
	}

	if f.Changed("fare") {
		cfg.Market.AvgFare = o.fare
	}
	if f.Changed("load-factor") {
		cfg.Market.LoadFactor = o.loadFactor
	}
	if f.Changed("fuel-price") {
		cfg.Market.FuelPricePerKg = o.fuelPrice
	}
	override := func(name string, v float64, dst **float64) {
		if f.Changed(name) {
			*dst = &v
		}
	}
	override("ancillaries", o.ancillaries, &cfg.Costs.AncillariesPerPassenger)
	override("crew-cost", o.crew, &cfg.Costs.CrewCostPerFlight)
	override("maintenance", o.maintenance, &cfg.Costs.MaintenancePerBlockHour)
	override("airport-fees", o.airportFees, &cfg.Costs.AirportFees)
	return &cfg, nil
}

// existing returns path if it exists, so a missing default table is not an error.
func existing(path string) string {
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func newLogger(g *globalOpts, cfg *config.Config) (*logger.Logger, error) {
	lc := logger.Config{Level: g.logLevel, Format: g.logFormat}
	if cfg != nil && g.configPath != "" {
		if cfg.Log.Level != "" {
			lc.Level = cfg.Log.Level
		}
		if cfg.Log.Format != "" {
			lc.Format = cfg.Log.Format
		}
	}
	return logger.New(lc)
}

func profitCmd(g *globalOpts) *cobra.Command {
	var o scenarioOpts
	cmd := &cobra.Command{
		Use:   "profit",
		Short: "Price a single flight",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.load(cmd, g)
			if err != nil {
				return err
			}
			s := cfg.Scenario()
			res := profit.ComputeProfit(s)

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "aircraft\t%s\n", s.Aircraft.AircraftType)
			if cfg.Route.Name != "" {
				fmt.Fprintf(tw, "route\t%s\n", cfg.Route.Name)
			}
			fmt.Fprintf(tw, "distance_nm\t%g\n", res.DistanceNM)
			fmt.Fprintf(tw, "block_time_h\t%.3f\n", res.BlockTimeH)
			fmt.Fprintf(tw, "revenue\t%.2f\n", res.Revenue)
			fmt.Fprintf(tw, "total_cost\t%.2f\n", res.TotalCost)
			fmt.Fprintf(tw, "profit\t%.2f\n", res.Profit)
			fmt.Fprintf(tw, "profit_margin\t%.4f\n", res.ProfitMargin)
			fmt.Fprintf(tw, "profit_per_passenger\t%.2f\n", res.ProfitPerPassenger)
			fmt.Fprintf(tw, "outcome\t%s\n", model.OutcomeFromProfit(res.Profit))
			if lf, ok := analysis.BreakEvenLoadFactor(s); ok {
				fmt.Fprintf(tw, "break_even_load_factor\t%.4f\n", lf)
			}
			if fare, ok := analysis.BreakEvenFare(s); ok {
				fmt.Fprintf(tw, "break_even_fare\t%.2f\n", fare)
			}
			return tw.Flush()
		},
	}
	o.register(cmd)
	return cmd
}

type sweepOpts struct {
	fares       rangeValue
	loadFactors rangeValue
	workers     int
}

func (s *sweepOpts) register(cmd *cobra.Command) {
	cmd.Flags().Var(&s.fares, "fares", "fare sweep start:stop:step (default 50:501:25)")
	cmd.Flags().Var(&s.loadFactors, "load-factors", "load factor sweep start:stop:step (default 0.5:0.96:0.05)")
	cmd.Flags().IntVarP(&s.workers, "workers", "w", 0, "parallel sweep workers, -1 for one per CPU (default from config)")
}

func (s *sweepOpts) run(cmd *cobra.Command, cfg *config.Config, log *logger.Logger) (sweep.GridTable, error) {
	if s.fares.set {
		cfg.Sweep.Fares = s.fares.r
	}
	if s.loadFactors.set {
		cfg.Sweep.LoadFactors = s.loadFactors.r
	}
	if cmd.Flags().Changed("workers") {
		cfg.Sweep.Workers = s.workers
		if s.workers < 0 {
			cfg.Sweep.Workers = runtime.NumCPU()
		}
	}

	costs := cfg.Scenario().Costs
	sw := sweep.Sweeper{Workers: cfg.Sweep.Workers, Costs: &costs}
	log.Debug("sweeping",
		logger.String("aircraft", cfg.Aircraft.AircraftType),
		logger.Float64("distance_nm", cfg.Route.DistanceNM),
		logger.String("fares", cfg.Sweep.Fares.String()),
		logger.String("load_factors", cfg.Sweep.LoadFactors.String()),
		logger.Int("workers", sw.Workers),
	)
	return sw.Run(cmd.Context(), cfg.SweepRequest())
}

func gridCmd(g *globalOpts) *cobra.Command {
	var (
		o       scenarioOpts
		s       sweepOpts
		outDir  string
		summary bool
	)
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Sweep fares and load factors and export the grid as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.load(cmd, g)
			if err != nil {
				return err
			}
			log, err := newLogger(g, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			table, err := s.run(cmd, cfg, log)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("out") {
				cfg.Output.Dir = outDir
			}
			if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
				return err
			}
			path := filepath.Join(cfg.Output.Dir, config.GridFileName(cfg.Aircraft.AircraftType, cfg.Route.Name))
			if err := sweep.WriteGridCSV(path, table); err != nil {
				return err
			}
			log.Info("grid written", logger.String("path", path), logger.Int("rows", len(table)))

			if summary {
				return printSummary(cmd, analysis.Summarize(table))
			}
			return nil
		},
	}
	o.register(cmd)
	s.register(cmd)
	cmd.Flags().StringVarP(&outDir, "out", "o", "results", "output directory")
	cmd.Flags().BoolVar(&summary, "summary", false, "print a summary of the grid")
	return cmd
}

func printSummary(cmd *cobra.Command, s analysis.GridSummary) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "cells\t%d\n", s.Cells)
	fmt.Fprintf(tw, "profitable\t%d\n", s.Profitable)
	if s.Best != nil {
		fmt.Fprintf(tw, "best\tfare=%g lf=%.2f profit=%.2f\n", s.Best.AvgFare, s.Best.LoadFactor, s.Best.Profit)
	}
	if s.Worst != nil {
		fmt.Fprintf(tw, "worst\tfare=%g lf=%.2f profit=%.2f\n", s.Worst.AvgFare, s.Worst.LoadFactor, s.Worst.Profit)
	}
	fmt.Fprintf(tw, "profit p05/p50/p95\t%.2f / %.2f / %.2f\n", s.P05Profit, s.P50Profit, s.P95Profit)
	fmt.Fprintln(tw, "\nfare\tbreak-even lf\tprofit")
	for _, be := range s.BreakEven {
		fmt.Fprintf(tw, "%g\t%.2f\t%.2f\n", be.AvgFare, be.LoadFactor, be.Profit)
	}
	return tw.Flush()
}

func surfaceCmd(g *globalOpts) *cobra.Command {
	var (
		o       scenarioOpts
		s       sweepOpts
		from    string
		metric  string
		pdfPath string
		title   string
	)
	cmd := &cobra.Command{
		Use:   "surface",
		Short: "Pivot a grid into a load factor × fare surface",
		Long: `Pivots a grid into a table with load factors as rows and fares as columns.
The grid is read from --from (a CSV written by "cli grid") or swept from the
config and flags.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var table sweep.GridTable
			if from != "" {
				f, err := os.Open(from)
				if err != nil {
					return err
				}
				defer f.Close()
				if table, err = sweep.DecodeGridCSV(f); err != nil {
					return fmt.Errorf("%s: %w", from, err)
				}
				if title == "" {
					title = filepath.Base(from)
				}
			} else {
				cfg, err := o.load(cmd, g)
				if err != nil {
					return err
				}
				log, err := newLogger(g, cfg)
				if err != nil {
					return err
				}
				if table, err = s.run(cmd, cfg, log); err != nil {
					return err
				}
				if title == "" {
					title = strings.TrimSpace(fmt.Sprintf("%s %s %g nm", cfg.Aircraft.AircraftType, cfg.Route.Name, cfg.Route.DistanceNM))
				}
			}

			surface, err := sweep.PivotBy(table, sweep.Metric(metric))
			if err != nil {
				return err
			}
			if pdfPath != "" {
				if err := report.WriteSurfacePDF(pdfPath, surface, title); err != nil {
					return err
				}
			}
			return printSurface(cmd, surface)
		},
	}
	o.register(cmd)
	s.register(cmd)
	cmd.Flags().StringVar(&from, "from", "", "grid CSV to pivot instead of sweeping")
	cmd.Flags().StringVarP(&metric, "metric", "m", string(sweep.MetricProfit), "profit, profit_margin, profit_per_passenger, revenue or total_cost")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "also render the surface as a PDF heatmap")
	cmd.Flags().StringVar(&title, "title", "", "PDF title")
	return cmd
}

func printSurface(cmd *cobra.Command, s *sweep.Surface) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "lf \\ fare\t")
	for _, f := range s.Fares {
		fmt.Fprintf(tw, "%g\t", f)
	}
	fmt.Fprintln(tw)
	for i, lf := range s.LoadFactors {
		fmt.Fprintf(tw, "%.2f\t", lf)
		for _, v := range s.Values[i] {
			fmt.Fprintf(tw, "%.2f\t", v)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func rankCmd(g *globalOpts) *cobra.Command {
	var (
		o     scenarioOpts
		types []string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank every aircraft in the table on one route",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.build(cmd, g)
			if err != nil {
				return err
			}
			if cfg.Data.AircraftTable == "" {
				return fmt.Errorf("%w: no aircraft table (see --aircraft-table)", model.ErrInvalidInput)
			}
			fleet, err := data.LoadAircraftCSV(cfg.Data.AircraftTable)
			if err != nil {
				return err
			}
			if len(types) > 0 {
				subset := make([]model.AircraftProfile, 0, len(types))
				for _, t := range types {
					a, ok := data.LookupAircraft(fleet, t)
					if !ok {
						return fmt.Errorf("%w: aircraft %q not in %s", model.ErrInvalidInput, t, cfg.Data.AircraftTable)
					}
					subset = append(subset, a)
				}
				fleet = subset
			}
			if len(fleet) == 0 {
				return fmt.Errorf("%w: %s has no aircraft", model.ErrInvalidInput, cfg.Data.AircraftTable)
			}

			// The ranked aircraft come from the table; the config only supplies route and market.
			cfg.Aircraft = fleet[0]
			if err := cfg.Validate(); err != nil {
				return err
			}

			s := cfg.Scenario()
			ranked := analysis.RankAircraft(s.DistanceNM, fleet, s.AvgFare, s.LoadFactor, s.FuelPricePerKg, s.Costs)
			if limit > 0 && limit < len(ranked) {
				ranked = ranked[:limit]
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "rank\taircraft\tseats\tprofit\tmargin\tper pax\tbreak-even lf\toutcome")
			for i, r := range ranked {
				be := "-"
				if r.BreakEvenLoadFactor != nil {
					be = fmt.Sprintf("%.3f", *r.BreakEvenLoadFactor)
				}
				fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f\t%.4f\t%.2f\t%s\t%s\n",
					i+1, r.Aircraft.AircraftType, r.Aircraft.Seats,
					r.Result.Profit, r.Result.ProfitMargin, r.Result.ProfitPerPassenger, be, r.Outcome)
			}
			return tw.Flush()
		},
	}
	o.register(cmd)
	cmd.Flags().StringSliceVar(&types, "types", nil, "aircraft types to rank (default all)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the top N (0 = all)")
	return cmd
}

// rangeValue is a pflag.Value for start:stop:step.
type rangeValue struct {
	r   sweep.Range
	set bool
}

func (v *rangeValue) String() string {
	if !v.set {
		return ""
	}
	return fmt.Sprintf("%g:%g:%g", v.r.Start, v.r.Stop, v.r.Step)
}

func (v *rangeValue) Set(s string) error {
	r, err := sweep.ParseRange(s)
	if err != nil {
		return err
	}
	v.r, v.set = r, true
	return nil
}

func (v *rangeValue) Type() string { return "range" }
