package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"route-profitability/internal/analysis"
	"route-profitability/internal/api/models"
	"route-profitability/internal/config"
	"route-profitability/internal/data"
	"route-profitability/internal/model"
	"route-profitability/internal/report"
	"route-profitability/internal/sweep"
	"route-profitability/pkg/logger"

	"github.com/gin-gonic/gin"
)

// DefaultMaxGridCells bounds a single API sweep.
const DefaultMaxGridCells = 250000

// GridHandler handles sweep requests
type GridHandler struct {
	catalog *Catalog
	cache   *data.GridCache
	sweeper sweep.Sweeper
	log     *logger.Logger
}

// NewGridHandler creates a new grid handler. cache may be nil.
func NewGridHandler(catalog *Catalog, cache *data.GridCache, workers, maxCells int, log *logger.Logger) *GridHandler {
	if maxCells <= 0 {
		maxCells = DefaultMaxGridCells
	}
	return &GridHandler{
		catalog: catalog,
		cache:   cache,
		sweeper: sweep.Sweeper{Workers: workers, MaxCells: maxCells},
		log:     log.Named("grid"),
	}
}

type gridRun struct {
	aircraft model.AircraftProfile
	route    model.Route
	table    sweep.GridTable
}

func (h *GridHandler) run(c *gin.Context, req models.GridRequest) (*gridRun, *apiError) {
	aircraft, route, costs, aerr := h.catalog.flight(req.FlightRequest)
	if aerr != nil {
		return nil, aerr
	}
	if err := req.Fares.Validate(); err != nil {
		return nil, badRequest("INVALID_RANGE", "fares: %s", err.Error())
	}
	if err := req.LoadFactors.Validate(); err != nil {
		return nil, badRequest("INVALID_RANGE", "load_factors: %s", err.Error())
	}

	sreq := sweep.Request{
		DistanceNM:     route.DistanceNM,
		Aircraft:       aircraft,
		FuelPricePerKg: *req.FuelPricePerKg,
		Fares:          req.Fares,
		LoadFactors:    req.LoadFactors,
	}
	key := data.GridCacheKey(sreq, costs)
	if table, ok := h.cache.Get(key); ok {
		h.log.Debug("grid cache hit", logger.String("aircraft", aircraft.AircraftType), logger.Int("cells", len(table)))
		return &gridRun{aircraft: aircraft, route: route, table: table}, nil
	}

	s := h.sweeper
	s.Costs = &costs
	table, err := s.Run(c.Request.Context(), sreq)
	switch {
	case errors.Is(err, sweep.ErrTooManyCells), errors.Is(err, sweep.ErrTooManyValues):
		return nil, &apiError{
			status:  http.StatusRequestEntityTooLarge,
			code:    "GRID_TOO_LARGE",
			message: err.Error(),
			details: map[string]interface{}{"max_cells": h.sweeper.MaxCells},
		}
	case err != nil:
		return nil, &apiError{status: http.StatusInternalServerError, code: "SWEEP_FAILED", message: err.Error()}
	}

	h.cache.Set(key, table)
	h.log.Debug("grid computed",
		logger.String("aircraft", aircraft.AircraftType),
		logger.Float64("distance_nm", route.DistanceNM),
		logger.Int("cells", len(table)),
	)
	return &gridRun{aircraft: aircraft, route: route, table: table}, nil
}

// RunGrid handles POST /api/v1/grid. ?format=csv returns the export file instead of JSON.
func (h *GridHandler) RunGrid(c *gin.Context) {
	var req models.GridRequest
	if !bindJSON(c, &req) {
		return
	}
	g, aerr := h.run(c, req)
	if aerr != nil {
		abortWith(c, aerr)
		return
	}

	if c.Query("format") == "csv" {
		name := config.GridFileName(g.aircraft.AircraftType, g.route.Name)
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		c.Status(http.StatusOK)
		if err := sweep.EncodeGridCSV(c.Writer, g.table); err != nil {
			_ = c.Error(err)
		}
		return
	}

	for i := range g.table {
		if !g.table[i].Finite() {
			abortWith(c, nonFinite())
			return
		}
	}

	resp := models.GridResponse{
		AircraftType: g.aircraft.AircraftType,
		Route:        g.route.Name,
		DistanceNM:   g.route.DistanceNM,
		Cells:        len(g.table),
		Rows:         g.table,
	}
	if resp.Rows == nil {
		resp.Rows = sweep.GridTable{}
	}
	if req.Summary {
		s := analysis.Summarize(g.table)
		resp.Summary = &s
	}
	c.JSON(http.StatusOK, resp)
}

// Surface handles POST /api/v1/grid/surface. ?format=pdf renders a heatmap.
func (h *GridHandler) Surface(c *gin.Context) {
	var req models.SurfaceRequest
	if !bindJSON(c, &req) {
		return
	}
	g, aerr := h.run(c, req.GridRequest)
	if aerr != nil {
		abortWith(c, aerr)
		return
	}

	surface, err := sweep.PivotBy(g.table, sweep.Metric(req.Metric))
	if err != nil {
		abortWith(c, badRequest("INVALID_METRIC", "%s", err.Error()))
		return
	}

	if c.Query("format") == "pdf" {
		title := fmt.Sprintf("%s %s (%g nm)", g.aircraft.AircraftType, g.route.Name, g.route.DistanceNM)
		c.Header("Content-Type", "application/pdf")
		c.Status(http.StatusOK)
		if err := report.WriteSurface(c.Writer, surface, title); err != nil {
			_ = c.Error(err)
		}
		return
	}

	c.JSON(http.StatusOK, models.SurfaceResponse{
		AircraftType: g.aircraft.AircraftType,
		Route:        g.route.Name,
		Metric:       surface.Metric,
		Fares:        nonNil(surface.Fares),
		LoadFactors:  nonNil(surface.LoadFactors),
		Values:       nullable(surface.Values),
	})
}

func nullable(values [][]float64) [][]*float64 {
	out := make([][]*float64, len(values))
	for i, row := range values {
		out[i] = make([]*float64, len(row))
		for j := range row {
			v := row[j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			out[i][j] = &v
		}
	}
	return out
}

func nonNil(xs []float64) []float64 {
	if xs == nil {
		return []float64{}
	}
	return xs
}
