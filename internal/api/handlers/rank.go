package handlers

import (
	"net/http"

	"route-profitability/internal/analysis"
	"route-profitability/internal/api/models"
	"route-profitability/internal/data"
	"route-profitability/internal/model"

	"github.com/gin-gonic/gin"
)

// RankHandler handles ranking-related requests
type RankHandler struct {
	catalog *Catalog
}

// NewRankHandler creates a new rank handler
func NewRankHandler(catalog *Catalog) *RankHandler {
	return &RankHandler{catalog: catalog}
}

// RankAircraft handles POST /api/v1/rank
func (h *RankHandler) RankAircraft(c *gin.Context) {
	var req models.RankRequest
	if !bindJSON(c, &req) {
		return
	}

	route, aerr := h.catalog.route(req.Route, req.DistanceNM)
	if aerr != nil {
		abortWith(c, aerr)
		return
	}
	costs, aerr := resolveCosts(req.Costs)
	if aerr != nil {
		abortWith(c, aerr)
		return
	}

	fleet := h.catalog.Aircraft
	if len(req.AircraftTypes) > 0 {
		fleet = make([]model.AircraftProfile, 0, len(req.AircraftTypes))
		for _, t := range req.AircraftTypes {
			a, ok := data.LookupAircraft(h.catalog.Aircraft, t)
			if !ok {
				abortWith(c, &apiError{
					status:  http.StatusNotFound,
					code:    "UNKNOWN_AIRCRAFT",
					message: "aircraft " + t + " is not in the aircraft table",
					details: map[string]interface{}{"aircraft_type": t},
				})
				return
			}
			fleet = append(fleet, a)
		}
	}
	if len(fleet) == 0 {
		abortWith(c, badRequest("NO_AIRCRAFT", "the aircraft table is empty"))
		return
	}

	ranked := analysis.RankAircraft(route.DistanceNM, fleet, *req.AvgFare, *req.LoadFactor, *req.FuelPricePerKg, costs)

	limit := req.Limit
	if limit <= 0 || limit > len(ranked) {
		limit = len(ranked)
	}
	ranked = ranked[:limit]

	rankings := make([]models.Ranking, len(ranked))
	for i, r := range ranked {
		if !r.Result.Finite() {
			abortWith(c, nonFinite())
			return
		}
		rankings[i] = models.Ranking{Rank: i + 1, RankedAircraft: r}
	}

	c.JSON(http.StatusOK, models.RankResponse{
		Route:      route.Name,
		DistanceNM: route.DistanceNM,
		Rankings:   rankings,
	})
}
