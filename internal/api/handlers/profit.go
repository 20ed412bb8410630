package handlers

import (
	"net/http"

	"route-profitability/internal/analysis"
	"route-profitability/internal/api/models"
	"route-profitability/internal/model"
	"route-profitability/internal/profit"

	"github.com/gin-gonic/gin"
)

// ProfitHandler prices single flights
type ProfitHandler struct {
	catalog *Catalog
}

// NewProfitHandler creates a new profit handler
func NewProfitHandler(catalog *Catalog) *ProfitHandler {
	return &ProfitHandler{catalog: catalog}
}

// ComputeProfit handles POST /api/v1/profit
func (h *ProfitHandler) ComputeProfit(c *gin.Context) {
	var req models.ProfitRequest
	if !bindJSON(c, &req) {
		return
	}

	aircraft, route, costs, aerr := h.catalog.flight(req.FlightRequest)
	if aerr != nil {
		abortWith(c, aerr)
		return
	}

	s := model.NewScenario(route.DistanceNM, aircraft, *req.AvgFare, *req.LoadFactor, *req.FuelPricePerKg)
	s.Costs = costs
	res := profit.ComputeProfit(s)
	if !res.Finite() {
		abortWith(c, nonFinite())
		return
	}

	resp := models.ProfitResponse{
		AircraftType: aircraft.AircraftType,
		Route:        route.Name,
		Result:       res,
		Outcome:      model.OutcomeFromProfit(res.Profit),
		Costs:        costs,
	}
	if lf, ok := analysis.BreakEvenLoadFactor(s); ok {
		lf = profit.Round(lf, 4)
		resp.BreakEvenLoadFactor = &lf
	}
	if fare, ok := analysis.BreakEvenFare(s); ok {
		fare = profit.Round(fare, 2)
		resp.BreakEvenFare = &fare
	}

	c.JSON(http.StatusOK, resp)
}
