package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"route-profitability/internal/api/models"
	"route-profitability/internal/config"
	"route-profitability/internal/data"
	"route-profitability/internal/model"

	"github.com/gin-gonic/gin"
)

// Table file names looked up in the data directory.
const (
	AircraftTableFile = "aircraft_profiles.csv"
	RouteTableFile    = "sample_routes.csv"
)

// Catalog holds the aircraft and route tables the API resolves names against.
// It is read-only after loading.
type Catalog struct {
	Aircraft []model.AircraftProfile
	Routes   []model.Route
}

// LoadCatalog reads both tables from dir. A missing file leaves that table empty;
// a malformed one is an error.
func LoadCatalog(dir string) (*Catalog, error) {
	c := &Catalog{}

	path := filepath.Join(dir, AircraftTableFile)
	if _, err := os.Stat(path); err == nil {
		if c.Aircraft, err = data.LoadAircraftCSV(path); err != nil {
			return nil, err
		}
	}
	path = filepath.Join(dir, RouteTableFile)
	if _, err := os.Stat(path); err == nil {
		if c.Routes, err = data.LoadRoutesCSV(path); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// apiError carries the status and code a handler responds with.
type apiError struct {
	status  int
	code    string
	message string
	details map[string]interface{}
}

func (e *apiError) Error() string { return e.message }

func (e *apiError) response() models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    e.code,
			Message: e.message,
			Details: e.details,
		},
	}
}

func badRequest(code, format string, args ...interface{}) *apiError {
	return &apiError{status: http.StatusBadRequest, code: code, message: fmt.Sprintf(format, args...)}
}

// aircraft resolves the aircraft of a request and validates it.
func (c *Catalog) aircraft(aircraftType string, inline *model.AircraftProfile) (model.AircraftProfile, *apiError) {
	var a model.AircraftProfile
	switch {
	case aircraftType != "":
		found, ok := data.LookupAircraft(c.Aircraft, aircraftType)
		if !ok && inline == nil {
			return a, &apiError{
				status:  http.StatusNotFound,
				code:    "UNKNOWN_AIRCRAFT",
				message: fmt.Sprintf("aircraft %q is not in the aircraft table", aircraftType),
			}
		}
		a = found
		if inline != nil {
			a = config.MergeAircraft(a, *inline)
		}
		if a.AircraftType == "" {
			a.AircraftType = aircraftType
		}
	case inline != nil:
		a = *inline
	default:
		return a, badRequest("INVALID_AIRCRAFT", "aircraft_type or aircraft is required")
	}

	if err := a.Validate(); err != nil {
		return a, badRequest("INVALID_AIRCRAFT", "%s", err.Error())
	}
	return a, nil
}

// route resolves the route name and distance of a request.
func (c *Catalog) route(name string, distanceNM float64) (model.Route, *apiError) {
	r := model.Route{Name: name, DistanceNM: distanceNM}
	if name != "" {
		if found, ok := data.FindRoute(c.Routes, name); ok {
			r = found
			if distanceNM != 0 {
				r.DistanceNM = distanceNM
			}
		} else if distanceNM == 0 {
			return r, &apiError{
				status:  http.StatusNotFound,
				code:    "UNKNOWN_ROUTE",
				message: fmt.Sprintf("route %q is not in the route table", name),
			}
		}
	}
	if !(r.DistanceNM > 0) {
		return r, badRequest("INVALID_ROUTE", "distance_nm must be > 0")
	}
	return r, nil
}

func resolveCosts(o model.CostOverrides) (model.CostParams, *apiError) {
	if err := o.Validate(); err != nil {
		return model.CostParams{}, badRequest("INVALID_COSTS", "%s", err.Error())
	}
	return o.Apply(model.DefaultCostParams()), nil
}

// flight resolves everything a FlightRequest names.
func (c *Catalog) flight(req models.FlightRequest) (model.AircraftProfile, model.Route, model.CostParams, *apiError) {
	a, aerr := c.aircraft(req.AircraftType, req.Aircraft)
	if aerr != nil {
		return a, model.Route{}, model.CostParams{}, aerr
	}
	r, rerr := c.route(req.Route, req.DistanceNM)
	if rerr != nil {
		return a, r, model.CostParams{}, rerr
	}
	p, cerr := resolveCosts(req.Costs)
	if cerr != nil {
		return a, r, p, cerr
	}
	return a, r, p, nil
}

// nonFinite is returned instead of encoding NaN or Inf, which JSON cannot carry.
func nonFinite() *apiError {
	return &apiError{
		status:  http.StatusUnprocessableEntity,
		code:    "NON_FINITE_RESULT",
		message: "result contains non-finite values",
	}
}

func abortWith(c *gin.Context, e *apiError) {
	c.AbortWithStatusJSON(e.status, e.response())
}

// bindJSON binds the body or responds INVALID_REQUEST.
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		abortWith(c, badRequest("INVALID_REQUEST", "%s", err.Error()))
		return false
	}
	return true
}
