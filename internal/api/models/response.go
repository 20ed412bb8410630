package models

import (
	"route-profitability/internal/analysis"
	"route-profitability/internal/model"
	"route-profitability/internal/sweep"
)

// ProfitResponse represents the result of pricing one flight
type ProfitResponse struct {
	AircraftType string             `json:"aircraft_type"`
	Route        string             `json:"route,omitempty"`
	Result       model.ProfitResult `json:"result"`
	Outcome      model.Outcome      `json:"outcome"`
	Costs        model.CostParams   `json:"costs"`

	BreakEvenLoadFactor *float64 `json:"break_even_load_factor,omitempty"`
	BreakEvenFare       *float64 `json:"break_even_fare,omitempty"`
}

// GridResponse represents the rows of a sweep
type GridResponse struct {
	AircraftType string                `json:"aircraft_type"`
	Route        string                `json:"route,omitempty"`
	DistanceNM   float64               `json:"distance_nm"`
	Cells        int                   `json:"cells"`
	Rows         sweep.GridTable       `json:"rows"`
	Summary      *analysis.GridSummary `json:"summary,omitempty"`
}

// SurfaceResponse is a pivoted sweep. Missing cells are null.
type SurfaceResponse struct {
	AircraftType string       `json:"aircraft_type"`
	Route        string       `json:"route,omitempty"`
	Metric       sweep.Metric `json:"metric"`
	Fares        []float64    `json:"fares"`
	LoadFactors  []float64    `json:"load_factors"`
	Values       [][]*float64 `json:"values"`
}

// RankResponse represents the response from ranking aircraft
type RankResponse struct {
	Route      string    `json:"route,omitempty"`
	DistanceNM float64   `json:"distance_nm"`
	Rankings   []Ranking `json:"rankings"`
}

// Ranking represents one ranked aircraft type
type Ranking struct {
	Rank int `json:"rank"`
	analysis.RankedAircraft
}

// PresetInfo represents information about an aircraft preset file
type PresetInfo struct {
	ID       string                `json:"id"`
	Name     string                `json:"name"`
	File     string                `json:"file"`
	Aircraft model.AircraftProfile `json:"aircraft"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
