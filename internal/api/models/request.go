package models

import (
	"route-profitability/internal/model"
	"route-profitability/internal/sweep"
)

// FlightRequest identifies the aircraft, route and market shared by every request.
// The aircraft comes from the table by aircraft_type, inline via aircraft, or both
// (inline fields override the table profile). The route comes from the table
// by route, or from distance_nm, which wins when both are given.
type FlightRequest struct {
	Route      string  `json:"route,omitempty"`
	DistanceNM float64 `json:"distance_nm,omitempty"`

	AircraftType string                 `json:"aircraft_type,omitempty"`
	Aircraft     *model.AircraftProfile `json:"aircraft,omitempty"`

	FuelPricePerKg *float64            `json:"fuel_price_per_kg" binding:"required"`
	Costs          model.CostOverrides `json:"costs"`
}

// ProfitRequest represents the request body for pricing one flight
type ProfitRequest struct {
	FlightRequest
	AvgFare    *float64 `json:"avg_fare" binding:"required"`
	LoadFactor *float64 `json:"load_factor" binding:"required"`
}

// GridRequest represents the request body for a fare × load factor sweep
type GridRequest struct {
	FlightRequest
	Fares       sweep.Range `json:"fares"`
	LoadFactors sweep.Range `json:"load_factors"`
	Summary     bool        `json:"summary,omitempty"`
}

// SurfaceRequest is a GridRequest pivoted on one metric (default profit).
type SurfaceRequest struct {
	GridRequest
	Metric string `json:"metric,omitempty"`
}

// RankRequest represents a request to rank aircraft types on one route
type RankRequest struct {
	Route      string  `json:"route,omitempty"`
	DistanceNM float64 `json:"distance_nm,omitempty"`

	// AircraftTypes limits the ranking; empty ranks the whole table.
	AircraftTypes []string `json:"aircraft_types,omitempty"`

	AvgFare        *float64            `json:"avg_fare" binding:"required"`
	LoadFactor     *float64            `json:"load_factor" binding:"required"`
	FuelPricePerKg *float64            `json:"fuel_price_per_kg" binding:"required"`
	Costs          model.CostOverrides `json:"costs"`
	Limit          int                 `json:"limit,omitempty"` // 0 = all
}
