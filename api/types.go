// Package api - API types for blend optimization
// These types define the contract for the /optimize and /sweep
// endpoints. The API is stateless, idempotent, and deterministic.
package api

import (
	"waterblend/core/output"
	"waterblend/core/sweep"
)

// WellInput is one well in a request
type WellInput struct {
	// ID is the unique well identifier
	ID string `json:"id"`

	// Capacity is the maximum extractable flow in L/s
	Capacity float64 `json:"capacity"`

	// Arsenic is the raw water arsenic concentration in mg/L
	Arsenic float64 `json:"arsenic"`

	// Chloride is the raw water chloride concentration in mg/L
	Chloride float64 `json:"chloride"`

	// Available gates use of the well (defaults to true)
	Available *bool `json:"available,omitempty"`
}

// ScoringInput overrides the configured scoring parameters
type ScoringInput struct {
	WeightArsenic  float64 `json:"weight_arsenic"`
	WeightChloride float64 `json:"weight_chloride"`
	RefArsenic     float64 `json:"ref_arsenic"`
	RefChloride    float64 `json:"ref_chloride"`
}

// OptimizeRequest is the payload for POST /optimize
type OptimizeRequest struct {
	// Wells is the source registry for this request
	Wells []WellInput `json:"wells"`

	// Demand is the required total output flow in L/s
	Demand float64 `json:"demand"`

	// Scoring optionally overrides the configured weights and references
	Scoring *ScoringInput `json:"scoring,omitempty"`

	// Pretreatment selects the unit operation (defaults to configured)
	Pretreatment string `json:"pretreatment,omitempty"`

	// Catalog selects a built-in efficiency catalog preset
	Catalog string `json:"catalog,omitempty"`
}

// OptimizeResponse is the payload for a successful optimization
type OptimizeResponse struct {
	Report *output.Report `json:"report"`
}

// SweepRequest is the payload for POST /sweep
type SweepRequest struct {
	// Wells is the source registry for this request
	Wells []WellInput `json:"wells"`

	// Start is the first demand value in L/s
	Start float64 `json:"start"`

	// Stop is the exclusive upper demand bound in L/s
	Stop float64 `json:"stop"`

	// Step is the demand increment in L/s
	Step float64 `json:"step"`

	// Scoring optionally overrides the configured weights and references
	Scoring *ScoringInput `json:"scoring,omitempty"`
}

// SweepResponse is the payload for a successful sweep
type SweepResponse struct {
	// Series is the full sweep outcome including skipped points
	Series sweep.Series `json:"series"`

	// Feasible is the chartable subset, ascending in demand
	Feasible sweep.Series `json:"feasible"`
}

// CatalogsResponse lists the available catalog presets
type CatalogsResponse struct {
	Presets []CatalogSummary `json:"presets"`
}

// CatalogSummary describes one catalog preset
type CatalogSummary struct {
	Name       string   `json:"name"`
	Operations []string `json:"operations"`
}

// ErrorBody is the error envelope
type ErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ErrorResponse wraps an error
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
