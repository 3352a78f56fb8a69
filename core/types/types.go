// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

import "fmt"

// WellID uniquely identifies a supply well
type WellID string

// String returns the string representation of the well ID
func (w WellID) String() string {
	return string(w)
}

// Concentrations is a contaminant concentration pair in mg/L
type Concentrations struct {
	// Arsenic concentration in mg/L
	Arsenic float64 `json:"arsenic"`

	// Chloride concentration in mg/L
	Chloride float64 `json:"chloride"`
}

// Source is a supply well with its static attributes
type Source struct {
	// ID is the unique well identifier
	ID WellID `json:"id"`

	// Capacity is the maximum extractable flow in L/s
	Capacity float64 `json:"capacity"`

	// Quality holds the raw water contaminant concentrations
	Quality Concentrations `json:"quality"`

	// Available gates whether the well may be drawn from
	Available bool `json:"available"`
}

// Validate checks the source invariants
func (s Source) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("source has empty id")
	}
	if s.Capacity < 0 {
		return fmt.Errorf("source %s: negative capacity %g", s.ID, s.Capacity)
	}
	if s.Quality.Arsenic < 0 {
		return fmt.Errorf("source %s: negative arsenic concentration %g", s.ID, s.Quality.Arsenic)
	}
	if s.Quality.Chloride < 0 {
		return fmt.Errorf("source %s: negative chloride concentration %g", s.ID, s.Quality.Chloride)
	}
	return nil
}

// Weights is the contaminant penalty weight pair.
// Weights are non-negative and need not sum to one.
type Weights struct {
	Arsenic  float64 `json:"arsenic"`
	Chloride float64 `json:"chloride"`
}

// Convex derives a weight pair from a single arsenic weight in [0,1],
// assigning the complement to chloride.
func Convex(arsenic float64) Weights {
	return Weights{Arsenic: arsenic, Chloride: 1 - arsenic}
}

// ReferenceLimits are the positive normalization constants that make
// the two contaminant contributions commensurable in the score.
type ReferenceLimits struct {
	Arsenic  float64 `json:"arsenic"`
	Chloride float64 `json:"chloride"`
}

// FlowAssignment is one well's share of the blend
type FlowAssignment struct {
	// Well is the source identifier
	Well WellID `json:"well"`

	// Flow is the assigned flow in L/s
	Flow float64 `json:"flow"`
}

// Allocation maps wells to assigned flows, in registry order
type Allocation struct {
	// Entries lists per-well flows in registry order
	Entries []FlowAssignment `json:"entries"`

	// Demand is the demand the allocation was solved for
	Demand float64 `json:"demand"`
}

// Flow returns the flow assigned to a well (zero if absent)
func (a *Allocation) Flow(id WellID) float64 {
	for _, e := range a.Entries {
		if e.Well == id {
			return e.Flow
		}
	}
	return 0
}

// Total returns the sum of assigned flows
func (a *Allocation) Total() float64 {
	var total float64
	for _, e := range a.Entries {
		total += e.Flow
	}
	return total
}

// StageResult is the water quality after one treatment stage
type StageResult struct {
	// Stage is the stage name
	Stage string `json:"stage"`

	// Quality is the concentration pair leaving the stage
	Quality Concentrations `json:"quality"`
}

// BlendResult is the outcome of one blend optimization
type BlendResult struct {
	// Allocation is the optimal flow assignment
	Allocation *Allocation `json:"allocation"`

	// Blended is the flow-weighted product quality before treatment
	Blended Concentrations `json:"blended"`

	// Objective is the total weighted score of the allocation
	Objective float64 `json:"objective"`
}
