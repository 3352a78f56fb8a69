// Package api - HTTP handler for blend optimization
// This handler wraps the engine - it contains NO blending logic.
// All logic is delegated to core packages.
package api

import (
	"context"
	"time"

	"waterblend/core/output"
	"waterblend/core/registry"
	"waterblend/core/scoring"
	"waterblend/core/solver"
	"waterblend/core/sweep"
	"waterblend/core/treatment"
	"waterblend/core/types"
	"waterblend/internal/config"
	"waterblend/internal/errors"
)

// Handler orchestrates engine calls for the API
type Handler struct {
	cfg *config.Config
}

// NewHandler creates a handler over a configuration snapshot
func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
}

// buildRegistry converts request wells into a registry snapshot
func buildRegistry(wells []WellInput) (*registry.Registry, error) {
	if len(wells) == 0 {
		return nil, errors.Input("request declares no wells")
	}
	reg := registry.New()
	for _, w := range wells {
		available := true
		if w.Available != nil {
			available = *w.Available
		}
		err := reg.Add(types.Source{
			ID:       types.WellID(w.ID),
			Capacity: w.Capacity,
			Quality: types.Concentrations{
				Arsenic:  w.Arsenic,
				Chloride: w.Chloride,
			},
			Available: available,
		})
		if err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// scoringParams resolves request overrides against configured defaults
func (h *Handler) scoringParams(in *ScoringInput) scoring.Params {
	if in != nil {
		return scoring.Params{
			Weights: types.Weights{Arsenic: in.WeightArsenic, Chloride: in.WeightChloride},
			Refs:    types.ReferenceLimits{Arsenic: in.RefArsenic, Chloride: in.RefChloride},
		}
	}
	b := h.cfg.Blending
	return scoring.Params{
		Weights: types.Weights{Arsenic: b.WeightArsenic, Chloride: b.WeightChloride},
		Refs:    types.ReferenceLimits{Arsenic: b.RefArsenic, Chloride: b.RefChloride},
	}
}

// optimize runs one full optimization request
func (h *Handler) optimize(ctx context.Context, req *OptimizeRequest) (*output.Report, error) {
	start := time.Now()

	reg, err := buildRegistry(req.Wells)
	if err != nil {
		return nil, err
	}

	result, err := solver.SolveBlend(solver.Problem{
		Registry: reg,
		Scoring:  h.scoringParams(req.Scoring),
		Demand:   req.Demand,
	})
	if err != nil {
		return nil, err
	}

	catalogName := req.Catalog
	if catalogName == "" {
		catalogName = h.cfg.Treatment.CatalogPreset
	}
	catalog, err := treatment.Preset(catalogName)
	if err != nil {
		return nil, err
	}

	operation := req.Pretreatment
	if operation == "" {
		operation = h.cfg.Treatment.Pretreatment
	}
	stages, err := treatment.NewTrain(catalog).Apply(operation, result.Blended)
	if err != nil {
		return nil, err
	}

	final := stages[len(stages)-1].Quality
	return &output.Report{
		Demand:      req.Demand,
		Allocations: output.BuildAllocations(result.Allocation, h.cfg.Output.DisplayThreshold),
		Stages:      stages,
		Compliance:  output.CheckCompliance(final, h.cfg.Limits),
		Objective:   result.Objective,
		Metadata: output.Metadata{
			Timestamp:    start.UTC().Format(time.RFC3339),
			Duration:     time.Since(start).String(),
			Version:      Version,
			Catalog:      catalog.Name,
			Pretreatment: operation,
		},
	}, nil
}

// runSweep runs one demand sensitivity sweep
func (h *Handler) runSweep(ctx context.Context, req *SweepRequest) (sweep.Series, error) {
	reg, err := buildRegistry(req.Wells)
	if err != nil {
		return nil, err
	}

	return sweep.Run(ctx, reg, h.scoringParams(req.Scoring),
		sweep.Range{Start: req.Start, Stop: req.Stop, Step: req.Step},
		sweep.Options{Parallelism: h.cfg.Sweep.Parallelism})
}
