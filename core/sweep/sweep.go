// Package sweep runs demand sensitivity analyses.
//
// A sweep re-solves the blend problem across a demand range and collects
// the resulting product quality trend. Points whose demand exceeds the
// available capacity are recorded as explicit skips, never as errors:
// the series simply gets shorter than the range.
package sweep

import (
	"context"

	"golang.org/x/sync/errgroup"

	"waterblend/core/registry"
	"waterblend/core/scoring"
	"waterblend/core/solver"
	"waterblend/core/types"
	"waterblend/internal/errors"
	"waterblend/internal/logging"

	"go.uber.org/zap"
)

// Range is a half-open demand range [Start, Stop) walked by Step
type Range struct {
	Start float64 `json:"start"`
	Stop  float64 `json:"stop"`
	Step  float64 `json:"step"`
}

// Validate checks the range invariants
func (r Range) Validate() error {
	if r.Start < 0 {
		return errors.Inputf("sweep start must be non-negative, got %g", r.Start)
	}
	if r.Step <= 0 {
		return errors.Inputf("sweep step must be positive, got %g", r.Step)
	}
	return nil
}

// Demands expands the range into its demand values, ascending
func (r Range) Demands() []float64 {
	var out []float64
	for d := r.Start; d < r.Stop; d += r.Step {
		out = append(out, d)
	}
	return out
}

// Point is one sweep outcome. A skipped point marks an infeasible
// demand; its quality fields are meaningless.
type Point struct {
	// Demand is the demand value solved for, in L/s
	Demand float64 `json:"demand"`

	// Quality is the blended product quality at this demand
	Quality types.Concentrations `json:"quality"`

	// Skipped marks an infeasible demand point
	Skipped bool `json:"skipped,omitempty"`

	// Reason explains a skip
	Reason string `json:"reason,omitempty"`
}

// Series is the ordered sweep outcome, ascending in demand
type Series []Point

// Feasible returns only the solved points
func (s Series) Feasible() Series {
	out := make(Series, 0, len(s))
	for _, p := range s {
		if !p.Skipped {
			out = append(out, p)
		}
	}
	return out
}

// Options tune sweep execution
type Options struct {
	// Parallelism bounds concurrent solves; <=1 runs sequentially
	Parallelism int
}

// Run sweeps the demand range over a registry snapshot. Each point is
// an independent, stateless solve, so points may run concurrently; the
// series is reassembled in ascending demand order regardless.
func Run(ctx context.Context, reg *registry.Registry, params scoring.Params, rng Range, opts Options) (Series, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	snapshot := reg.Snapshot()
	demands := rng.Demands()
	series := make(Series, len(demands))

	g, ctx := errgroup.WithContext(ctx)
	if opts.Parallelism > 1 {
		g.SetLimit(opts.Parallelism)
	} else {
		g.SetLimit(1)
	}

	for i, demand := range demands {
		i, demand := i, demand
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			point, err := solvePoint(snapshot, params, demand)
			if err != nil {
				return err
			}
			series[i] = point
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	skipped := 0
	for _, p := range series {
		if p.Skipped {
			skipped++
		}
	}
	logging.Debug("sweep complete",
		zap.Int("points", len(series)),
		zap.Int("skipped", skipped))

	return series, nil
}

// solvePoint solves one demand value. Infeasible demand and the
// zero-flow degenerate point become explicit skips; any other failure
// is a genuine fault and aborts the sweep.
func solvePoint(reg *registry.Registry, params scoring.Params, demand float64) (Point, error) {
	result, err := solver.SolveBlend(solver.Problem{
		Registry: reg,
		Scoring:  params,
		Demand:   demand,
	})
	if err != nil {
		if errors.IsType(err, errors.TypeCapacityExceeded) ||
			errors.IsType(err, errors.TypeUndefinedConcentration) {
			return Point{Demand: demand, Skipped: true, Reason: err.Error()}, nil
		}
		return Point{}, err
	}
	return Point{Demand: demand, Quality: result.Blended}, nil
}
