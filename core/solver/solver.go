// Package solver implements the blend optimization.
//
// The underlying problem is a linear program with a single equality
// constraint (total flow equals demand) and independent box bounds
// (zero to capacity per well). That structure admits a closed-form
// greedy solution: fill wells in ascending score order until demand is
// exhausted. The greedy allocation is optimal for this LP, deterministic,
// and O(n log n), so no general LP library is involved.
package solver

import (
	"sort"

	"waterblend/core/blend"
	"waterblend/core/registry"
	"waterblend/core/scoring"
	"waterblend/core/types"
	"waterblend/internal/errors"
	"waterblend/internal/logging"

	"go.uber.org/zap"
)

// feasibilityTolerance absorbs float rounding in the capacity check
const feasibilityTolerance = 1e-9

// Problem is one blend optimization request
type Problem struct {
	// Registry is the well snapshot to allocate over
	Registry *registry.Registry

	// Scoring holds weights and normalization limits
	Scoring scoring.Params

	// Demand is the required total output flow in L/s
	Demand float64
}

// Solve allocates flow across wells to meet demand at minimum total
// weighted score. It fails with CAPACITY_EXCEEDED before solving when
// demand is above the total capacity of available wells.
func Solve(p Problem) (*types.Allocation, error) {
	if p.Registry == nil || p.Registry.Len() == 0 {
		return nil, errors.Input("no wells registered")
	}
	if p.Demand < 0 {
		return nil, errors.Inputf("demand must be non-negative, got %g", p.Demand)
	}
	if err := p.Scoring.Validate(); err != nil {
		return nil, err
	}

	available := p.Registry.AvailableCapacity()
	if p.Demand > available+feasibilityTolerance {
		return nil, errors.CapacityExceeded(p.Demand, available)
	}

	sources := p.Registry.Sources()
	scored := scoring.ScoreAll(sources, p.Scoring)

	// Stable sort keeps registry order for equal scores, which makes the
	// degenerate all-zero-weight case deterministic.
	order := make([]scoring.ScoredSource, len(scored))
	copy(order, scored)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Score < order[j].Score
	})

	flows := make([]float64, len(sources))
	remaining := p.Demand
	for _, sc := range order {
		if remaining <= 0 {
			break
		}
		if !sc.Source.Available {
			// Hard bound: unavailable wells never receive flow,
			// independent of their inflated score.
			continue
		}
		take := sc.Source.Capacity
		if take > remaining {
			take = remaining
		}
		flows[sc.Index] = take
		remaining -= take
	}

	alloc := &types.Allocation{
		Demand:  p.Demand,
		Entries: make([]types.FlowAssignment, len(sources)),
	}
	for i, s := range sources {
		alloc.Entries[i] = types.FlowAssignment{Well: s.ID, Flow: flows[i]}
	}

	logging.Debug("blend solved",
		zap.Float64("demand", p.Demand),
		zap.Float64("available_capacity", available),
		zap.Int("wells", len(sources)))

	return alloc, nil
}

// Objective returns the total weighted score of an allocation
func Objective(alloc *types.Allocation, reg *registry.Registry, p scoring.Params) float64 {
	var total float64
	for _, e := range alloc.Entries {
		if src, ok := reg.Get(e.Well); ok {
			total += e.Flow * scoring.Score(src, p)
		}
	}
	return total
}

// SolveBlend runs the solver and aggregates the blended quality.
// A zero-demand request yields the zero allocation; its blended
// concentration is undefined and reported as such.
func SolveBlend(p Problem) (*types.BlendResult, error) {
	alloc, err := Solve(p)
	if err != nil {
		return nil, err
	}

	blended, err := blend.Aggregate(alloc, p.Registry)
	if err != nil {
		return nil, err
	}

	return &types.BlendResult{
		Allocation: alloc,
		Blended:    blended,
		Objective:  Objective(alloc, p.Registry, p.Scoring),
	}, nil
}
