// Package scoring derives per-well penalty scores.
// The score is the LP objective coefficient: the weighted, normalized
// contaminant penalty per unit of flow drawn from a well.
package scoring

import (
	"waterblend/core/types"
	"waterblend/internal/errors"
)

// availabilityEpsilon keeps the score finite for unavailable wells.
// An unavailable well scores roughly score/epsilon, a soft penalty
// layered on top of the solver's hard zero upper bound.
const availabilityEpsilon = 1e-6

// Params are the scoring inputs shared by all wells
type Params struct {
	// Weights are the contaminant penalty weights
	Weights types.Weights `json:"weights"`

	// Refs are the normalization limits
	Refs types.ReferenceLimits `json:"refs"`
}

// Validate checks the scoring invariants
func (p Params) Validate() error {
	if p.Weights.Arsenic < 0 || p.Weights.Chloride < 0 {
		return errors.Inputf("weights must be non-negative, got arsenic=%g chloride=%g",
			p.Weights.Arsenic, p.Weights.Chloride)
	}
	if p.Refs.Arsenic <= 0 || p.Refs.Chloride <= 0 {
		return errors.Inputf("reference limits must be positive, got arsenic=%g chloride=%g",
			p.Refs.Arsenic, p.Refs.Chloride)
	}
	return nil
}

// Score computes the per-unit-flow penalty for one well
func Score(src types.Source, p Params) float64 {
	avail := 0.0
	if src.Available {
		avail = 1.0
	}
	penalty := p.Weights.Arsenic*(src.Quality.Arsenic/p.Refs.Arsenic) +
		p.Weights.Chloride*(src.Quality.Chloride/p.Refs.Chloride)
	return penalty / (avail + availabilityEpsilon)
}

// ScoredSource pairs a well with its score
type ScoredSource struct {
	Source types.Source `json:"source"`
	Score  float64      `json:"score"`

	// Index is the registry position, used as a deterministic tie-break
	Index int `json:"index"`
}

// ScoreAll scores every well, in registry order
func ScoreAll(sources []types.Source, p Params) []ScoredSource {
	scored := make([]ScoredSource, len(sources))
	for i, s := range sources {
		scored[i] = ScoredSource{Source: s, Score: Score(s, p), Index: i}
	}
	return scored
}
