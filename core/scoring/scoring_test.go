package scoring

import (
	"math"
	"testing"

	"waterblend/core/types"
)

func defaultParams() Params {
	return Params{
		Weights: types.Weights{Arsenic: 0.2, Chloride: 0.8},
		Refs:    types.ReferenceLimits{Arsenic: 0.025, Chloride: 320},
	}
}

// TestScore verifies the weighted, normalized penalty formula
func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		source   types.Source
		params   Params
		expected float64
	}{
		{
			name: "available well",
			source: types.Source{
				ID: "W1", Capacity: 10,
				Quality:   types.Concentrations{Arsenic: 0.004, Chloride: 272.3},
				Available: true,
			},
			params: defaultParams(),
			expected: (0.2*(0.004/0.025) + 0.8*(272.3/320)) / (1 + 1e-6),
		},
		{
			name: "zero concentrations score zero",
			source: types.Source{
				ID: "clean", Capacity: 5, Available: true,
			},
			params:   defaultParams(),
			expected: 0,
		},
		{
			name: "zero weights score zero",
			source: types.Source{
				ID: "W1", Capacity: 10,
				Quality:   types.Concentrations{Arsenic: 0.5, Chloride: 300},
				Available: true,
			},
			params: Params{
				Weights: types.Weights{},
				Refs:    types.ReferenceLimits{Arsenic: 0.025, Chloride: 320},
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.source, tt.params)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("expected score %g, got %g", tt.expected, got)
			}
		})
	}
}

// TestScoreUnavailableInflation verifies the soft availability penalty
func TestScoreUnavailableInflation(t *testing.T) {
	src := types.Source{
		ID: "W1", Capacity: 10,
		Quality:   types.Concentrations{Arsenic: 0.004, Chloride: 272.3},
		Available: true,
	}
	availableScore := Score(src, defaultParams())

	src.Available = false
	unavailableScore := Score(src, defaultParams())

	// Roughly score/epsilon once the availability indicator drops to zero
	if unavailableScore < availableScore*1e5 {
		t.Errorf("unavailable score %g not inflated over available score %g",
			unavailableScore, availableScore)
	}
}

// TestParamsValidate checks the scoring parameter invariants
func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"valid", defaultParams(), false},
		{
			"negative weight",
			Params{
				Weights: types.Weights{Arsenic: -0.1, Chloride: 0.8},
				Refs:    types.ReferenceLimits{Arsenic: 0.025, Chloride: 320},
			},
			true,
		},
		{
			"zero reference",
			Params{
				Weights: types.Weights{Arsenic: 0.2, Chloride: 0.8},
				Refs:    types.ReferenceLimits{Arsenic: 0, Chloride: 320},
			},
			true,
		},
		{
			"zero weights are allowed",
			Params{
				Weights: types.Weights{},
				Refs:    types.ReferenceLimits{Arsenic: 0.025, Chloride: 320},
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestScoreAllOrder verifies registry order and indices are preserved
func TestScoreAllOrder(t *testing.T) {
	sources := []types.Source{
		{ID: "b", Capacity: 1, Available: true},
		{ID: "a", Capacity: 1, Available: true},
	}
	scored := ScoreAll(sources, defaultParams())

	if len(scored) != 2 {
		t.Fatalf("expected 2 scored sources, got %d", len(scored))
	}
	if scored[0].Source.ID != "b" || scored[0].Index != 0 {
		t.Errorf("expected first entry b/0, got %s/%d", scored[0].Source.ID, scored[0].Index)
	}
	if scored[1].Source.ID != "a" || scored[1].Index != 1 {
		t.Errorf("expected second entry a/1, got %s/%d", scored[1].Source.ID, scored[1].Index)
	}
}
