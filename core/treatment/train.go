package treatment

import (
	"waterblend/core/types"
)

// Stage names in the train result
const (
	StageBlend    = "blend"
	StageMembrane = "reverse_osmosis"
)

// Train is the sequential treatment model: a selectable pretreatment
// unit operation followed by the catalog's fixed membrane stage.
type Train struct {
	Catalog *Catalog
}

// NewTrain creates a train over a catalog
func NewTrain(catalog *Catalog) *Train {
	return &Train{Catalog: catalog}
}

// apply reduces each contaminant independently by its removal fraction
func apply(in types.Concentrations, eff Efficiency) types.Concentrations {
	return types.Concentrations{
		Arsenic:  in.Arsenic * (1 - eff.Arsenic),
		Chloride: in.Chloride * (1 - eff.Chloride),
	}
}

// Apply runs the blended quality through the selected pretreatment and
// the membrane stage, returning the ordered three-stage sequence:
// input blend, post-pretreatment, post-membrane.
func (t *Train) Apply(operation string, blended types.Concentrations) ([]types.StageResult, error) {
	eff, err := t.Catalog.Lookup(operation)
	if err != nil {
		return nil, err
	}

	stages := make([]types.StageResult, 0, 3)
	stages = append(stages, types.StageResult{Stage: StageBlend, Quality: blended})

	afterPre := apply(blended, eff)
	stages = append(stages, types.StageResult{Stage: operation, Quality: afterPre})

	afterMembrane := apply(afterPre, t.Catalog.Membrane)
	stages = append(stages, types.StageResult{Stage: StageMembrane, Quality: afterMembrane})

	return stages, nil
}
