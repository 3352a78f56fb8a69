// Package blend computes blended product quality from an allocation.
package blend

import (
	"waterblend/core/registry"
	"waterblend/core/types"
	"waterblend/internal/errors"
)

// Aggregate computes the flow-weighted average concentrations of the
// blend under an allocation. The average is undefined at zero total
// flow, which is reported as UNDEFINED_CONCENTRATION rather than
// allowed to surface as a division fault.
func Aggregate(alloc *types.Allocation, reg *registry.Registry) (types.Concentrations, error) {
	if alloc == nil {
		return types.Concentrations{}, errors.Input("nil allocation")
	}

	var total, arsenicMass, chlorideMass float64
	for _, e := range alloc.Entries {
		if e.Flow == 0 {
			continue
		}
		src, ok := reg.Get(e.Well)
		if !ok {
			return types.Concentrations{}, errors.NotFound("well", string(e.Well))
		}
		total += e.Flow
		arsenicMass += e.Flow * src.Quality.Arsenic
		chlorideMass += e.Flow * src.Quality.Chloride
	}

	if total <= 0 {
		return types.Concentrations{}, errors.UndefinedConcentration()
	}

	return types.Concentrations{
		Arsenic:  arsenicMass / total,
		Chloride: chlorideMass / total,
	}, nil
}
