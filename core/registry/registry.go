// Package registry holds the well source registry.
// The registry is the authoritative list of supply wells for one
// optimization request. Iteration order is insertion order, which makes
// every downstream computation deterministic.
package registry

import (
	"waterblend/core/types"
	"waterblend/internal/errors"
)

// Registry is an ordered collection of supply wells
type Registry struct {
	sources []types.Source
	index   map[types.WellID]int
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		index: make(map[types.WellID]int),
	}
}

// Add registers a well, validating its attributes
func (r *Registry) Add(src types.Source) error {
	if err := src.Validate(); err != nil {
		return errors.Wrap(errors.TypeInput, "invalid source", err)
	}
	if _, exists := r.index[src.ID]; exists {
		return errors.Inputf("duplicate well id: %s", src.ID)
	}
	r.index[src.ID] = len(r.sources)
	r.sources = append(r.sources, src)
	return nil
}

// Get returns a well by id
func (r *Registry) Get(id types.WellID) (types.Source, bool) {
	i, ok := r.index[id]
	if !ok {
		return types.Source{}, false
	}
	return r.sources[i], true
}

// SetAvailable flips a well's availability flag
func (r *Registry) SetAvailable(id types.WellID, available bool) error {
	i, ok := r.index[id]
	if !ok {
		return errors.NotFound("well", string(id))
	}
	r.sources[i].Available = available
	return nil
}

// Sources returns the wells in registration order
func (r *Registry) Sources() []types.Source {
	out := make([]types.Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Len returns the number of registered wells
func (r *Registry) Len() int {
	return len(r.sources)
}

// AvailableCapacity returns the total capacity over available wells
func (r *Registry) AvailableCapacity() float64 {
	var total float64
	for _, s := range r.sources {
		if s.Available {
			total += s.Capacity
		}
	}
	return total
}

// TotalCapacity returns the total capacity over all wells
func (r *Registry) TotalCapacity() float64 {
	var total float64
	for _, s := range r.sources {
		total += s.Capacity
	}
	return total
}

// Snapshot returns an independent copy of the registry.
// A solve (or a whole sweep) operates on a snapshot, so edits between
// requests never mutate a solve in flight.
func (r *Registry) Snapshot() *Registry {
	snap := New()
	for _, s := range r.sources {
		snap.index[s.ID] = len(snap.sources)
		snap.sources = append(snap.sources, s)
	}
	return snap
}

// Demo returns the five-well demonstration registry
func Demo() *Registry {
	r := New()
	wells := []types.Source{
		{ID: "Pozo 1", Capacity: 10, Quality: types.Concentrations{Arsenic: 0.004, Chloride: 272.3}, Available: true},
		{ID: "Pozo 2", Capacity: 50, Quality: types.Concentrations{Arsenic: 0.037, Chloride: 250.28}, Available: true},
		{ID: "Pozo 3", Capacity: 25, Quality: types.Concentrations{Arsenic: 0.0453, Chloride: 226.25}, Available: true},
		{ID: "Pozo 4", Capacity: 50, Quality: types.Concentrations{Arsenic: 0.0273, Chloride: 320.35}, Available: true},
		{ID: "Pozo 5", Capacity: 15, Quality: types.Concentrations{Arsenic: 0.0331, Chloride: 188.21}, Available: true},
	}
	for _, w := range wells {
		// Demo data is static and valid
		_ = r.Add(w)
	}
	return r
}
