package dualgrid

import (
	"iter"
	"maps"
	"slices"

	"github.com/notargets/incomflow/utils"
)

// BoundaryDef maps boundary markers to boundary types. Iteration is in
// ascending marker order, which fixes the index of each Boundary in a
// BoundaryList.
type BoundaryDef struct {
	types map[int]utils.BdryType
}

func NewBoundaryDef() *BoundaryDef {
	return &BoundaryDef{types: make(map[int]utils.BdryType)}
}

// AddMarker inserts or overwrites a marker, negative markers are ignored
func (bd *BoundaryDef) AddMarker(marker int, bt utils.BdryType) {
	if marker < 0 {
		return
	}
	bd.types[marker] = bt
}

func (bd *BoundaryDef) RemoveMarker(marker int) { delete(bd.types, marker) }

// GetBoundaryType returns BdryInvalid for an unknown marker
func (bd *BoundaryDef) GetBoundaryType(marker int) utils.BdryType {
	if bt, ok := bd.types[marker]; ok {
		return bt
	}
	return utils.BdryInvalid
}

func (bd *BoundaryDef) Size() int { return len(bd.types) }

func (bd *BoundaryDef) Markers() []int {
	return slices.Sorted(maps.Keys(bd.types))
}

func (bd *BoundaryDef) All() iter.Seq2[int, utils.BdryType] {
	return func(yield func(int, utils.BdryType) bool) {
		for _, marker := range bd.Markers() {
			if !yield(marker, bd.types[marker]) {
				return
			}
		}
	}
}

func (bd *BoundaryDef) Copy() *BoundaryDef {
	return &BoundaryDef{types: maps.Clone(bd.types)}
}
