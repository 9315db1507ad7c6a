package dualgrid

import (
	"iter"

	"go.uber.org/zap"

	"github.com/notargets/incomflow/mesh"
)

// BoundaryList holds one Boundary per marker of its BoundaryDef, in
// ascending marker order
type BoundaryList struct {
	def        *BoundaryDef
	boundaries []*Boundary
}

func NewBoundaryList(pg *mesh.PrimaryGrid, bd *BoundaryDef) (bl *BoundaryList) {
	bl = &BoundaryList{def: bd.Copy()}
	for marker, bt := range bl.def.All() {
		b := NewBoundary(pg, marker, bt)
		if b.NPrimEdges == 0 {
			zap.L().Warn("boundary marker has no primary edges",
				zap.Int("marker", marker), zap.Stringer("type", bt))
		}
		bl.boundaries = append(bl.boundaries, b)
	}
	return
}

func (bl *BoundaryList) Size() int { return len(bl.boundaries) }

func (bl *BoundaryList) Get(i int) *Boundary { return bl.boundaries[i] }

func (bl *BoundaryList) All() iter.Seq2[int, *Boundary] {
	return func(yield func(int, *Boundary) bool) {
		for i, b := range bl.boundaries {
			if !yield(i, b) {
				return
			}
		}
	}
}

// ByMarker returns the Boundary of marker, nil if the marker is not defined
func (bl *BoundaryList) ByMarker(marker int) *Boundary {
	for _, b := range bl.boundaries {
		if b.Marker == marker {
			return b
		}
	}
	return nil
}

func (bl *BoundaryList) BoundaryDef() *BoundaryDef { return bl.def }
