package dualgrid

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/notargets/incomflow/mesh"
	"github.com/notargets/incomflow/utils"
)

/*
Boundary is the dual grid structure of the primary boundary edges carrying
one marker.

DualElements lists the primary vertices touched by the marker's edges in
ascending order. PrimEdges holds those edges in grid order and orientation,
PrimEdgesLocal the same edges indexed into DualElements. DualNormals holds
one inward normal per dual element, scaled by the dual face length. The
tables are read only once the Boundary is built, Data stays writable.
*/
type Boundary struct {
	Marker        int
	Type          utils.BdryType
	NDualElements int
	NPrimEdges    int

	DualElements   utils.Index
	PrimEdges      utils.IndexMatrix // NPrimEdges x 2, global vertex indices
	PrimEdgesLocal utils.IndexMatrix // NPrimEdges x 2, indices into DualElements
	DualNormals    utils.Matrix      // NDualElements x 2

	Data *BoundaryData
}

func NewBoundary(pg *mesh.PrimaryGrid, marker int, bt utils.BdryType) (b *Boundary) {
	var (
		visits = utils.NewIndex(pg.NVertices)
		kept   utils.Index
	)
	b = &Boundary{
		Marker: marker,
		Type:   bt,
	}
	for i := 0; i < pg.NBdryEdges; i++ {
		if pg.BdryEdgeMarkers[i] != marker {
			continue
		}
		for _, v := range pg.BdryEdges.Row(i) {
			if v < 0 || v >= pg.NVertices {
				panic(fmt.Errorf("boundary edge %d references vertex %d outside [0,%d)",
					i, v, pg.NVertices))
			}
			visits[v]++
		}
		kept = append(kept, i)
	}
	for v, count := range visits {
		if count > 0 {
			b.DualElements = append(b.DualElements, v)
		}
	}
	b.NDualElements = len(b.DualElements)
	b.NPrimEdges = len(kept)

	globalToLocal := utils.NewIndex(pg.NVertices).Set(-1)
	for iLoc, v := range b.DualElements {
		globalToLocal[v] = iLoc
	}
	b.PrimEdges = utils.NewIndexMatrix(b.NPrimEdges, 2)
	b.PrimEdgesLocal = utils.NewIndexMatrix(b.NPrimEdges, 2)
	for j, i := range kept {
		v0, v1 := pg.BdryEdges.At(i, 0), pg.BdryEdges.At(i, 1)
		b.PrimEdges.SetRow(j, v0, v1)
		b.PrimEdgesLocal.SetRow(j, globalToLocal[v0], globalToLocal[v1])
	}
	b.Data = NewBoundaryData(b.NDualElements)
	b.computeNormals(pg)
	b.PrimEdges.SetReadOnly("PrimEdges")
	b.PrimEdgesLocal.SetReadOnly("PrimEdgesLocal")
	b.DualNormals.SetReadOnly("DualNormals")
	return
}

// computeNormals accumulates the half normal of every edge into both of its
// dual elements. For a counterclockwise boundary the normals point inward.
func (b *Boundary) computeNormals(pg *mesh.PrimaryGrid) {
	b.DualNormals = utils.NewMatrix(b.NDualElements, 2)
	for j := 0; j < b.NPrimEdges; j++ {
		x0 := pg.Vertex(b.PrimEdges.At(j, 0))
		x1 := pg.Vertex(b.PrimEdges.At(j, 1))
		nx, ny := 0.5*(x0.Y-x1.Y), 0.5*(x1.X-x0.X)
		for _, iLoc := range b.PrimEdgesLocal.Row(j) {
			b.DualNormals.AddAt(iLoc, 0, nx)
			b.DualNormals.AddAt(iLoc, 1, ny)
		}
	}
	logger := zap.L()
	if !logger.Core().Enabled(zap.DebugLevel) {
		return
	}
	for iLoc, v := range b.DualElements {
		logger.Debug("boundary dual normal",
			zap.Int("marker", b.Marker),
			zap.Int("element", v),
			zap.Float64("nx", b.DualNormals.At(iLoc, 0)),
			zap.Float64("ny", b.DualNormals.At(iLoc, 1)),
		)
	}
}

// Normal returns the inward dual normal of local element iLoc
func (b *Boundary) Normal(iLoc int) (nx, ny float64) {
	return b.DualNormals.At(iLoc, 0), b.DualNormals.At(iLoc, 1)
}
