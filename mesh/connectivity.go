package mesh

import (
	"fmt"

	"github.com/notargets/incomflow/types"
)

// MarkerFunc assigns a boundary marker to the boundary edge (v0, v1)
type MarkerFunc func(v0, v1 int) int

type edgeRecord struct {
	verts      [2]int // Orientation of the first cell visiting the edge
	cells      [2]int
	firstSlot  int
	visitCount int
}

/*
BuildPrimaryGrid derives the edge and neighbor tables of a PrimaryGrid from
its cells. Cells must share a consistent orientation. Edges are emitted in
the order they are first visited, triangles before quads, and keep the
orientation of the first cell visiting them. Boundary edges are marked with
markerFn, or 0 if markerFn is nil.
*/
func BuildPrimaryGrid(coords [][2]float64, tris [][3]int, quads [][4]int,
	markerFn MarkerFunc) (pg *PrimaryGrid, err error) {
	var (
		nTris    = len(tris)
		edges    []*edgeRecord
		edgeMap  = make(map[types.EdgeKey]*edgeRecord)
		cellVert = func(k int) []int {
			if k < nTris {
				return tris[k][:]
			}
			return quads[k-nTris][:]
		}
		nCells = len(tris) + len(quads)
	)
	for k := 0; k < nCells; k++ {
		verts := cellVert(k)
		for _, v := range verts {
			if v < 0 || v >= len(coords) {
				err = fmt.Errorf("cell %d references vertex %d outside [0,%d)", k, v, len(coords))
				return
			}
		}
		n := len(verts)
		for slot := 0; slot < n; slot++ {
			p0, p1 := verts[slot], verts[(slot+1)%n]
			key := types.NewEdgeKey(p0, p1)
			e, ok := edgeMap[key]
			if !ok {
				e = &edgeRecord{
					verts:     [2]int{p0, p1},
					cells:     [2]int{k, -1},
					firstSlot: slot,
				}
				edgeMap[key] = e
				edges = append(edges, e)
			} else {
				if e.visitCount > 1 {
					err = fmt.Errorf("edge %s is shared by more than two cells", key)
					return
				}
				if e.verts[0] == p0 {
					err = fmt.Errorf("cells %d and %d traverse edge %s in the same direction",
						e.cells[0], k, key)
					return
				}
				e.cells[1] = k
			}
			e.visitCount++
		}
	}

	var nIntr int
	for _, e := range edges {
		if e.cells[1] >= 0 {
			nIntr++
		}
	}
	pg = NewPrimaryGrid(len(coords), nTris, len(quads), nIntr, len(edges)-nIntr)
	for i, c := range coords {
		pg.VertexCoords.SetRow(i, c[:])
	}
	for k, tri := range tris {
		pg.Tris.SetRow(k, tri[:]...)
	}
	for k, quad := range quads {
		pg.Quads.SetRow(k, quad[:]...)
	}
	pg.TriNeighbors.Fill(-1)
	pg.QuadNeighbors.Fill(-1)

	setNeighbor := func(k, slot, nbr int) {
		if k < nTris {
			pg.TriNeighbors.Set(k, slot, nbr)
		} else {
			pg.QuadNeighbors.Set(k-nTris, slot, nbr)
		}
	}
	slotOf := func(k, v0 int) int {
		verts := cellVert(k)
		for slot, v := range verts {
			if v == v0 {
				return slot
			}
		}
		panic(fmt.Errorf("vertex %d not found in cell %d", v0, k))
	}

	var iIntr, iBdry int
	for _, e := range edges {
		if e.cells[1] >= 0 {
			pg.IntrEdges.SetRow(iIntr, e.verts[0], e.verts[1])
			pg.IntrEdgeNeighbors.SetRow(iIntr, e.cells[0], e.cells[1])
			setNeighbor(e.cells[0], e.firstSlot, e.cells[1])
			// The second cell traverses the edge from verts[1] to verts[0]
			setNeighbor(e.cells[1], slotOf(e.cells[1], e.verts[1]), e.cells[0])
			iIntr++
			continue
		}
		pg.BdryEdges.SetRow(iBdry, e.verts[0], e.verts[1])
		pg.BdryEdgeNeighbors[iBdry] = e.cells[0]
		if markerFn != nil {
			pg.BdryEdgeMarkers[iBdry] = markerFn(e.verts[0], e.verts[1])
		}
		iBdry++
	}
	err = pg.Validate()
	return
}
