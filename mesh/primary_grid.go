package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/incomflow/types"
	"github.com/notargets/incomflow/utils"
)

/*
PrimaryGrid is an unstructured 2D mesh of triangles and quadrilaterals.

Cells are numbered globally with triangles first: triangle i is cell i and
quad j is cell NTris+j. Neighbor slot k of a cell holds the cell across the
local edge (k, k+1), -1 where there is none.
*/
type PrimaryGrid struct {
	NVertices, NTris, NQuads int
	NIntrEdges, NBdryEdges   int

	VertexCoords utils.Matrix // NVertices x 2

	Tris, Quads                 utils.IndexMatrix // NTris x 3, NQuads x 4
	TriNeighbors, QuadNeighbors utils.IndexMatrix // NTris x 3, NQuads x 4

	IntrEdges         utils.IndexMatrix // NIntrEdges x 2
	IntrEdgeNeighbors utils.IndexMatrix // NIntrEdges x 2
	BdryEdges         utils.IndexMatrix // NBdryEdges x 2
	BdryEdgeNeighbors utils.Index       // NBdryEdges
	BdryEdgeMarkers   utils.Index       // NBdryEdges
}

func NewPrimaryGrid(nVertices, nTris, nQuads, nIntrEdges, nBdryEdges int) (pg *PrimaryGrid) {
	pg = &PrimaryGrid{
		NVertices:         nVertices,
		NTris:             nTris,
		NQuads:            nQuads,
		NIntrEdges:        nIntrEdges,
		NBdryEdges:        nBdryEdges,
		VertexCoords:      utils.NewMatrix(nVertices, 2),
		Tris:              utils.NewIndexMatrix(nTris, 3),
		Quads:             utils.NewIndexMatrix(nQuads, 4),
		TriNeighbors:      utils.NewIndexMatrix(nTris, 3),
		QuadNeighbors:     utils.NewIndexMatrix(nQuads, 4),
		IntrEdges:         utils.NewIndexMatrix(nIntrEdges, 2),
		IntrEdgeNeighbors: utils.NewIndexMatrix(nIntrEdges, 2),
		BdryEdges:         utils.NewIndexMatrix(nBdryEdges, 2),
		BdryEdgeNeighbors: utils.NewIndex(nBdryEdges),
		BdryEdgeMarkers:   utils.NewIndex(nBdryEdges),
	}
	return
}

func (pg *PrimaryGrid) NCells() int { return pg.NTris + pg.NQuads }

// Vertex returns the coordinates of vertex i
func (pg *PrimaryGrid) Vertex(i int) r2.Vec {
	return r2.Vec{X: pg.VertexCoords.At(i, 0), Y: pg.VertexCoords.At(i, 1)}
}

// Area is the sum of the signed (shoelace) areas of all cells.
func (pg *PrimaryGrid) Area() (area float64) {
	for k := 0; k < pg.NTris; k++ {
		area += pg.polygonArea(pg.Tris.Row(k))
	}
	for k := 0; k < pg.NQuads; k++ {
		area += pg.polygonArea(pg.Quads.Row(k))
	}
	return
}

func (pg *PrimaryGrid) polygonArea(verts utils.Index) (area float64) {
	n := len(verts)
	for i := 0; i < n; i++ {
		area += r2.Cross(pg.Vertex(verts[i]), pg.Vertex(verts[(i+1)%n]))
	}
	return 0.5 * area
}

// Validate checks the structural invariants every consumer of the grid
// relies on.
func (pg *PrimaryGrid) Validate() (err error) {
	var (
		nCells = pg.NCells()
	)
	checkVerts := func(name string, tbl utils.IndexMatrix) error {
		nr, nc := tbl.Dims()
		for i := 0; i < nr; i++ {
			for j := 0; j < nc; j++ {
				if v := tbl.At(i, j); v < 0 || v >= pg.NVertices {
					return fmt.Errorf("%s[%d][%d] = %d references a vertex outside [0,%d)",
						name, i, j, v, pg.NVertices)
				}
			}
		}
		return nil
	}
	checkCells := func(name string, nbrs utils.Index) error {
		for i, c := range nbrs {
			if c < -1 || c >= nCells {
				return fmt.Errorf("%s[%d] = %d references a cell outside [-1,%d)",
					name, i, c, nCells)
			}
		}
		return nil
	}
	if nr, _ := pg.VertexCoords.Dims(); nr != pg.NVertices {
		return fmt.Errorf("vertex table has %d rows, expected %d", nr, pg.NVertices)
	}
	if err = checkVerts("tris", pg.Tris); err != nil {
		return
	}
	if err = checkVerts("quads", pg.Quads); err != nil {
		return
	}
	if err = checkVerts("interior edges", pg.IntrEdges); err != nil {
		return
	}
	if err = checkVerts("boundary edges", pg.BdryEdges); err != nil {
		return
	}
	if err = checkCells("tri neighbors", pg.TriNeighbors.Data()); err != nil {
		return
	}
	if err = checkCells("quad neighbors", pg.QuadNeighbors.Data()); err != nil {
		return
	}
	if err = checkCells("interior edge neighbors", pg.IntrEdgeNeighbors.Data()); err != nil {
		return
	}
	if err = checkCells("boundary edge neighbors", pg.BdryEdgeNeighbors); err != nil {
		return
	}
	for i, m := range pg.BdryEdgeMarkers {
		if m < 0 {
			return fmt.Errorf("boundary edge %d has negative marker %d", i, m)
		}
	}
	// Every vertex pair may appear once across interior and boundary edges
	seen := make(map[types.EdgeKey]struct{}, pg.NIntrEdges+pg.NBdryEdges)
	for _, tbl := range []utils.IndexMatrix{pg.IntrEdges, pg.BdryEdges} {
		nr, _ := tbl.Dims()
		for i := 0; i < nr; i++ {
			v0, v1 := tbl.At(i, 0), tbl.At(i, 1)
			if v0 == v1 {
				return fmt.Errorf("degenerate edge [%d,%d]", v0, v1)
			}
			key := types.NewEdgeKey(v0, v1)
			if _, ok := seen[key]; ok {
				return fmt.Errorf("duplicate edge %s", key)
			}
			seen[key] = struct{}{}
		}
	}
	return
}
