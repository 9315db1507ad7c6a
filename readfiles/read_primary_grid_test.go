package readfiles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/notargets/incomflow/dualgrid"
	"github.com/notargets/incomflow/mesh"
	"github.com/notargets/incomflow/types"
	"github.com/notargets/incomflow/utils"
)

const testGridFile = "testdata/TestGrid.dat"

func TestReadPrimaryGrid(t *testing.T) {
	pg, err := ReadPrimaryGrid(testGridFile)
	require.NoError(t, err)

	assert.Equal(t, 24, pg.NVertices)
	assert.Equal(t, 6, pg.NTris)
	assert.Equal(t, 12, pg.NQuads)
	assert.Equal(t, 25, pg.NIntrEdges)
	assert.Equal(t, 16, pg.NBdryEdges)
	assert.Equal(t, []float64{0.75, 0.5}, pg.VertexCoords.Row(20))
	assert.Equal(t, utils.Index{16, 17, 19}, pg.Tris.Row(0))
	assert.Equal(t, utils.Index{23, 7, 8, 9}, pg.Quads.Row(11))
	assert.Equal(t, utils.Index{15, 16}, pg.IntrEdges.Row(0))
	assert.Equal(t, utils.Index{10, 6}, pg.IntrEdgeNeighbors.Row(0))
	assert.Equal(t, utils.Index{15, 0}, pg.BdryEdges.Row(15))
	assert.Equal(t, 6, pg.BdryEdgeNeighbors[15])
	assert.Equal(t, 4, pg.BdryEdgeMarkers[15])
	assert.InDelta(t, 1.0, pg.Area(), 1.e-14)

	t.Run("matches the connectivity builder", func(t *testing.T) {
		gc := mesh.GetStandardTestGrids().UnitSquare
		built, err := gc.Build(mesh.SquareSideMarker(gc.Coords))
		require.NoError(t, err)
		assert.Equal(t, built.VertexCoords.Data(), pg.VertexCoords.Data())
		assert.Equal(t, built.TriNeighbors.Data(), pg.TriNeighbors.Data())
		assert.Equal(t, built.QuadNeighbors.Data(), pg.QuadNeighbors.Data())

		type bdryEdge struct{ v0, v1, cell, marker int }
		bdry := func(g *mesh.PrimaryGrid) map[types.EdgeKey]bdryEdge {
			m := make(map[types.EdgeKey]bdryEdge)
			for i := 0; i < g.NBdryEdges; i++ {
				v0, v1 := g.BdryEdges.At(i, 0), g.BdryEdges.At(i, 1)
				m[types.NewEdgeKey(v0, v1)] = bdryEdge{v0, v1,
					g.BdryEdgeNeighbors[i], g.BdryEdgeMarkers[i]}
			}
			return m
		}
		assert.Equal(t, bdry(built), bdry(pg))

		intr := func(g *mesh.PrimaryGrid) map[types.EdgeKey][2]int {
			m := make(map[types.EdgeKey][2]int)
			for i := 0; i < g.NIntrEdges; i++ {
				c0, c1 := g.IntrEdgeNeighbors.At(i, 0), g.IntrEdgeNeighbors.At(i, 1)
				if c1 < c0 {
					c0, c1 = c1, c0
				}
				m[types.NewEdgeKey(g.IntrEdges.At(i, 0), g.IntrEdges.At(i, 1))] = [2]int{c0, c1}
			}
			return m
		}
		assert.Equal(t, intr(built), intr(pg))
	})
}

func TestReadPrimaryGridDualScenario(t *testing.T) {
	pg, err := ReadPrimaryGrid(testGridFile)
	require.NoError(t, err)
	bd := dualgrid.NewBoundaryDef()
	bd.AddMarker(1, utils.BdryInlet)
	bd.AddMarker(2, utils.BdryOutlet)
	bd.AddMarker(3, utils.BdryWall)
	bd.AddMarker(4, utils.BdrySymmetry)
	dg := dualgrid.NewDualGrid(pg, bd)

	assert.InDelta(t, 1.0, dg.TotalVolume(), 1.e-14)
	b := dg.Boundaries.Get(0)
	assert.Equal(t, utils.Index{0, 1, 2, 3, 4}, b.DualElements)
	assert.Equal(t, utils.Index{0, 1, 1, 2, 2, 3, 3, 4}, b.PrimEdges.Data())

	left := dg.Boundaries.ByMarker(4)
	assert.Equal(t, utils.Index{0, 12, 13, 14, 15}, left.DualElements)
	assert.Equal(t, utils.Index{1, 2, 2, 3, 3, 4, 4, 0}, left.PrimEdgesLocal.Data())

	// Boundary edge (1,2) is the second boundary face
	assert.Equal(t, utils.Index{1, 2}, dg.FaceNeighbors.Row(26))
	nx, ny := dg.FaceNormal(26)
	assert.InDelta(t, 0.125, nx, 1.e-14)
	assert.InDelta(t, 0., ny, 1.e-14)
	// Interior edge 3 runs from 18 to 5, its face stores the lower index first
	assert.Equal(t, utils.Index{5, 18}, dg.FaceNeighbors.Row(3))
}

func TestReadPrimaryGridErrors(t *testing.T) {
	tests := []struct {
		name, input, errText string
	}{
		{"unknown section cut short", "VERTICES 1\n0, 0\nPOLYGONS 2\n0, 1\n", "section POLYGONS: early end"},
		{"bad header", "VERTICES\n", "badly formed section header"},
		{"bad count", "VERTICES x\n", "unable to read count"},
		{"early end", "VERTICES 3\n0, 0\n1, 0\n", "early end of file"},
		{"wrong width", "VERTICES 1\n0, 0, 0\n", "section VERTICES"},
		{"bad number", "VERTICES 1\n0, zero\n", "unable to parse value"},
		{"duplicate section", "VERTICES 1\n0, 0\nVERTICES 1\n0, 0\n", "duplicate section"},
		{"no vertices", "TRIANGLES 0\n", "missing or empty"},
		{"fractional index", "VERTICES 3\n0,0\n1,0\n0,1\nTRIANGLES 1\n0, 1.5, 2, 0\n", "not an integer"},
		{"neighbor count", "VERTICES 3\n0,0\n1,0\n0,1\nTRIANGLES 1\n0, 1, 2, 0\nTRIANGLENEIGHBORS 0\n",
			"TRIANGLENEIGHBORS"},
		{"vertex out of range", "VERTICES 3\n0,0\n1,0\n0,1\nTRIANGLES 1\n0, 1, 3, 0\n", "invalid grid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pg, err := ReadPrimaryGridFrom(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, pg)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}

	_, err := ReadPrimaryGrid("testdata/missing.dat")
	assert.ErrorContains(t, err, "unable to open grid file")
}

func TestReadPrimaryGridMinimal(t *testing.T) {
	input := `
# single triangle
VERTICES 3
0, 0
1, 0
0, 1

TRIANGLES 1
0, 1, 2, 7
BOUNDARYEDGES 3
0, 1, 0, 1
1, 2, 0, 1
2, 0, 0, 2
`
	pg, err := ReadPrimaryGridFrom(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, utils.Index{-1, -1, -1}, pg.TriNeighbors.Row(0))
	assert.InDelta(t, 0.5, pg.Area(), 1.e-15)
	assert.Equal(t, utils.Index{1, 1, 2}, pg.BdryEdgeMarkers)
}

func TestReadPrimaryGridSkipsUnknownSections(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	t.Cleanup(zap.ReplaceGlobals(zap.New(core)))
	input := `
VERTICES 3
0, 0
1, 0
0, 1
COLORS 2
0, 1, 2
red
TRIANGLES 1
0, 1, 2, 0
`
	pg, err := ReadPrimaryGridFrom(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, pg.NVertices)
	assert.Equal(t, utils.Index{0, 1, 2}, pg.Tris.Row(0))

	entries := logs.FilterMessage("skipping unknown grid section").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "COLORS", entries[0].ContextMap()["section"])
	assert.EqualValues(t, 6, entries[0].ContextMap()["line"])
}

func TestNewTriMesh(t *testing.T) {
	pg, err := ReadPrimaryGrid(testGridFile)
	require.NoError(t, err)
	trimesh := NewTriMesh(pg)
	assert.Len(t, trimesh.Triangles, pg.NTris+2*pg.NQuads)
	assert.Len(t, trimesh.Attributes, len(trimesh.Triangles))
	assert.Len(t, trimesh.Geometry, pg.NVertices)
	assert.Equal(t, [3]int32{16, 17, 19}, trimesh.Triangles[0].Nodes)
	// The last quad split in two
	assert.Equal(t, [3]int32{23, 7, 8}, trimesh.Triangles[len(trimesh.Triangles)-2].Nodes)
	assert.Equal(t, [3]int32{23, 8, 9}, trimesh.Triangles[len(trimesh.Triangles)-1].Nodes)
	assert.Equal(t, float32(0.75), trimesh.Geometry[20].X[0])
}
