package readfiles

import (
	"fmt"
	"image/color"

	"github.com/notargets/avs/chart2d"
	graphics2D "github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"

	"github.com/notargets/incomflow/dualgrid"
	"github.com/notargets/incomflow/mesh"
	"github.com/notargets/incomflow/utils"
)

// NewTriMesh converts a primary grid to a renderable triangle mesh, quads
// are split along their 0-2 diagonal
func NewTriMesh(pg *mesh.PrimaryGrid) (trimesh graphics2D.TriMesh) {
	var (
		points = make([]graphics2D.Point, pg.NVertices)
		nTri   = pg.NTris + 2*pg.NQuads
	)
	for i := range points {
		v := pg.Vertex(i)
		points[i].X[0] = float32(v.X)
		points[i].X[1] = float32(v.Y)
	}
	trimesh.Triangles = make([]graphics2D.Triangle, 0, nTri)
	trimesh.Attributes = make([][]float32, 0, nTri)
	addTri := func(v0, v1, v2 int) {
		var tri graphics2D.Triangle
		tri.Nodes = [3]int32{int32(v0), int32(v1), int32(v2)}
		trimesh.Triangles = append(trimesh.Triangles, tri)
		trimesh.Attributes = append(trimesh.Attributes, []float32{
			float32(utils.BdryInvalid), float32(utils.BdryInvalid), float32(utils.BdryInvalid),
		})
	}
	for k := 0; k < pg.NTris; k++ {
		t := pg.Tris.Row(k)
		addTri(t[0], t[1], t[2])
	}
	for k := 0; k < pg.NQuads; k++ {
		q := pg.Quads.Row(k)
		addTri(q[0], q[1], q[2])
		addTri(q[0], q[2], q[3])
	}
	trimesh.Geometry = points
	return
}

// PlotDualGrid draws the primary grid and the dual elements of each
// boundary, colored by boundary type
func PlotDualGrid(pg *mesh.PrimaryGrid, dg *dualgrid.DualGrid, plotPoints bool) (chart *chart2d.Chart2D) {
	var (
		trimesh = NewTriMesh(pg)
	)
	colorMap := utils2.NewColorMap(0, float32(utils.BdryWall), 1)
	box := graphics2D.NewBoundingBox(trimesh.GetGeometry())
	box = box.Scale(1.5)
	chart = chart2d.NewChart2D(1920, 1920, box.XMin[0], box.XMax[0], box.XMin[1], box.XMax[1])
	chart.AddColorMap(colorMap)
	go chart.Plot()
	white := color.RGBA{
		R: 255,
		G: 255,
		B: 255,
		A: 0,
	}
	if err := chart.AddTriMesh("TriMesh", trimesh,
		chart2d.CrossGlyph, chart2d.Solid, white); err != nil {
		panic("unable to add graph series")
	}
	if plotPoints {
		black := color.RGBA{
			R: 0,
			G: 0,
			B: 0,
			A: 0,
		}
		x, y := make([]float64, dg.NElements), make([]float64, dg.NElements)
		for i := range x {
			x[i], y[i] = dg.Coords.At(i, 0), dg.Coords.At(i, 1)
		}
		if err := chart.AddSeries("Elements", x, y,
			chart2d.CircleGlyph, chart2d.NoLine, black); err != nil {
			panic(err)
		}
	}
	for _, b := range dg.Boundaries.All() {
		if b.NDualElements == 0 {
			continue
		}
		x, y := make([]float64, b.NDualElements), make([]float64, b.NDualElements)
		for iLoc, v := range b.DualElements {
			x[iLoc], y[iLoc] = dg.Coords.At(v, 0), dg.Coords.At(v, 1)
		}
		name := fmt.Sprintf("Boundary %d (%s)", b.Marker, b.Type)
		if err := chart.AddSeries(name, x, y, chart2d.XGlyph, chart2d.NoLine,
			colorMap.GetRGB(float32(b.Type))); err != nil {
			panic(err)
		}
	}
	return
}
