package dualgrid

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/incomflow/mesh"
	"github.com/notargets/incomflow/types"
	"github.com/notargets/incomflow/utils"
)

/*
DualGrid is the median dual of a PrimaryGrid: one control volume per primary
vertex, centred on the vertex, and one face per primary edge.

Faces are the interior primary edges followed by the boundary primary edges.
FaceNeighbors stores the two vertices of each face with the smaller index
first and FaceNormals points from the first vertex to the second, scaled by
the dual face length. Boundary faces carry only their cell side segments,
the boundary segments are held by the Boundaries. All tables are read only
once NewDualGrid returns.
*/
type DualGrid struct {
	NElements  int
	NFaces     int
	NIntrFaces int

	Coords        utils.Matrix      // NElements x 2
	FaceNormals   utils.Matrix      // NFaces x 2
	FaceNeighbors utils.IndexMatrix // NFaces x 2
	Volumes       utils.Vector      // NElements

	Boundaries *BoundaryList

	// Row i holds the count of faces of vertex i in column 0, then the faces
	vertexFaces utils.IndexMatrix
}

func NewDualGrid(pg *mesh.PrimaryGrid, bd *BoundaryDef) (dg *DualGrid) {
	dg = &DualGrid{
		NElements:  pg.NVertices,
		NFaces:     pg.NIntrEdges + pg.NBdryEdges,
		NIntrFaces: pg.NIntrEdges,
		Coords:     pg.VertexCoords.Copy(),
	}
	dg.buildFaces(pg)
	dg.buildVertexFaces()
	dg.Volumes = utils.NewVector(dg.NElements)
	dg.FaceNormals = utils.NewMatrix(dg.NFaces, 2)
	for k := 0; k < pg.NTris; k++ {
		dg.addCellMetrics(pg, pg.Tris.Row(k))
	}
	for k := 0; k < pg.NQuads; k++ {
		dg.addCellMetrics(pg, pg.Quads.Row(k))
	}
	dg.Boundaries = NewBoundaryList(pg, bd)
	dg.Coords.SetReadOnly("Coords")
	dg.FaceNormals.SetReadOnly("FaceNormals")
	dg.FaceNeighbors.SetReadOnly("FaceNeighbors")
	dg.Volumes.SetReadOnly("Volumes")
	dg.vertexFaces.SetReadOnly("vertexFaces")
	zap.L().Info("dual grid constructed",
		zap.Int("elements", dg.NElements),
		zap.Int("faces", dg.NFaces),
		zap.Int("boundaries", dg.Boundaries.Size()),
		zap.Float64("volume", dg.TotalVolume()),
	)
	return
}

func (dg *DualGrid) buildFaces(pg *mesh.PrimaryGrid) {
	dg.FaceNeighbors = utils.NewIndexMatrix(dg.NFaces, 2)
	var iFace int
	for _, edges := range []utils.IndexMatrix{pg.IntrEdges, pg.BdryEdges} {
		nr, _ := edges.Dims()
		for i := 0; i < nr; i++ {
			v0, v1 := edges.At(i, 0), edges.At(i, 1)
			for _, v := range [2]int{v0, v1} {
				if v < 0 || v >= dg.NElements {
					panic(fmt.Errorf("edge [%d,%d] references vertex %d outside [0,%d)",
						v0, v1, v, dg.NElements))
				}
			}
			lo, hi := types.NewEdgeKey(v0, v1).Vertices()
			dg.FaceNeighbors.SetRow(iFace, lo, hi)
			iFace++
		}
	}
}

// buildVertexFaces sizes the vertex to face table from the maximum fan-out,
// then fills it
func (dg *DualGrid) buildVertexFaces() {
	counts := utils.NewIndex(dg.NElements)
	for _, v := range dg.FaceNeighbors.Data() {
		counts[v]++
	}
	dg.vertexFaces = utils.NewIndexMatrix(dg.NElements, counts.Max()+1)
	for f := 0; f < dg.NFaces; f++ {
		for _, v := range dg.FaceNeighbors.Row(f) {
			row := dg.vertexFaces.Row(v)
			row[0]++
			row[row[0]] = f
		}
	}
}

// VertexFaces returns the faces incident to vertex v
func (dg *DualGrid) VertexFaces(v int) utils.Index {
	row := dg.vertexFaces.Row(v)
	return row[1 : 1+row[0]]
}

// findFace scans the faces of p0 for the one shared with p1
func (dg *DualGrid) findFace(p0, p1 int) int {
	for _, f := range dg.VertexFaces(p0) {
		if dg.FaceNeighbors.At(f, 0) == p1 || dg.FaceNeighbors.At(f, 1) == p1 {
			return f
		}
	}
	panic(fmt.Errorf("no face connects vertices %d and %d", p0, p1))
}

/*
addCellMetrics splits a cell into the wedges (vertex, edge midpoint, centroid)
of each of its edges. Each wedge area goes to its vertex volume and the
centroid to midpoint segment, rotated counterclockwise, goes to the edge's face.
*/
func (dg *DualGrid) addCellMetrics(pg *mesh.PrimaryGrid, verts utils.Index) {
	var (
		n        = len(verts)
		centroid r2.Vec
	)
	for _, v := range verts {
		centroid = r2.Add(centroid, pg.Vertex(v))
	}
	centroid = r2.Scale(1./float64(n), centroid)
	for i := 0; i < n; i++ {
		p0, p1 := verts[i], verts[(i+1)%n]
		x0, x1 := pg.Vertex(p0), pg.Vertex(p1)
		mid := r2.Scale(0.5, r2.Add(x0, x1))

		area0 := 0.5 * r2.Cross(r2.Sub(mid, x0), r2.Sub(centroid, x0))
		area1 := 0.5 * r2.Cross(r2.Sub(mid, x1), r2.Sub(centroid, x1))
		dg.Volumes.AddVec(p0, area0)
		dg.Volumes.AddVec(p1, -area1)

		seg := r2.Sub(mid, centroid)
		nx, ny := -seg.Y, seg.X
		f := dg.findFace(p0, p1)
		if dg.FaceNeighbors.At(f, 1) == p1 {
			dg.FaceNormals.AddAt(f, 0, nx)
			dg.FaceNormals.AddAt(f, 1, ny)
		} else {
			dg.FaceNormals.AddAt(f, 0, -nx)
			dg.FaceNormals.AddAt(f, 1, -ny)
		}
	}
}

func (dg *DualGrid) FaceNormal(f int) (nx, ny float64) {
	return dg.FaceNormals.At(f, 0), dg.FaceNormals.At(f, 1)
}

func (dg *DualGrid) TotalVolume() float64 { return dg.Volumes.Sum() }

/*
FaceIncidence is the NFaces x NElements signed incidence of faces on control
volumes, +1 at the first vertex of a face and -1 at the second.
*/
func (dg *DualGrid) FaceIncidence() *sparse.CSR {
	dok := sparse.NewDOK(dg.NFaces, dg.NElements)
	for f := 0; f < dg.NFaces; f++ {
		dok.Set(f, dg.FaceNeighbors.At(f, 0), 1)
		dok.Set(f, dg.FaceNeighbors.At(f, 1), -1)
	}
	return dok.ToCSR()
}

// NetFlux sums a per face flux, signed along the face normals, into the net
// outflow of each control volume
func (dg *DualGrid) NetFlux(faceFlux []float64) (net []float64) {
	if len(faceFlux) != dg.NFaces {
		panic(fmt.Errorf("face flux has length %d, expected %d", len(faceFlux), dg.NFaces))
	}
	net = make([]float64, dg.NElements)
	if dg.NFaces == 0 || dg.NElements == 0 {
		return
	}
	result := mat.NewVecDense(dg.NElements, net)
	result.MulVec(dg.FaceIncidence().T(), mat.NewVecDense(dg.NFaces, faceFlux))
	return
}
