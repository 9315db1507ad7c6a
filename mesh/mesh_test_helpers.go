package mesh

import (
	"math"
	"math/rand"

	"github.com/notargets/incomflow/utils"
)

// TestGrids provides a collection of standard test grids shared by the
// grid reader, dual grid and plotting tests
type TestGrids struct {
	UnitSquare GridCells // Mixed tri/quad unit square with a removed centre vertex
}

// GridCells is the cell description of a grid, the input of BuildPrimaryGrid
type GridCells struct {
	Coords [][2]float64
	Tris   [][3]int
	Quads  [][4]int
	// Expected neighbor tables, cells numbered triangles first
	TriNeighbors  [][3]int
	QuadNeighbors [][4]int
}

// Build assembles the PrimaryGrid of the cells, marking boundaries with markerFn
func (gc GridCells) Build(markerFn MarkerFunc) (pg *PrimaryGrid, err error) {
	return BuildPrimaryGrid(gc.Coords, gc.Tris, gc.Quads, markerFn)
}

// GetStandardTestGrids returns a set of standard test grids
func GetStandardTestGrids() *TestGrids {
	return &TestGrids{
		UnitSquare: createUnitSquare(),
	}
}

/*
createUnitSquare is a 4x4 lattice on [0,1]x[0,1] whose centre vertex has been
removed. The four centre quads are replaced by six triangles, the twelve
outer quads remain.

	12--11--10---9---8
	|   |   |   |   |
	13--21--22--23---7
	|   |  /|\  |   |
	14--19  |  20----6
	|   |  \|/  |   |
	15--16--17--18---5
	|   |   |   |   |
	0---1---2---3---4
*/
func createUnitSquare() GridCells {
	return GridCells{
		Coords: [][2]float64{
			{0, 0}, {0.25, 0}, {0.5, 0}, {0.75, 0}, {1, 0}, // 0-4: bottom
			{1, 0.25}, {1, 0.5}, {1, 0.75}, {1, 1}, // 5-8: right
			{0.75, 1}, {0.5, 1}, {0.25, 1}, {0, 1}, // 9-12: top
			{0, 0.75}, {0, 0.5}, {0, 0.25}, // 13-15: left
			{0.25, 0.25}, {0.5, 0.25}, {0.75, 0.25}, // 16-18
			{0.25, 0.5}, {0.75, 0.5}, // 19-20
			{0.25, 0.75}, {0.5, 0.75}, {0.75, 0.75}, // 21-23
		},
		Tris: [][3]int{
			{16, 17, 19}, {17, 18, 20}, {20, 23, 22},
			{22, 21, 19}, {17, 20, 22}, {17, 22, 19},
		},
		Quads: [][4]int{
			{0, 1, 16, 15}, {1, 2, 17, 16}, {2, 3, 18, 17}, {3, 4, 5, 18},
			{15, 16, 19, 14}, {18, 5, 6, 20}, {14, 19, 21, 13}, {20, 6, 7, 23},
			{13, 21, 11, 12}, {21, 22, 10, 11}, {22, 23, 9, 10}, {23, 7, 8, 9},
		},
		TriNeighbors: [][3]int{
			{7, 5, 10}, {8, 11, 4}, {13, 16, 4},
			{15, 12, 5}, {1, 2, 5}, {4, 3, 0},
		},
		QuadNeighbors: [][4]int{
			{-1, 7, 10, -1}, {-1, 8, 0, 6}, {-1, 9, 1, 7}, {-1, -1, 11, 8},
			{6, 0, 12, -1}, {9, -1, 13, 1}, {10, 3, 14, -1}, {11, -1, 17, 2},
			{12, 15, -1, -1}, {3, 16, -1, 14}, {2, 17, -1, 15}, {13, -1, -1, 16},
		},
	}
}

// SquareSideMarker marks the sides of the unit square bottom, right, top,
// left as 1, 2, 3, 4
func SquareSideMarker(coords [][2]float64) MarkerFunc {
	tol := utils.NODETOL
	return func(v0, v1 int) int {
		p0, p1 := coords[v0], coords[v1]
		switch {
		case math.Abs(p0[1]) < tol && math.Abs(p1[1]) < tol:
			return 1
		case math.Abs(p0[0]-1) < tol && math.Abs(p1[0]-1) < tol:
			return 2
		case math.Abs(p0[1]-1) < tol && math.Abs(p1[1]-1) < tol:
			return 3
		default:
			return 4
		}
	}
}

/*
NewJitteredGrid is a structured nx by ny grid on the unit square whose
interior vertices are displaced by up to jitter times the spacing. Cells
alternate between quads and pairs of triangles in a checkerboard.
*/
func NewJitteredGrid(nx, ny int, jitter float64, seed int64) GridCells {
	var (
		rng    = rand.New(rand.NewSource(seed))
		dx, dy = 1. / float64(nx), 1. / float64(ny)
		gc     GridCells
		vid    = func(i, j int) int { return j*(nx+1) + i }
	)
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			x, y := float64(i)*dx, float64(j)*dy
			if i > 0 && i < nx && j > 0 && j < ny {
				x += jitter * dx * (2*rng.Float64() - 1)
				y += jitter * dy * (2*rng.Float64() - 1)
			}
			gc.Coords = append(gc.Coords, [2]float64{x, y})
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			v00, v10, v11, v01 := vid(i, j), vid(i+1, j), vid(i+1, j+1), vid(i, j+1)
			if (i+j)%2 == 0 {
				gc.Quads = append(gc.Quads, [4]int{v00, v10, v11, v01})
			} else {
				gc.Tris = append(gc.Tris, [3]int{v00, v10, v11}, [3]int{v00, v11, v01})
			}
		}
	}
	return gc
}
