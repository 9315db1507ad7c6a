package types

import (
	"fmt"
	"math"
)

/*
EdgeKey identifies an undirected edge by its two vertex indices packed into a
uint64, the lower index in the high 32 bits. Both orientations of an edge map
to the same key and keys order by lower vertex, then by upper vertex.
*/
type EdgeKey uint64

func NewEdgeKey(v0, v1 int) EdgeKey {
	if v0 < 0 || v1 < 0 || v0 > math.MaxUint32 || v1 > math.MaxUint32 {
		panic(fmt.Errorf("edge [%d,%d] has a vertex index outside [0,%d]",
			v0, v1, uint32(math.MaxUint32)))
	}
	if v1 < v0 {
		v0, v1 = v1, v0
	}
	return EdgeKey(uint64(v0)<<32 | uint64(v1))
}

// Vertices returns the edge's vertices, lower index first
func (ek EdgeKey) Vertices() (lo, hi int) {
	return int(ek >> 32), int(ek & math.MaxUint32)
}

func (ek EdgeKey) String() string {
	lo, hi := ek.Vertices()
	return fmt.Sprintf("[%d,%d]", lo, hi)
}
