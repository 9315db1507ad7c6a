package utils

import (
	"fmt"
)

type Index []int

func NewIndex(N int) (I Index) {
	return make(Index, N)
}

func (I Index) Set(val int) Index {
	for i := range I {
		I[i] = val
	}
	return I
}

func (I Index) Copy() (r Index) {
	r = make(Index, len(I))
	copy(r, I)
	return
}

func (I Index) Max() (m int) {
	if len(I) == 0 {
		return
	}
	m = I[0]
	for _, val := range I[1:] {
		if val > m {
			m = val
		}
	}
	return
}

// IndexMatrix is a dense row-major table of ints, used for connectivity.
type IndexMatrix struct {
	nr, nc   int
	data     Index
	readOnly bool
	name     string
}

func NewIndexMatrix(nr, nc int, dataO ...Index) (R IndexMatrix) {
	if nr < 0 || nc < 0 {
		panic(fmt.Errorf("negative dimension in NewIndexMatrix: nr,nc = %v,%v", nr, nc))
	}
	R = IndexMatrix{nr: nr, nc: nc}
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			panic(fmt.Errorf("mismatch in allocation: NewIndexMatrix nr,nc = %v,%v, len(data[0]) = %v",
				nr, nc, len(dataO[0])))
		}
		R.data = dataO[0]
		return
	}
	R.data = make(Index, nr*nc)
	return
}

func (m IndexMatrix) Dims() (r, c int) { return m.nr, m.nc }

func (m IndexMatrix) At(i, j int) int {
	m.checkBounds(i, j)
	return m.data[i*m.nc+j]
}

func (m IndexMatrix) Set(i, j int, val int) IndexMatrix { // Changes receiver
	m.checkWritable()
	m.checkBounds(i, j)
	m.data[i*m.nc+j] = val
	return m
}

// Row returns a view of row i that writes through to the IndexMatrix, or a
// copy of the row when the IndexMatrix is read only.
func (m IndexMatrix) Row(i int) Index {
	m.checkBounds(i, 0)
	row := m.data[i*m.nc : (i+1)*m.nc]
	if m.readOnly {
		return row.Copy()
	}
	return row
}

func (m IndexMatrix) SetRow(i int, vals ...int) IndexMatrix { // Changes receiver
	m.checkWritable()
	copy(m.Row(i), vals)
	return m
}

func (m IndexMatrix) Data() Index { return m.data }

func (m IndexMatrix) Fill(val int) IndexMatrix {
	m.checkWritable()
	m.data.Set(val)
	return m
}

func (m IndexMatrix) Copy() IndexMatrix {
	return NewIndexMatrix(m.nr, m.nc, m.data.Copy())
}

func (m *IndexMatrix) SetReadOnly(name ...string) IndexMatrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m IndexMatrix) checkWritable() {
	if m.readOnly {
		panic(fmt.Errorf("attempt to write to a read only index matrix named: \"%v\"", m.name))
	}
}

func (m IndexMatrix) checkBounds(i, j int) {
	if i < 0 || i >= m.nr || j < 0 || j >= m.nc {
		panic(fmt.Errorf("index out of bounds: (%d,%d) in [%d x %d]", i, j, m.nr, m.nc))
	}
}
