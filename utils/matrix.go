package utils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense row-major table of float64 backed by a gonum mat.Dense.
// A Matrix with zero rows is legal and carries no backing storage.
type Matrix struct {
	M        *mat.Dense
	nr, nc   int
	readOnly bool
	name     string
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if nr < 0 || nc < 0 {
		panic(fmt.Errorf("negative dimension in NewMatrix: nr,nc = %v,%v", nr, nc))
	}
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v\n", nr, nc, len(dataO[0]))
			panic(err)
		}
		if nr*nc != 0 {
			m = mat.NewDense(nr, nc, dataO[0])
		}
	} else if nr*nc != 0 {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{
		M:    m,
		nr:   nr,
		nc:   nc,
		name: "unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)    { return m.nr, m.nc }
func (m Matrix) At(i, j int) float64 { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix       { return m.M.T() }

func (m Matrix) IsEmpty() bool { return m.M == nil }

// Data returns the raw row-major storage, nil for an empty Matrix.
func (m Matrix) Data() []float64 {
	if m.M == nil {
		return nil
	}
	return m.M.RawMatrix().Data
}

// Row returns a view of row i that writes through to the Matrix, or a copy
// of the row when the Matrix is read only.
func (m Matrix) Row(i int) []float64 {
	if m.readOnly {
		return mat.Row(nil, i, m.M)
	}
	return m.M.RawRowView(i)
}

func (m *Matrix) SetReadOnly(name ...string) Matrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) AddAt(i, j int, val float64) Matrix { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, m.M.At(i, j)+val)
	return m
}

func (m Matrix) SetRow(i int, data []float64) Matrix { // Changes receiver
	m.checkWritable()
	m.M.SetRow(i, data)
	return m
}

func (m Matrix) Zero() Matrix { // Changes receiver
	m.checkWritable()
	if m.M != nil {
		m.M.Zero()
	}
	return m
}

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		data  = m.Data()
		dataR = make([]float64, len(data))
	)
	copy(dataR, data)
	R = NewMatrix(m.nr, m.nc, dataR)
	return
}

func (m Matrix) String() string {
	if m.M == nil {
		return fmt.Sprintf("[%d x %d]", m.nr, m.nc)
	}
	return fmt.Sprintf("%v", mat.Formatted(m.M, mat.Squeeze()))
}

func (m Matrix) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}
