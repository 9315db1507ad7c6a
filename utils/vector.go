package utils

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Vector is a float64 column backed by a gonum mat.VecDense. Zero length is
// legal and carries no backing storage.
type Vector struct {
	V        *mat.VecDense
	n        int
	readOnly bool
	name     string
}

func NewVector(N int, dataO ...[]float64) Vector {
	var (
		v *mat.VecDense
	)
	if len(dataO) != 0 {
		if len(dataO[0]) != N {
			panic("mismatch in allocation: NewVector length does not match data")
		}
		if N != 0 {
			v = mat.NewVecDense(N, dataO[0])
		}
	} else if N != 0 {
		v = mat.NewVecDense(N, make([]float64, N))
	}
	return Vector{V: v, n: N}
}

func (v Vector) Len() int            { return v.n }
func (v Vector) Dims() (r, c int)    { return v.n, 1 }
func (v Vector) At(i, j int) float64 { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix       { return v.V.T() }
func (v Vector) AtVec(i int) float64 { return v.V.AtVec(i) }

func (v Vector) SetVec(i int, val float64) {
	v.checkWritable()
	v.V.SetVec(i, val)
}

func (v Vector) AddVec(i int, val float64) {
	v.checkWritable()
	v.V.SetVec(i, v.V.AtVec(i)+val)
}

func (v *Vector) SetReadOnly(name ...string) Vector {
	if len(name) != 0 {
		v.name = name[0]
	}
	v.readOnly = true
	return *v
}

func (v Vector) checkWritable() {
	if v.readOnly {
		panic(fmt.Errorf("attempt to write to a read only vector named: \"%v\"", v.name))
	}
}

// Data returns the raw storage, nil for an empty Vector.
func (v Vector) Data() []float64 {
	if v.V == nil {
		return nil
	}
	return v.V.RawVector().Data
}

func (v Vector) Set(val float64) Vector {
	v.checkWritable()
	for i := range v.Data() {
		v.Data()[i] = val
	}
	return v
}

func (v Vector) Copy() Vector {
	data := make([]float64, v.n)
	copy(data, v.Data())
	return NewVector(v.n, data)
}

func (v Vector) Sum() float64 {
	if v.V == nil {
		return 0
	}
	return floats.Sum(v.Data())
}

func (v Vector) Min() float64 {
	if v.V == nil {
		return 0
	}
	return floats.Min(v.Data())
}

func (v Vector) Max() float64 {
	if v.V == nil {
		return 0
	}
	return floats.Max(v.Data())
}
