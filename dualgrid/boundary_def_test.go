package dualgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/incomflow/utils"
)

func TestBoundaryDef(t *testing.T) {
	bd := NewBoundaryDef()
	bd.AddMarker(3, utils.BdryWall)
	bd.AddMarker(1, utils.BdryInlet)
	bd.AddMarker(-2, utils.BdryOutlet)
	bd.AddMarker(2, utils.BdryOutlet)
	assert.Equal(t, 3, bd.Size())
	assert.Equal(t, utils.BdryInvalid, bd.GetBoundaryType(-2))
	assert.Equal(t, utils.BdryInvalid, bd.GetBoundaryType(7))

	bd.AddMarker(2, utils.BdrySymmetry)
	assert.Equal(t, utils.BdrySymmetry, bd.GetBoundaryType(2))
	assert.Equal(t, 3, bd.Size())

	t.Run("ascending iteration", func(t *testing.T) {
		var (
			markers []int
			types   []utils.BdryType
		)
		for marker, bt := range bd.All() {
			markers = append(markers, marker)
			types = append(types, bt)
		}
		assert.Equal(t, []int{1, 2, 3}, markers)
		assert.Equal(t, []utils.BdryType{utils.BdryInlet, utils.BdrySymmetry, utils.BdryWall}, types)
		assert.Equal(t, markers, bd.Markers())
	})

	t.Run("early break", func(t *testing.T) {
		var count int
		for range bd.All() {
			count++
			break
		}
		assert.Equal(t, 1, count)
	})

	t.Run("copy is independent", func(t *testing.T) {
		cp := bd.Copy()
		cp.RemoveMarker(1)
		assert.Equal(t, 2, cp.Size())
		assert.Equal(t, 3, bd.Size())
		assert.Equal(t, utils.BdryInlet, bd.GetBoundaryType(1))
	})

	bd.RemoveMarker(1)
	bd.RemoveMarker(42)
	assert.Equal(t, []int{2, 3}, bd.Markers())
}

func TestBoundaryData(t *testing.T) {
	data := NewBoundaryData(5)
	assert.Equal(t, 5, data.NElements())
	for _, iVar := range []int{0, NMaxVars - 1} {
		assert.Equal(t, 5, data.Var(iVar).Len())
		assert.Equal(t, 5, data.MFlux(iVar).Len())
		assert.Equal(t, 5, data.DepVar(iVar).Len())
		nr, nc := data.Grad(iVar).Dims()
		assert.Equal(t, [2]int{5, 2}, [2]int{nr, nc})
		nr, nc = data.Hess(iVar).Dims()
		assert.Equal(t, [2]int{5, 3}, [2]int{nr, nc})
	}
	data.Var(3).SetVec(2, 1.5)
	assert.Equal(t, 1.5, data.Var(3).AtVec(2))
	assert.Equal(t, 0., data.Var(4).AtVec(2))
	data.Grad(3).Set(4, 1, -2)
	assert.Equal(t, -2., data.Grad(3).At(4, 1))

	assert.Panics(t, func() { data.Var(NMaxVars) })
	assert.Panics(t, func() { data.Hess(-1) })

	empty := NewBoundaryData(0)
	assert.Equal(t, 0, empty.Var(0).Len())
	assert.True(t, empty.Grad(0).IsEmpty())
}
