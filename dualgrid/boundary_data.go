package dualgrid

import (
	"fmt"

	"github.com/notargets/incomflow/utils"
)

const NMaxVars = 100

// BoundaryData holds the field variables of a boundary, one slot per
// variable, each sized to the boundary's dual element count
type BoundaryData struct {
	nElements int
	vars      [NMaxVars]utils.Vector
	mFlux     [NMaxVars]utils.Vector
	depVars   [NMaxVars]utils.Vector
	grads     [NMaxVars]utils.Matrix // nElements x 2
	hessians  [NMaxVars]utils.Matrix // nElements x 3, xx xy yy
}

func NewBoundaryData(nElements int) (bd *BoundaryData) {
	bd = &BoundaryData{nElements: nElements}
	for iVar := 0; iVar < NMaxVars; iVar++ {
		bd.vars[iVar] = utils.NewVector(nElements)
		bd.mFlux[iVar] = utils.NewVector(nElements)
		bd.depVars[iVar] = utils.NewVector(nElements)
		bd.grads[iVar] = utils.NewMatrix(nElements, 2)
		bd.hessians[iVar] = utils.NewMatrix(nElements, 3)
	}
	return
}

func (bd *BoundaryData) NElements() int { return bd.nElements }

func (bd *BoundaryData) Var(iVar int) utils.Vector    { return bd.vars[checkSlot(iVar)] }
func (bd *BoundaryData) MFlux(iVar int) utils.Vector  { return bd.mFlux[checkSlot(iVar)] }
func (bd *BoundaryData) DepVar(iVar int) utils.Vector { return bd.depVars[checkSlot(iVar)] }
func (bd *BoundaryData) Grad(iVar int) utils.Matrix   { return bd.grads[checkSlot(iVar)] }
func (bd *BoundaryData) Hess(iVar int) utils.Matrix   { return bd.hessians[checkSlot(iVar)] }

func checkSlot(iVar int) int {
	if iVar < 0 || iVar >= NMaxVars {
		panic(fmt.Errorf("variable slot %d outside [0,%d)", iVar, NMaxVars))
	}
	return iVar
}
