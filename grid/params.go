// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"fmt"
)

//go:generate core generate

// AnchoringMethods are the ways a module narrows its phases onto the
// cells supported by the current sensation.
type AnchoringMethods int32 //enums:enum -transform lower

const (
	// Narrowing keeps the continuous phases that fall in supported cells,
	// and seeds offset phases in supported cells that had none.
	Narrowing AnchoringMethods = iota

	// Corners replaces the phases in each surviving supported cell with the
	// grid of offset phases, or seeds every supported cell if none survive.
	Corners
)

// Params are the parameters of one location module.
type Params struct {

	// number of cells along each side of the toroidal sheet
	CellsPerAxis int `def:"10" min:"1"`

	// distance in world units spanned by one period of the sheet
	Scale float32 `def:"40" min:"0"`

	// rotation in degrees applied to movements before they shift phases
	Orientation float32

	// sub-cell positions along each axis at which phases are seeded in a cell, each in (0,1)
	CellCoordinateOffsets []float32

	// how sensed support narrows the phases
	Anchoring AnchoringMethods
}

func (gp *Params) Update() {
}

func (gp *Params) Defaults() {
	gp.CellsPerAxis = 10
	gp.Scale = 40
	gp.Orientation = 0
	gp.CellCoordinateOffsets = Offsets(2)
	gp.Anchoring = Narrowing
	gp.Update()
}

// Validate returns an error for unusable parameters.
func (gp *Params) Validate() error {
	if gp.CellsPerAxis < 1 {
		return fmt.Errorf("grid: CellsPerAxis %d must be >= 1", gp.CellsPerAxis)
	}
	if gp.Scale <= 0 {
		return fmt.Errorf("grid: Scale %g must be > 0", gp.Scale)
	}
	if len(gp.CellCoordinateOffsets) == 0 {
		return fmt.Errorf("grid: no CellCoordinateOffsets")
	}
	for _, off := range gp.CellCoordinateOffsets {
		if off <= 0 || off >= 1 {
			return fmt.Errorf("grid: cell coordinate offset %g outside (0,1)", off)
		}
	}
	return nil
}

// Offsets returns n cell coordinate offsets spread evenly just inside
// the (0,1) interval.  n < 2 returns the single center offset.
func Offsets(n int) []float32 {
	if n < 2 {
		return []float32{0.5}
	}
	offs := make([]float32, n)
	for i := range offs {
		offs[i] = float32(i)*(0.998/float32(n-1)) + 0.001
	}
	return offs
}

// Orientations returns the orientations of n modules, evenly spread over
// the 90 degrees that distinguish square grids.
func Orientations(n int) []float32 {
	ors := make([]float32, n)
	if n == 0 {
		return ors
	}
	step := 90 / float32(n)
	for i := range ors {
		ors[i] = float32(i)*step + step/2
	}
	return ors
}
