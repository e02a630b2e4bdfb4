// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package grid implements a location module: a square sheet of cells whose
opposite edges wrap around (a torus), on which the current location is
represented by a set of continuous phases.  Each phase is a point in
[0,1) x [0,1), and the active cells are the cells that contain at least
one phase.

Movements shift every phase by the movement rotated by the module's
Orientation and divided by its Scale (path integration).  Sensations
narrow the phases onto the cells that the sensed feature supports
(anchoring), per AnchoringMethods.
*/
package grid

import (
	"slices"

	"cogentcore.org/core/math32"
	"cogentcore.org/lab/base/randx"
)

// Module is one location module.
type Module struct {
	Params

	// current phases, X along columns and Y along rows of the sheet
	phases []math32.Vector2

	// cell of each phase
	cellsForPhases []int

	// sorted unique cells holding a phase
	activeCells []int

	// cells supported by the most recent anchoring
	sensoryAssociated []int
}

// NewModule returns a module with no active cells.
func NewModule(pars Params) (*Module, error) {
	if err := pars.Validate(); err != nil {
		return nil, err
	}
	md := &Module{Params: pars}
	md.CellCoordinateOffsets = slices.Clone(pars.CellCoordinateOffsets)
	md.Update()
	return md, nil
}

// NumberOfCells returns the number of cells in the sheet.
func (md *Module) NumberOfCells() int {
	return md.CellsPerAxis * md.CellsPerAxis
}

// Reset clears all phases.
func (md *Module) Reset() {
	md.phases = md.phases[:0]
	md.cellsForPhases = md.cellsForPhases[:0]
	md.activeCells = md.activeCells[:0]
	md.sensoryAssociated = md.sensoryAssociated[:0]
}

// ActiveCells returns the sorted active cells.  The slice is owned by
// the module and is only valid until its next update.
func (md *Module) ActiveCells() []int {
	return md.activeCells
}

// SensoryAssociatedCells returns the cells supported at the last Anchor.
func (md *Module) SensoryAssociatedCells() []int {
	return md.sensoryAssociated
}

// Phases returns a copy of the current phases.
func (md *Module) Phases() []math32.Vector2 {
	return slices.Clone(md.phases)
}

// ActivateRandomLocation replaces all phases with a single random phase.
func (md *Module) ActivateRandomLocation(rnd randx.Rand) {
	md.phases = append(md.phases[:0], math32.Vec2(float32(rnd.Float64()), float32(rnd.Float64())))
	md.computeActiveCells()
}

// PhaseDisplacement converts a world displacement into the phase shift
// it produces on this module.
func (md *Module) PhaseDisplacement(disp math32.Vector2) math32.Vector2 {
	rad := math32.DegToRad(md.Orientation)
	cs, sn := math32.Cos(rad), math32.Sin(rad)
	return math32.Vec2((cs*disp.X-sn*disp.Y)/md.Scale, (sn*disp.X+cs*disp.Y)/md.Scale)
}

// PathIntegrate shifts all phases by the world displacement.
func (md *Module) PathIntegrate(disp math32.Vector2) {
	md.shift(md.PhaseDisplacement(disp))
}

// PathIntegrateNoisy shifts all phases by the world displacement plus one
// gaussian perturbation with standard deviation noise, in phase units,
// drawn per axis and shared by all phases of the module.
func (md *Module) PathIntegrateNoisy(disp math32.Vector2, noise float32, rnd randx.Rand) {
	pd := md.PhaseDisplacement(disp)
	if noise > 0 && rnd != nil {
		pd.X += noise * float32(rnd.NormFloat64())
		pd.Y += noise * float32(rnd.NormFloat64())
	}
	md.shift(pd)
}

func (md *Module) shift(pd math32.Vector2) {
	if len(md.phases) == 0 {
		return
	}
	for i, ph := range md.phases {
		md.phases[i] = math32.Vec2(wrap(ph.X+pd.X), wrap(ph.Y+pd.Y))
	}
	md.computeActiveCells()
}

// wrap returns p modulo 1 in [0,1).
func wrap(p float32) float32 {
	p = math32.Mod(p, 1)
	if p < 0 {
		p += 1
	}
	if p >= 1 {
		p = 0
	}
	return p
}

// CellOf returns the cell containing the phase.
func (md *Module) CellOf(ph math32.Vector2) int {
	n := md.CellsPerAxis
	r := min(int(math32.Floor(ph.Y*float32(n))), n-1)
	c := min(int(math32.Floor(ph.X*float32(n))), n-1)
	return r*n + c
}

// cellPhase returns the phase at the given offsets within the cell.
func (md *Module) cellPhase(cell int, ox, oy float32) math32.Vector2 {
	n := md.CellsPerAxis
	r, c := cell/n, cell%n
	return math32.Vec2((float32(c)+ox)/float32(n), (float32(r)+oy)/float32(n))
}

// seed appends the grid of offset phases for each of the cells.
func (md *Module) seed(cells []int) {
	for _, ci := range cells {
		for _, oy := range md.CellCoordinateOffsets {
			for _, ox := range md.CellCoordinateOffsets {
				md.phases = append(md.phases, md.cellPhase(ci, ox, oy))
			}
		}
	}
}

func (md *Module) computeActiveCells() {
	md.cellsForPhases = md.cellsForPhases[:0]
	for _, ph := range md.phases {
		md.cellsForPhases = append(md.cellsForPhases, md.CellOf(ph))
	}
	md.activeCells = append(md.activeCells[:0], md.cellsForPhases...)
	slices.Sort(md.activeCells)
	md.activeCells = slices.Compact(md.activeCells)
}

// Anchor narrows the phases onto the supported cells (sorted), and
// returns true if any cell remains active.  A module with no phases
// seeds all supported cells.
func (md *Module) Anchor(supported []int) bool {
	md.sensoryAssociated = append(md.sensoryAssociated[:0], supported...)
	if len(md.phases) == 0 {
		md.seed(supported)
		md.computeActiveCells()
		return len(md.activeCells) > 0
	}
	kept := md.phases[:0]
	var covered []int
	for i, ph := range md.phases {
		ci := md.cellsForPhases[i]
		if _, ok := slices.BinarySearch(supported, ci); ok {
			kept = append(kept, ph)
			covered = append(covered, ci)
		}
	}
	slices.Sort(covered)
	covered = slices.Compact(covered)
	md.phases = kept

	switch md.Anchoring {
	case Corners:
		md.phases = md.phases[:0]
		if len(covered) == 0 {
			md.seed(supported)
		} else {
			md.seed(covered)
		}
	default:
		var fresh []int
		for _, ci := range supported {
			if _, ok := slices.BinarySearch(covered, ci); !ok {
				fresh = append(fresh, ci)
			}
		}
		md.seed(fresh)
	}
	md.computeActiveCells()
	return len(md.activeCells) > 0
}
