// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"slices"
	"testing"

	"cogentcore.org/core/math32"
	"cogentcore.org/lab/base/randx"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

func newTestModule(t *testing.T, orient float32, anch AnchoringMethods) *Module {
	pars := Params{}
	pars.Defaults()
	pars.Orientation = orient
	pars.Anchoring = anch
	md, err := NewModule(pars)
	if err != nil {
		t.Fatal(err)
	}
	return md
}

// setCenters puts one phase at the center of each cell.
func (md *Module) setCenters(cells []int) {
	md.phases = md.phases[:0]
	for _, ci := range cells {
		md.phases = append(md.phases, md.cellPhase(ci, 0.5, 0.5))
	}
	md.computeActiveCells()
}

func TestOffsets(t *testing.T) {
	offs := Offsets(2)
	if len(offs) != 2 || math32.Abs(offs[0]-0.001) > difTol || math32.Abs(offs[1]-0.999) > difTol {
		t.Errorf("Offsets(2) = %v", offs)
	}
	offs = Offsets(3)
	if math32.Abs(offs[1]-0.5) > difTol {
		t.Errorf("Offsets(3) middle = %g, want 0.5", offs[1])
	}
	if offs := Offsets(1); len(offs) != 1 || offs[0] != 0.5 {
		t.Errorf("Offsets(1) = %v", offs)
	}
}

func TestOrientations(t *testing.T) {
	ors := Orientations(4)
	want := []float32{11.25, 33.75, 56.25, 78.75}
	for i := range want {
		if math32.Abs(ors[i]-want[i]) > difTol {
			t.Errorf("orientation %d = %g, want %g", i, ors[i], want[i])
		}
	}
}

func TestValidate(t *testing.T) {
	pars := Params{}
	pars.Defaults()
	pars.CellCoordinateOffsets = []float32{0, 0.5}
	if _, err := NewModule(pars); err == nil {
		t.Error("expected error for offset 0")
	}
	pars.Defaults()
	pars.CellsPerAxis = 0
	if _, err := NewModule(pars); err == nil {
		t.Error("expected error for zero cells")
	}
}

func TestPathIntegrateShift(t *testing.T) {
	md := newTestModule(t, 0, Narrowing)
	md.setCenters([]int{2*10 + 3, 9})
	md.PathIntegrate(math32.Vec2(4, 0))
	if want := []int{0, 2*10 + 4}; !slices.Equal(md.ActiveCells(), want) {
		t.Errorf("after +x move: %v, want %v", md.ActiveCells(), want)
	}
	md.PathIntegrate(math32.Vec2(0, -12))
	if want := []int{7*10 + 0, 9*10 + 4}; !slices.Equal(md.ActiveCells(), want) {
		t.Errorf("after -y move: %v, want %v", md.ActiveCells(), want)
	}
}

func TestPathIntegrateIdentity(t *testing.T) {
	moves := []math32.Vector2{
		math32.Vec2(20, 0), math32.Vec2(-30, 50), math32.Vec2(7.5, -3.25),
		math32.Vec2(400, 260), math32.Vec2(-0.5, 0.25),
	}
	for _, orient := range []float32{0, 11.25, 45, 78.75} {
		md := newTestModule(t, orient, Narrowing)
		cells := []int{0, 13, 57, 99}
		md.setCenters(cells)
		for _, mv := range moves {
			md.PathIntegrate(mv)
			md.PathIntegrate(mv.MulScalar(-1))
			if !slices.Equal(md.ActiveCells(), cells) {
				t.Errorf("orient %g move %v: %v, want %v", orient, mv, md.ActiveCells(), cells)
			}
		}
	}
}

func TestNoisyZero(t *testing.T) {
	a := newTestModule(t, 33.75, Narrowing)
	b := newTestModule(t, 33.75, Narrowing)
	a.setCenters([]int{5, 44})
	b.setCenters([]int{5, 44})
	mv := math32.Vec2(13, -9)
	a.PathIntegrate(mv)
	b.PathIntegrateNoisy(mv, 0, randx.NewSysRand(1))
	if !slices.Equal(a.ActiveCells(), b.ActiveCells()) {
		t.Errorf("zero noise changed result: %v vs %v", a.ActiveCells(), b.ActiveCells())
	}
	b.PathIntegrateNoisy(mv, 0.05, randx.NewSysRand(1))
	if len(b.Phases()) != 2 {
		t.Errorf("noise changed number of phases to %d", len(b.Phases()))
	}
}

func TestActivateRandomLocation(t *testing.T) {
	md := newTestModule(t, 0, Narrowing)
	md.ActivateRandomLocation(randx.NewSysRand(9))
	ac := md.ActiveCells()
	if len(ac) != 1 || ac[0] < 0 || ac[0] >= md.NumberOfCells() {
		t.Errorf("random location cells = %v", ac)
	}
	md.Reset()
	if len(md.ActiveCells()) != 0 || len(md.Phases()) != 0 {
		t.Error("Reset left activity")
	}
}

func TestAnchorNarrowing(t *testing.T) {
	md := newTestModule(t, 0, Narrowing)
	if !md.Anchor([]int{5, 17}) {
		t.Fatal("seeding anchor returned false")
	}
	if !slices.Equal(md.ActiveCells(), []int{5, 17}) {
		t.Errorf("seeded cells = %v", md.ActiveCells())
	}
	if n := len(md.Phases()); n != 8 {
		t.Errorf("seeded %d phases, want 8", n)
	}
	if !md.Anchor([]int{17, 40}) {
		t.Fatal("narrowing anchor returned false")
	}
	if !slices.Equal(md.ActiveCells(), []int{17, 40}) {
		t.Errorf("narrowed cells = %v, want [17 40]", md.ActiveCells())
	}
	if !slices.Equal(md.SensoryAssociatedCells(), []int{17, 40}) {
		t.Errorf("sensory associated = %v", md.SensoryAssociatedCells())
	}
	if md.Anchor(nil) {
		t.Error("anchor with no support returned true")
	}
	if len(md.ActiveCells()) != 0 {
		t.Errorf("cells remain without support: %v", md.ActiveCells())
	}
}

func TestAnchorCorners(t *testing.T) {
	md := newTestModule(t, 0, Corners)
	md.Anchor([]int{5, 17})
	md.Anchor([]int{17, 40})
	if !slices.Equal(md.ActiveCells(), []int{17}) {
		t.Errorf("corners cells = %v, want [17]", md.ActiveCells())
	}
	if n := len(md.Phases()); n != 4 {
		t.Errorf("corners phases = %d, want 4", n)
	}
	md.Anchor([]int{3})
	if !slices.Equal(md.ActiveCells(), []int{3}) {
		t.Errorf("reseeded cells = %v, want [3]", md.ActiveCells())
	}
}

func TestCornersSpanCell(t *testing.T) {
	// any movement keeps the true cell covered by the corner phases
	md := newTestModule(t, 20, Corners)
	md.Anchor([]int{44})
	truth := newTestModule(t, 20, Corners)
	truth.phases = []math32.Vector2{math32.Vec2(0.43, 0.47)}
	truth.computeActiveCells()
	mv := math32.Vec2(11, 27)
	md.PathIntegrate(mv)
	truth.PathIntegrate(mv)
	tc := truth.ActiveCells()[0]
	lo, _ := slices.BinarySearch(md.ActiveCells(), tc)
	if lo >= len(md.ActiveCells()) || md.ActiveCells()[lo] != tc {
		t.Errorf("true cell %d not among %v", tc, md.ActiveCells())
	}
}
