// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package column implements a cortical column: NumModules location modules
at different orientations, a feature layer whose cells are gated by the
modules' active cells, and per-module anchoring memories from the
feature layer back onto the module cells.

Learning an object walks its features from random starting phases,
recording which location cells and feature cells represent each
(object, feature) context.  Sensing moves the modules, activates the
feature layer, anchors each module on the location cells the active
feature cells support, and then votes: an object is a hypothesis when at
least VoteThreshold modules have an active cell in the learned location
of one of its features with the sensed name.
*/
package column

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"cogentcore.org/core/math32"
	"cogentcore.org/lab/base/randx"
	"github.com/c2h5oh/datasize"
	"github.com/emer/gridloc/assoc"
	"github.com/emer/gridloc/grid"
	"github.com/emer/gridloc/objects"
	"github.com/emer/gridloc/pairmem"
)

// Context identifies one learned feature of one object.
type Context struct {
	Object  string
	Feature int
}

// Sensation is the outcome of one Sense.
type Sensation struct {

	// sensed feature name
	Feature string

	// active minicolumns after noise
	ActiveColumns []int

	// sorted names of the objects whose learned locations for the sensed
	// feature hold enough modules' active cells after this sensation
	Hypotheses []string

	// number of modules left with active cells after anchoring
	ModulesWithCells int
}

// Column is a cortical column.  It is not safe for concurrent use.
type Column struct {
	Params

	// location modules, at Orientations(NumModules)
	Modules []*grid.Module

	// anchoring memory of each module: feature-layer cells onto module cells
	Anchors []*assoc.Memory

	// feature layer, with basal input from all module cells
	Layer *pairmem.Layer

	// per-module location cells of each learned context
	locReps map[Context][][]int

	// feature-layer winner cells of each learned context
	featReps map[Context][]int

	// learned contexts by feature name, in learning order
	byFeature map[string][]Context

	// context holding each distinct location representation
	repIndex map[string]Context
}

// New returns a column with nothing learned.
func New(pars Params) (*Column, error) {
	pars.Update()
	if err := pars.Validate(); err != nil {
		return nil, err
	}
	cl := &Column{Params: pars}
	ors := grid.Orientations(pars.NumModules)
	ncells := 0
	for mi := range pars.NumModules {
		mp := pars.Module
		mp.Orientation = ors[mi]
		md, err := grid.NewModule(mp)
		if err != nil {
			return nil, err
		}
		cl.Modules = append(cl.Modules, md)
		ncells += md.NumberOfCells()
	}
	cl.Layer = pairmem.New(pars.Features, ncells)
	for _, md := range cl.Modules {
		cl.Anchors = append(cl.Anchors, assoc.NewMemory(pars.Anchor, md.NumberOfCells(), cl.Layer.NumCells()))
	}
	cl.locReps = make(map[Context][][]int)
	cl.featReps = make(map[Context][]int)
	cl.byFeature = make(map[string][]Context)
	cl.repIndex = make(map[string]Context)
	return cl, nil
}

// Reset clears the activity of all modules and the feature layer,
// keeping everything learned.
func (cl *Column) Reset() {
	for _, md := range cl.Modules {
		md.Reset()
	}
	cl.Layer.Reset()
}

// GlobalActiveCells returns the active cells of all modules, each
// offset by the cells of the modules before it.
func (cl *Column) GlobalActiveCells() []int {
	var cells []int
	off := 0
	for _, md := range cl.Modules {
		for _, ci := range md.ActiveCells() {
			cells = append(cells, off+ci)
		}
		off += md.NumberOfCells()
	}
	return cells
}

// Move path-integrates every module by the world displacement, each with
// its own gaussian phase noise of standard deviation moduleNoise.
func (cl *Column) Move(disp math32.Vector2, moduleNoise float32, rnd randx.Rand) {
	for _, md := range cl.Modules {
		md.PathIntegrateNoisy(disp, moduleNoise, rnd)
	}
}

// LearnObject learns every feature of the object from random starting
// phases, moving from feature to feature in list order.  It returns
// false if some location representation duplicates one already learned
// for a different context.
func (cl *Column) LearnObject(obj *objects.Object, sdrs objects.SDRs, rnd randx.Rand) (bool, error) {
	cl.Reset()
	defer cl.Reset()
	for _, md := range cl.Modules {
		md.ActivateRandomLocation(rnd)
	}
	unique := true
	var prev math32.Vector2
	for fi := range obj.Features {
		ft := &obj.Features[fi]
		cols, ok := sdrs[ft.Name]
		if !ok {
			return false, fmt.Errorf("column: no SDR for feature %q of %s", ft.Name, obj.Name)
		}
		loc := ft.Center()
		if fi > 0 {
			cl.Move(loc.Sub(prev), 0, nil)
		}
		prev = loc
		for range cl.LearnIterations {
			cl.learnStep(cols, rnd)
		}

		ctx := Context{Object: obj.Name, Feature: fi}
		rep := make([][]int, len(cl.Modules))
		for mi, md := range cl.Modules {
			rep[mi] = slices.Clone(md.ActiveCells())
		}
		rk := repKey(rep)
		if other, has := cl.repIndex[rk]; has && other != ctx {
			unique = false
		}
		cl.repIndex[rk] = ctx
		if _, had := cl.locReps[ctx]; !had {
			cl.byFeature[ft.Name] = append(cl.byFeature[ft.Name], ctx)
		}
		cl.locReps[ctx] = rep
		cl.featReps[ctx] = slices.Clone(cl.Layer.WinnerCells())
	}
	return unique, nil
}

// learnStep runs one learning repetition at the current location.
func (cl *Column) learnStep(cols []int, rnd randx.Rand) {
	basal := cl.GlobalActiveCells()
	cl.Layer.Compute(cols, basal, basal, true, rnd)
	act := cl.Layer.ActiveCells()
	win := cl.Layer.WinnerCells()
	for mi, md := range cl.Modules {
		for _, ci := range md.ActiveCells() {
			cl.Anchors[mi].Learn(ci, act, win, rnd)
		}
	}
}

func repKey(rep [][]int) string {
	var b strings.Builder
	for _, cells := range rep {
		for _, ci := range cells {
			b.WriteString(strconv.Itoa(ci))
			b.WriteByte(',')
		}
		b.WriteByte('|')
	}
	return b.String()
}

// Sense moves by the world displacement, then senses the feature given
// its minicolumn SDR.  Each active minicolumn is replaced by a random
// inactive one with probability noise, and each module's movement is
// perturbed by moduleNoise.
func (cl *Column) Sense(feature string, sdr []int, disp math32.Vector2, noise, moduleNoise float32, rnd randx.Rand) *Sensation {
	cl.Move(disp, moduleNoise, rnd)
	cols := cl.Corrupt(sdr, noise, rnd)
	cl.Layer.Compute(cols, cl.GlobalActiveCells(), nil, false, nil)
	act := cl.Layer.ActiveCells()
	nmod := 0
	for mi, md := range cl.Modules {
		if md.Anchor(cl.Anchors[mi].Supported(act, cl.AnchorThreshold)) {
			nmod++
		}
	}
	return &Sensation{Feature: feature, ActiveColumns: cols, Hypotheses: cl.Hypotheses(feature), ModulesWithCells: nmod}
}

// Corrupt returns a sorted copy of the SDR in which each minicolumn is
// replaced, with probability noise, by a random minicolumn that is neither
// in the SDR nor already chosen as a replacement.
func (cl *Column) Corrupt(sdr []int, noise float32, rnd randx.Rand) []int {
	cols := slices.Clone(sdr)
	ncol := cl.Features.ColumnCount
	if noise <= 0 || rnd == nil || len(cols) >= ncol {
		slices.Sort(cols)
		return cols
	}
	in := make(map[int]bool, len(cols))
	for _, c := range cols {
		in[c] = true
	}
	for i := range cols {
		if rnd.Float64() >= float64(noise) {
			continue
		}
		if len(in) >= ncol {
			break
		}
		nc := rnd.Intn(ncol)
		for in[nc] {
			nc = rnd.Intn(ncol)
		}
		in[nc] = true
		cols[i] = nc
	}
	slices.Sort(cols)
	return cols
}

// Hypotheses returns the sorted names of the objects for which at least
// VoteThreshold modules have an active cell in the learned location of
// a feature with the given name.
func (cl *Column) Hypotheses(feature string) []string {
	ctxs := cl.byFeature[feature]
	votes := make(map[string]int)
	voted := make(map[string]bool)
	for mi, md := range cl.Modules {
		clear(voted)
		ac := md.ActiveCells()
		for _, ctx := range ctxs {
			if voted[ctx.Object] {
				continue
			}
			if intersects(ac, cl.locReps[ctx][mi]) {
				voted[ctx.Object] = true
				votes[ctx.Object]++
			}
		}
	}
	var hyps []string
	for obj, n := range votes {
		if n >= cl.VoteThreshold {
			hyps = append(hyps, obj)
		}
	}
	slices.Sort(hyps)
	return hyps
}

// intersects returns true if the sorted slices share an element.
func intersects(a, b []int) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			return true
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return false
}

// LocationRepresentation returns the per-module location cells learned
// for the context.
func (cl *Column) LocationRepresentation(ctx Context) ([][]int, bool) {
	rep, ok := cl.locReps[ctx]
	return rep, ok
}

// FeatureRepresentation returns the feature-layer cells learned for the context.
func (cl *Column) FeatureRepresentation(ctx Context) ([]int, bool) {
	rep, ok := cl.featReps[ctx]
	return rep, ok
}

// NumContexts returns the number of learned (object, feature) contexts.
func (cl *Column) NumContexts() int {
	return len(cl.locReps)
}

// SizeReport returns a report of the synapses of each anchoring memory
// and of the feature layer, with the total footprint.
func (cl *Column) SizeReport() string {
	var b strings.Builder
	for mi, an := range cl.Anchors {
		b.WriteString(an.SizeReport(fmt.Sprintf("Module %d", mi)))
	}
	b.WriteString(cl.Layer.Basal.SizeReport("Features"))
	nsyn := cl.Layer.Basal.NumSynapses()
	for _, an := range cl.Anchors {
		nsyn += an.NumSynapses()
	}
	fmt.Fprintf(&b, "\n%14s:\t Contexts: %d\t Syns: %d\t SynMem: %v\n", "Column", len(cl.locReps), nsyn, (datasize.ByteSize)(nsyn*assoc.SynapseBytes).HumanReadable())
	return b.String()
}
