// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package experiment runs object learning and inference trials on a column.

An Experiment learns each object from a seed derived from the object's
name, then infers each one by touching its features in random orders,
recording the sensation at which the column's hypotheses narrowed to that
object alone.  Run sets up and runs a whole experiment from Params and
returns the Histogram of convergence steps.
*/
package experiment

import (
	"hash/fnv"

	"cogentcore.org/core/math32"
	"cogentcore.org/lab/base/randx"
	"github.com/emer/gridloc/column"
	"github.com/emer/gridloc/objects"
)

// Experiment learns and infers objects on one column.
type Experiment struct {

	// the column
	Column *column.Column

	// minicolumn SDR of each feature name
	SDRs objects.SDRs

	// probability of replacing each active minicolumn of a sensed feature
	NoiseFactor float32

	// standard deviation of per-module phase noise on each movement
	ModuleNoiseFactor float32

	// passes over the features before an Unbounded walk gives up
	MaxTraversals int

	// base seed for per-object learning
	Seed int64

	// movement and noise randomness
	Rand randx.Rand

	// optional inference observer
	Tracer Tracer

	// false once a learned location representation repeats another
	Unique bool
}

// New returns an experiment on the column.
func New(cl *column.Column, sdrs objects.SDRs, seed int64, rnd randx.Rand) *Experiment {
	return &Experiment{Column: cl, SDRs: sdrs, MaxTraversals: MaxTraversals, Seed: seed, Rand: rnd, Unique: true}
}

// ObjectSeed returns the learning seed for the named object, so that
// learning the same object again starts from the same phases.
func ObjectSeed(seed int64, name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return int64((h.Sum64() ^ uint64(seed)) >> 1)
}

// LearnObject learns the object on the column.
func (ex *Experiment) LearnObject(obj *objects.Object) error {
	uniq, err := ex.Column.LearnObject(obj, ex.SDRs, randx.NewSysRand(ObjectSeed(ex.Seed, obj.Name)))
	if !uniq {
		ex.Unique = false
	}
	return err
}

// touchOrder returns a random order of n features whose first element is
// not prevLast, when n > 1.
func (ex *Experiment) touchOrder(n, prevLast int) []int {
	ord := make([]int, n)
	for i := range ord {
		ord[i] = i
	}
	randx.PermuteInts(ord, ex.Rand)
	if n > 1 && ord[0] == prevLast {
		j := 1 + ex.Rand.Intn(n-1)
		ord[0], ord[j] = ord[j], ord[0]
	}
	return ord
}

// InferObjectWithRandomMovements resets the column and touches the
// object's features in random orders, each pass a new order that does
// not start where the last one ended.  It returns the sensation, counted
// from 1, from which the hypotheses were exactly the object, and whether
// that happened.
//
// With numSensations Unbounded, the walk stops at the first such
// sensation, or fails after MaxTraversals passes.  Otherwise it makes
// exactly numSensations sensations and succeeds only if the hypotheses
// end as exactly the object.  Hypotheses narrowing to a single other
// object fail the walk at once.
func (ex *Experiment) InferObjectWithRandomMovements(obj *objects.Object, numSensations int) (int, bool) {
	cl := ex.Column
	cl.Reset()
	if ex.Tracer != nil {
		ex.Tracer.BeforeInfer(obj)
	}
	nfeat := len(obj.Features)
	step, conv := 0, 0
	done := nfeat == 0
	var prev math32.Vector2
	prevLast := -1
	for trav := 0; !done; trav++ {
		if numSensations == Unbounded && trav >= ex.MaxTraversals {
			break
		}
		ord := ex.touchOrder(nfeat, prevLast)
		for _, fi := range ord {
			ft := &obj.Features[fi]
			loc := ft.Center()
			var disp math32.Vector2
			if step > 0 {
				disp = loc.Sub(prev)
			}
			prev = loc
			step++
			sn := cl.Sense(ft.Name, ex.SDRs[ft.Name], disp, ex.NoiseFactor, ex.ModuleNoiseFactor, ex.Rand)
			if ex.Tracer != nil {
				ex.Tracer.AfterSense(obj, step, fi, sn, cl)
			}
			switch {
			case len(sn.Hypotheses) == 1 && sn.Hypotheses[0] == obj.Name:
				if conv == 0 {
					conv = step
				}
			case len(sn.Hypotheses) == 1:
				conv = 0
				done = true
			default:
				conv = 0
			}
			if numSensations == Unbounded && conv > 0 {
				done = true
			}
			if numSensations != Unbounded && step >= numSensations {
				done = true
			}
			if done {
				break
			}
		}
		prevLast = ord[len(ord)-1]
	}
	if ex.Tracer != nil {
		ex.Tracer.AfterInfer(obj, conv, conv > 0)
	}
	return conv, conv > 0
}
