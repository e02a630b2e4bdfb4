// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assoc

import (
	"slices"
	"strings"
	"testing"

	"cogentcore.org/lab/base/randx"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

func testParams() Params {
	pp := Params{}
	pp.Defaults()
	pp.SampleSize = 4
	return pp
}

func TestLearnSupported(t *testing.T) {
	ms := NewMemory(testParams(), 10, 20)
	act := []int{2, 5, 7, 11}
	ms.Learn(3, act, act, randx.NewSysRand(1))
	if ms.NumSynapses() != 4 {
		t.Fatalf("NumSynapses = %d, want 4", ms.NumSynapses())
	}
	sup := ms.Supported(act, 4)
	if !slices.Equal(sup, []int{3}) {
		t.Errorf("Supported = %v, want [3]", sup)
	}
	if sup := ms.Supported(act[:3], 4); len(sup) != 0 {
		t.Errorf("partial input supported %v", sup)
	}
	if sup := ms.Supported(act[:3], 3); !slices.Equal(sup, []int{3}) {
		t.Errorf("Supported at 3 = %v, want [3]", sup)
	}
	for _, pi := range act {
		if !slices.Equal(ms.CandidatesFor(pi), []int{3}) {
			t.Errorf("CandidatesFor(%d) = %v", pi, ms.CandidatesFor(pi))
		}
	}
}

func TestSampleSize(t *testing.T) {
	ms := NewMemory(testParams(), 4, 20)
	cands := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	ms.Learn(0, nil, cands, randx.NewSysRand(2))
	if n := ms.NumSynapsesOnto(0); n != 4 {
		t.Errorf("grew %d synapses, want SampleSize 4", n)
	}
	ms.Learn(1, nil, cands, nil)
	syns := ms.Synapses()
	var pres []int
	for _, sy := range syns {
		if sy.Post == 1 {
			pres = append(pres, sy.Pre)
		}
	}
	if !slices.Equal(pres, []int{0, 1, 2, 3}) {
		t.Errorf("nil rnd grew %v, want first candidates", pres)
	}
}

func TestLearnIdempotent(t *testing.T) {
	ms := NewMemory(testParams(), 5, 10)
	act := []int{1, 3, 5, 7}
	ms.Learn(2, act, act, randx.NewSysRand(3))
	before := ms.Synapses()
	for range 5 {
		ms.Learn(2, act, act, randx.NewSysRand(4))
	}
	if !slices.Equal(before, ms.Synapses()) {
		t.Errorf("relearning the same input changed synapses:\n%v\n%v", before, ms.Synapses())
	}
}

func TestDecrInactive(t *testing.T) {
	pp := testParams()
	pp.InitialPermanence = 0.75
	pp.PermanenceDecrement = 0.25
	ms := NewMemory(pp, 2, 10)
	a := []int{0, 1, 2, 3}
	ms.Learn(0, a, a, nil)
	b := []int{0, 1, 4, 5}
	ms.Learn(0, b, nil, nil)
	p, ok := ms.Permanence(0, 2)
	if !ok || p-0.5 > difTol || 0.5-p > difTol {
		t.Errorf("inactive perm = %g, want 0.5", p)
	}
	p, _ = ms.Permanence(0, 0)
	if p-0.85 > difTol || 0.85-p > difTol {
		t.Errorf("active perm = %g, want 0.85", p)
	}
	if sup := ms.Supported(a, 4); len(sup) != 1 {
		t.Errorf("still connected at 0.5: %v", sup)
	}
	ms.Learn(0, b, nil, nil)
	if sup := ms.Supported(a, 4); len(sup) != 0 {
		t.Errorf("weakened synapses still connected: %v", sup)
	}

	pp.Decr = DecrNone
	ms = NewMemory(pp, 2, 10)
	ms.Learn(0, a, a, nil)
	ms.Learn(0, b, nil, nil)
	p, _ = ms.Permanence(0, 2)
	if p-0.75 > difTol || 0.75-p > difTol {
		t.Errorf("DecrNone perm = %g, want 0.75", p)
	}
}

func TestDecrAllOthers(t *testing.T) {
	pp := testParams()
	pp.InitialPermanence = 0.5
	pp.PermanenceDecrement = 0.5
	pp.Decr = DecrAllOthers
	ms := NewMemory(pp, 3, 10)
	a := []int{0, 1, 2, 3}
	ms.Learn(0, a, a, nil)
	ms.Learn(1, a, a, nil)
	if n := ms.NumSynapsesOnto(0); n != 0 {
		t.Errorf("cell 0 kept %d synapses after cell 1 claimed its inputs", n)
	}
	if n := ms.NumSynapsesOnto(1); n != 4 {
		t.Errorf("cell 1 has %d synapses, want 4", n)
	}
}

func TestMaxSynapses(t *testing.T) {
	pp := testParams()
	pp.SampleSize = 3
	pp.MaxSynapsesPerCell = 3
	pp.PermanenceDecrement = 0.1
	ms := NewMemory(pp, 1, 10)
	ms.Learn(0, nil, []int{0, 1, 2}, nil)
	ms.Learn(0, []int{1, 2}, []int{5}, nil)
	if n := ms.NumSynapsesOnto(0); n != 3 {
		t.Fatalf("%d synapses, want cap of 3", n)
	}
	if _, ok := ms.Permanence(0, 0); ok {
		t.Error("weakest synapse 0 was not evicted")
	}
	if _, ok := ms.Permanence(0, 5); !ok {
		t.Error("new synapse 5 missing")
	}
}

func TestSizeReport(t *testing.T) {
	ms := NewMemory(testParams(), 4, 4)
	ms.Learn(0, nil, []int{0, 1}, nil)
	rep := ms.SizeReport("test")
	if !strings.Contains(rep, "Syns: 2") {
		t.Errorf("report missing synapse count: %q", rep)
	}
}
