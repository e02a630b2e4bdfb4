// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package assoc provides Memory, a sparse table of permanence-gated synapses
from a population of input (pre) cells onto a population of output (post)
cells.  Each post cell learns one set of synapses: reinforcing the ones
from active inputs, weakening others per DecrPolicies, and growing new
ones from a list of candidate inputs up to SampleSize active synapses.

The same Memory is used in both directions of the column: location module
cells learning which feature-layer cells anchor them, and feature-layer
cells learning which location cells predict them.
*/
package assoc

import (
	"fmt"
	"slices"

	"cogentcore.org/lab/base/randx"
	"github.com/c2h5oh/datasize"
)

// Synapse is one learned connection, as reported by Memory.Synapses.
type Synapse struct {
	Post int
	Pre  int
	Perm float32
}

// SynapseBytes is the approximate memory per synapse: map key and value
// plus its entries in the two index lists.
const SynapseBytes = 8 + 4 + 4 + 4

// Memory is a sparse association table.  It is not safe for concurrent use.
type Memory struct {
	Params

	// number of post (receiving) cells
	NPost int

	// number of pre (sending) cells
	NPre int

	// permanence by post, pre key
	perms map[uint64]float32

	// pre indexes for each post cell, in growth order
	posts [][]int32

	// post indexes for each pre cell
	pres [][]int32

	// scratch mask of active pre cells
	mask []bool
}

// NewMemory returns an empty memory from nPre inputs onto nPost cells.
func NewMemory(pars Params, nPost, nPre int) *Memory {
	ms := &Memory{Params: pars, NPost: nPost, NPre: nPre}
	ms.Params.Update()
	ms.Reset()
	return ms
}

func key(post, pre int) uint64 {
	return uint64(uint32(post))<<32 | uint64(uint32(pre))
}

// Reset removes all synapses.
func (ms *Memory) Reset() {
	ms.perms = make(map[uint64]float32)
	ms.posts = make([][]int32, ms.NPost)
	ms.pres = make([][]int32, ms.NPre)
	ms.mask = make([]bool, ms.NPre)
}

// NumSynapses returns the total number of synapses.
func (ms *Memory) NumSynapses() int {
	return len(ms.perms)
}

// NumSynapsesOnto returns the number of synapses onto the given post cell.
func (ms *Memory) NumSynapsesOnto(post int) int {
	if post < 0 || post >= ms.NPost {
		return 0
	}
	return len(ms.posts[post])
}

// Clear removes all synapses onto the post cell.
func (ms *Memory) Clear(post int) {
	if post < 0 || post >= ms.NPost {
		return
	}
	for _, pi := range slices.Clone(ms.posts[post]) {
		ms.remove(post, int(pi))
	}
}

// Permanence returns the permanence of the post <- pre synapse,
// and false if there is none.
func (ms *Memory) Permanence(post, pre int) (float32, bool) {
	p, ok := ms.perms[key(post, pre)]
	return p, ok
}

// Learn updates the synapses onto post given the active pre cells:
// synapses from active inputs are reinforced, others weakened per Decr,
// and new synapses are grown from growth candidates (chosen at random
// when there are more than needed) until SampleSize are active.
// A nil rnd takes the first candidates in order.
func (ms *Memory) Learn(post int, active, candidates []int, rnd randx.Rand) {
	if post < 0 || post >= ms.NPost {
		return
	}
	for _, pi := range active {
		if pi >= 0 && pi < ms.NPre {
			ms.mask[pi] = true
		}
	}
	defer func() {
		for _, pi := range active {
			if pi >= 0 && pi < ms.NPre {
				ms.mask[pi] = false
			}
		}
	}()

	nact := 0
	var dead []int32
	for _, pi := range ms.posts[post] {
		k := key(post, int(pi))
		p := ms.perms[k]
		switch {
		case ms.mask[pi]:
			p = min(p+ms.PermanenceIncrement, 1)
			nact++
		case ms.Decr != DecrNone:
			p -= ms.PermanenceDecrement
		}
		if p <= 0 {
			dead = append(dead, pi)
			continue
		}
		ms.perms[k] = p
	}
	for _, pi := range dead {
		ms.remove(post, int(pi))
	}

	if ms.Decr == DecrAllOthers && ms.PermanenceDecrement > 0 {
		for _, pi := range active {
			if pi < 0 || pi >= ms.NPre {
				continue
			}
			for _, po := range slices.Clone(ms.pres[pi]) {
				if int(po) == post {
					continue
				}
				k := key(int(po), pi)
				p := ms.perms[k] - ms.PermanenceDecrement
				if p <= 0 {
					ms.remove(int(po), pi)
					continue
				}
				ms.perms[k] = p
			}
		}
	}
	ms.grow(post, candidates, ms.SampleSize-nact, rnd)
}

// grow adds up to n new synapses onto post from candidates it lacks.
func (ms *Memory) grow(post int, candidates []int, n int, rnd randx.Rand) {
	if n <= 0 {
		return
	}
	fresh := make([]int, 0, len(candidates))
	for _, c := range candidates {
		if c < 0 || c >= ms.NPre {
			continue
		}
		if _, has := ms.perms[key(post, c)]; has {
			continue
		}
		fresh = append(fresh, c)
	}
	slices.Sort(fresh)
	fresh = slices.Compact(fresh)
	if len(fresh) > n {
		if rnd != nil {
			randx.PermuteInts(fresh, rnd)
		}
		fresh = fresh[:n]
		slices.Sort(fresh)
	}
	for _, c := range fresh {
		if len(ms.posts[post]) >= ms.MaxSynapsesPerCell {
			ms.evictWeakest(post)
		}
		ms.perms[key(post, c)] = ms.InitialPermanence
		ms.posts[post] = append(ms.posts[post], int32(c))
		ms.pres[c] = append(ms.pres[c], int32(post))
	}
}

// evictWeakest removes the lowest-permanence synapse onto post,
// the oldest one on ties.
func (ms *Memory) evictWeakest(post int) {
	pl := ms.posts[post]
	if len(pl) == 0 {
		return
	}
	wi := 0
	wp := ms.perms[key(post, int(pl[0]))]
	for i, pi := range pl[1:] {
		if p := ms.perms[key(post, int(pi))]; p < wp {
			wi, wp = i+1, p
		}
	}
	ms.remove(post, int(pl[wi]))
}

func (ms *Memory) remove(post, pre int) {
	delete(ms.perms, key(post, pre))
	if i := slices.Index(ms.posts[post], int32(pre)); i >= 0 {
		ms.posts[post] = slices.Delete(ms.posts[post], i, i+1)
	}
	if i := slices.Index(ms.pres[pre], int32(post)); i >= 0 {
		ms.pres[pre] = slices.Delete(ms.pres[pre], i, i+1)
	}
}

// Overlaps returns, for every post cell with at least one synapse from
// the active (unique) pre cells, the number of such synapses.
// If connectedOnly, only synapses at or above ConnectedPermanence count.
func (ms *Memory) Overlaps(active []int, connectedOnly bool) map[int]int {
	ov := make(map[int]int)
	for _, pi := range active {
		if pi < 0 || pi >= ms.NPre {
			continue
		}
		for _, po := range ms.pres[pi] {
			if connectedOnly && ms.perms[key(int(po), pi)] < ms.ConnectedPermanence {
				continue
			}
			ov[int(po)]++
		}
	}
	return ov
}

// Supported returns the sorted post cells having at least minConnected
// connected synapses from the active pre cells.
func (ms *Memory) Supported(active []int, minConnected int) []int {
	var sup []int
	for po, n := range ms.Overlaps(active, true) {
		if n >= minConnected {
			sup = append(sup, po)
		}
	}
	slices.Sort(sup)
	return sup
}

// CandidatesFor returns the sorted post cells that the given pre cell
// connects to with permanence at or above ConnectedPermanence.
func (ms *Memory) CandidatesFor(pre int) []int {
	if pre < 0 || pre >= ms.NPre {
		return nil
	}
	var cands []int
	for _, po := range ms.pres[pre] {
		if ms.perms[key(int(po), pre)] >= ms.ConnectedPermanence {
			cands = append(cands, int(po))
		}
	}
	slices.Sort(cands)
	return cands
}

// Synapses returns all synapses ordered by post then pre.
func (ms *Memory) Synapses() []Synapse {
	syns := make([]Synapse, 0, len(ms.perms))
	for po, pl := range ms.posts {
		st := len(syns)
		for _, pi := range pl {
			syns = append(syns, Synapse{Post: po, Pre: int(pi), Perm: ms.perms[key(po, int(pi))]})
		}
		slices.SortFunc(syns[st:], func(a, b Synapse) int { return a.Pre - b.Pre })
	}
	return syns
}

// SizeReport returns a one-line report of the number of synapses
// and their memory footprint.
func (ms *Memory) SizeReport(name string) string {
	ns := len(ms.perms)
	return fmt.Sprintf("%14s:\t Recv: %d\t Send: %d\t Syns: %d\t SynMem: %v\n", name, ms.NPost, ms.NPre, ns, (datasize.ByteSize)(ns*SynapseBytes).HumanReadable())
}
