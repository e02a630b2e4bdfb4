// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assoc

//go:generate core generate

// DecrPolicies determine which synapses are weakened when a cell learns.
type DecrPolicies int32 //enums:enum

const (
	// DecrInactive weakens the learning cell's synapses from inputs
	// that are not currently active.
	DecrInactive DecrPolicies = iota

	// DecrNone never weakens synapses: permanences only grow.
	DecrNone

	// DecrAllOthers weakens the learning cell's inactive synapses, and also
	// the synapses that currently active inputs make onto every other cell,
	// so that each input is claimed by the cells that most recently learned it.
	DecrAllOthers
)

// Params are the learning parameters of a Memory.
type Params struct {

	// permanence of a newly grown synapse
	InitialPermanence float32 `def:"1" min:"0" max:"1"`

	// permanence at or above which a synapse counts as connected
	ConnectedPermanence float32 `def:"0.5" min:"0" max:"1"`

	// amount added to a reinforced synapse's permanence
	PermanenceIncrement float32 `def:"0.1" min:"0"`

	// amount subtracted from a weakened synapse's permanence
	PermanenceDecrement float32 `def:"0" min:"0"`

	// target number of active synapses per learning cell: new synapses are grown to reach it
	SampleSize int `def:"10" min:"1"`

	// maximum number of synapses onto one cell, beyond which the weakest is replaced
	MaxSynapsesPerCell int `def:"255" min:"1"`

	// which synapses are weakened on learning
	Decr DecrPolicies
}

func (pp *Params) Update() {
	pp.InitialPermanence = min(max(pp.InitialPermanence, 0), 1)
	if pp.SampleSize < 1 {
		pp.SampleSize = 1
	}
	if pp.MaxSynapsesPerCell < pp.SampleSize {
		pp.MaxSynapsesPerCell = pp.SampleSize
	}
}

func (pp *Params) Defaults() {
	pp.InitialPermanence = 1
	pp.ConnectedPermanence = 0.5
	pp.PermanenceIncrement = 0.1
	pp.PermanenceDecrement = 0
	pp.SampleSize = 10
	pp.MaxSynapsesPerCell = 255
	pp.Decr = DecrInactive
	pp.Update()
}
