// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

import (
	"fmt"

	"github.com/emer/gridloc/assoc"
	"github.com/emer/gridloc/grid"
	"github.com/emer/gridloc/pairmem"
)

// Params are the parameters of a column.
type Params struct {

	// number of location modules
	NumModules int `def:"20" min:"1"`

	// location module template; Orientation is set per module by Orientations
	Module grid.Params `display:"inline"`

	// anchoring synapses from feature-layer cells onto each module's cells
	Anchor assoc.Params `display:"inline"`

	// connected anchoring synapses from active feature-layer cells needed for a location cell to be supported
	AnchorThreshold int `def:"8" min:"1"`

	// feature layer; its basal thresholds are tied to NumModules and Thresholds by Update
	Features pairmem.Params `display:"inline"`

	// number of modules that must agree on an object for it to be a hypothesis: -1 = 80% of NumModules+1, 0 = NumModules
	Thresholds int `def:"-1"`

	// number of learning repetitions at each feature
	LearnIterations int `def:"10" min:"1"`

	// number of modules that must agree, resolved from Thresholds by Update
	VoteThreshold int `edit:"-" json:"-"`
}

func (cp *Params) Update() {
	cp.VoteThreshold = ResolveThresholds(cp.Thresholds, cp.NumModules)
	cp.Features.ActivationThreshold = cp.VoteThreshold
	cp.Features.ReducedBasalThreshold = cp.VoteThreshold
	cp.Features.MinThreshold = cp.NumModules
	cp.Features.Basal.SampleSize = cp.NumModules
	cp.Module.Update()
	cp.Anchor.Update()
	cp.Features.Update()
}

func (cp *Params) Defaults() {
	cp.NumModules = 20
	cp.Module.Defaults()
	cp.Anchor.Defaults()
	cp.Anchor.SampleSize = 10
	cp.AnchorThreshold = 8
	cp.Features.Defaults()
	cp.Features.CellsPerColumn = 16
	cp.Features.Basal.InitialPermanence = 1
	cp.Thresholds = -1
	cp.LearnIterations = 10
	cp.Update()
}

// Validate returns an error for unusable parameters.  Call Update first.
func (cp *Params) Validate() error {
	if cp.NumModules < 1 {
		return fmt.Errorf("column: NumModules %d must be >= 1", cp.NumModules)
	}
	if cp.VoteThreshold < 1 || cp.VoteThreshold > cp.NumModules {
		return fmt.Errorf("column: Thresholds %d resolves to %d, outside 1..%d modules", cp.Thresholds, cp.VoteThreshold, cp.NumModules)
	}
	if cp.AnchorThreshold < 1 {
		return fmt.Errorf("column: AnchorThreshold %d must be >= 1", cp.AnchorThreshold)
	}
	if cp.LearnIterations < 1 {
		return fmt.Errorf("column: LearnIterations %d must be >= 1", cp.LearnIterations)
	}
	return cp.Module.Validate()
}

// ResolveThresholds returns the number of modules that must agree:
// thresholds < 0 gives 80% of numModules+1, 0 gives numModules.
func ResolveThresholds(thresholds, numModules int) int {
	switch {
	case thresholds < 0:
		return int(float64(numModules+1) * 0.8)
	case thresholds == 0:
		return numModules
	}
	return thresholds
}
