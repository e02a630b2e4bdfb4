// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sweep runs an experiment for every combination of a set of
parameter lists, in parallel, and persists the convergence histograms.

Expand turns a Config into the ordered list of experiment units, Runner
runs them on a pool of goroutines (and splits them across MPI processes
when enabled), and Persist writes the results as a JSON list of
[params, histogram] pairs.
*/
package sweep

import (
	"fmt"
	"math"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/lab/base/randx"
	"github.com/emer/gridloc/experiment"
	"github.com/emer/gridloc/grid"
)

// ErrConfig is returned, wrapped, for an unusable sweep configuration.
var ErrConfig = experiment.ErrConfig

// axis is one swept parameter.
type axis struct {
	name string
	n    int
	set  func(pars *experiment.Params, i int)
}

// AnchoringMethods parses the anchoring method names, expanding "both"
// into narrowing and corners.
func AnchoringMethods(names []string) ([]grid.AnchoringMethods, error) {
	var ams []grid.AnchoringMethods
	for _, nm := range names {
		if nm == "both" {
			ams = append(ams, grid.Narrowing, grid.Corners)
			continue
		}
		var am grid.AnchoringMethods
		if err := am.SetString(nm); err != nil {
			return nil, fmt.Errorf("%w: anchoringMethod %q: must be narrowing, corners or both", ErrConfig, nm)
		}
		ams = append(ams, am)
	}
	return ams, nil
}

// Expand returns the experiment units of the sweep: the cartesian product
// of the lists in the order they are declared in SweepConfig, with the
// earliest list varying slowest, and each combination repeated Repeat
// times in a row.  Seeds of -1 are drawn per unit from seeds, or from
// the clock if seeds is nil.
func Expand(cfg *Config, seeds randx.Rand) ([]experiment.Params, error) {
	cfg.Update()
	sc := &cfg.Sweep
	ams, err := AnchoringMethods(sc.AnchoringMethod)
	if err != nil {
		return nil, err
	}
	axes := []axis{
		{"numObjects", len(sc.NumObjects), func(p *experiment.Params, i int) { p.NumObjects = sc.NumObjects[i] }},
		{"numUniqueFeatures", len(sc.NumUniqueFeatures), func(p *experiment.Params, i int) { p.NumFeatures = sc.NumUniqueFeatures[i] }},
		{"locationModuleWidth", len(sc.LocationModuleWidth), func(p *experiment.Params, i int) { p.LocationModuleWidth = sc.LocationModuleWidth[i] }},
		{"coordinateOffsetWidth", len(sc.CoordinateOffsetWidth), func(p *experiment.Params, i int) {
			p.CellCoordinateOffsets = grid.Offsets(sc.CoordinateOffsetWidth[i])
		}},
		{"noiseFactor", len(sc.NoiseFactor), func(p *experiment.Params, i int) { p.NoiseFactor = sc.NoiseFactor[i] }},
		{"moduleNoiseFactor", len(sc.ModuleNoiseFactor), func(p *experiment.Params, i int) { p.ModuleNoiseFactor = sc.ModuleNoiseFactor[i] }},
		{"numModules", len(sc.NumModules), func(p *experiment.Params, i int) { p.NumModules = sc.NumModules[i] }},
		{"numSensations", len(sc.NumSensations), func(p *experiment.Params, i int) { p.NumSensations = sc.NumSensations[i] }},
		{"thresholds", len(sc.Thresholds), func(p *experiment.Params, i int) { p.Thresholds = sc.Thresholds[i] }},
		{"anchoringMethod", len(ams), func(p *experiment.Params, i int) { p.AnchoringMethod = ams[i] }},
	}
	var errs []error
	for _, ax := range axes[:3] {
		if ax.n == 0 {
			errs = append(errs, fmt.Errorf("%w: %s is required", ErrConfig, ax.name))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	base := experiment.Params{}
	base.Defaults()
	base.FeaturesPerObject = cfg.Run.FeaturesPerObject
	base.ObjectWidth = cfg.Run.ObjectWidth
	base.UseRawTrace = cfg.Log.UseRawTrace
	base.TraceDir = cfg.Log.TraceDir
	base.Verbose = cfg.Log.Verbose
	units := []experiment.Params{base}
	for _, ax := range axes {
		next := make([]experiment.Params, 0, len(units)*ax.n)
		for _, u := range units {
			for i := range ax.n {
				v := u
				ax.set(&v, i)
				next = append(next, v)
			}
		}
		units = next
	}

	if cfg.Run.Repeat > 1 {
		reps := make([]experiment.Params, 0, len(units)*cfg.Run.Repeat)
		for _, u := range units {
			for range cfg.Run.Repeat {
				reps = append(reps, u)
			}
		}
		units = reps
	}

	if seeds == nil {
		seeds = randx.NewSysRand(time.Now().UnixNano())
	}
	for i := range units {
		u := &units[i]
		u.Seed1, u.Seed2 = cfg.Run.Seed1, cfg.Run.Seed2
		if u.Seed1 < 0 {
			u.Seed1 = int64(seeds.Intn(math.MaxInt32))
		}
		if u.Seed2 < 0 {
			u.Seed2 = int64(seeds.Intn(math.MaxInt32))
		}
		if err := u.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("unit %d: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return units, nil
}
