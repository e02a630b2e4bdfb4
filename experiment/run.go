// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package experiment

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/lab/base/mpi"
	"cogentcore.org/lab/base/randx"
	"github.com/emer/gridloc/column"
	"github.com/emer/gridloc/objects"
)

// Run generates the objects and features from Seed1, learns every object
// on a new column, then infers each one with movements and noise drawn
// from Seed2, and returns the histogram of convergence steps.
func Run(pars *Params) (Histogram, error) {
	if err := pars.Validate(); err != nil {
		return nil, err
	}
	objRand := randx.NewSysRand(pars.Seed1)
	names := objects.FeatureNames(pars.NumFeatures)
	objs, err := objects.Generate(pars.NumObjects, pars.FeaturesPerObject, pars.ObjectWidth, names, objRand)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	sdrs, err := objects.GenerateSDRs(names, NumMinicolumns, NumActiveMinicolumns, objRand)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	cl, err := column.New(pars.ColumnParams())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	ex := New(cl, sdrs, pars.Seed1, randx.NewSysRand(pars.Seed2))
	ex.NoiseFactor = pars.NoiseFactor
	ex.ModuleNoiseFactor = pars.ModuleNoiseFactor

	for _, obj := range objs {
		if err := ex.LearnObject(obj); err != nil {
			return nil, err
		}
	}
	if pars.Verbose {
		if !ex.Unique {
			mpi.Printf("Warning: not all learned locations are unique\n")
		}
		mpi.Printf("%s", cl.SizeReport())
	}

	if pars.UseRawTrace {
		tr, err := OpenRawTrace(pars.TraceDir, pars, cl)
		if err != nil {
			return nil, fmt.Errorf("opening raw trace: %w", err)
		}
		defer func() { errors.Log(tr.Close()) }()
		ex.Tracer = tr
	}

	hist := Histogram{}
	for _, obj := range objs {
		step, ok := ex.InferObjectWithRandomMovements(obj, pars.NumSensations)
		if ex.Tracer != nil {
			if err := ex.Tracer.Err(); err != nil {
				return nil, fmt.Errorf("writing raw trace: %w", err)
			}
		}
		hist.Add(step, ok)
		if !ok && pars.Verbose {
			mpi.Printf("Failed to infer object %q\n", obj.Name)
		}
	}
	if pars.Verbose {
		mpi.Printf("%s", hist.String())
	}
	return hist, nil
}
