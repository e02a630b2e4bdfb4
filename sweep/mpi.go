// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"context"
	"fmt"

	"cogentcore.org/lab/base/mpi"
	"github.com/emer/gridloc/experiment"
)

// RankUnits returns the indexes of the units run by the given rank:
// every size'th unit starting at rank.
func RankUnits(n, rank, size int) []int {
	var idxs []int
	for i := rank; i < n; i += size {
		idxs = append(idxs, i)
	}
	return idxs
}

// maxStep is the largest convergence step the unit can report.
func maxStep(pars *experiment.Params) int {
	if pars.NumSensations == experiment.Unbounded {
		return experiment.MaxTraversals * pars.FeaturesPerObject
	}
	return pars.NumSensations
}

// histBins returns the offset of each unit's bins in the reduction
// buffer, and the total number of bins.  Each unit has maxStep+1 bins:
// bin 0 counts NotConverged and bin k counts step k.
func histBins(units []experiment.Params) ([]int, int) {
	offs := make([]int, len(units))
	n := 0
	for i := range units {
		offs[i] = n
		n += maxStep(&units[i]) + 1
	}
	return offs, n
}

// RunDistributed runs this process's share of the units (see RankUnits)
// and sums the histograms of all MPI processes, so every process returns
// the histograms of all units.  With a single process it is RunAll.
func (rn *Runner) RunDistributed(ctx context.Context, units []experiment.Params) ([]experiment.Histogram, error) {
	size, rank := mpi.WorldSize(), mpi.WorldRank()
	if size <= 1 {
		return rn.RunAll(ctx, units)
	}
	idxs := RankUnits(len(units), rank, size)
	mine := make([]experiment.Params, len(idxs))
	for i, ui := range idxs {
		mine[i] = units[ui]
	}
	hists, runErr := rn.RunAll(ctx, mine)

	offs, nbins := histBins(units)
	src := make([]float64, nbins+1)
	if runErr != nil {
		src[nbins] = 1
	} else {
		for i, ui := range idxs {
			for k, n := range hists[i] {
				b := k
				if k == experiment.NotConverged {
					b = 0
				}
				src[offs[ui]+b] += float64(n)
			}
		}
	}
	comm, err := mpi.NewComm(nil)
	if err != nil {
		return nil, err
	}
	dest := make([]float64, len(src))
	if err := comm.AllReduceF64(mpi.OpSum, dest, src); err != nil {
		return nil, err
	}
	if runErr != nil {
		return nil, runErr
	}
	if dest[nbins] > 0 {
		return nil, fmt.Errorf("sweep: %d of %d processes failed", int(dest[nbins]), size)
	}

	all := make([]experiment.Histogram, len(units))
	for ui := range units {
		hs := experiment.Histogram{}
		for b := 0; b <= maxStep(&units[ui]); b++ {
			n := int(dest[offs[ui]+b])
			if n == 0 {
				continue
			}
			k := b
			if b == 0 {
				k = experiment.NotConverged
			}
			hs[k] = n
		}
		all[ui] = hs
	}
	return all, nil
}
