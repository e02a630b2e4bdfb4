// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package objects

import (
	"fmt"
	"slices"

	"cogentcore.org/lab/base/randx"
)

// SDRs maps feature names to their sorted active minicolumn indexes.
type SDRs map[string][]int

// GenerateSDRs assigns each name a random set of numActive of the
// numColumns minicolumns. Draw order follows names, so a given rnd state
// always yields the same table.
func GenerateSDRs(names []string, numColumns, numActive int, rnd randx.Rand) (SDRs, error) {
	if numActive < 1 || numActive > numColumns {
		return nil, fmt.Errorf("objects: cannot draw %d active of %d minicolumns", numActive, numColumns)
	}
	sd := make(SDRs, len(names))
	cols := make([]int, numColumns)
	for _, nm := range names {
		for i := range cols {
			cols[i] = i
		}
		randx.PermuteInts(cols, rnd)
		act := slices.Clone(cols[:numActive])
		slices.Sort(act)
		sd[nm] = act
	}
	return sd, nil
}

// Overlap returns the number of minicolumns shared by two sorted SDRs.
func Overlap(a, b []int) int {
	n := 0
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			n++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return n
}
