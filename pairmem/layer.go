// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package pairmem implements the feature layer of a column: minicolumns of
cells, where the sensed feature activates a set of minicolumns and basal
input from the location modules selects which cells within them fire.

Each cell has up to MaxSegmentsPerCell basal dendrite segments, one per
learned location context.  A cell is predicted when one of its segments
has enough connected synapses from the active location cells.  Predicted cells in active minicolumns become active;
a minicolumn with no predicted cell bursts, activating all its cells.
When learning, one winner cell per active minicolumn learns the current
basal input on one segment, so that the same feature at a different
location is carried by a different cell or segment.
*/
package pairmem

import (
	"slices"

	"cogentcore.org/lab/base/randx"
	"github.com/emer/gridloc/assoc"
)

// Params are the feature layer parameters.
type Params struct {

	// number of minicolumns
	ColumnCount int `def:"150" min:"1"`

	// number of cells in each minicolumn
	CellsPerColumn int `def:"16" min:"1"`

	// maximum number of basal segments per cell, beyond which the oldest is reused
	MaxSegmentsPerCell int `def:"32" min:"1"`

	// connected synapses on one segment needed for its cell to be predicted during inference
	ActivationThreshold int `def:"13" min:"1"`

	// connected synapses on one segment needed for its cell to be predicted while learning
	ReducedBasalThreshold int `def:"13" min:"1"`

	// potential synapses on one segment needed for it to be the matching segment while learning
	MinThreshold int `def:"10" min:"1"`

	// basal segment learning
	Basal assoc.Params `display:"inline"`
}

func (lp *Params) Update() {
	lp.Basal.Update()
}

func (lp *Params) Defaults() {
	lp.ColumnCount = 150
	lp.CellsPerColumn = 16
	lp.MaxSegmentsPerCell = 32
	lp.ActivationThreshold = 13
	lp.ReducedBasalThreshold = 13
	lp.MinThreshold = 10
	lp.Basal.Defaults()
	lp.Basal.SampleSize = 20
	lp.Basal.InitialPermanence = 0.21
	lp.Basal.PermanenceIncrement = 0.1
	lp.Basal.PermanenceDecrement = 0.1
	lp.Update()
}

// Layer is the feature layer.  Cells are indexed column*CellsPerColumn + cell,
// and segments cell*MaxSegmentsPerCell + segment.
type Layer struct {
	Params

	// basal synapses from the location cells onto the layer's segments
	Basal *assoc.Memory

	// number of segments grown on each cell
	nSegs []int

	// next segment to reuse on cells that are full
	nextSeg []int

	activeCells    []int
	winnerCells    []int
	predictedCells []int
}

// New returns a layer receiving basal input from numBasalInputs cells.
func New(pars Params, numBasalInputs int) *Layer {
	ly := &Layer{Params: pars}
	ly.Update()
	ncell := ly.NumCells()
	ly.Basal = assoc.NewMemory(ly.Params.Basal, ncell*ly.MaxSegmentsPerCell, numBasalInputs)
	ly.nSegs = make([]int, ncell)
	ly.nextSeg = make([]int, ncell)
	return ly
}

// NumCells returns the total number of cells.
func (ly *Layer) NumCells() int {
	return ly.ColumnCount * ly.CellsPerColumn
}

// NumSegments returns the number of segments grown on the cell.
func (ly *Layer) NumSegments(cell int) int {
	return ly.nSegs[cell]
}

// Reset clears activity, keeping learned synapses.
func (ly *Layer) Reset() {
	ly.activeCells = ly.activeCells[:0]
	ly.winnerCells = ly.winnerCells[:0]
	ly.predictedCells = ly.predictedCells[:0]
}

// ActiveCells returns the sorted active cells of the last Compute.
func (ly *Layer) ActiveCells() []int { return ly.activeCells }

// WinnerCells returns the sorted learning cells of the last Compute,
// one per active minicolumn.  Empty when not learning.
func (ly *Layer) WinnerCells() []int { return ly.winnerCells }

// PredictedCells returns the sorted cells of active minicolumns that
// were predicted by basal input in the last Compute.
func (ly *Layer) PredictedCells() []int { return ly.predictedCells }

// segOverlap is the best segment overlap of a cell.
type segOverlap struct {
	seg int
	n   int
}

// bestSegments returns the highest-overlap segment of each cell, lowest
// segment index on ties.
func (ly *Layer) bestSegments(ov map[int]int) map[int]segOverlap {
	best := make(map[int]segOverlap, len(ov))
	for seg, n := range ov {
		ci := seg / ly.MaxSegmentsPerCell
		if cur, has := best[ci]; !has || n > cur.n || (n == cur.n && seg < cur.seg) {
			best[ci] = segOverlap{seg: seg, n: n}
		}
	}
	return best
}

// Compute activates the cells of the active minicolumns given the basal
// input.  If learn, each active minicolumn picks a winner cell, one of
// whose segments learns the basal input, growing synapses from the
// growth candidates.
func (ly *Layer) Compute(activeColumns, basalInput, basalGrowthCandidates []int, learn bool, rnd randx.Rand) {
	ly.Reset()
	thr := ly.ActivationThreshold
	if learn {
		thr = ly.ReducedBasalThreshold
	}
	conn := ly.bestSegments(ly.Basal.Overlaps(basalInput, true))
	var pot map[int]segOverlap
	if learn {
		pot = ly.bestSegments(ly.Basal.Overlaps(basalInput, false))
	}
	cols := slices.Clone(activeColumns)
	slices.Sort(cols)
	cols = slices.Compact(cols)
	for _, col := range cols {
		if col < 0 || col >= ly.ColumnCount {
			continue
		}
		st := col * ly.CellsPerColumn
		ed := st + ly.CellsPerColumn
		winner, seg, bestOv := -1, -1, 0
		for ci := st; ci < ed; ci++ {
			if so := conn[ci]; so.n >= thr {
				ly.predictedCells = append(ly.predictedCells, ci)
				ly.activeCells = append(ly.activeCells, ci)
				if so.n > bestOv {
					winner, seg, bestOv = ci, so.seg, so.n
				}
			}
		}
		if winner < 0 {
			for ci := st; ci < ed; ci++ {
				ly.activeCells = append(ly.activeCells, ci)
			}
		}
		if !learn {
			continue
		}
		if winner < 0 {
			winner, seg = ly.matchingSegment(st, ed, pot)
		}
		if winner < 0 {
			winner = ly.leastUsedCell(st, ed, rnd)
			seg = ly.newSegment(winner)
		}
		ly.winnerCells = append(ly.winnerCells, winner)
		ly.Basal.Learn(seg, basalInput, basalGrowthCandidates, rnd)
	}
}

// matchingSegment returns the cell and segment with the most potential
// synapses at or above MinThreshold, or -1, -1.
func (ly *Layer) matchingSegment(st, ed int, pot map[int]segOverlap) (int, int) {
	cell, seg, bestOv := -1, -1, 0
	for ci := st; ci < ed; ci++ {
		if so := pot[ci]; so.n >= ly.MinThreshold && so.n > bestOv {
			cell, seg, bestOv = ci, so.seg, so.n
		}
	}
	return cell, seg
}

// leastUsedCell returns a random cell among those with the fewest segments.
func (ly *Layer) leastUsedCell(st, ed int, rnd randx.Rand) int {
	var cands []int
	fewest := -1
	for ci := st; ci < ed; ci++ {
		n := ly.nSegs[ci]
		switch {
		case fewest < 0 || n < fewest:
			fewest = n
			cands = append(cands[:0], ci)
		case n == fewest:
			cands = append(cands, ci)
		}
	}
	if len(cands) == 1 || rnd == nil {
		return cands[0]
	}
	return cands[rnd.Intn(len(cands))]
}

// newSegment returns a fresh segment on the cell, clearing and reusing
// the oldest one when the cell is full.
func (ly *Layer) newSegment(cell int) int {
	base := cell * ly.MaxSegmentsPerCell
	if ly.nSegs[cell] < ly.MaxSegmentsPerCell {
		ly.nSegs[cell]++
		return base + ly.nSegs[cell] - 1
	}
	seg := base + ly.nextSeg[cell]
	ly.nextSeg[cell] = (ly.nextSeg[cell] + 1) % ly.MaxSegmentsPerCell
	ly.Basal.Clear(seg)
	return seg
}
