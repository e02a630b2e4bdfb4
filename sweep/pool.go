// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/emer/gridloc/experiment"
)

// Progress reports the number of finished units.
type Progress struct {
	Done  int
	Total int
}

// Runner runs sweep units in parallel.
type Runner struct {

	// number of worker goroutines: 0 uses runtime.NumCPU, 1 runs the units
	// in order on the calling goroutine
	NumWorkers int

	// runs one unit; experiment.Run if nil
	Run func(pars *experiment.Params) (experiment.Histogram, error)

	// if non-nil, receives a Progress after each finished unit; the
	// receiver must keep draining it until RunAll returns
	Progress chan<- Progress
}

func (rn *Runner) run(pars *experiment.Params) (hist experiment.Histogram, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if rn.Run == nil {
		return experiment.Run(pars)
	}
	return rn.Run(pars)
}

// outcome is the result of one unit.
type outcome struct {
	idx  int
	hist experiment.Histogram
	err  error
}

// RunAll runs every unit and returns their histograms in unit order.
// The first unit to fail, by error or panic, cancels the rest and its
// error is returned.
func (rn *Runner) RunAll(ctx context.Context, units []experiment.Params) ([]experiment.Histogram, error) {
	nw := rn.NumWorkers
	if nw <= 0 {
		nw = runtime.NumCPU()
	}
	nw = min(nw, len(units))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hists := make([]experiment.Histogram, len(units))
	if nw <= 1 {
		for i := range units {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			h, err := rn.run(&units[i])
			if err != nil {
				return nil, fmt.Errorf("sweep: unit %d: %w", i, err)
			}
			hists[i] = h
			rn.report(i+1, len(units))
		}
		return hists, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	jobs := make(chan int)
	outs := make(chan outcome)
	var wg sync.WaitGroup
	for range nw {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				h, err := rn.run(&units[idx])
				select {
				case outs <- outcome{idx: idx, hist: h, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		defer close(jobs)
		for idx := range units {
			select {
			case jobs <- idx:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(outs)
	}()

	var firstErr error
	done := 0
	for oc := range outs {
		if oc.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("sweep: unit %d: %w", oc.idx, oc.err)
				cancel()
			}
			continue
		}
		hists[oc.idx] = oc.hist
		done++
		rn.report(done, len(units))
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if done < len(units) {
		return nil, ctx.Err()
	}
	return hists, nil
}

func (rn *Runner) report(done, total int) {
	if rn.Progress != nil {
		rn.Progress <- Progress{Done: done, Total: total}
	}
}
