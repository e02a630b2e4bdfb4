// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"cogentcore.org/lab/base/randx"
	"github.com/emer/gridloc/experiment"
	"github.com/emer/gridloc/grid"
)

func testConfig() *Config {
	cfg := &Config{}
	cfg.Defaults()
	cfg.Sweep.NumObjects = []int{10}
	cfg.Sweep.NumUniqueFeatures = []int{5}
	cfg.Sweep.LocationModuleWidth = []int{6}
	return cfg
}

func TestExpandRepeat(t *testing.T) {
	cfg := testConfig()
	cfg.Sweep.NumObjects = []int{10, 20}
	cfg.Run.Repeat = 3
	units, err := Expand(cfg, randx.NewSysRand(1))
	if err != nil {
		t.Fatal(err)
	}
	var nobj []int
	for _, u := range units {
		nobj = append(nobj, u.NumObjects)
		if u.Seed1 < 0 || u.Seed2 < 0 {
			t.Errorf("unresolved seeds %d, %d", u.Seed1, u.Seed2)
		}
	}
	if want := []int{10, 10, 10, 20, 20, 20}; !slices.Equal(nobj, want) {
		t.Errorf("units numObjects = %v, want %v", nobj, want)
	}
	if units[0].Seed1 == units[1].Seed1 {
		t.Error("repeats share a drawn seed")
	}
}

func TestExpandProduct(t *testing.T) {
	cfg := testConfig()
	cfg.Sweep.NumModules = []int{5, 10}
	cfg.Sweep.AnchoringMethod = []string{"both"}
	cfg.Run.Seed1, cfg.Run.Seed2 = 3, 4
	units, err := Expand(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	type combo struct {
		nmod int
		am   grid.AnchoringMethods
	}
	var got []combo
	for _, u := range units {
		got = append(got, combo{u.NumModules, u.AnchoringMethod})
		if u.Seed1 != 3 || u.Seed2 != 4 {
			t.Errorf("fixed seeds changed to %d, %d", u.Seed1, u.Seed2)
		}
	}
	want := []combo{{5, grid.Narrowing}, {5, grid.Corners}, {10, grid.Narrowing}, {10, grid.Corners}}
	if !slices.Equal(got, want) {
		t.Errorf("units = %v, want %v", got, want)
	}
	if u := units[0]; u.FeaturesPerObject != 10 || u.ObjectWidth != 4 || len(u.CellCoordinateOffsets) != 2 {
		t.Errorf("shared settings not applied: %+v", u)
	}
}

func TestExpandErrors(t *testing.T) {
	cfg := &Config{}
	cfg.Defaults()
	if _, err := Expand(cfg, nil); !errors.Is(err, ErrConfig) || !strings.Contains(err.Error(), "numObjects") {
		t.Errorf("missing lists: %v", err)
	}
	cfg = testConfig()
	cfg.Sweep.AnchoringMethod = []string{"diagonal"}
	if _, err := Expand(cfg, nil); !errors.Is(err, ErrConfig) {
		t.Errorf("bad anchoring: %v", err)
	}
	cfg = testConfig()
	cfg.Run.FeaturesPerObject = 20
	if _, err := Expand(cfg, nil); !errors.Is(err, ErrConfig) || !strings.Contains(err.Error(), "unit 0") {
		t.Errorf("invalid unit: %v", err)
	}
}

func fakeUnits(n int) []experiment.Params {
	units := make([]experiment.Params, n)
	for i := range units {
		units[i].Defaults()
		units[i].NumObjects = i + 1
	}
	return units
}

func fakeRun(pars *experiment.Params) (experiment.Histogram, error) {
	return experiment.Histogram{1: pars.NumObjects}, nil
}

func TestRunAllOrder(t *testing.T) {
	for _, nw := range []int{1, 4} {
		prog := make(chan Progress, 20)
		rn := &Runner{NumWorkers: nw, Run: fakeRun, Progress: prog}
		hists, err := rn.RunAll(context.Background(), fakeUnits(20))
		if err != nil {
			t.Fatal(err)
		}
		for i, h := range hists {
			if h[1] != i+1 {
				t.Errorf("workers %d: unit %d got %v", nw, i, h)
			}
		}
		close(prog)
		last := Progress{}
		n := 0
		for p := range prog {
			last = p
			n++
		}
		if n != 20 || last.Done != 20 || last.Total != 20 {
			t.Errorf("workers %d: %d progress reports, last %+v", nw, n, last)
		}
	}
}

func TestRunAllFailure(t *testing.T) {
	boom := errors.New("boom")
	rn := &Runner{NumWorkers: 3, Run: func(pars *experiment.Params) (experiment.Histogram, error) {
		if pars.NumObjects == 5 {
			return nil, boom
		}
		return fakeRun(pars)
	}}
	if _, err := rn.RunAll(context.Background(), fakeUnits(12)); !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
	rn.Run = func(pars *experiment.Params) (experiment.Histogram, error) {
		if pars.NumObjects == 2 {
			panic("bad unit")
		}
		return fakeRun(pars)
	}
	if _, err := rn.RunAll(context.Background(), fakeUnits(6)); err == nil || !strings.Contains(err.Error(), "panic: bad unit") {
		t.Errorf("panic error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := rn.RunAll(ctx, fakeUnits(6)); err == nil {
		t.Error("canceled context did not stop the sweep")
	}
}

func TestRankUnits(t *testing.T) {
	if got := RankUnits(7, 1, 3); !slices.Equal(got, []int{1, 4}) {
		t.Errorf("RankUnits(7,1,3) = %v", got)
	}
	if got := RankUnits(2, 3, 4); len(got) != 0 {
		t.Errorf("RankUnits(2,3,4) = %v", got)
	}
	units := fakeUnits(2)
	units[1].NumSensations = 5
	offs, n := histBins(units)
	if offs[1] != 41 || n != 47 {
		t.Errorf("histBins = %v, %d", offs, n)
	}
	rn := &Runner{NumWorkers: 2, Run: fakeRun}
	hists, err := rn.RunDistributed(context.Background(), fakeUnits(3))
	if err != nil || len(hists) != 3 || hists[2][1] != 3 {
		t.Errorf("single process RunDistributed = %v, %v", hists, err)
	}
}

func TestResultsJSON(t *testing.T) {
	units := fakeUnits(2)
	hists := []experiment.Histogram{{1: 2, experiment.NotConverged: 1}, {3: 2}}
	path := filepath.Join(t.TempDir(), "results.json")
	rs, err := Persist(path, Results(units, hists), false)
	if err != nil || len(rs) != 2 {
		t.Fatalf("Persist = %d results, %v", len(rs), err)
	}
	b, _ := os.ReadFile(path)
	for _, frag := range []string{`"numObjects": 1`, `"anchoringMethod": "corners"`, `"null": 1`, `"numSensations": -1`} {
		if !strings.Contains(string(b), frag) {
			t.Errorf("results file missing %s", frag)
		}
	}
	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if back[0].Params.NumObjects != 1 || back[0].Convergence[experiment.NotConverged] != 1 || back[1].Convergence[3] != 2 {
		t.Errorf("loaded %+v", back)
	}
	if back[1].Params.AnchoringMethod != grid.Corners {
		t.Errorf("anchoring = %v", back[1].Params.AnchoringMethod)
	}

	rs, err = Persist(path, Results(units[:1], hists[:1]), true)
	if err != nil || len(rs) != 3 {
		t.Fatalf("append = %d results, %v", len(rs), err)
	}
	if back, _ = Load(path); len(back) != 3 {
		t.Errorf("file has %d results after append, want 3", len(back))
	}
	fresh := filepath.Join(t.TempDir(), "new.json")
	if rs, err := Persist(fresh, Results(units, hists), true); err != nil || len(rs) != 2 {
		t.Errorf("append to missing file = %d, %v", len(rs), err)
	}
}

func TestSummary(t *testing.T) {
	units := fakeUnits(2)
	hists := []experiment.Histogram{{1: 2, 3: 2}, {experiment.NotConverged: 2}}
	rs := Results(units, hists)
	dt := SummaryTable(rs)
	if dt.NumRows() != 2 {
		t.Fatalf("summary rows = %d", dt.NumRows())
	}
	if v := dt.Float("AvgSteps", 0); v != 2 {
		t.Errorf("AvgSteps = %g, want 2", v)
	}
	if v := dt.Float("Failed", 1); v != 2 {
		t.Errorf("Failed = %g, want 2", v)
	}
	path := filepath.Join(t.TempDir(), "summary.tsv")
	if err := WriteSummary(path, rs); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(path)
	if !strings.Contains(string(b), "NumObjects") || !strings.Contains(string(b), "corners") {
		t.Errorf("summary file:\n%s", b)
	}
}

func TestSweepRuns(t *testing.T) {
	cfg := testConfig()
	cfg.Sweep.NumObjects = []int{3}
	cfg.Sweep.NumModules = []int{6}
	cfg.Sweep.NumSensations = []int{4}
	cfg.Run.FeaturesPerObject = 3
	cfg.Run.ObjectWidth = 2
	cfg.Run.Repeat = 2
	units, err := Expand(cfg, randx.NewSysRand(9))
	if err != nil {
		t.Fatal(err)
	}
	rn := &Runner{NumWorkers: 2}
	hists, err := rn.RunAll(context.Background(), units)
	if err != nil {
		t.Fatal(err)
	}
	for i, h := range hists {
		if h.Total() != 3 {
			t.Errorf("unit %d counted %d objects, want 3", i, h.Total())
		}
	}
}
