// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"cogentcore.org/core/base/errors"
	"github.com/emer/gridloc/experiment"
)

// Result is one finished unit, written in JSON as [params, histogram].
type Result struct {
	Params      experiment.Params
	Convergence experiment.Histogram
}

func (rs Result) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{rs.Params, rs.Convergence})
}

func (rs *Result) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("result has %d elements, want [params, histogram]", len(pair))
	}
	if err := json.Unmarshal(pair[0], &rs.Params); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &rs.Convergence)
}

// Results pairs units with their histograms.
func Results(units []experiment.Params, hists []experiment.Histogram) []Result {
	rs := make([]Result, len(units))
	for i := range units {
		rs[i] = Result{Params: units[i], Convergence: hists[i]}
	}
	return rs
}

// Load reads a results file.
func Load(path string) ([]Result, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rs []Result
	if err := json.Unmarshal(b, &rs); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// Save writes the results file, replacing any existing one.
func Save(path string, rs []Result) error {
	b, err := json.MarshalIndent(rs, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Persist saves the results, after the ones already in the file if
// appendResults.  A missing file starts an empty list.  It returns
// everything written.
func Persist(path string, rs []Result, appendResults bool) ([]Result, error) {
	if appendResults {
		prev, err := Load(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			rs = append(prev, rs...)
		}
	}
	return rs, Save(path, rs)
}
