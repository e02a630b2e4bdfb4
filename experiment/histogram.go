// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package experiment

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"cogentcore.org/core/math32/minmax"
)

// NotConverged is the Histogram key counting objects that never converged.
// It is written as "null" in JSON.
const NotConverged = -1

// Histogram counts objects by the sensation at which they converged.
type Histogram map[int]int

// Add counts one object.
func (hs Histogram) Add(step int, converged bool) {
	if !converged {
		step = NotConverged
	}
	hs[step]++
}

// Total returns the number of objects counted.
func (hs Histogram) Total() int {
	n := 0
	for _, c := range hs {
		n += c
	}
	return n
}

// Failed returns the number of objects that did not converge.
func (hs Histogram) Failed() int {
	return hs[NotConverged]
}

// Keys returns the sorted keys, NotConverged first.
func (hs Histogram) Keys() []int {
	ks := make([]int, 0, len(hs))
	for k := range hs {
		ks = append(ks, k)
	}
	slices.Sort(ks)
	return ks
}

// Steps returns the average and maximum convergence step over the
// objects that converged.  Avg and Max are 0 if none did.
func (hs Histogram) Steps() minmax.AvgMax32 {
	am := minmax.AvgMax32{}
	am.Init()
	n := 0
	for _, k := range hs.Keys() {
		if k == NotConverged {
			continue
		}
		for range hs[k] {
			am.UpdateValue(float32(k), int32(k))
			n++
		}
	}
	if n == 0 {
		am.Avg, am.Max = 0, 0
		return am
	}
	am.CalcAvg()
	return am
}

// String returns one "step: count" line per key.
func (hs Histogram) String() string {
	var b strings.Builder
	for _, k := range hs.Keys() {
		ks := "None"
		if k != NotConverged {
			ks = strconv.Itoa(k)
		}
		fmt.Fprintf(&b, "%s: %d\n", ks, hs[k])
	}
	return b.String()
}

func (hs Histogram) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, len(hs))
	for k, n := range hs {
		if k == NotConverged {
			m["null"] = n
		} else {
			m[strconv.Itoa(k)] = n
		}
	}
	return json.Marshal(m)
}

func (hs *Histogram) UnmarshalJSON(b []byte) error {
	var m map[string]int
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*hs = make(Histogram, len(m))
	for ks, n := range m {
		if ks == "null" || ks == "None" {
			(*hs)[NotConverged] += n
			continue
		}
		k, err := strconv.Atoi(ks)
		if err != nil {
			return fmt.Errorf("histogram key %q: %w", ks, err)
		}
		(*hs)[k] += n
	}
	return nil
}
