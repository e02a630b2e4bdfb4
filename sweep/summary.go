// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"os"

	"github.com/emer/etensor/tensor"
	"github.com/emer/etensor/tensor/table"
)

// SummaryTable returns one row per result with its parameters and
// convergence statistics.
func SummaryTable(rs []Result) *table.Table {
	dt := &table.Table{}
	dt.AddIntColumn("NumObjects")
	dt.AddIntColumn("NumFeatures")
	dt.AddIntColumn("ModuleWidth")
	dt.AddIntColumn("NumModules")
	dt.AddIntColumn("Thresholds")
	dt.AddIntColumn("NumSensations")
	dt.AddStringColumn("Anchoring")
	dt.AddFloat64Column("NoiseFactor")
	dt.AddFloat64Column("ModuleNoise")
	dt.AddIntColumn("Objects")
	dt.AddIntColumn("Failed")
	dt.AddFloat64Column("AvgSteps")
	dt.AddFloat64Column("MaxSteps")
	dt.SetNumRows(len(rs))
	for row, r := range rs {
		pp := &r.Params
		dt.SetFloat("NumObjects", row, float64(pp.NumObjects))
		dt.SetFloat("NumFeatures", row, float64(pp.NumFeatures))
		dt.SetFloat("ModuleWidth", row, float64(pp.LocationModuleWidth))
		dt.SetFloat("NumModules", row, float64(pp.NumModules))
		dt.SetFloat("Thresholds", row, float64(pp.Thresholds))
		dt.SetFloat("NumSensations", row, float64(pp.NumSensations))
		dt.SetString("Anchoring", row, pp.AnchoringMethod.String())
		dt.SetFloat("NoiseFactor", row, float64(pp.NoiseFactor))
		dt.SetFloat("ModuleNoise", row, float64(pp.ModuleNoiseFactor))
		st := r.Convergence.Steps()
		dt.SetFloat("Objects", row, float64(r.Convergence.Total()))
		dt.SetFloat("Failed", row, float64(r.Convergence.Failed()))
		dt.SetFloat("AvgSteps", row, float64(st.Avg))
		dt.SetFloat("MaxSteps", row, float64(st.Max))
	}
	return dt
}

// WriteSummary writes the SummaryTable of the results as tab-separated values.
func WriteSummary(path string, rs []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	dt := SummaryTable(rs)
	if err := dt.WriteCSV(f, tensor.Tab, table.Headers); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
