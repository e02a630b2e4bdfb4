// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package experiment

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"github.com/emer/gridloc/column"
	"github.com/emer/gridloc/grid"
)

const (
	// Unbounded is the NumSensations value that walks each object until
	// it converges, for at most MaxTraversals passes over its features.
	Unbounded = -1

	// MaxTraversals is the number of passes over an object's features
	// that an Unbounded walk makes before giving up.
	MaxTraversals = 4

	// NumMinicolumns is the number of feature layer minicolumns.
	NumMinicolumns = 150

	// NumActiveMinicolumns is the number of minicolumns in a feature SDR.
	NumActiveMinicolumns = 10
)

// ErrConfig is returned, wrapped, for unusable experiment parameters.
var ErrConfig = errors.New("invalid experiment parameters")

// Params are the parameters of one experiment: one column learning one
// set of objects and then inferring each of them.  The JSON field names
// are those of the results file.
type Params struct {

	// number of cells along each side of every location module
	LocationModuleWidth int `json:"locationModuleWidth" yaml:"locationModuleWidth"`

	// sub-cell offsets used to seed phases in a cell
	CellCoordinateOffsets []float32 `json:"cellCoordinateOffsets" yaml:"cellCoordinateOffsets,flow"`

	// number of objects learned and inferred
	NumObjects int `json:"numObjects" yaml:"numObjects"`

	// number of features on each object
	FeaturesPerObject int `json:"featuresPerObject" yaml:"featuresPerObject"`

	// number of grid cells along each side of an object
	ObjectWidth int `json:"objectWidth" yaml:"objectWidth"`

	// size of the pool of unique features
	NumFeatures int `json:"numFeatures" yaml:"numFeatures"`

	// write a raw trace of every sensation during inference
	UseRawTrace bool `json:"useRawTrace" yaml:"useRawTrace"`

	// probability that each active minicolumn of a sensed feature is replaced by a random one
	NoiseFactor float32 `json:"noiseFactor" yaml:"noiseFactor"`

	// standard deviation of the gaussian phase noise added to each module's movement
	ModuleNoiseFactor float32 `json:"moduleNoiseFactor" yaml:"moduleNoiseFactor"`

	// number of location modules
	NumModules int `json:"numModules" yaml:"numModules"`

	// number of sensations per object, or Unbounded
	NumSensations int `json:"numSensations" yaml:"numSensations"`

	// number of modules that must agree: -1 = 80% of NumModules+1, 0 = NumModules
	Thresholds int `json:"thresholds" yaml:"thresholds"`

	// seed for object, feature and learning randomness
	Seed1 int64 `json:"seed1" yaml:"seed1"`

	// seed for inference movements and noise
	Seed2 int64 `json:"seed2" yaml:"seed2"`

	// how modules narrow their phases on sensation
	AnchoringMethod grid.AnchoringMethods `json:"anchoringMethod" yaml:"anchoringMethod"`

	// directory for raw traces
	TraceDir string `json:"-" yaml:"-"`

	// print learning warnings and the convergence histogram
	Verbose bool `json:"-" yaml:"-"`
}

func (pp *Params) Defaults() {
	pp.LocationModuleWidth = 10
	pp.CellCoordinateOffsets = grid.Offsets(2)
	pp.NumObjects = 10
	pp.FeaturesPerObject = 10
	pp.ObjectWidth = 4
	pp.NumFeatures = 10
	pp.NumModules = 20
	pp.NumSensations = Unbounded
	pp.Thresholds = -1
	pp.AnchoringMethod = grid.Corners
	pp.TraceDir = "traces"
}

// Validate returns all the problems with the parameters, each wrapping ErrConfig.
func (pp *Params) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrConfig}, args...)...))
	}
	if pp.LocationModuleWidth < 1 {
		bad("locationModuleWidth %d must be >= 1", pp.LocationModuleWidth)
	}
	if len(pp.CellCoordinateOffsets) == 0 {
		bad("no cellCoordinateOffsets")
	}
	for _, off := range pp.CellCoordinateOffsets {
		if off <= 0 || off >= 1 {
			bad("cell coordinate offset %g outside (0,1)", off)
		}
	}
	if pp.NumObjects < 1 {
		bad("numObjects %d must be >= 1", pp.NumObjects)
	}
	if pp.ObjectWidth < 1 {
		bad("objectWidth %d must be >= 1", pp.ObjectWidth)
	}
	if pp.FeaturesPerObject < 1 || pp.FeaturesPerObject > pp.ObjectWidth*pp.ObjectWidth {
		bad("featuresPerObject %d must be in 1..%d for objectWidth %d", pp.FeaturesPerObject, pp.ObjectWidth*pp.ObjectWidth, pp.ObjectWidth)
	}
	if pp.NumFeatures < 1 {
		bad("numFeatures %d must be >= 1", pp.NumFeatures)
	}
	if pp.NoiseFactor < 0 || pp.NoiseFactor > 1 {
		bad("noiseFactor %g outside [0,1]", pp.NoiseFactor)
	}
	if pp.ModuleNoiseFactor < 0 {
		bad("moduleNoiseFactor %g must be >= 0", pp.ModuleNoiseFactor)
	}
	if pp.NumModules < 1 {
		bad("numModules %d must be >= 1", pp.NumModules)
	} else if thr := column.ResolveThresholds(pp.Thresholds, pp.NumModules); thr < 1 || thr > pp.NumModules {
		bad("thresholds %d resolves to %d, outside 1..%d modules", pp.Thresholds, thr, pp.NumModules)
	}
	if pp.NumSensations != Unbounded && pp.NumSensations < 1 {
		bad("numSensations %d must be >= 1 or %d", pp.NumSensations, Unbounded)
	}
	if pp.Seed1 < 0 || pp.Seed2 < 0 {
		bad("seeds %d, %d must be resolved to >= 0", pp.Seed1, pp.Seed2)
	}
	if pp.AnchoringMethod < 0 || pp.AnchoringMethod >= grid.AnchoringMethodsN {
		bad("unknown anchoringMethod %d", pp.AnchoringMethod)
	}
	return errors.Join(errs...)
}

// ColumnParams returns the column parameters for the experiment.
func (pp *Params) ColumnParams() column.Params {
	cp := column.Params{}
	cp.Defaults()
	cp.NumModules = pp.NumModules
	cp.Module.CellsPerAxis = pp.LocationModuleWidth
	cp.Module.CellCoordinateOffsets = pp.CellCoordinateOffsets
	cp.Module.Anchoring = pp.AnchoringMethod
	cp.Features.ColumnCount = NumMinicolumns
	cp.Thresholds = pp.Thresholds
	cp.Update()
	return cp
}

// TraceName returns the raw trace file name for the experiment,
// tagged with the given trace id.
func (pp *Params) TraceName(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	npts := len(pp.CellCoordinateOffsets) * len(pp.CellCoordinateOffsets)
	ncell := pp.LocationModuleWidth * pp.LocationModuleWidth
	return fmt.Sprintf("%d-points-%d-cells-%d-objects-%d-feats-%s.trace", npts, ncell, pp.NumObjects, pp.NumFeatures, id)
}
