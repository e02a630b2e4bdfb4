// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

// SweepConfig has the parameter lists whose cartesian product is run.
// Lists left empty take the value in parentheses.
type SweepConfig struct {

	// numbers of objects to learn (required)
	NumObjects []int

	// sizes of the pool of unique features (required)
	NumUniqueFeatures []int

	// widths of the location modules in cells (required)
	LocationModuleWidth []int

	// numbers of phase offsets along each cell axis (2)
	CoordinateOffsetWidth []int

	// probabilities of replacing each active minicolumn of a sensed feature (0)
	NoiseFactor []float32

	// standard deviations of per-module movement phase noise (0)
	ModuleNoiseFactor []float32

	// numbers of location modules (20)
	NumModules []int

	// sensations per object; -1 walks until convergence (-1)
	NumSensations []int

	// modules that must agree; -1 = 80% of modules+1, 0 = all modules (-1)
	Thresholds []int

	// anchoring methods: narrowing, corners, or both (corners)
	AnchoringMethod []string
}

// Update fills in the lists left empty.
func (sc *SweepConfig) Update() {
	if len(sc.CoordinateOffsetWidth) == 0 {
		sc.CoordinateOffsetWidth = []int{2}
	}
	if len(sc.NoiseFactor) == 0 {
		sc.NoiseFactor = []float32{0}
	}
	if len(sc.ModuleNoiseFactor) == 0 {
		sc.ModuleNoiseFactor = []float32{0}
	}
	if len(sc.NumModules) == 0 {
		sc.NumModules = []int{20}
	}
	if len(sc.NumSensations) == 0 {
		sc.NumSensations = []int{-1}
	}
	if len(sc.Thresholds) == 0 {
		sc.Thresholds = []int{-1}
	}
	if len(sc.AnchoringMethod) == 0 {
		sc.AnchoringMethod = []string{"corners"}
	}
}

// RunConfig has the settings shared by all units of the sweep.
type RunConfig struct {

	// features on each object
	FeaturesPerObject int `default:"10" min:"1"`

	// grid cells along each side of an object
	ObjectWidth int `default:"4" min:"1"`

	// seed for objects and learning; -1 draws a new one per unit
	Seed1 int64 `default:"-1"`

	// seed for inference movements and noise; -1 draws a new one per unit
	Seed2 int64 `default:"-1"`

	// number of times each parameter combination is run
	Repeat int `default:"1" min:"1"`

	// number of parallel workers; 0 uses all CPUs, 1 runs in order on one goroutine
	NumWorkers int `default:"0"`

	// split units across MPI processes: requires building with the mpi tag and running under mpirun
	MPI bool
}

func (rc *RunConfig) Defaults() {
	rc.FeaturesPerObject = 10
	rc.ObjectWidth = 4
	rc.Seed1 = -1
	rc.Seed2 = -1
	rc.Repeat = 1
	rc.NumWorkers = 0
}

// LogConfig has the output settings.
type LogConfig struct {

	// results file, in the working directory
	ResultName string `default:"results.json"`

	// add to the results already in ResultName instead of replacing them
	AppendResults bool

	// write a raw trace of every sensation of every unit
	UseRawTrace bool

	// directory for raw traces
	TraceDir string `default:"traces"`

	// if non-empty, tab-separated summary file with one row per unit
	Summary string

	// print per-unit histograms and failures
	Verbose bool
}

func (lc *LogConfig) Defaults() {
	lc.ResultName = "results.json"
	lc.TraceDir = "traces"
}

// Config is the sweep configuration, loaded by econfig from defaults,
// config.toml and command-line args.
type Config struct {

	// specify include files here, and after configuration,
	// it contains list of include files added.
	Includes []string

	// parameter lists to sweep
	Sweep SweepConfig `display:"add-fields"`

	// run settings
	Run RunConfig `display:"add-fields"`

	// output settings
	Log LogConfig `display:"add-fields"`
}

func (cfg *Config) IncludesPtr() *[]string { return &cfg.Includes }

// Defaults sets the default values given by the struct tags, for
// configs not loaded through econfig.
func (cfg *Config) Defaults() {
	cfg.Run.Defaults()
	cfg.Log.Defaults()
	cfg.Sweep.Update()
}

// Update fills in defaults for anything left unset.
func (cfg *Config) Update() {
	cfg.Sweep.Update()
	if cfg.Run.Repeat < 1 {
		cfg.Run.Repeat = 1
	}
}
