// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package experiment

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/emer/gridloc/column"
	"github.com/emer/gridloc/objects"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Tracer observes inference.  Tracers record their first error and
// report it from Err rather than interrupting the walk.
type Tracer interface {

	// BeforeInfer is called after the column is reset for a new object.
	BeforeInfer(obj *objects.Object)

	// AfterSense is called after each sensation, numbered from 1.
	AfterSense(obj *objects.Object, step, featureIndex int, sn *column.Sensation, cl *column.Column)

	// AfterInfer is called with the outcome of the walk.
	AfterInfer(obj *objects.Object, step int, converged bool)

	// Err returns the first error encountered.
	Err() error
}

// TraceHeader is the first document of a raw trace.
type TraceHeader struct {
	TraceID        string    `yaml:"traceId"`
	Params         *Params   `yaml:"params"`
	NumModules     int       `yaml:"numModules"`
	CellsPerModule int       `yaml:"cellsPerModule"`
	Orientations   []float32 `yaml:"orientations,flow"`
}

// SenseRecord is the raw trace document of one sensation.
type SenseRecord struct {
	Object         string   `yaml:"object"`
	Step           int      `yaml:"step"`
	FeatureIndex   int      `yaml:"featureIndex"`
	Feature        string   `yaml:"feature"`
	ActiveColumns  []int    `yaml:"activeColumns,flow"`
	FeatureCells   []int    `yaml:"featureCells,flow"`
	PredictedCells []int    `yaml:"predictedCells,flow"`
	LocationCells  [][]int  `yaml:"locationCells,flow"`
	Hypotheses     []string `yaml:"hypotheses,flow"`
}

// InferRecord is the raw trace document ending the walk of one object.
// Converged is nil if the object was not inferred.
type InferRecord struct {
	Object    string `yaml:"object"`
	Converged *int   `yaml:"converged"`
}

// RawTrace writes every sensation as a stream of YAML documents.
type RawTrace struct {

	// unique id of this trace
	ID uuid.UUID

	// file path
	Path string

	out io.Closer
	buf *bufio.Writer
	enc *yaml.Encoder
	err error
}

// OpenRawTrace creates the trace file in dir, named by pars.TraceName,
// and writes its header.
func OpenRawTrace(dir string, pars *Params, cl *column.Column) (*RawTrace, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	id := uuid.New()
	path := filepath.Join(dir, pars.TraceName(id.String()))
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	tr := NewRawTrace(f, id, pars, cl)
	tr.Path = path
	if tr.err != nil {
		f.Close()
		return nil, tr.err
	}
	return tr, nil
}

// NewRawTrace returns a trace writing to w, which Close closes, and
// writes its header.  Write errors are reported by Err.
func NewRawTrace(w io.WriteCloser, id uuid.UUID, pars *Params, cl *column.Column) *RawTrace {
	tr := &RawTrace{ID: id, out: w}
	tr.buf = bufio.NewWriter(w)
	tr.enc = yaml.NewEncoder(tr.buf)
	tr.enc.SetIndent(2)
	hdr := &TraceHeader{TraceID: id.String(), Params: pars, NumModules: len(cl.Modules)}
	for _, md := range cl.Modules {
		hdr.CellsPerModule = md.NumberOfCells()
		hdr.Orientations = append(hdr.Orientations, md.Orientation)
	}
	tr.write(hdr)
	return tr
}

func (tr *RawTrace) write(doc any) {
	if tr.err != nil {
		return
	}
	tr.err = tr.enc.Encode(doc)
}

func (tr *RawTrace) BeforeInfer(obj *objects.Object) {}

func (tr *RawTrace) AfterSense(obj *objects.Object, step, featureIndex int, sn *column.Sensation, cl *column.Column) {
	rec := &SenseRecord{
		Object:         obj.Name,
		Step:           step,
		FeatureIndex:   featureIndex,
		Feature:        sn.Feature,
		ActiveColumns:  sn.ActiveColumns,
		FeatureCells:   slices.Clone(cl.Layer.ActiveCells()),
		PredictedCells: slices.Clone(cl.Layer.PredictedCells()),
		Hypotheses:     sn.Hypotheses,
	}
	for _, md := range cl.Modules {
		rec.LocationCells = append(rec.LocationCells, slices.Clone(md.ActiveCells()))
	}
	tr.write(rec)
}

func (tr *RawTrace) AfterInfer(obj *objects.Object, step int, converged bool) {
	rec := &InferRecord{Object: obj.Name}
	if converged {
		rec.Converged = &step
	}
	tr.write(rec)
}

func (tr *RawTrace) Err() error { return tr.err }

// Close flushes and closes the output, returning the first error in
// doing so.  After a write error, already reported by Err, the output
// is closed without flushing.
func (tr *RawTrace) Close() error {
	var err error
	if tr.err == nil {
		err = tr.enc.Close()
		if ferr := tr.buf.Flush(); err == nil {
			err = ferr
		}
	}
	if cerr := tr.out.Close(); err == nil {
		err = cerr
	}
	return err
}
