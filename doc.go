// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package gridloc is the overall repository for a location-based object
recognition model, in which a set of grid-cell-like location modules
path-integrate movement over an object and, together with a sensory
feature layer, narrow down which learned object is being touched.

This top-level of the repository has no functional code -- everything is
organized into the following sub-packages:

* objects: synthetic objects made of features placed on a grid, and the
random minicolumn SDRs that represent each feature.

* assoc: the permanence-gated sparse synapse table shared by the location
modules (anchoring) and the feature layer (basal location context).

* grid: a single location module: a toroidal sheet of cells tracked as a
cloud of continuous phases, with path integration and anchoring.

* pairmem: the feature layer, minicolumns of cells whose activity is gated
by basal input from the location modules.

* column: a cortical column of N location modules plus a feature layer,
which learns objects and votes on object hypotheses at each sensation.

* experiment: learning and inference trials with random movements, noise,
convergence detection and optional raw traces.

* sweep: the cartesian product of experiment parameters, run in parallel
(goroutines, and across MPI ranks when available), with JSON persistence.

* examples/convergence: the command that runs a configured sweep.
*/
package gridloc
