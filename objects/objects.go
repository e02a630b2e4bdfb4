// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package objects generates the synthetic objects that the column learns and
infers: each object is a set of features placed in the cells of a square
grid, and each feature name is represented on the feature layer by a fixed
sparse set of active minicolumns (an SDR).
*/
package objects

import (
	"fmt"
	"strconv"

	"cogentcore.org/core/math32"
	"cogentcore.org/lab/base/randx"
)

// FeatureScale is the width and height of one grid cell of an object,
// in world units.
const FeatureScale = 20

// Feature is one sensed patch of an object, occupying a single grid cell.
type Feature struct {

	// top edge, in world units
	Top int `json:"top"`

	// left edge, in world units
	Left int `json:"left"`

	// height in world units
	Height int `json:"height"`

	// width in world units
	Width int `json:"width"`

	// feature identity: features with the same name are sensed identically
	Name string `json:"name"`
}

// Center returns the location sensed when touching the feature,
// with X the horizontal and Y the vertical world coordinate.
func (ft *Feature) Center() math32.Vector2 {
	return math32.Vec2(float32(ft.Left)+float32(ft.Width)/2, float32(ft.Top)+float32(ft.Height)/2)
}

// Object is a named, ordered list of features.
type Object struct {
	Name     string    `json:"name"`
	Features []Feature `json:"features"`
}

// FeatureNames returns the names of a pool of n unique features.
func FeatureNames(n int) []string {
	nms := make([]string, n)
	for i := range nms {
		nms[i] = strconv.Itoa(i)
	}
	return nms
}

// Generate makes numObjects objects named "Object 0" .. "Object N-1".
// Each one places featuresPerObject features, drawn with replacement
// from the names pool, in distinct random cells of an objectWidth x
// objectWidth grid. Features are listed in row-major cell order.
func Generate(numObjects, featuresPerObject, objectWidth int, names []string, rnd randx.Rand) ([]*Object, error) {
	switch {
	case objectWidth < 1:
		return nil, fmt.Errorf("objects: objectWidth %d must be >= 1", objectWidth)
	case featuresPerObject < 1:
		return nil, fmt.Errorf("objects: featuresPerObject %d must be >= 1", featuresPerObject)
	case featuresPerObject > objectWidth*objectWidth:
		return nil, fmt.Errorf("objects: featuresPerObject %d exceeds the %d cells of a %dx%d object", featuresPerObject, objectWidth*objectWidth, objectWidth, objectWidth)
	case len(names) == 0:
		return nil, fmt.Errorf("objects: empty feature pool")
	}
	ncell := objectWidth * objectWidth
	objs := make([]*Object, numObjects)
	cells := make([]int, ncell)
	for oi := range objs {
		for ci := range cells {
			cells[ci] = -1
			if ci < featuresPerObject {
				cells[ci] = rnd.Intn(len(names))
			}
		}
		randx.PermuteInts(cells, rnd)
		obj := &Object{Name: fmt.Sprintf("Object %d", oi)}
		obj.Features = make([]Feature, 0, featuresPerObject)
		for ci, fid := range cells {
			if fid < 0 {
				continue
			}
			y, x := ci/objectWidth, ci%objectWidth
			obj.Features = append(obj.Features, Feature{
				Top:    y * FeatureScale,
				Left:   x * FeatureScale,
				Height: FeatureScale,
				Width:  FeatureScale,
				Name:   names[fid],
			})
		}
		objs[oi] = obj
	}
	return objs, nil
}
