// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package mapimg

import (
	"runtime"
	"sync"

	"github.com/js-arias/earth"
	"github.com/js-arias/pressmap/feature"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// DefaultEquator is the default number of pixels
// in the equatorial ring of the pixelation
// used by an index.
const DefaultEquator = 360

// An Index assigns the pixels
// of an equal-area pixelation
// to the features that contain them.
//
// The index is built once,
// so drawing a year is just a pixel lookup.
type Index struct {
	pix  *earth.Pixelation
	feat []int
}

// NewIndex builds an index for a set of features.
// Use cpu to define the number of process
// used to build the index.
// The default (zero) uses all available CPU.
func NewIndex(pix *earth.Pixelation, fs []feature.Feature, cpu int) *Index {
	if cpu <= 0 {
		cpu = runtime.NumCPU()
	}

	bounds := make([]orb.Bound, len(fs))
	for i, f := range fs {
		if len(f.Shape) == 0 {
			continue
		}
		bounds[i] = f.Shape.Bound()
	}

	ix := &Index{
		pix:  pix,
		feat: make([]int, pix.Len()),
	}

	var wg sync.WaitGroup
	size := pix.Len()/cpu + 1
	for start := 0; start < pix.Len(); start += size {
		end := min(start+size, pix.Len())
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for px := start; px < end; px++ {
				ix.feat[px] = locate(pix.ID(px).Point(), fs, bounds)
			}
		}(start, end)
	}
	wg.Wait()

	return ix
}

func locate(pt earth.Point, fs []feature.Feature, bounds []orb.Bound) int {
	p := orb.Point{pt.Longitude(), pt.Latitude()}
	for i, f := range fs {
		if len(f.Shape) == 0 || !bounds[i].Contains(p) {
			continue
		}
		if planar.MultiPolygonContains(f.Shape, p) {
			return i
		}
	}
	return -1
}

// Pixelation returns the pixelation of the index.
func (ix *Index) Pixelation() *earth.Pixelation {
	return ix.pix
}

// At returns the index of the feature
// at a geographic point.
// If the point is not in any feature,
// it returns -1.
func (ix *Index) At(lat, lon float64) int {
	return ix.feat[ix.pix.Pixel(lat, lon).ID()]
}

// Pixels returns the number of pixels
// assigned to each feature.
func (ix *Index) Pixels(n int) []int {
	c := make([]int, n)
	for _, f := range ix.feat {
		if f < 0 || f >= n {
			continue
		}
		c[f]++
	}
	return c
}
