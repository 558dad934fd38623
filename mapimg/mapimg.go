// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package mapimg implements a map image
// for the scores of a year,
// in a plate carrée (equirectangular) projection.
package mapimg

import (
	"image"
	"image/color"

	"github.com/js-arias/pressmap/colorscale"
	"github.com/js-arias/pressmap/feature"
)

// OceanColor is the default color
// for pixels outside any country.
var OceanColor = color.RGBA{211, 211, 211, 255}

type Image struct {
	// Number of columns in the image
	Cols int

	// Year of the scores
	Year string

	// Features of the map
	Features []feature.Feature

	// Index of pixels to features
	Index *Index

	// Color scale
	Scale *colorscale.Scale

	// Color for pixels outside any country
	Ocean color.Color

	// If legend is true,
	// the color scale will be drawn
	// at the bottom left of the image.
	Legend bool

	step   float64
	colors []color.RGBA
}

// Format prepares the image
// to be drawn.
// It must be called before any call to At.
func (i *Image) Format() {
	if i.Cols%2 != 0 {
		i.Cols++
	}
	i.step = 360 / float64(i.Cols)

	if i.Ocean == nil {
		i.Ocean = OceanColor
	}

	i.colors = make([]color.RGBA, len(i.Features))
	for j, f := range i.Features {
		i.colors[j] = i.Scale.For(f.Score(i.Year))
	}
}

func (i *Image) ColorModel() color.Model { return color.RGBAModel }
func (i *Image) Bounds() image.Rectangle { return image.Rect(0, 0, i.Cols, i.Cols/2) }
func (i *Image) At(x, y int) color.Color {
	if i.Legend {
		if c, ok := i.legend(x, y); ok {
			return c
		}
	}

	lat := 90 - float64(y)*i.step
	lon := float64(x)*i.step - 180

	f := i.Index.At(lat, lon)
	if f < 0 {
		return i.Ocean
	}
	return i.colors[f]
}

// legend returns the color of a pixel
// in the legend box.
// The legend has a box for each color of the palette
// and a box for missing values.
func (i *Image) legend(x, y int) (color.Color, bool) {
	n := i.Scale.Len() + 1
	pad := max(i.Cols/80, 1)
	boxW := max(i.Cols/(4*n), 1)
	boxH := max(i.Cols/80, 2)

	top := i.Cols/2 - pad - boxH
	if y < top || y >= top+boxH {
		return nil, false
	}
	if x < pad || x >= pad+boxW*n {
		return nil, false
	}

	k := (x - pad) / boxW
	if k == n-1 {
		return i.Scale.Default(), true
	}
	return i.Scale.Palette()[k], true
}
