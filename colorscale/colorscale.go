// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package colorscale implements a quantize color scale
// that maps scores to the colors of a fixed palette.
package colorscale

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"slices"
)

// FreedomPalette is the default palette,
// from full freedom of the press
// (dark green)
// to full censorship
// (dark red).
var FreedomPalette = []color.RGBA{
	{0x00, 0x68, 0x37, 0xff},
	{0x1a, 0x98, 0x50, 0xff},
	{0x66, 0xbd, 0x63, 0xff},
	{0xa6, 0xd9, 0x6a, 0xff},
	{0xd9, 0xef, 0x8b, 0xff},
	{0xfe, 0xe0, 0x8b, 0xff},
	{0xfd, 0xae, 0x61, 0xff},
	{0xf4, 0x6d, 0x43, 0xff},
	{0xd7, 0x30, 0x27, 0xff},
	{0xa5, 0x00, 0x26, 0xff},
}

// DefaultColor is the color used for missing scores.
var DefaultColor = color.RGBA{0xff, 0xff, 0xff, 0xff}

// A Scale is a quantize scale:
// a domain is split in equal-width buckets,
// and each bucket is assigned to a color
// of a palette.
type Scale struct {
	palette []color.RGBA
	domain  [2]float64
	def     color.RGBA
}

// New returns a new scale.
//
// The domain goes from lo
// (the first color of the palette)
// to hi
// (the last color of the palette),
// so if lo is greater than hi,
// the palette is used in reverse direction.
func New(palette []color.RGBA, lo, hi float64, def color.RGBA) (*Scale, error) {
	if len(palette) == 0 {
		return nil, errors.New("colorscale: empty palette")
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("colorscale: invalid domain [%v, %v]", lo, hi)
	}
	if lo == hi {
		return nil, fmt.Errorf("colorscale: empty domain [%v, %v]", lo, hi)
	}
	if slices.Contains(palette, def) {
		return nil, fmt.Errorf("colorscale: default color %s is in the palette", Hex(def))
	}
	return &Scale{
		palette: slices.Clone(palette),
		domain:  [2]float64{lo, hi},
		def:     def,
	}, nil
}

// Default returns the default scale:
// the freedom palette over the domain [0, 100]
// with white for missing scores.
func Default() *Scale {
	s, err := New(FreedomPalette, 0, 100, DefaultColor)
	if err != nil {
		panic(err)
	}
	return s
}

// Bucket returns the index of the palette color
// for a given value.
//
// Buckets include its upper bound,
// so in a scale with ten colors over [0, 100],
// the value 10 is in the first bucket,
// and 12 is in the second one.
// Values outside the domain are clamped.
// If the value is not finite,
// it returns -1.
func (s *Scale) Bucket(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return -1
	}
	n := len(s.palette)
	t := (v - s.domain[0]) * float64(n) / (s.domain[1] - s.domain[0])
	i := int(math.Ceil(t)) - 1
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Color returns the color for a value.
// If the value is not finite,
// it returns the default color.
func (s *Scale) Color(v float64) color.RGBA {
	i := s.Bucket(v)
	if i < 0 {
		return s.def
	}
	return s.palette[i]
}

// For returns the color for a value
// when ok is true,
// or the default color otherwise.
// It is a convenience for lookups
// that return a value and a boolean.
func (s *Scale) For(v float64, ok bool) color.RGBA {
	if !ok {
		return s.def
	}
	return s.Color(v)
}

// Default returns the color used for missing values.
func (s *Scale) Default() color.RGBA {
	return s.def
}

// Domain returns the domain of the scale.
func (s *Scale) Domain() (lo, hi float64) {
	return s.domain[0], s.domain[1]
}

// Len returns the number of colors in the palette.
func (s *Scale) Len() int {
	return len(s.palette)
}

// Palette returns the colors of the scale.
func (s *Scale) Palette() []color.RGBA {
	return slices.Clone(s.palette)
}

// Bounds returns the lower and upper values
// of a bucket.
func (s *Scale) Bounds(i int) (lo, hi float64) {
	w := (s.domain[1] - s.domain[0]) / float64(len(s.palette))
	return s.domain[0] + w*float64(i), s.domain[0] + w*float64(i+1)
}
