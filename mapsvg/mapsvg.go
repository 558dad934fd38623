// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package mapsvg draws the scores of a year
// as an SVG map in a Miller projection.
package mapsvg

import (
	"fmt"
	"html"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/js-arias/pressmap/colorscale"
	"github.com/js-arias/pressmap/feature"
	"github.com/paulmach/orb"
)

// DefaultWidth is the default width of the map,
// in pixels.
const DefaultWidth = 960

// Options are the drawing options of a map.
type Options struct {
	// Width of the map in pixels.
	// If zero, DefaultWidth will be used.
	Width int

	// Background color.
	// If nil, no background is drawn.
	Ocean color.Color

	// Stroke color of the country borders.
	// If nil, black is used.
	Border color.Color

	// Draw the color legend.
	Legend bool
}

// maxY is the y value at the poles
// in the Miller projection.
var maxY = miller(90)

func miller(lat float64) float64 {
	phi := lat * math.Pi / 180
	return 1.25 * math.Log(math.Tan(math.Pi/4+0.4*phi))
}

type projection struct {
	k    float64
	w, h int
}

func newProjection(width int) projection {
	k := float64(width) / (2 * math.Pi)
	return projection{
		k: k,
		w: width,
		h: int(math.Ceil(2 * maxY * k)),
	}
}

// point projects a point.
// Longitudes outside the map are not clamped,
// so a shifted ring is clipped by the view box.
func (p projection) point(pt orb.Point) (x, y float64) {
	lat := math.Max(-90, math.Min(90, pt[1]))
	x = (pt[0]*math.Pi/180 + math.Pi) * p.k
	y = (maxY - miller(lat)) * p.k
	return x, y
}

// path returns the path of a multipolygon.
// A ring that crosses the antimeridian
// is drawn at both sides of the map.
func (p projection) path(mp orb.MultiPolygon) string {
	var b strings.Builder
	for _, poly := range mp {
		for _, r := range poly {
			if len(r) < 3 {
				continue
			}
			u, lo, hi := unwrap(r)
			p.ring(&b, u, 0)
			if hi > 180 {
				p.ring(&b, u, -360)
			}
			if lo < -180 {
				p.ring(&b, u, 360)
			}
		}
	}
	return b.String()
}

func (p projection) ring(b *strings.Builder, r orb.Ring, shift float64) {
	for i, pt := range r {
		x, y := p.point(orb.Point{pt[0] + shift, pt[1]})
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString("L")
		}
		b.WriteString(strconv.FormatFloat(x, 'f', 2, 64))
		b.WriteString(",")
		b.WriteString(strconv.FormatFloat(y, 'f', 2, 64))
	}
	b.WriteString("Z")
}

// unwrap moves the points of a ring
// so consecutive points are never
// more than 180 degrees of longitude apart.
// It returns the moved ring
// and its longitude range.
// A ring around a pole is returned unchanged.
func unwrap(r orb.Ring) (u orb.Ring, lo, hi float64) {
	u = make(orb.Ring, len(r))
	lo, hi = math.Inf(1), math.Inf(-1)
	shift := 0.0
	for i, pt := range r {
		if i > 0 {
			shift += lonJump(r[i-1][0], pt[0])
		}
		lon := pt[0] + shift
		u[i] = orb.Point{lon, pt[1]}
		lo = math.Min(lo, lon)
		hi = math.Max(hi, lon)
	}
	if shift+lonJump(r[len(r)-1][0], r[0][0]) != 0 {
		return r, -180, 180
	}
	return u, lo, hi
}

// lonJump returns the shift required
// to keep the second longitude
// near the first one.
func lonJump(a, b float64) float64 {
	switch d := b - a; {
	case d > 180:
		return -360
	case d < -180:
		return 360
	}
	return 0
}

// Write writes an SVG map
// with the scores of the given year.
//
// Each country is drawn as a path
// with the class "country"
// and the country ID as its id.
func Write(w io.Writer, fs []feature.Feature, sc *colorscale.Scale, year string, opts Options) error {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	border := color.Color(color.Black)
	if opts.Border != nil {
		border = opts.Border
	}

	p := newProjection(opts.Width)
	ew := &errWriter{w: w}
	s := svg.New(ew)
	s.Start(p.w, p.h)
	s.Title("Press freedom scores: " + year)

	if opts.Ocean != nil {
		s.Rect(0, 0, p.w, p.h, "fill:"+hex(opts.Ocean))
	}

	s.Group("stroke:" + hex(border) + ";stroke-width:0.5;fill-rule:evenodd")
	for _, f := range fs {
		if len(f.Shape) == 0 {
			continue
		}
		c := sc.For(f.Score(year))
		s.Path(p.path(f.Shape),
			`class="country"`,
			`id="`+html.EscapeString(f.ID)+`"`,
			"fill:"+colorscale.Hex(c),
		)
	}
	s.Gend()

	fontSz := max(p.w/60, 8)
	s.Text(p.w-fontSz, fontSz*2, year, fmt.Sprintf("text-anchor:end;font-family:Verdana;font-size:%dpx", fontSz*2), `class="year"`)

	if opts.Legend {
		legend(s, p, sc, fontSz)
	}

	s.End()
	return ew.err
}

// legend draws a box for each color of the scale,
// plus a box for missing values.
func legend(s *svg.SVG, p projection, sc *colorscale.Scale, fontSz int) {
	n := sc.Len() + 1
	pad := max(p.w/80, 2)
	boxW := max(p.w/(4*n), 2)
	boxH := max(p.w/80, 4)
	y := p.h - pad - boxH

	s.Group(`class="legend"`, "stroke:black;stroke-width:0.5")
	for i, c := range sc.Palette() {
		s.Rect(pad+i*boxW, y, boxW, boxH, "fill:"+colorscale.Hex(c))
	}
	s.Rect(pad+(n-1)*boxW, y, boxW, boxH, "fill:"+colorscale.Hex(sc.Default()))

	lo, hi := sc.Domain()
	ts := fmt.Sprintf("stroke-width:0;font-family:Verdana;font-size:%dpx", fontSz)
	s.Text(pad, y-2, strconv.FormatFloat(lo, 'g', -1, 64), ts)
	s.Text(pad+(n-1)*boxW, y-2, strconv.FormatFloat(hi, 'g', -1, 64), ts+";text-anchor:end")
	s.Text(pad+n*boxW+2, y+boxH, "no data", ts)
	s.Gend()
}

func hex(c color.Color) string {
	return colorscale.Hex(color.RGBAModel.Convert(c).(color.RGBA))
}

// errWriter keeps the first error
// produced by the underlying writer.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return len(p), nil
	}
	if _, err := ew.w.Write(p); err != nil {
		ew.err = err
	}
	return len(p), nil
}
