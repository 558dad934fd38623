// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package geometry

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/paulmach/orb"
)

type topology struct {
	Type      string                   `json:"type"`
	Transform *transform               `json:"transform"`
	Objects   map[string]*topoGeometry `json:"objects"`
	Arcs      [][][]float64            `json:"arcs"`

	arcs [][]orb.Point
}

type transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

type topoGeometry struct {
	Type       string          `json:"type"`
	ID         any             `json:"id"`
	Properties map[string]any  `json:"properties"`
	Arcs       json.RawMessage `json:"arcs"`
	Geometries []*topoGeometry `json:"geometries"`
}

// ReadTopoJSON reads the countries
// from an object of a TopoJSON topology.
//
// If the object is a geometry collection,
// each geometry of the collection is a country.
// Otherwise the whole object is taken as a single country.
// Geometries without area
// (points and lines),
// as well as null geometries,
// are returned as countries with an empty shape.
func ReadTopoJSON(r io.Reader, opts Options) ([]Country, error) {
	var t topology
	d := json.NewDecoder(r)
	d.UseNumber()
	if err := d.Decode(&t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if t.Type != "Topology" {
		return nil, fmt.Errorf("%w: got type %q, want %q", ErrMalformed, t.Type, "Topology")
	}

	name := opts.Object
	if name == "" && len(t.Objects) == 1 {
		for n := range t.Objects {
			name = n
		}
	}
	obj, ok := t.Objects[name]
	if !ok || obj == nil {
		return nil, fmt.Errorf("%w: object %q not found", ErrMalformed, name)
	}

	if err := t.decodeArcs(); err != nil {
		return nil, err
	}

	geoms := []*topoGeometry{obj}
	if obj.Type == "GeometryCollection" {
		geoms = obj.Geometries
	}

	cs := make([]Country, 0, len(geoms))
	for i, g := range geoms {
		if g == nil {
			return nil, fmt.Errorf("%w: object %q: geometry %d: undefined", ErrMalformed, name, i)
		}
		shape, err := t.shape(g)
		if err != nil {
			return nil, fmt.Errorf("object %q: geometry %d: %w", name, i, err)
		}
		c := Country{
			ID:    idString(g.ID),
			Name:  idString(g.Properties["name"]),
			Shape: shape,
		}
		if c.ID == "" && opts.IDProperty != "" {
			c.ID = idString(g.Properties[opts.IDProperty])
		}
		cs = append(cs, c)
	}
	return cs, nil
}

// decodeArcs transforms the arcs
// into absolute coordinates.
// If the topology is quantized,
// the positions are delta-encoded.
func (t *topology) decodeArcs() error {
	t.arcs = make([][]orb.Point, len(t.Arcs))
	for i, arc := range t.Arcs {
		pts := make([]orb.Point, 0, len(arc))
		var x, y float64
		for j, p := range arc {
			if len(p) < 2 {
				return fmt.Errorf("%w: arc %d: position %d: got %d values, want 2", ErrMalformed, i, j, len(p))
			}
			if t.Transform == nil {
				pts = append(pts, orb.Point{p[0], p[1]})
				continue
			}
			x += p[0]
			y += p[1]
			pts = append(pts, orb.Point{
				x*t.Transform.Scale[0] + t.Transform.Translate[0],
				y*t.Transform.Scale[1] + t.Transform.Translate[1],
			})
		}
		t.arcs[i] = pts
	}
	return nil
}

// arc returns the points of an arc.
// A negative index is the one's complement
// of an arc that must be reversed.
func (t *topology) arc(i int) ([]orb.Point, error) {
	j := i
	if i < 0 {
		j = ^i
	}
	if j >= len(t.arcs) {
		return nil, fmt.Errorf("%w: arc %d out of range", ErrMalformed, i)
	}
	pts := slices.Clone(t.arcs[j])
	if i < 0 {
		slices.Reverse(pts)
	}
	return pts, nil
}

func (t *topology) ring(idx []int) (orb.Ring, error) {
	var r orb.Ring
	for _, i := range idx {
		pts, err := t.arc(i)
		if err != nil {
			return nil, err
		}
		// consecutive arcs share the end points
		if len(r) > 0 && len(pts) > 0 {
			pts = pts[1:]
		}
		r = append(r, pts...)
	}
	if len(r) > 0 && r[0] != r[len(r)-1] {
		r = append(r, r[0])
	}
	return r, nil
}

func (t *topology) polygon(rings [][]int) (orb.Polygon, error) {
	p := make(orb.Polygon, 0, len(rings))
	for _, idx := range rings {
		r, err := t.ring(idx)
		if err != nil {
			return nil, err
		}
		p = append(p, r)
	}
	return p, nil
}

func (t *topology) shape(g *topoGeometry) (orb.MultiPolygon, error) {
	switch g.Type {
	case "", "null":
		return nil, nil
	case "Point", "MultiPoint", "LineString", "MultiLineString":
		return nil, nil
	case "Polygon":
		var rings [][]int
		if err := json.Unmarshal(g.Arcs, &rings); err != nil {
			return nil, fmt.Errorf("%w: polygon arcs: %v", ErrMalformed, err)
		}
		p, err := t.polygon(rings)
		if err != nil {
			return nil, err
		}
		return orb.MultiPolygon{p}, nil
	case "MultiPolygon":
		var polys [][][]int
		if err := json.Unmarshal(g.Arcs, &polys); err != nil {
			return nil, fmt.Errorf("%w: multipolygon arcs: %v", ErrMalformed, err)
		}
		mp := make(orb.MultiPolygon, 0, len(polys))
		for _, rings := range polys {
			p, err := t.polygon(rings)
			if err != nil {
				return nil, err
			}
			mp = append(mp, p)
		}
		return mp, nil
	case "GeometryCollection":
		var mp orb.MultiPolygon
		for _, sg := range g.Geometries {
			if sg == nil {
				continue
			}
			p, err := t.shape(sg)
			if err != nil {
				return nil, err
			}
			mp = append(mp, p...)
		}
		return mp, nil
	}
	return nil, fmt.Errorf("%w: unknown geometry type %q", ErrMalformed, g.Type)
}
