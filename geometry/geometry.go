// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package geometry implements reading of country boundaries
// from TopoJSON and GeoJSON files.
package geometry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// ErrMalformed is returned when a geometry payload
// lacks the expected country collection.
var ErrMalformed = errors.New("geometry: malformed payload")

// DefaultObject is the name of the TopoJSON object
// that contains the countries.
const DefaultObject = "world"

// A Country is the boundary of a country.
type Country struct {
	// ID is the identifier of the country,
	// used as the join key.
	ID string

	// Name is the name of the country,
	// if defined in the geometry properties.
	Name string

	// Shape is the boundary of the country,
	// in longitude, latitude degrees.
	// It can be empty.
	Shape orb.MultiPolygon
}

// Contains returns true if a geographic point
// is inside the country boundaries.
func (c Country) Contains(lat, lon float64) bool {
	if len(c.Shape) == 0 {
		return false
	}
	return planar.MultiPolygonContains(c.Shape, orb.Point{lon, lat})
}

// Options are the options used
// to read a geometry payload.
type Options struct {
	// Object is the name of the TopoJSON object
	// with the countries.
	// If empty,
	// and the topology has a single object,
	// that object will be used.
	Object string

	// IDProperty is the name of a property
	// used as the country identifier
	// when the geometry does not have an ID.
	IDProperty string
}

// ReadGeoJSON reads the countries
// from a GeoJSON feature collection.
func ReadGeoJSON(r io.Reader, opts Options) ([]Country, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("%w: got type %q, want %q", ErrMalformed, fc.Type, "FeatureCollection")
	}

	cs := make([]Country, 0, len(fc.Features))
	for i, f := range fc.Features {
		c := Country{
			ID:   idString(f.ID),
			Name: f.Properties.MustString("name", ""),
		}
		if c.ID == "" && opts.IDProperty != "" {
			c.ID = idString(f.Properties[opts.IDProperty])
		}
		if f.Geometry != nil {
			shape, err := polygons(f.Geometry)
			if err != nil {
				return nil, fmt.Errorf("feature %d: %w", i, err)
			}
			c.Shape = shape
		}
		cs = append(cs, c)
	}
	return cs, nil
}

func polygons(g orb.Geometry) (orb.MultiPolygon, error) {
	switch g := g.(type) {
	case orb.Polygon:
		return orb.MultiPolygon{g}, nil
	case orb.MultiPolygon:
		return g, nil
	case orb.Collection:
		var mp orb.MultiPolygon
		for _, sg := range g {
			p, err := polygons(sg)
			if err != nil {
				return nil, err
			}
			mp = append(mp, p...)
		}
		return mp, nil
	case orb.Point, orb.MultiPoint, orb.LineString, orb.MultiLineString, orb.Ring, orb.Bound:
		// no area
		return nil, nil
	}
	return nil, fmt.Errorf("%w: unknown geometry %T", ErrMalformed, g)
}

// idString returns an identifier
// from a decoded JSON value.
func idString(v any) string {
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case int:
		return strconv.Itoa(v)
	}
	return ""
}
