// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/pressmap/colorscale"
	"github.com/js-arias/pressmap/feature"
	"github.com/js-arias/pressmap/geometry"
	"github.com/js-arias/pressmap/scores"
	"github.com/js-arias/pressmap/settings"
)

// Settings reads the settings file
// as defined in a project.
// If no settings file is defined,
// it returns the default settings.
func (p *Project) Settings() (*settings.Settings, error) {
	name := p.Path(Settings)
	if name == "" {
		return settings.New(""), nil
	}
	return settings.Read(name)
}

// Geometry reads the country boundaries
// as defined in a project.
//
// Files with the extension ".geojson"
// are read as GeoJSON files,
// any other file is read as a TopoJSON file.
func (p *Project) Geometry(set *settings.Settings) ([]geometry.Country, error) {
	name := p.Path(Geometry)
	if name == "" {
		return nil, fmt.Errorf("geometry not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	opts := geometry.Options{
		Object:     set.Object,
		IDProperty: set.IDProperty,
	}
	var cs []geometry.Country
	if strings.ToLower(filepath.Ext(name)) == ".geojson" {
		cs, err = geometry.ReadGeoJSON(f, opts)
	} else {
		cs, err = geometry.ReadTopoJSON(f, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("on file %q: %w", name, err)
	}
	return cs, nil
}

// Scores reads the score table
// as defined in a project.
//
// Files with the extension ".tab" or ".tsv"
// are read as tab-delimited files,
// any other file is read as a CSV file.
func (p *Project) Scores() (*scores.Table, error) {
	name := p.Path(Scores)
	if name == "" {
		return nil, fmt.Errorf("scores not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var opts scores.Options
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tab", ".tsv":
		opts.Comma = '\t'
	}
	t, err := scores.Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %w", name, err)
	}
	return t, nil
}

// A Map is the data required
// to draw a score map.
type Map struct {
	Features []feature.Feature
	Table    *scores.Table
	Settings *settings.Settings
	Scale    *colorscale.Scale
}

// Years returns the sorted years of the map.
func (m *Map) Years() []string {
	return m.Table.Years().Years()
}

// Load reads all the datasets of a project
// and joins the countries with its scores.
// If any dataset fails,
// no map is returned.
func (p *Project) Load() (*Map, error) {
	set, err := p.Settings()
	if err != nil {
		return nil, err
	}
	sc, err := set.Scale()
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", p.Path(Settings), err)
	}

	cs, err := p.Geometry(set)
	if err != nil {
		return nil, err
	}
	t, err := p.Scores()
	if err != nil {
		return nil, err
	}

	return &Map{
		Features: feature.Join(cs, t),
		Table:    t,
		Settings: set,
		Scale:    sc,
	}, nil
}
