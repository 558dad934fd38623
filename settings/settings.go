// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package settings implements reading and writing
// of the settings used to draw and animate
// a score map.
package settings

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"
	"time"

	"github.com/js-arias/pressmap/colorscale"
	"gopkg.in/yaml.v3"
)

// Default values.
const (
	DefaultInterval = time.Second
	DefaultStart    = "1993"
)

// Settings is a collection of map settings.
type Settings struct {
	name string // file name

	// Palette is the list of colors
	// of the color scale.
	// If empty,
	// the gradient will be used.
	Palette []string `yaml:"palette,omitempty"`

	// Gradient is the name of a color gradient
	// used when no palette is defined.
	Gradient string `yaml:"gradient,omitempty"`

	// Buckets is the number of colors
	// sampled from the gradient.
	Buckets int `yaml:"buckets,omitempty"`

	// Domain of the color scale.
	Domain []float64 `yaml:"domain"`

	// Missing is the color used for missing scores.
	Missing string `yaml:"missing"`

	// Ocean is the background color of the map.
	Ocean string `yaml:"ocean,omitempty"`

	// Interval is the time between two years
	// during an animation.
	Interval time.Duration `yaml:"interval"`

	// Start is the initial year.
	Start string `yaml:"start,omitempty"`

	// Object is the name of the TopoJSON object
	// with the country boundaries.
	Object string `yaml:"object,omitempty"`

	// IDProperty is the geometry property
	// used as a country identifier
	// when a geometry has no ID.
	IDProperty string `yaml:"id-property,omitempty"`
}

// New creates a new collection with default settings.
func New(name string) *Settings {
	pal := make([]string, 0, len(colorscale.FreedomPalette))
	for _, c := range colorscale.FreedomPalette {
		pal = append(pal, colorscale.Hex(c))
	}
	return &Settings{
		name:     name,
		Palette:  pal,
		Domain:   []float64{0, 100},
		Missing:  "white",
		Ocean:    "#d3d3d3",
		Interval: DefaultInterval,
		Start:    DefaultStart,
		Object:   "world",
	}
}

// Read reads a settings file.
//
// A settings file is a YAML file.
// Here is an example file:
//
//	# pressmap settings
//	palette: ["#006837", "#66bd63", "#fee08b", "#f46d43", "#a50026"]
//	domain: [0, 100]
//	missing: white
//	interval: 1s
//	start: "1993"
//
// Undefined values will be set to its defaults.
func Read(name string) (*Settings, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	s.name = name
	return s, nil
}

// Decode decodes the settings from a reader.
func Decode(r io.Reader) (*Settings, error) {
	s := New("")
	def := New("")
	s.Palette = nil

	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(s); err != nil && err != io.EOF {
		return nil, err
	}

	if len(s.Palette) == 0 && s.Gradient == "" {
		s.Palette = def.Palette
	}
	if s.Interval == 0 {
		s.Interval = def.Interval
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that the settings are valid.
func (s *Settings) Validate() error {
	if len(s.Domain) != 2 {
		return fmt.Errorf("domain: got %d values, want 2", len(s.Domain))
	}
	if s.Interval < 0 {
		return fmt.Errorf("interval: invalid value %v", s.Interval)
	}
	if s.Ocean != "" {
		if _, err := colorscale.ParseColor(s.Ocean); err != nil {
			return fmt.Errorf("ocean: %v", err)
		}
	}
	if _, err := s.Scale(); err != nil {
		return err
	}
	return nil
}

// Name returns the file name of the settings.
func (s *Settings) Name() string {
	return s.name
}

// SetName sets the file name of the settings.
func (s *Settings) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	s.name = name
}

// Scale returns the color scale
// defined by the settings.
func (s *Settings) Scale() (*colorscale.Scale, error) {
	var pal []color.RGBA
	if len(s.Palette) > 0 {
		for i, v := range s.Palette {
			c, err := colorscale.ParseColor(v)
			if err != nil {
				return nil, fmt.Errorf("palette: color %d: %v", i, err)
			}
			pal = append(pal, c)
		}
	} else {
		n := s.Buckets
		if n == 0 {
			n = len(colorscale.FreedomPalette)
		}
		var err error
		pal, err = colorscale.Gradient(s.Gradient, n)
		if err != nil {
			return nil, fmt.Errorf("gradient: %v", err)
		}
	}

	def := colorscale.DefaultColor
	if s.Missing != "" {
		var err error
		def, err = colorscale.ParseColor(s.Missing)
		if err != nil {
			return nil, fmt.Errorf("missing: %v", err)
		}
	}
	if len(s.Domain) != 2 {
		return nil, fmt.Errorf("domain: got %d values, want 2", len(s.Domain))
	}
	return colorscale.New(pal, s.Domain[0], s.Domain[1], def)
}

// OceanColor returns the background color of the map.
func (s *Settings) OceanColor() color.RGBA {
	c, err := colorscale.ParseColor(s.Ocean)
	if err != nil {
		return color.RGBA{211, 211, 211, 255}
	}
	return c
}

// Encode writes the settings into a writer.
func (s *Settings) Encode(w io.Writer) error {
	fmt.Fprintf(w, "# pressmap settings\n")
	fmt.Fprintf(w, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	if err := e.Encode(s); err != nil {
		return err
	}
	return e.Close()
}

// Write writes the settings into its file.
func (s *Settings) Write() (err error) {
	f, err := os.Create(s.name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := s.Encode(f); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", s.name, err)
	}
	return nil
}
