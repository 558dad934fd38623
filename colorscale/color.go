// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package colorscale

import (
	"fmt"
	"image/color"
	"slices"
	"strconv"
	"strings"

	"github.com/js-arias/blind"
)

var names = map[string]color.RGBA{
	"black": {0, 0, 0, 255},
	"gray":  {128, 128, 128, 255},
	"white": {255, 255, 255, 255},
}

// ParseColor parses a color.
// A color can be defined as a hex value
// ("#a50026" or "#fff"),
// as an RGB value separated by commas
// ("125,132,148"),
// or by the names "black", "gray", or "white".
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := names[s]; ok {
		return c, nil
	}

	if strings.HasPrefix(s, "#") {
		h := s[1:]
		if len(h) == 3 {
			h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
		}
		if len(h) != 6 {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		v, err := strconv.ParseUint(h, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q: %v", s, err)
		}
		return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
	}

	val := strings.Split(s, ",")
	if len(val) != 3 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: found %d values, want 3", s, len(val))
	}
	var rgb [3]uint8
	for i, cv := range val {
		v, err := strconv.Atoi(strings.TrimSpace(cv))
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q: %v", s, err)
		}
		if v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("invalid color %q: invalid value %d", s, v)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}, nil
}

// Hex returns a color as a hex string.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// gradients are the color blind safe schemes
// of Paul Tol
// <https://personal.sron.nl/~pault/>.
var gradients = map[string]func(float64) color.Color{
	"gradient": func(v float64) color.Color {
		return blind.Gradient(v)
	},
	"incandescent": func(v float64) color.Color {
		return blind.Sequential(blind.Incandescent, v)
	},
	"iridescent": func(v float64) color.Color {
		return blind.Sequential(blind.Iridescent, v)
	},
	"rainbow": func(v float64) color.Color {
		return blind.Sequential(blind.RainbowPurpleToRed, v)
	},
}

// Gradients returns the names
// of the available gradients.
func Gradients() []string {
	gs := make([]string, 0, len(gradients))
	for n := range gradients {
		gs = append(gs, n)
	}
	slices.Sort(gs)
	return gs
}

// Gradient returns a palette of n colors
// sampled from a gradient.
func Gradient(name string, n int) ([]color.RGBA, error) {
	g, ok := gradients[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown gradient %q", name)
	}
	if n < 1 {
		return nil, fmt.Errorf("invalid number of colors: %d", n)
	}

	p := make([]color.RGBA, n)
	for i := range p {
		v := (float64(i) + 0.5) / float64(n)
		c := color.RGBAModel.Convert(g(v)).(color.RGBA)
		c.A = 255
		p[i] = c
	}
	return p, nil
}
