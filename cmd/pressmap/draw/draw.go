// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package draw implements a command to draw
// the score maps of a PressMap project.
package draw

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/earth"
	"github.com/js-arias/pressmap/mapimg"
	"github.com/js-arias/pressmap/mapsvg"
	"github.com/js-arias/pressmap/project"
)

var Command = &command.Command{
	Usage: `draw [--year <year>] [--format <format>]
	[-c|--columns <value>] [--equator <value>] [--legend]
	[-o|--output <file-prefix>] <project-file>`,
	Short: "draw the score maps of a project",
	Long: `
Command draw reads a PressMap project and draws a map of the scores of each
year. Countries are colored using the color scale of the project settings;
countries without scores are colored with the color for missing scores.

The argument of the command is the name of the project file.

By default, the maps will be drawn as png images using a plate carrée
projection. Use the flag --format with the value "svg" to draw the maps as
SVG files using a Miller projection.

By default, the image will be 3600 pixels wide; use the flag --columns, or -c,
to define a different number of image columns.

In png images, the countries are rasterized with an equal area pixelation of
360 pixels at the equator. Use the flag --equator to define a different
resolution.

By default, a map will be produced for each year. Use the flag --year to
define a particular year to be drawn.

Use the flag --legend to draw the color scale.

By default, the output files will be prefixed as 'pressmap'. To set a
different prefix name, use the flag --output or -o. The name of the file will
be in the form '<prefix>-<year>.<format>'.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var colsFlag int
var equatorFlag int
var yearFlag string
var formatFlag string
var legendFlag bool
var outPrefix string

func setFlags(c *command.Command) {
	c.Flags().IntVar(&colsFlag, "columns", 3600, "")
	c.Flags().IntVar(&colsFlag, "c", 3600, "")
	c.Flags().IntVar(&equatorFlag, "equator", mapimg.DefaultEquator, "")
	c.Flags().StringVar(&yearFlag, "year", "", "")
	c.Flags().StringVar(&formatFlag, "format", "png", "")
	c.Flags().BoolVar(&legendFlag, "legend", false, "")
	c.Flags().StringVar(&outPrefix, "output", "pressmap", "")
	c.Flags().StringVar(&outPrefix, "o", "pressmap", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	formatFlag = strings.ToLower(formatFlag)
	if formatFlag != "png" && formatFlag != "svg" {
		msg := fmt.Sprintf("flag --format: unknown value %q", formatFlag)
		return c.UsageError(msg)
	}
	if colsFlag <= 0 {
		return c.UsageError("flag --columns: value must be positive")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	m, err := p.Load()
	if err != nil {
		return err
	}

	years := m.Years()
	if yearFlag != "" {
		if !m.Table.Years().Has(yearFlag) {
			return fmt.Errorf("year %q not defined in project %q", yearFlag, args[0])
		}
		years = []string{yearFlag}
	}

	if formatFlag == "svg" {
		for _, y := range years {
			name := fmt.Sprintf("%s-%s.svg", outPrefix, y)
			if err := writeSVG(name, m, y); err != nil {
				return err
			}
		}
		return nil
	}

	if equatorFlag <= 0 {
		return c.UsageError("flag --equator: value must be positive")
	}
	ix := mapimg.NewIndex(earth.NewPixelation(equatorFlag), m.Features, 0)
	for _, y := range years {
		img := &mapimg.Image{
			Cols:     colsFlag,
			Year:     y,
			Features: m.Features,
			Index:    ix,
			Scale:    m.Scale,
			Ocean:    m.Settings.OceanColor(),
			Legend:   legendFlag,
		}
		img.Format()

		name := fmt.Sprintf("%s-%s.png", outPrefix, y)
		if err := writeImage(name, img); err != nil {
			return err
		}
	}
	return nil
}

func writeImage(name string, img image.Image) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("when encoding image file %q: %v", name, err)
	}
	return nil
}

func writeSVG(name string, m *project.Map, year string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	w := bufio.NewWriter(f)
	opts := mapsvg.Options{
		Width:  colsFlag,
		Ocean:  m.Settings.OceanColor(),
		Legend: legendFlag,
	}
	if err := mapsvg.Write(w, m.Features, m.Scale, year, opts); err != nil {
		return fmt.Errorf("when writing SVG file %q: %v", name, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("when writing SVG file %q: %v", name, err)
	}
	return nil
}
