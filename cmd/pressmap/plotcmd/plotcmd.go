// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package plotcmd implements a command to plot
// the scores of a project over the years.
package plotcmd

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/js-arias/blind"
	"github.com/js-arias/command"
	"github.com/js-arias/pressmap/project"
	"github.com/js-arias/pressmap/scores"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var Command = &command.Command{
	Usage: `plot [--country <id>[,<id>...]]
	[-o|--output <file>] <project-file>`,
	Short: "plot the scores over the years",
	Long: `
Command plot reads the score table of a PressMap project and plots the mean
score of each year as a line chart. The shaded area is the range between the
minimum and the maximum score of each year.

The argument of the command is the name of the project file.

Use the flag --country to add the scores of one or more countries to the
plot. Countries are identified by its ISO 3166 code and separated by commas,
for example "ARG,MEX,USA".

By default, the plot will be saved as 'pressmap-scores.png'. Use the flag
--output, or -o, to define a different file name. The extension of the file
defines the format of the plot (for example, '.svg' or '.pdf').
	`,
	SetFlags: setFlags,
	Run:      run,
}

var countryFlag string
var outFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&countryFlag, "country", "", "")
	c.Flags().StringVar(&outFile, "output", "pressmap-scores.png", "")
	c.Flags().StringVar(&outFile, "o", "pressmap-scores.png", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	t, err := p.Scores()
	if err != nil {
		return err
	}

	var ids []string
	if countryFlag != "" {
		for _, id := range strings.Split(countryFlag, ",") {
			id = strings.ToUpper(strings.TrimSpace(id))
			if id == "" {
				continue
			}
			if !t.Has(id) {
				return fmt.Errorf("country %q not defined in project %q", id, args[0])
			}
			ids = append(ids, id)
		}
	}

	plt, err := scorePlot(t, ids)
	if err != nil {
		return err
	}
	if err := plt.Save(6*vg.Inch, 4*vg.Inch, outFile); err != nil {
		return fmt.Errorf("when saving plot %q: %v", outFile, err)
	}
	return nil
}

// yearRange is a plotter for the range of scores
// of each year.
type yearRange struct {
	min, max plotter.XYs
	color    color.Color
}

// DataRange implements the plot.DataRanger interface.
func (yr *yearRange) DataRange() (xMin, xMax, yMin, yMax float64) {
	xMin, yMin = math.Inf(1), math.Inf(1)
	xMax, yMax = math.Inf(-1), math.Inf(-1)
	for i := range yr.min {
		xMin = math.Min(xMin, yr.min[i].X)
		xMax = math.Max(xMax, yr.min[i].X)
		yMin = math.Min(yMin, yr.min[i].Y)
		yMax = math.Max(yMax, yr.max[i].Y)
	}
	return xMin, xMax, yMin, yMax
}

// Plot implements the plot.Plotter interface.
func (yr *yearRange) Plot(c draw.Canvas, plt *plot.Plot) {
	if len(yr.min) == 0 {
		return
	}
	trX, trY := plt.Transforms(&c)

	pts := make([]vg.Point, 0, 2*len(yr.min)+1)
	for _, p := range yr.max {
		pts = append(pts, vg.Point{X: trX(p.X), Y: trY(p.Y)})
	}
	for i := len(yr.min) - 1; i >= 0; i-- {
		p := yr.min[i]
		pts = append(pts, vg.Point{X: trX(p.X), Y: trY(p.Y)})
	}
	pts = append(pts, pts[0])
	c.FillPolygon(yr.color, c.ClipPolygonXY(pts))
}

func scorePlot(t *scores.Table, ids []string) (*plot.Plot, error) {
	years := t.Years().Years()

	p := plot.New()
	p.Title.Text = "Press freedom scores"
	p.X.Label.Text = "year"
	p.Y.Label.Text = "score"
	p.X.Tick.Marker = yearTicks(years)
	p.Legend.Top = true

	yr := &yearRange{color: color.RGBA{220, 220, 220, 255}}
	var mean plotter.XYs
	for i, y := range years {
		s := t.Summary(y)
		if s.N == 0 {
			continue
		}
		x := float64(i)
		mean = append(mean, plotter.XY{X: x, Y: s.Mean})
		yr.min = append(yr.min, plotter.XY{X: x, Y: s.Min})
		yr.max = append(yr.max, plotter.XY{X: x, Y: s.Max})
	}
	if len(mean) == 0 {
		return nil, fmt.Errorf("no valid scores")
	}
	p.Add(yr)

	ml, err := plotter.NewLine(mean)
	if err != nil {
		return nil, err
	}
	ml.Color = color.Black
	ml.Width = vg.Points(2)
	p.Add(ml)
	p.Legend.Add("mean", ml)

	for i, id := range ids {
		var xys plotter.XYs
		for j, y := range years {
			v, ok := t.Score(id, y)
			if !ok {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(j), Y: v})
		}
		if len(xys) == 0 {
			continue
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		l.Color = blind.Sequential(blind.Iridescent, (float64(i)+0.5)/float64(len(ids)))
		p.Add(l)

		name := id
		if n := t.Name(id); n != "" {
			name = n
		}
		p.Legend.Add(name, l)
	}
	return p, nil
}

// yearTicks returns the ticks of the year axis.
// At most ten years are labeled.
func yearTicks(years []string) plot.ConstantTicks {
	step := max(len(years)/10, 1)
	ticks := make(plot.ConstantTicks, 0, len(years))
	for i, y := range years {
		tk := plot.Tick{Value: float64(i)}
		if i%step == 0 {
			tk.Label = y
		}
		ticks = append(ticks, tk)
	}
	return ticks
}
