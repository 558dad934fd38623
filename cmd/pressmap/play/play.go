// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package play implements a command to animate
// the score map of a project
// in the terminal.
package play

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/js-arias/command"
	"github.com/js-arias/earth"
	"github.com/js-arias/pressmap/feature"
	"github.com/js-arias/pressmap/mapimg"
	"github.com/js-arias/pressmap/project"
	"github.com/js-arias/pressmap/timeline"
	"go.uber.org/zap"
)

var Command = &command.Command{
	Usage: `play [--text] [--interval <duration>]
	[--verbose] [--log <file>] <project-file>`,
	Short: "animate the score map in the terminal",
	Long: `
Command play reads a project and animates the map of the scores in the
terminal, one year after another.

The argument of the command is the name of the project file.

By default, the command opens an interactive map. Use the space key to start
or stop the animation, the left and right arrows to move to the previous or
next year, and the home and end keys to move to the first or last year. The
digit keys move the timeline to a relative position: 0 is the first year,
and 9 is the last year. Use q to quit.

Use the flag --text to run the animation without the interactive map. In this
mode, the command prints a summary of each year, for a full cycle of the
timeline, and then quits.

By default, the time between two years is taken from the project settings.
Use the flag --interval to define a different time, for example '500ms'.

Use the flag --verbose to log the changes of the timeline. In the interactive
mode the log is written to a file, by default 'play.log'. Use the flag --log
to define a different file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var textFlag bool
var verboseFlag bool
var intervalFlag time.Duration
var logFile string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&textFlag, "text", false, "")
	c.Flags().BoolVar(&verboseFlag, "verbose", false, "")
	c.Flags().DurationVar(&intervalFlag, "interval", 0, "")
	c.Flags().StringVar(&logFile, "log", "play.log", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	m, err := p.Load()
	if err != nil {
		return err
	}

	interval := m.Settings.Interval
	if intervalFlag > 0 {
		interval = intervalFlag
	}

	logger, err := newLogger(textFlag)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if textFlag {
		tl, err := timeline.New(m.Years(), timeline.Options{
			Start:    m.Settings.Start,
			Interval: interval,
		})
		if err != nil {
			return err
		}
		defer tl.Close()
		logState(tl, logger)
		return playText(c.Stdout(), tl, m)
	}

	sched := &teaScheduler{}
	tl, err := timeline.New(m.Years(), timeline.Options{
		Start:     m.Settings.Start,
		Interval:  interval,
		Scheduler: sched,
	})
	if err != nil {
		return err
	}
	defer tl.Close()
	logState(tl, logger)

	ix := mapimg.NewIndex(earth.NewPixelation(mapimg.DefaultEquator), m.Features, 0)
	prog := tea.NewProgram(newModel(tl, sched, m, ix, logger), tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("play: %v", err)
	}
	return nil
}

func newLogger(text bool) (*zap.Logger, error) {
	if !verboseFlag {
		return zap.NewNop(), nil
	}
	config := zap.NewDevelopmentConfig()
	if !text {
		config.OutputPaths = []string{logFile}
		config.ErrorOutputPaths = []string{logFile}
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("unable to initialize logger: %v", err)
	}
	return logger, nil
}

func logState(tl *timeline.Timeline, logger *zap.Logger) {
	tl.Subscribe(func(s timeline.State) {
		logger.Debug("timeline",
			zap.String("year", s.Year),
			zap.Bool("playing", s.Playing),
		)
	})
}

// playText prints a summary of each year
// for a full cycle of the animation.
func playText(w io.Writer, tl *timeline.Timeline, m *project.Map) error {
	done := make(chan struct{})
	frames := make(chan timeline.State, 1)
	unsub := tl.Subscribe(func(s timeline.State) {
		if !s.Playing {
			return
		}
		select {
		case frames <- s:
		case <-done:
		}
	})
	defer unsub()

	years := tl.Years()
	writeFrame(w, tl.State().Year, m)

	tl.TogglePlay()
	// the first frame is the start of the animation
	<-frames
	for i := 0; i < len(years); i++ {
		s := <-frames
		writeFrame(w, s.Year, m)
	}
	close(done)
	tl.Close()
	return nil
}

func writeFrame(w io.Writer, year string, m *project.Map) {
	n := scored(m.Features, year)
	s := m.Table.Summary(year)
	fmt.Fprintf(w, "%s\tcountries: %d\tno data: %d\tmean: %.2f\n", year, n, len(m.Features)-n, s.Mean)
}

// scored returns the features with a valid score
// at a given year.
func scored(fs []feature.Feature, year string) int {
	n := 0
	for _, f := range fs {
		if _, ok := f.Score(year); ok {
			n++
		}
	}
	return n
}
