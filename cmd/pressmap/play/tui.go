// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package play

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/js-arias/pressmap/colorscale"
	"github.com/js-arias/pressmap/mapimg"
	"github.com/js-arias/pressmap/project"
	"github.com/js-arias/pressmap/timeline"
	"go.uber.org/zap"
)

// tickMsg is a tick of an animation.
type tickMsg struct {
	gen int
}

// teaScheduler runs the animation of a timeline
// inside the update loop of a bubbletea program.
// It must be used only from the update loop.
type teaScheduler struct {
	gen int
	d   time.Duration
	f   func()
}

// Every implements timeline.Scheduler.
func (s *teaScheduler) Every(d time.Duration, f func()) func() {
	s.gen++
	s.d = d
	s.f = f

	gen := s.gen
	return func() {
		if s.gen != gen {
			return
		}
		s.gen++
		s.f = nil
	}
}

// next returns the command for the next tick,
// or nil if there is no animation.
func (s *teaScheduler) next() tea.Cmd {
	if s.f == nil {
		return nil
	}
	gen := s.gen
	return tea.Tick(s.d, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// fire runs a tick.
// Ticks from a cancelled animation are ignored.
func (s *teaScheduler) fire(gen int) tea.Cmd {
	if gen != s.gen || s.f == nil {
		return nil
	}
	s.f()
	return s.next()
}

type keyMap struct {
	Play  key.Binding
	Next  key.Binding
	Prev  key.Binding
	First key.Binding
	Last  key.Binding
	Scrub key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Play: key.NewBinding(
		key.WithKeys(" ", "space", "p"),
		key.WithHelp("space", "play/pause"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "next year"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "previous year"),
	),
	First: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("home", "first year"),
	),
	Last: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("end", "last year"),
	),
	Scrub: key.NewBinding(
		key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("0-9", "scrub"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Prev, k.Next, k.Scrub, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Prev, k.Next},
		{k.First, k.Last, k.Scrub, k.Quit},
	}
}

const (
	defaultWidth = 80
	minWidth     = 20
)

var titleStyle = lipgloss.NewStyle().Bold(true)

// model is the interactive map widget.
type model struct {
	tl    *timeline.Timeline
	sched *teaScheduler
	m     *project.Map
	ix    *mapimg.Index
	ocean color.RGBA

	keys  keyMap
	help  help.Model
	bar   progress.Model
	log   *zap.Logger
	width int
}

func newModel(tl *timeline.Timeline, sched *teaScheduler, m *project.Map, ix *mapimg.Index, log *zap.Logger) model {
	return model{
		tl:    tl,
		sched: sched,
		m:     m,
		ix:    ix,
		ocean: m.Settings.OceanColor(),
		keys:  keys,
		help:  help.New(),
		bar:   progress.New(progress.WithSolidFill("#1a9850"), progress.WithoutPercentage()),
		log:   log,
		width: defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, minWidth)
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		return m, m.sched.fire(msg.gen)
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	years := m.tl.Years()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.tl.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Play):
		m.tl.TogglePlay()
		return m, m.sched.next()
	case key.Matches(msg, m.keys.Next):
		m.tl.Step()
	case key.Matches(msg, m.keys.Prev):
		m.tl.Back()
	case key.Matches(msg, m.keys.First):
		m.setYear(years[0])
	case key.Matches(msg, m.keys.Last):
		m.setYear(years[len(years)-1])
	case key.Matches(msg, m.keys.Scrub):
		d, err := strconv.Atoi(msg.String())
		if err != nil {
			return m, nil
		}
		m.tl.Scrub(float64(d) / 9)
	}
	return m, nil
}

func (m model) setYear(y string) {
	if err := m.tl.SetYear(y); err != nil {
		m.log.Warn("set year", zap.String("year", y), zap.Error(err))
	}
}

func (m model) View() string {
	s := m.tl.State()

	var b strings.Builder
	status := "paused"
	if s.Playing {
		status = "playing"
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("Press freedom %s", s.Year)))
	fmt.Fprintf(&b, " [%s]\n", status)

	m.bar.Width = m.width
	b.WriteString(m.bar.ViewAs(m.tl.Position()))
	b.WriteString("\n")

	b.WriteString(m.drawMap(s.Year))
	b.WriteString(legend(m.m.Scale))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// drawMap draws the map of a year
// in a plate carrée projection.
// A terminal cell is about twice as high as wide,
// so the number of rows is a quarter of the columns.
func (m model) drawMap(year string) string {
	cols := m.width
	rows := max(cols/4, 1)
	latStep := 180 / float64(rows)
	lonStep := 360 / float64(cols)

	colors := make([]color.RGBA, len(m.m.Features))
	for i, f := range m.m.Features {
		colors[i] = m.m.Scale.For(f.Score(year))
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		lat := 90 - (float64(r)+0.5)*latStep
		var prev color.RGBA
		run := 0
		for c := 0; c < cols; c++ {
			lon := (float64(c)+0.5)*lonStep - 180
			cl := m.ocean
			if f := m.ix.At(lat, lon); f >= 0 {
				cl = colors[f]
			}
			if run > 0 && cl != prev {
				b.WriteString(cell(prev, run))
				run = 0
			}
			prev = cl
			run++
		}
		b.WriteString(cell(prev, run))
		b.WriteString("\n")
	}
	return b.String()
}

func cell(c color.RGBA, n int) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(colorscale.Hex(c))).
		Render(strings.Repeat(" ", n))
}

func legend(sc *colorscale.Scale) string {
	lo, hi := sc.Domain()
	var b strings.Builder
	fmt.Fprintf(&b, "%g ", lo)
	for _, c := range sc.Palette() {
		b.WriteString(cell(c, 2))
	}
	fmt.Fprintf(&b, " %g  ", hi)
	b.WriteString(cell(sc.Default(), 2))
	b.WriteString(" no data")
	return b.String()
}
