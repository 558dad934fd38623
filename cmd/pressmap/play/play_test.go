// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package play

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/js-arias/earth"
	"github.com/js-arias/pressmap/colorscale"
	"github.com/js-arias/pressmap/feature"
	"github.com/js-arias/pressmap/geometry"
	"github.com/js-arias/pressmap/mapimg"
	"github.com/js-arias/pressmap/project"
	"github.com/js-arias/pressmap/scores"
	"github.com/js-arias/pressmap/settings"
	"github.com/js-arias/pressmap/timeline"
	"github.com/paulmach/orb"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func testMap(t testing.TB) *project.Map {
	t.Helper()

	tb, err := scores.FromRows([]map[string]string{
		{"ISO3166": "USA", "Country": "United States", "1993": "10", "1994": "12", "1995": "15"},
		{"ISO3166": "ARG", "Country": "Argentina", "1993": "32", "1994": "", "1995": "40"},
	}, scores.Options{})
	if err != nil {
		t.Fatalf("unable to build table: %v", err)
	}
	cs := []geometry.Country{
		{ID: "USA", Shape: orb.MultiPolygon{{{{-120, 30}, {-80, 30}, {-80, 45}, {-120, 45}, {-120, 30}}}}},
		{ID: "ARG", Shape: orb.MultiPolygon{{{{-70, -50}, {-55, -50}, {-55, -22}, {-70, -22}, {-70, -50}}}}},
	}
	return &project.Map{
		Features: feature.Join(cs, tb),
		Table:    tb,
		Settings: settings.New(""),
		Scale:    colorscale.Default(),
	}
}

func newTestModel(t testing.TB) model {
	t.Helper()

	m := testMap(t)
	sched := &teaScheduler{}
	tl, err := timeline.New(m.Years(), timeline.Options{
		Start:     "1993",
		Interval:  time.Millisecond,
		Scheduler: sched,
	})
	if err != nil {
		t.Fatalf("unable to create timeline: %v", err)
	}
	t.Cleanup(tl.Close)
	ix := mapimg.NewIndex(earth.NewPixelation(60), m.Features, 1)
	return newModel(tl, sched, m, ix, zap.NewNop())
}

func update(t testing.TB, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()

	nm, cmd := m.Update(msg)
	md, ok := nm.(model)
	if !ok {
		t.Fatalf("update: got model type %T", nm)
	}
	return md, cmd
}

func TestModelPlay(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if s := m.tl.State(); !s.Playing || s.Year != "1993" {
		t.Fatalf("play: got state %+v, want playing at 1993", s)
	}
	if cmd == nil {
		t.Fatalf("play: expecting a tick command")
	}

	gen := m.sched.gen
	m, cmd = update(t, m, tickMsg{gen: gen})
	if s := m.tl.State(); s.Year != "1994" {
		t.Errorf("tick: got year %q, want %q", s.Year, "1994")
	}
	if cmd == nil {
		t.Errorf("tick: expecting the next tick command")
	}

	// pause
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if s := m.tl.State(); s.Playing {
		t.Errorf("pause: got state %+v, want paused", s)
	}
	if cmd != nil {
		t.Errorf("pause: unexpected tick command")
	}

	// a tick from the stopped animation
	m, cmd = update(t, m, tickMsg{gen: gen})
	if s := m.tl.State(); s.Year != "1994" {
		t.Errorf("stale tick: got year %q, want %q", s.Year, "1994")
	}
	if cmd != nil {
		t.Errorf("stale tick: unexpected tick command")
	}

	// a new animation ignores the ticks of the old one
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = update(t, m, tickMsg{gen: gen})
	if s := m.tl.State(); s.Year != "1994" {
		t.Errorf("old tick on new animation: got year %q, want %q", s.Year, "1994")
	}
	m, _ = update(t, m, tickMsg{gen: m.sched.gen})
	if s := m.tl.State(); s.Year != "1995" {
		t.Errorf("tick on new animation: got year %q, want %q", s.Year, "1995")
	}
	m, _ = update(t, m, tickMsg{gen: m.sched.gen})
	if s := m.tl.State(); s.Year != "1993" {
		t.Errorf("wrap: got year %q, want %q", s.Year, "1993")
	}
}

func TestModelKeys(t *testing.T) {
	m := newTestModel(t)

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want string
	}{
		{"right", tea.KeyMsg{Type: tea.KeyRight}, "1994"},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, "1993"},
		{"left wrap", tea.KeyMsg{Type: tea.KeyLeft}, "1995"},
		{"home", tea.KeyMsg{Type: tea.KeyHome}, "1993"},
		{"end", tea.KeyMsg{Type: tea.KeyEnd}, "1995"},
		{"scrub 0", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("0")}, "1993"},
		{"scrub 5", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("5")}, "1994"},
		{"scrub 9", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("9")}, "1995"},
	}
	for _, test := range tests {
		m, _ = update(t, m, test.msg)
		if y := m.tl.State().Year; y != test.want {
			t.Errorf("%s: got year %q, want %q", test.name, y, test.want)
		}
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("quit: expecting a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("quit: expecting quit message")
	}
	if s := m.tl.TogglePlay(); s.Playing {
		t.Errorf("quit: timeline restarted after quit")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})

	v := m.View()
	if !strings.Contains(v, "Press freedom 1993") {
		t.Errorf("view: year title not found:\n%s", v)
	}
	if !strings.Contains(v, "paused") {
		t.Errorf("view: status not found:\n%s", v)
	}
	if !strings.Contains(v, "no data") {
		t.Errorf("view: legend not found:\n%s", v)
	}
}

func TestPlayText(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := testMap(t)
	tl, err := timeline.New(m.Years(), timeline.Options{
		Start:    "1994",
		Interval: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("unable to create timeline: %v", err)
	}

	var buf bytes.Buffer
	if err := playText(&buf, tl, m); err != nil {
		t.Fatalf("play text: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{"1994", "1995", "1993", "1994"}
	if len(lines) != len(want) {
		t.Fatalf("frames: got %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i, ln := range lines {
		if y, _, _ := strings.Cut(ln, "\t"); y != want[i] {
			t.Errorf("frame %d: got year %q, want %q", i, y, want[i])
		}
	}
	if !strings.HasPrefix(lines[0], "1994\tcountries: 1\tno data: 1") {
		t.Errorf("frame 0: got %q", lines[0])
	}
	if s := tl.TogglePlay(); s.Playing {
		t.Errorf("timeline restarted after the animation")
	}
}
