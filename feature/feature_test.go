// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package feature_test

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/js-arias/pressmap/colorscale"
	"github.com/js-arias/pressmap/feature"
	"github.com/js-arias/pressmap/geometry"
	"github.com/js-arias/pressmap/scores"
	"github.com/js-arias/pressmap/timeline"
	"github.com/paulmach/orb"
)

func TestJoin(t *testing.T) {
	square := orb.MultiPolygon{{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}}}
	countries := []geometry.Country{
		{ID: "USA", Shape: square},
		{ID: "FRA"},
		{ID: "ARG", Name: "Argentine Republic"},
		{ID: "USA"},
	}
	tb, err := scores.Read(strings.NewReader("Country,ISO3166,1993,1994\nArgentina,ARG,32,30\nUnited States,USA,10,12\nChile,CHL,20,\n"), scores.Options{})
	if err != nil {
		t.Fatalf("unable to read scores: %v", err)
	}

	fs := feature.Join(countries, tb)
	if len(fs) != len(countries) {
		t.Fatalf("join: got %d features, want %d", len(fs), len(countries))
	}
	for i, f := range fs {
		if f.ID != countries[i].ID {
			t.Errorf("feature %d: got ID %q, want %q", i, f.ID, countries[i].ID)
		}
		if f.Scores == nil {
			t.Errorf("feature %d: nil scores", i)
		}
	}

	usa := map[string]float64{"1993": 10, "1994": 12}
	if !reflect.DeepEqual(fs[0].Scores, usa) {
		t.Errorf("USA scores: got %v, want %v", fs[0].Scores, usa)
	}
	if !reflect.DeepEqual(fs[3].Scores, usa) {
		t.Errorf("USA (second geometry) scores: got %v, want %v", fs[3].Scores, usa)
	}
	if len(fs[1].Scores) != 0 {
		t.Errorf("FRA scores: got %v, want empty", fs[1].Scores)
	}
	if fs[2].Name != "Argentina" {
		t.Errorf("ARG name: got %q, want %q", fs[2].Name, "Argentina")
	}
	if !fs[0].Contains(5, 5) || fs[1].Contains(5, 5) {
		t.Errorf("contains: unexpected result")
	}

	// features do not share the scores with the table
	fs[0].Scores["1993"] = 99
	if s, _ := tb.Score("USA", "1993"); s != 10 {
		t.Errorf("table modified by a feature: got %.1f, want %.1f", s, 10.0)
	}

	if miss := feature.Missing(fs, tb); !reflect.DeepEqual(miss, []string{"CHL"}) {
		t.Errorf("missing: got %v, want %v", miss, []string{"CHL"})
	}
	if i := feature.Lookup(fs, "ARG"); i != 2 {
		t.Errorf("lookup ARG: got %d, want %d", i, 2)
	}
	if i := feature.Lookup(fs, "CHL"); i != -1 {
		t.Errorf("lookup CHL: got %d, want %d", i, -1)
	}

	empty := feature.Join(countries, nil)
	for i, f := range empty {
		if f.Scores == nil || len(f.Scores) != 0 {
			t.Errorf("join without table: feature %d: got %v", i, f.Scores)
		}
	}
}

func TestScore(t *testing.T) {
	tb, err := scores.FromRows([]map[string]string{
		{"ISO3166": "MEX", "Country": "Mexico", "1993": "48", "1994": "n/a"},
	}, scores.Options{})
	if err != nil {
		t.Fatalf("unable to build table: %v", err)
	}
	fs := feature.Join([]geometry.Country{{ID: "MEX"}}, tb)

	if s, ok := fs[0].Score("1993"); !ok || s != 48 {
		t.Errorf("score 1993: got %.1f (%v), want 48", s, ok)
	}
	if _, ok := fs[0].Score("1994"); ok {
		t.Errorf("score 1994: invalid value accepted")
	}
	if _, ok := fs[0].Score("2000"); ok {
		t.Errorf("score 2000: undefined year accepted")
	}
}

func TestPipeline(t *testing.T) {
	countries := []geometry.Country{{ID: "USA"}, {ID: "FRA"}}
	rows := []map[string]string{
		{"ISO3166": "USA", "Country": "US", "1993": "10", "1994": "12"},
	}
	tb, err := scores.FromRows(rows, scores.Options{})
	if err != nil {
		t.Fatalf("unable to build table: %v", err)
	}
	fs := feature.Join(countries, tb)

	if want := map[string]float64{"1993": 10, "1994": 12}; !reflect.DeepEqual(fs[0].Scores, want) {
		t.Errorf("USA scores: got %v, want %v", fs[0].Scores, want)
	}
	if len(fs[1].Scores) != 0 {
		t.Errorf("FRA scores: got %v, want empty", fs[1].Scores)
	}
	years := tb.Years().Years()
	if want := []string{"1993", "1994"}; !reflect.DeepEqual(years, want) {
		t.Errorf("years: got %v, want %v", years, want)
	}

	sc := colorscale.Default()
	if b := sc.Bucket(10); b != 0 {
		t.Errorf("bucket 10: got %d, want %d", b, 0)
	}

	tl, err := timeline.New(years, timeline.Options{Scheduler: noScheduler{}})
	if err != nil {
		t.Fatalf("unable to create timeline: %v", err)
	}
	defer tl.Close()

	var repaint []string
	tl.Subscribe(func(s timeline.State) {
		for _, f := range fs {
			c := sc.For(f.Score(s.Year))
			repaint = append(repaint, f.ID+" "+colorscale.Hex(c))
		}
	})
	if err := tl.SetYear("1994"); err != nil {
		t.Fatalf("set year: %v", err)
	}
	v, ok := fs[0].Score(tl.State().Year)
	if b := sc.Bucket(v); !ok || b != 1 {
		t.Errorf("bucket USA 1994: got %d (%v), want %d", b, ok, 1)
	}

	want := []string{
		"USA " + colorscale.Hex(colorscale.FreedomPalette[1]),
		"FRA " + colorscale.Hex(colorscale.DefaultColor),
	}
	if !reflect.DeepEqual(repaint, want) {
		t.Errorf("repaint: got %v, want %v", repaint, want)
	}
}

type noScheduler struct{}

func (noScheduler) Every(d time.Duration, f func()) func() {
	return func() {}
}
