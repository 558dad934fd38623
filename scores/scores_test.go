// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package scores_test

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/pressmap/scores"
)

const freedomCSV = `Country,ISO3166,1993,1994,1995
Argentina,ARG,32,30,29
France,FRA,18,19,
Mexico,MEX,48,n/a,51
Argentina (dup),ARG,1,1,1
No code,,10,10,10
`

func TestRead(t *testing.T) {
	tb, err := scores.Read(strings.NewReader(freedomCSV), scores.Options{})
	if err != nil {
		t.Fatalf("unable to read data: %v", err)
	}

	ids := []string{"ARG", "FRA", "MEX"}
	if got := tb.IDs(); !reflect.DeepEqual(got, ids) {
		t.Errorf("ids: got %v, want %v", got, ids)
	}
	years := []string{"1993", "1994", "1995"}
	if got := tb.Years().Years(); !reflect.DeepEqual(got, years) {
		t.Errorf("years: got %v, want %v", got, years)
	}
	if n := tb.Name("ARG"); n != "Argentina" {
		t.Errorf("name: got %q, want %q", n, "Argentina")
	}

	tests := []struct {
		id, year string
		score    float64
		ok       bool
	}{
		{"ARG", "1993", 32, true},
		{"ARG", "1995", 29, true},
		{"FRA", "1995", 0, false},
		{"MEX", "1994", 0, false},
		{"MEX", "1995", 51, true},
		{"USA", "1993", 0, false},
		{"ARG", "2020", 0, false},
	}
	for _, test := range tests {
		s, ok := tb.Score(test.id, test.year)
		if ok != test.ok || s != test.score {
			t.Errorf("score %s %s: got %.1f (%v), want %.1f (%v)", test.id, test.year, s, ok, test.score, test.ok)
		}
	}

	mex := tb.Scores("MEX")
	if !math.IsNaN(mex["1994"]) {
		t.Errorf("scores MEX 1994: got %.1f, want NaN", mex["1994"])
	}
	if tb.Scores("USA") != nil {
		t.Errorf("scores USA: got %v, want nil", tb.Scores("USA"))
	}
}

func TestReadRagged(t *testing.T) {
	in := "Country,ISO3166,1993,1994\nArgentina,ARG,32,30\nChile,CHL,20\nShort\nUruguay,URY,,15\n"
	tb, err := scores.Read(strings.NewReader(in), scores.Options{})
	if err != nil {
		t.Fatalf("unable to read data: %v", err)
	}

	ids := []string{"ARG", "CHL", "URY"}
	if got := tb.IDs(); !reflect.DeepEqual(got, ids) {
		t.Errorf("ids: got %v, want %v", got, ids)
	}

	tests := []struct {
		id, year string
		score    float64
		ok       bool
	}{
		{"ARG", "1994", 30, true},
		{"CHL", "1993", 20, true},
		{"CHL", "1994", 0, false},
		{"URY", "1993", 0, false},
		{"URY", "1994", 15, true},
	}
	for _, test := range tests {
		s, ok := tb.Score(test.id, test.year)
		if ok != test.ok || s != test.score {
			t.Errorf("score %s %s: got %.1f (%v), want %.1f (%v)", test.id, test.year, s, ok, test.score, test.ok)
		}
	}

	// an empty cell is a missing score, not a zero
	if v := tb.Scores("URY")["1993"]; !math.IsNaN(v) {
		t.Errorf("scores URY 1993: got %.1f, want NaN", v)
	}
	if v := tb.Scores("CHL")["1994"]; !math.IsNaN(v) {
		t.Errorf("scores CHL 1994: got %.1f, want NaN", v)
	}
}

func TestReadByteOrderMark(t *testing.T) {
	tests := map[string]string{
		"name first": "\ufeffCountry,ISO3166,1993,1994\nArgentina,ARG,32,30\n",
		"id first":   "\ufeffISO3166,Country,1993,1994\nARG,Argentina,32,30\n",
	}
	for name, in := range tests {
		tb, err := scores.Read(strings.NewReader(in), scores.Options{})
		if err != nil {
			t.Errorf("%s: unable to read data: %v", name, err)
			continue
		}
		years := []string{"1993", "1994"}
		if got := tb.Years().Years(); !reflect.DeepEqual(got, years) {
			t.Errorf("%s: years: got %q, want %q", name, got, years)
		}
		if n := tb.Name("ARG"); n != "Argentina" {
			t.Errorf("%s: name: got %q, want %q", name, n, "Argentina")
		}
		if s, ok := tb.Score("ARG", "1994"); !ok || s != 30 {
			t.Errorf("%s: score ARG 1994: got %.1f (%v), want %.1f", name, s, ok, 30.0)
		}
	}
}

func TestReadErrors(t *testing.T) {
	if _, err := scores.Read(strings.NewReader("Country,1993\nArgentina,32\n"), scores.Options{}); err == nil {
		t.Errorf("missing id field: expecting error")
	}
	if _, err := scores.Read(strings.NewReader("Country,ISO3166\nArgentina,ARG\n"), scores.Options{}); !errors.Is(err, scores.ErrEmpty) {
		t.Errorf("no years: got error %v, want %v", err, scores.ErrEmpty)
	}
	if _, err := scores.Read(strings.NewReader(""), scores.Options{}); !errors.Is(err, scores.ErrEmpty) {
		t.Errorf("empty file: got error %v, want %v", err, scores.ErrEmpty)
	}
}

func TestReadOptions(t *testing.T) {
	in := "name\tcode\t2001\t2000\nChile\tCHL\t20\t22\n"
	tb, err := scores.Read(strings.NewReader(in), scores.Options{
		IDField:   "CODE",
		NameField: "Name",
		Comma:     '\t',
	})
	if err != nil {
		t.Fatalf("unable to read data: %v", err)
	}
	if s, ok := tb.Score("CHL", "2000"); !ok || s != 22 {
		t.Errorf("score CHL 2000: got %.1f (%v), want %.1f", s, ok, 22.0)
	}
	want := []string{"2000", "2001"}
	if got := tb.Years().Years(); !reflect.DeepEqual(got, want) {
		t.Errorf("years: got %v, want %v", got, want)
	}
}

func TestFromRows(t *testing.T) {
	rows := []map[string]string{
		{"ISO3166": "USA", "Country": "US", "1993": "10", "1994": "12"},
		{"ISO3166": "USA", "Country": "Again", "1993": "90"},
		{"ISO3166": "CUB", "Country": "Cuba", "1996": "bad"},
	}
	tb, err := scores.FromRows(rows, scores.Options{})
	if err != nil {
		t.Fatalf("unable to build table: %v", err)
	}

	want := map[string]float64{"1993": 10, "1994": 12}
	if got := tb.Scores("USA"); !reflect.DeepEqual(got, want) {
		t.Errorf("scores USA: got %v, want %v", got, want)
	}
	if _, ok := tb.Score("CUB", "1996"); ok {
		t.Errorf("score CUB 1996: parsed an invalid value")
	}
	years := []string{"1993", "1994", "1996"}
	if got := tb.Years().Years(); !reflect.DeepEqual(got, years) {
		t.Errorf("years: got %v, want %v", got, years)
	}

	if _, err := scores.FromRows(nil, scores.Options{}); !errors.Is(err, scores.ErrEmpty) {
		t.Errorf("no rows: got error %v, want %v", err, scores.ErrEmpty)
	}
	onlyNames := []map[string]string{{"ISO3166": "USA", "Country": "US"}}
	if _, err := scores.FromRows(onlyNames, scores.Options{}); !errors.Is(err, scores.ErrEmpty) {
		t.Errorf("no years: got error %v, want %v", err, scores.ErrEmpty)
	}
}

func TestFromRowsFieldCase(t *testing.T) {
	rows := []map[string]string{
		{"iso3166": "ARG", "country": "Argentina", "1993": "32"},
		{" \ufeffIso3166 ": "CHL", "COUNTRY": "Chile", "1993": "20"},
	}
	tb, err := scores.FromRows(rows, scores.Options{})
	if err != nil {
		t.Fatalf("unable to build table: %v", err)
	}

	ids := []string{"ARG", "CHL"}
	if got := tb.IDs(); !reflect.DeepEqual(got, ids) {
		t.Errorf("ids: got %v, want %v", got, ids)
	}
	years := []string{"1993"}
	if got := tb.Years().Years(); !reflect.DeepEqual(got, years) {
		t.Errorf("years: got %v, want %v", got, years)
	}
	if n := tb.Name("CHL"); n != "Chile" {
		t.Errorf("name: got %q, want %q", n, "Chile")
	}
}

func TestSummary(t *testing.T) {
	tb, err := scores.Read(strings.NewReader(freedomCSV), scores.Options{})
	if err != nil {
		t.Fatalf("unable to read data: %v", err)
	}

	s := tb.Summary("1993")
	if s.N != 3 {
		t.Errorf("summary 1993: got %d values, want %d", s.N, 3)
	}
	if s.Min != 18 || s.Max != 48 || s.Median != 32 {
		t.Errorf("summary 1993: got min %.1f, median %.1f, max %.1f, want 18, 32, 48", s.Min, s.Median, s.Max)
	}
	if math.Abs(s.Mean-(32+18+48)/3.0) > 1e-9 {
		t.Errorf("summary 1993: got mean %.6f, want %.6f", s.Mean, (32+18+48)/3.0)
	}

	e := tb.Summary("2020")
	if e.N != 0 || !math.IsNaN(e.Mean) {
		t.Errorf("summary 2020: got %d values (mean %.1f), want 0 (NaN)", e.N, e.Mean)
	}
}
