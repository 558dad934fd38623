// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package scores implements a table
// of yearly press-freedom scores by country.
//
// A score is a value between 0
// (full freedom of the press)
// and 100
// (full censorship).
package scores

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/js-arias/pressmap/yearset"
	"gonum.org/v1/gonum/stat"
)

// ErrEmpty is returned when a table
// does not define any year.
var ErrEmpty = errors.New("scores: no years in table")

// Default field names.
const (
	IDField   = "ISO3166"
	NameField = "Country"
)

// Options are the options used to build a table.
type Options struct {
	// IDField is the name of the field
	// used as the country identifier.
	// By default it is "ISO3166".
	IDField string

	// NameField is the name of the field
	// with the country display name.
	// By default it is "Country".
	NameField string

	// Comma is the field delimiter
	// used to read a CSV file.
	// By default it is a comma.
	Comma rune
}

func (o Options) defaults() Options {
	if o.IDField == "" {
		o.IDField = IDField
	}
	if o.NameField == "" {
		o.NameField = NameField
	}
	if o.Comma == 0 {
		o.Comma = ','
	}
	return o
}

// A Table stores the scores of each country
// at each year.
type Table struct {
	ids   []string // in reading order
	names map[string]string
	rows  map[string]map[string]float64
	years *yearset.Years
}

func newTable() *Table {
	return &Table{
		names: make(map[string]string),
		rows:  make(map[string]map[string]float64),
		years: yearset.New(),
	}
}

// FromRows builds a table from a set of parsed rows.
// Each row is a map of field names to field values.
//
// Any field that is not the identifier
// or the name field,
// is taken as a year,
// and its value is taken as the score.
// If a value cannot be parsed as a number,
// the score will be stored as NaN.
// The identifier and the name fields
// are case insensitive.
// Rows without an identifier are ignored.
// If an identifier is repeated,
// only the first row will be used.
func FromRows(rows []map[string]string, opts Options) (*Table, error) {
	opts = opts.defaults()

	t := newTable()
	for _, r := range rows {
		var id, name string
		sc := make(map[string]float64, len(r))
		for f, v := range r {
			k := fieldName(f)
			switch {
			case strings.EqualFold(k, opts.IDField):
				id = strings.TrimSpace(v)
			case strings.EqualFold(k, opts.NameField):
				name = v
			default:
				sc[k] = parseScore(v)
			}
		}
		if id == "" {
			continue
		}
		if _, dup := t.rows[id]; dup {
			continue
		}

		for _, y := range slices.Sorted(maps.Keys(sc)) {
			t.years.AddYear(y)
		}
		t.add(id, name, sc)
	}

	if t.years.Len() == 0 {
		return nil, ErrEmpty
	}
	return t, nil
}

// fieldName returns a header field
// without blanks
// or a byte order mark.
func fieldName(f string) string {
	return strings.TrimSpace(strings.TrimPrefix(f, "\ufeff"))
}

// Read reads a table from a CSV file.
//
// The file must have a header,
// with the identifier field
// (by default "ISO3166"),
// and optionally a name field
// (by default "Country").
// Any other column will be taken as a year.
// The identifier and the name fields
// are case insensitive.
//
// Here is an example file:
//
//	Country,ISO3166,1993,1994,1995
//	Argentina,ARG,32,30,29
//	France,FRA,18,19,
//	Mexico,MEX,48,n/a,51
//
// Empty and non-numeric values are stored as NaN,
// and the country has no score for that year.
// An empty value is never read as a zero score.
// Rows shorter than the header are valid,
// and the missing values are stored as NaN.
// A byte order mark at the start of the header
// is ignored.
func Read(r io.Reader, opts Options) (*Table, error) {
	opts = opts.defaults()

	tab := csv.NewReader(r)
	tab.Comma = opts.Comma
	tab.Comment = '#'
	tab.FieldsPerRecord = -1

	head, err := tab.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}

	idCol, nameCol := -1, -1
	for i, h := range head {
		h = fieldName(h)
		head[i] = h
		switch {
		case strings.EqualFold(h, opts.IDField):
			idCol = i
		case strings.EqualFold(h, opts.NameField):
			nameCol = i
		}
	}
	if idCol < 0 {
		return nil, fmt.Errorf("expecting field %q", opts.IDField)
	}

	t := newTable()
	for i, h := range head {
		if i == idCol || i == nameCol {
			continue
		}
		t.years.AddYear(h)
	}
	if t.years.Len() == 0 {
		return nil, ErrEmpty
	}

	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		if idCol >= len(row) {
			continue
		}
		id := strings.TrimSpace(row[idCol])
		if id == "" {
			continue
		}
		if _, dup := t.rows[id]; dup {
			continue
		}

		var name string
		if nameCol >= 0 && nameCol < len(row) {
			name = strings.TrimSpace(row[nameCol])
		}
		sc := make(map[string]float64, len(head))
		for i, h := range head {
			if i == idCol || i == nameCol {
				continue
			}
			if i >= len(row) {
				sc[h] = math.NaN()
				continue
			}
			sc[h] = parseScore(row[i])
		}
		t.add(id, name, sc)
	}

	return t, nil
}

func (t *Table) add(id, name string, sc map[string]float64) {
	t.ids = append(t.ids, id)
	t.names[id] = strings.TrimSpace(name)
	t.rows[id] = sc
}

func parseScore(v string) float64 {
	s, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return math.NaN()
	}
	return s
}

// Has returns true if the country is defined in the table.
func (t *Table) Has(id string) bool {
	_, ok := t.rows[id]
	return ok
}

// IDs returns the country identifiers
// in the order of the table.
func (t *Table) IDs() []string {
	return slices.Clone(t.ids)
}

// Name returns the display name of a country.
func (t *Table) Name(id string) string {
	return t.names[id]
}

// Score returns the score of a country at a given year.
// If there is no valid score,
// it returns false.
func (t *Table) Score(id, year string) (float64, bool) {
	s, ok := t.rows[id][year]
	if !ok || math.IsNaN(s) {
		return 0, false
	}
	return s, true
}

// Scores returns a copy of the scores of a country
// indexed by year.
// If the country is not in the table,
// it returns nil.
func (t *Table) Scores(id string) map[string]float64 {
	sc, ok := t.rows[id]
	if !ok {
		return nil
	}
	return maps.Clone(sc)
}

// Years returns the set of years
// defined in the table.
func (t *Table) Years() *yearset.Years {
	return t.years
}

// Summary is the summary of the scores
// of a given year.
type Summary struct {
	Year   string
	N      int
	Mean   float64
	StdDev float64
	Median float64
	Min    float64
	Max    float64
}

// Summary returns the summary statistics
// of the valid scores of a given year.
// If there are no valid scores,
// N will be 0,
// and the other values will be NaN.
func (t *Table) Summary(year string) Summary {
	var vals []float64
	for _, id := range t.ids {
		if s, ok := t.Score(id, year); ok {
			vals = append(vals, s)
		}
	}
	if len(vals) == 0 {
		nan := math.NaN()
		return Summary{
			Year:   year,
			Mean:   nan,
			StdDev: nan,
			Median: nan,
			Min:    nan,
			Max:    nan,
		}
	}
	slices.Sort(vals)

	sd := 0.0
	if len(vals) > 1 {
		sd = stat.StdDev(vals, nil)
	}
	return Summary{
		Year:   year,
		N:      len(vals),
		Mean:   stat.Mean(vals, nil),
		StdDev: sd,
		Median: stat.Quantile(0.5, stat.Empirical, vals, nil),
		Min:    vals[0],
		Max:    vals[len(vals)-1],
	}
}
