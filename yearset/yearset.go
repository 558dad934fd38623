// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package yearset implements an ordered set of years
// used as the time domain of a score table.
package yearset

import (
	"bufio"
	"cmp"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// A Yearer is an interface for types
// that return a list of years.
type Yearer interface {
	Years() []string
}

// Years is a set of years.
//
// Years are kept as strings,
// as they are found in the column names
// of a score table.
type Years struct {
	seen  map[string]bool
	order []string // in first-seen order
}

// New returns an empty set of years.
func New() *Years {
	return &Years{
		seen: make(map[string]bool),
	}
}

// Read reads one or more years from a TSV file.
//
// The TSV must be without header
// and the first column should indicate the year.
// Any other columns will be ignored.
//
// Here is an example file
//
//	# years
//	1993
//	1994
//	1995
func Read(r io.Reader) (*Years, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'
	tsv.FieldsPerRecord = -1

	ys := New()
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on line %d: %v", ln, err)
		}

		y := strings.TrimSpace(row[0])
		if y == "" {
			continue
		}
		ys.AddYear(y)
	}

	return ys, nil
}

// Add adds the years from a yearer.
func (ys *Years) Add(y Yearer) {
	for _, v := range y.Years() {
		ys.AddYear(v)
	}
}

// AddYear adds a year.
// It returns false if the year was already in the set.
func (ys *Years) AddYear(y string) bool {
	if ys.seen[y] {
		return false
	}
	ys.seen[y] = true
	ys.order = append(ys.order, y)
	return true
}

// Has returns true if the year is in the set.
func (ys *Years) Has(y string) bool {
	return ys.seen[y]
}

// Len returns the number of years in the set.
func (ys *Years) Len() int {
	return len(ys.order)
}

// FirstSeen returns the years
// in the order in which they were added.
func (ys *Years) FirstSeen() []string {
	return slices.Clone(ys.order)
}

// Years returns a sorted slice
// of the years in the set.
//
// Years that are integers are sorted by its numeric value,
// any other value is sorted lexically
// after the numeric years.
func (ys *Years) Years() []string {
	y := slices.Clone(ys.order)
	slices.SortFunc(y, Compare)
	return y
}

// Compare compares two years.
func Compare(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// Nearest returns the year closest
// to a position in the range [0, 1]
// over the sorted years.
// Positions out of range are clamped
// and NaN is taken as 0.
// It panics if the set is empty.
func Nearest(years []string, pos float64) string {
	if len(years) == 0 {
		panic("yearset: nearest year on an empty set")
	}
	if math.IsNaN(pos) || pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	i := int(math.Round(pos * float64(len(years)-1)))
	return years[i]
}

// Position returns the position of a year
// in the range [0, 1]
// over the sorted years.
// If the year is not found,
// it returns -1.
func Position(years []string, y string) float64 {
	i := slices.Index(years, y)
	if i < 0 {
		return -1
	}
	if len(years) == 1 {
		return 0
	}
	return float64(i) / float64(len(years)-1)
}

// Write writes the years into a tab-delimited file.
func (ys *Years) Write(w io.Writer) (err error) {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# years\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))

	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	for _, y := range ys.Years() {
		if err := tsv.Write([]string{y}); err != nil {
			return err
		}
	}
	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
