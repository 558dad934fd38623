// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package feature implements country features:
// country boundaries joined
// with its yearly scores.
package feature

import (
	"math"

	"github.com/js-arias/pressmap/geometry"
	"github.com/js-arias/pressmap/scores"
	"github.com/paulmach/orb"
)

// A Feature is a country boundary
// with its scores.
type Feature struct {
	ID    string
	Name  string
	Shape orb.MultiPolygon

	// Scores by year.
	// It is never nil,
	// a country without scores has an empty map.
	Scores map[string]float64
}

// Score returns the score of the feature
// at a given year.
// It returns false if there is no score,
// or the score is not a number.
func (f Feature) Score(year string) (float64, bool) {
	s, ok := f.Scores[year]
	if !ok || math.IsNaN(s) || math.IsInf(s, 0) {
		return 0, false
	}
	return s, true
}

// Contains returns true if a geographic point
// is inside the feature.
func (f Feature) Contains(lat, lon float64) bool {
	return geometry.Country{Shape: f.Shape}.Contains(lat, lon)
}

// Join merges a set of countries
// with the scores of a table,
// using the country ID.
//
// It returns a feature for each country
// in the same order.
// A country without scores in the table
// will have an empty score map.
func Join(countries []geometry.Country, t *scores.Table) []Feature {
	fs := make([]Feature, 0, len(countries))
	for _, c := range countries {
		f := Feature{
			ID:    c.ID,
			Name:  c.Name,
			Shape: c.Shape,
		}
		if t != nil && t.Has(c.ID) {
			f.Scores = t.Scores(c.ID)
			if n := t.Name(c.ID); n != "" {
				f.Name = n
			}
		}
		if f.Scores == nil {
			f.Scores = make(map[string]float64)
		}
		fs = append(fs, f)
	}
	return fs
}

// Missing returns the IDs of the countries
// in the table
// that are not present in the features.
func Missing(fs []Feature, t *scores.Table) []string {
	ids := make(map[string]bool, len(fs))
	for _, f := range fs {
		ids[f.ID] = true
	}

	var miss []string
	for _, id := range t.IDs() {
		if !ids[id] {
			miss = append(miss, id)
		}
	}
	return miss
}

// Lookup returns the index of a feature
// with a given ID.
// If there is no feature,
// it returns -1.
func Lookup(fs []Feature, id string) int {
	for i, f := range fs {
		if f.ID == id {
			return i
		}
	}
	return -1
}
