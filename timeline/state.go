// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package timeline implements the state of a map animation
// over a sequence of years.
//
// The state is a value
// modified by pure transition functions;
// a Timeline wraps a state,
// notifies the changes to its observers,
// and drives the animation with a recurring task.
package timeline

import (
	"errors"
	"slices"

	"github.com/js-arias/pressmap/yearset"
)

// ErrInvalidYear is returned when a year
// is not part of the sequence of years.
var ErrInvalidYear = errors.New("timeline: invalid year")

// State is the state of a timeline.
type State struct {
	// Year is the current year.
	Year string

	// Playing is true if the animation is running.
	Playing bool
}

// Init returns the initial state
// for a sorted sequence of years.
// The animation is stopped,
// and the year is the start year,
// if it is a valid year,
// or the first year otherwise.
// It panics if there are no years.
func Init(years []string, start string) State {
	if len(years) == 0 {
		panic("timeline: initialize with an empty sequence")
	}
	if slices.Contains(years, start) {
		return State{Year: start}
	}
	return State{Year: years[0]}
}

// SetYear sets the current year.
// If the year is not valid,
// it returns ErrInvalidYear,
// and the state is unchanged.
func SetYear(years []string, s State, y string) (State, error) {
	if !slices.Contains(years, y) {
		return s, ErrInvalidYear
	}
	s.Year = y
	return s, nil
}

// Next advances the state to the next year.
// After the last year,
// it returns to the first one.
func Next(years []string, s State) State {
	i := slices.Index(years, s.Year)
	s.Year = years[(i+1)%len(years)]
	return s
}

// Prev moves the state to the previous year.
// Before the first year,
// it returns to the last one.
func Prev(years []string, s State) State {
	i := slices.Index(years, s.Year)
	if i <= 0 {
		s.Year = years[len(years)-1]
		return s
	}
	s.Year = years[i-1]
	return s
}

// Toggle switches between playing and stopped.
func Toggle(s State) State {
	s.Playing = !s.Playing
	return s
}

// Scrub sets the year that is closest
// to a position in the range [0, 1]
// of the sequence of years.
func Scrub(years []string, s State, pos float64) State {
	s.Year = yearset.Nearest(years, pos)
	return s
}
