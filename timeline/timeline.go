// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package timeline

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/js-arias/pressmap/yearset"
)

// DefaultInterval is the default time
// between two years of an animation.
const DefaultInterval = time.Second

// Options are the options of a timeline.
type Options struct {
	// Start is the initial year.
	Start string

	// Interval is the time between two years
	// when the animation is running.
	// By default it is DefaultInterval.
	Interval time.Duration

	// Scheduler runs the animation.
	// By default it is a TickerScheduler.
	Scheduler Scheduler
}

type observer struct {
	id int
	fn func(State)
}

// A Timeline is a sequence of years
// with a current year,
// that can be animated.
//
// All the operations of a timeline are serialized,
// so a timeline can be used
// from the scheduler and the user input
// at the same time.
// Observers are called synchronously
// while the timeline is locked,
// so they must not call the timeline methods.
type Timeline struct {
	mu sync.Mutex

	years    []string
	state    State
	interval time.Duration
	sched    Scheduler

	cancel func()
	gen    int
	closed bool

	obs    []observer
	nextID int
}

// New creates a new timeline
// from a sequence of years.
func New(years []string, opts Options) (*Timeline, error) {
	ys := yearset.New()
	for _, y := range years {
		ys.AddYear(y)
	}
	if ys.Len() == 0 {
		return nil, errors.New("timeline: empty sequence of years")
	}
	sorted := ys.Years()

	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Scheduler == nil {
		opts.Scheduler = TickerScheduler{}
	}

	return &Timeline{
		years:    sorted,
		state:    Init(sorted, opts.Start),
		interval: opts.Interval,
		sched:    opts.Scheduler,
	}, nil
}

// Years returns the sorted years of the timeline.
func (tl *Timeline) Years() []string {
	return slices.Clone(tl.years)
}

// Interval returns the time between two years
// of the animation.
func (tl *Timeline) Interval() time.Duration {
	return tl.interval
}

// State returns the current state.
func (tl *Timeline) State() State {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.state
}

// Subscribe adds an observer
// that will be called after each change of the state.
// It returns a function to remove the observer.
func (tl *Timeline) Subscribe(fn func(State)) (unsubscribe func()) {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	id := tl.nextID
	tl.nextID++
	tl.obs = append(tl.obs, observer{id: id, fn: fn})

	return func() {
		tl.mu.Lock()
		defer tl.mu.Unlock()
		tl.obs = slices.DeleteFunc(tl.obs, func(o observer) bool {
			return o.id == id
		})
	}
}

func (tl *Timeline) notify() {
	for _, o := range tl.obs {
		o.fn(tl.state)
	}
}

// SetYear sets the current year.
// If the year is not in the timeline,
// it returns ErrInvalidYear,
// and the state is unchanged.
func (tl *Timeline) SetYear(y string) error {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	s, err := SetYear(tl.years, tl.state, y)
	if err != nil {
		return fmt.Errorf("%w: %q", err, y)
	}
	tl.state = s
	tl.notify()
	return nil
}

// Scrub sets the year closest to a position
// in the range [0, 1].
func (tl *Timeline) Scrub(pos float64) State {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	tl.state = Scrub(tl.years, tl.state, pos)
	tl.notify()
	return tl.state
}

// Position returns the position of the current year
// in the range [0, 1].
func (tl *Timeline) Position() float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return yearset.Position(tl.years, tl.state.Year)
}

// Step advances the timeline to the next year,
// wrapping to the first year after the last one.
func (tl *Timeline) Step() State {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	tl.state = Next(tl.years, tl.state)
	tl.notify()
	return tl.state
}

// Back moves the timeline to the previous year,
// wrapping to the last year before the first one.
func (tl *Timeline) Back() State {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	tl.state = Prev(tl.years, tl.state)
	tl.notify()
	return tl.state
}

// tick is called by the scheduler.
// Ticks of a previous animation are ignored.
func (tl *Timeline) tick(gen int) {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	if !tl.state.Playing || gen != tl.gen {
		return
	}
	tl.state = Next(tl.years, tl.state)
	tl.notify()
}

// TogglePlay starts the animation
// if it is stopped,
// or stops it if it is running.
// When the animation is stopped,
// no more ticks are fired.
// A closed timeline is never started.
func (tl *Timeline) TogglePlay() State {
	tl.mu.Lock()
	if tl.closed {
		s := tl.state
		tl.mu.Unlock()
		return s
	}

	var stop func()
	tl.gen++
	tl.state = Toggle(tl.state)
	if tl.state.Playing {
		gen := tl.gen
		tl.cancel = tl.sched.Every(tl.interval, func() {
			tl.tick(gen)
		})
	} else {
		stop = tl.cancel
		tl.cancel = nil
	}
	tl.notify()
	s := tl.state
	tl.mu.Unlock()

	// the scheduler might be waiting for the lock
	if stop != nil {
		stop()
	}
	return s
}

// Close stops any running animation.
// After Close,
// the animation can not be started again.
func (tl *Timeline) Close() {
	tl.mu.Lock()
	tl.closed = true
	tl.gen++
	tl.state.Playing = false
	stop := tl.cancel
	tl.cancel = nil
	tl.mu.Unlock()

	if stop != nil {
		stop()
	}
}
