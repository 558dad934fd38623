// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package timeline

import (
	"sync"
	"time"
)

// A Scheduler runs a recurring task.
type Scheduler interface {
	// Every calls f each d interval,
	// until cancel is called.
	// After cancel returns,
	// no new call to f is started.
	// Cancel must not be called from f.
	Every(d time.Duration, f func()) (cancel func())
}

// TickerScheduler is a scheduler
// that uses a time ticker
// running on its own goroutine.
type TickerScheduler struct{}

// Every implements the Scheduler interface.
func (TickerScheduler) Every(d time.Duration, f func()) func() {
	tick := time.NewTicker(d)
	done := make(chan struct{})
	exit := make(chan struct{})

	go func() {
		defer close(exit)
		defer tick.Stop()
		for {
			select {
			case <-done:
				return
			case <-tick.C:
			}

			// cancel has priority over a pending tick
			select {
			case <-done:
				return
			default:
			}
			f()
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			<-exit
		})
	}
}
