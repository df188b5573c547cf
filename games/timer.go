/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"sync"
	"time"
)

// Timer is a single owned, cancellable timer. Scheduling a new callback
// replaces any pending one, and a callback that lost the race against
// Reset or Stop never starts. A callback that has started but still waits
// on its owner's lock can be caught with Current.
type Timer struct {
	mu  sync.Mutex
	t   *time.Timer
	gen uint64
}

// Reset cancels any pending callback and schedules fn to run after d.
// It returns the generation fn belongs to.
func (t *Timer) Reset(d time.Duration, fn func()) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.t != nil {
		t.t.Stop()
	}

	t.gen++
	gen := t.gen

	t.t = time.AfterFunc(d, func() {
		t.mu.Lock()
		if gen != t.gen {
			t.mu.Unlock()
			return
		}
		t.t = nil
		t.mu.Unlock()

		fn()
	})

	return gen
}

// Current reports whether gen is still the latest Reset, with no Stop or
// Reset since.
func (t *Timer) Current(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return gen == t.gen
}

// Stop cancels the pending callback, if any. It reports whether one was pending.
func (t *Timer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.gen++

	if t.t == nil {
		return false
	}

	t.t.Stop()
	t.t = nil

	return true
}

// Pending reports whether a callback is scheduled and has not yet run.
func (t *Timer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.t != nil
}
