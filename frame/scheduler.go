// Copyright © 2025 Scrollkit contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: frame/scheduler.go
// Summary: Timer-backed frame scheduler for the inertia loop. Hosts with an
// event loop set Deliver to marshal each tick back onto their own thread.

package frame

import (
	"time"

	"github.com/framegrace/scrollkit/scroll"
)

// DefaultInterval approximates a 60Hz frame cadence. The engine's decay is
// per-tick, so the interval only shapes how fast motion feels, not where it
// settles.
const DefaultInterval = 16 * time.Millisecond

// TimerScheduler schedules inertia ticks with time.AfterFunc.
//
// The engine is single-threaded: when Deliver is nil the callback runs on
// the timer goroutine, which is only safe if nothing else touches the engine
// concurrently. Event-loop hosts must set Deliver to hand the tick to their
// loop (the scrollview demo posts it as a tcell event).
type TimerScheduler struct {
	// Interval between ticks; DefaultInterval when zero.
	Interval time.Duration

	// Deliver, when set, receives each due tick instead of the timer
	// goroutine running it directly.
	Deliver func(tick func())
}

var _ scroll.Scheduler = (*TimerScheduler)(nil)

// NewTimerScheduler returns a scheduler at the default cadence.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{Interval: DefaultInterval}
}

// Schedule arms a one-shot timer for the next tick.
func (s *TimerScheduler) Schedule(callback func()) scroll.Handle {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	return time.AfterFunc(interval, func() {
		if s.Deliver != nil {
			s.Deliver(callback)
			return
		}
		callback()
	})
}

// Cancel stops a pending timer. Stopping an already-fired timer is a no-op;
// the engine's own staleness check covers a tick that was already in flight.
func (s *TimerScheduler) Cancel(h scroll.Handle) {
	if t, ok := h.(*time.Timer); ok {
		t.Stop()
	}
}
