// Package poll provides a cancelable repeating-task primitive with an
// optional hard deadline. It backs both submission status tracking and
// leaderboard refresh.
package poll

import (
	"sync"
	"time"
)

// Control tells the scheduler whether to keep ticking.
type Control int

const (
	// Continue schedules another tick.
	Continue Control = iota
	// Done stops the schedule; no further ticks and no timeout fire.
	Done
)

// Action runs on each tick. It executes inline on the scheduler
// goroutine, so a slow action delays later ticks instead of overlapping
// them; ticks missed while an action runs are dropped, not queued.
type Action func() Control

// Handle controls one running schedule.
type Handle struct {
	mu       sync.Mutex
	finished bool

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// Start begins invoking action every interval. The first invocation
// happens one interval after Start, not immediately. The schedule ends
// when the action returns Done, when timeout elapses, or when Cancel is
// called, whichever happens first. A timeout of zero disables the
// deadline. onTimeout fires at most once, and never after Cancel has
// returned or after the action signaled Done.
//
// Callbacks run while the handle's internal lock is held; they must not
// call Cancel on their own handle.
func Start(action Action, interval, timeout time.Duration, onTimeout func()) *Handle {
	h := &Handle{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	var deadline <-chan time.Time
	var timer *time.Timer
	if timeout > 0 {
		timer = time.NewTimer(timeout)
		deadline = timer.C
	}

	go func() {
		defer close(h.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		if timer != nil {
			defer timer.Stop()
		}
		for {
			select {
			case <-h.stop:
				return
			case <-deadline:
				h.mu.Lock()
				if !h.finished {
					h.finished = true
					if onTimeout != nil {
						onTimeout()
					}
				}
				h.mu.Unlock()
				return
			case <-ticker.C:
				h.mu.Lock()
				if h.finished {
					h.mu.Unlock()
					return
				}
				ctl := action()
				if ctl == Done {
					h.finished = true
				}
				h.mu.Unlock()
				if ctl == Done {
					return
				}
			}
		}
	}()

	return h
}

// Cancel stops the schedule. It is idempotent and safe to call after
// natural completion or timeout. Once Cancel returns, no tick and no
// timeout callback will fire; a callback already in flight is allowed
// to finish first, and Cancel waits for it.
func (h *Handle) Cancel() {
	h.mu.Lock()
	h.finished = true
	h.mu.Unlock()
	h.stopOnce.Do(func() { close(h.stop) })
}

// Done returns a channel closed once the schedule has fully stopped.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}
