package poll

import (
	"sync/atomic"
	"testing"
	"time"

	"shodhacli/internal/testutil"
)

func TestFirstTickIsNotImmediate(t *testing.T) {
	var ticks atomic.Int32
	h := Start(func() Control {
		ticks.Add(1)
		return Continue
	}, 50*time.Millisecond, 0, nil)
	defer h.Cancel()

	time.Sleep(20 * time.Millisecond)
	testutil.AssertEqual(t, ticks.Load(), int32(0))
}

func TestActionDoneStopsTicking(t *testing.T) {
	var ticks atomic.Int32
	h := Start(func() Control {
		if ticks.Add(1) == 3 {
			return Done
		}
		return Continue
	}, 10*time.Millisecond, 0, nil)

	<-h.Done()
	after := ticks.Load()
	time.Sleep(50 * time.Millisecond)
	testutil.AssertEqual(t, ticks.Load(), after)
	testutil.AssertEqual(t, after, int32(3))
}

func TestTimeoutFiresExactlyOnce(t *testing.T) {
	var ticks, timeouts atomic.Int32
	h := Start(func() Control {
		ticks.Add(1)
		return Continue
	}, 10*time.Millisecond, 55*time.Millisecond, func() {
		timeouts.Add(1)
	})

	<-h.Done()
	testutil.AssertEqual(t, timeouts.Load(), int32(1))
	after := ticks.Load()

	// No tick and no second timeout after the deadline ended the schedule.
	time.Sleep(50 * time.Millisecond)
	testutil.AssertEqual(t, ticks.Load(), after)
	testutil.AssertEqual(t, timeouts.Load(), int32(1))
}

func TestTimeoutDoesNotFireAfterDone(t *testing.T) {
	var timeouts atomic.Int32
	h := Start(func() Control {
		return Done
	}, 10*time.Millisecond, 30*time.Millisecond, func() {
		timeouts.Add(1)
	})

	<-h.Done()
	time.Sleep(60 * time.Millisecond)
	testutil.AssertEqual(t, timeouts.Load(), int32(0))
}

func TestCancelStopsTicksAndTimeout(t *testing.T) {
	var ticks, timeouts atomic.Int32
	h := Start(func() Control {
		ticks.Add(1)
		return Continue
	}, 10*time.Millisecond, 60*time.Millisecond, func() {
		timeouts.Add(1)
	})

	// Let a couple of ticks land, then cancel mid-flight.
	time.Sleep(25 * time.Millisecond)
	h.Cancel()
	after := ticks.Load()

	// Wait past the original deadline: nothing else may fire.
	time.Sleep(80 * time.Millisecond)
	testutil.AssertEqual(t, ticks.Load(), after)
	testutil.AssertEqual(t, timeouts.Load(), int32(0))
}

func TestCancelIsIdempotent(t *testing.T) {
	h := Start(func() Control { return Continue }, 10*time.Millisecond, 0, nil)
	h.Cancel()
	h.Cancel()
	<-h.Done()
}

func TestCancelAfterNaturalCompletion(t *testing.T) {
	h := Start(func() Control { return Done }, 5*time.Millisecond, 0, nil)
	<-h.Done()
	h.Cancel()
}
