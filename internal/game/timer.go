package game

import (
	"time"
)

// =============================================================================
// TIMER MANAGEMENT
// =============================================================================

// Clock is the time source of the hub. Tests swap in a manual clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type systemClock struct{}

func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// phaseTimer is a timer owned by one room. Every arm or stop bumps gen, so a callback
// that was already queued when its timer got replaced notices and does nothing.
type phaseTimer struct {
	timer Timer
	gen   uint64
}

func (t *phaseTimer) stop() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
}

func (t *phaseTimer) active() bool {
	return t.timer != nil
}

// armTimer schedules fn on the hub loop after d, replacing whatever t held.
func (h *Hub) armTimer(t *phaseTimer, d time.Duration, fn func()) {
	t.stop()
	gen := t.gen
	t.timer = h.clock.AfterFunc(d, func() {
		h.enqueue(func() {
			if t.gen != gen {
				return
			}
			t.timer = nil
			fn()
		})
	})
}

// armTicker runs fn after first and then every interval until t is stopped.
func (h *Hub) armTicker(t *phaseTimer, first, interval time.Duration, fn func()) {
	var tick func()
	tick = func() {
		gen := t.gen
		fn()
		// fn may have stopped or re-armed t.
		if t.gen == gen {
			h.armTimer(t, interval, tick)
		}
	}
	h.armTimer(t, first, tick)
}
