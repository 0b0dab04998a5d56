package engine

import (
	"image/color"
	"time"
)

// Surface is an immediate-mode 2D target that is cleared and redrawn every
// frame.
type Surface interface {
	Size() (width, height int)
	Clear()
	FillCircle(x, y, r float64, c color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
}

// Frame is what a scheduler hands to a tick. Surface may be nil when the
// display has nothing to draw on this refresh.
type Frame struct {
	Now     time.Time
	Surface Surface
}

type TickFunc func(Frame)

// Scheduler runs a submitted tick on the next display refresh. Each tick is
// run at most once; the returned cancel drops it if it has not run yet.
type Scheduler interface {
	Submit(tick TickFunc) (cancel func())
}

// ManualScheduler holds at most one pending tick and runs it when Fire is
// called. The headless renderer and tests drive loops with it.
type ManualScheduler struct {
	pending TickFunc
	gen     uint64
}

func (m *ManualScheduler) Submit(tick TickFunc) func() {
	m.gen++
	gen := m.gen
	m.pending = tick
	return func() {
		if m.gen == gen {
			m.pending = nil
		}
	}
}

// Pending reports whether a tick is waiting.
func (m *ManualScheduler) Pending() bool { return m.pending != nil }

// Fire runs the pending tick with f and reports whether there was one.
func (m *ManualScheduler) Fire(f Frame) bool {
	tick := m.pending
	if tick == nil {
		return false
	}
	m.pending = nil
	tick(f)
	return true
}
