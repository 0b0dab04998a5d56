// Package signal carries the orb's external inputs from asynchronous writers
// to the frame loop.
package signal

import (
	"sync/atomic"

	"github.com/iburimskiy/voice-orb/internal/orb"
)

// Bus holds the latest signal snapshot. Any goroutine may write; the frame
// loop reads one snapshot per frame. A writer racing another may drop an
// update, which the renderer tolerates.
type Bus struct {
	cur atomic.Pointer[orb.Signals]
}

func NewBus() *Bus {
	b := &Bus{}
	b.cur.Store(&orb.Signals{})
	return b
}

// Snapshot returns the current signals.
func (b *Bus) Snapshot() orb.Signals {
	return *b.cur.Load()
}

func (b *Bus) update(fn func(*orb.Signals)) {
	next := b.Snapshot()
	fn(&next)
	b.cur.Store(&next)
}

func (b *Bus) SetState(s orb.OperatingState) {
	b.update(func(sig *orb.Signals) { sig.State = s })
}

func (b *Bus) SetAmplitude(a float64) {
	b.update(func(sig *orb.Signals) { sig.Amplitude = a })
}

func (b *Bus) SetTheme(t orb.Theme) {
	b.update(func(sig *orb.Signals) { sig.Theme = t })
}

func (b *Bus) ToggleTheme() {
	b.update(func(sig *orb.Signals) {
		if sig.Theme == orb.Light {
			sig.Theme = orb.Dark
		} else {
			sig.Theme = orb.Light
		}
	})
}
