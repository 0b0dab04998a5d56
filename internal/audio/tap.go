// Package audio plays a file through beep and measures how loud the most
// recent output was, standing in for the assistant's microphone level.
package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// Tap wraps a beep.Streamer and keeps the last samples it passed through,
// down-mixed to mono.
type Tap struct {
	Source beep.Streamer

	mu   sync.RWMutex
	ring []float64
	next int
	// filled counts samples written, capped at len(ring).
	filled int
}

func NewTap(src beep.Streamer, ringSize int) *Tap {
	return &Tap{
		Source: src,
		ring:   make([]float64, ringSize),
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.ring[t.next] = (samples[i][0] + samples[i][1]) * 0.5
			t.next++
			if t.next >= len(t.ring) {
				t.next = 0
			}
		}
		t.filled = min(t.filled+n, len(t.ring))
		t.mu.Unlock()
	}
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// Snapshot returns up to the last n mono samples, oldest first.
func (t *Tap) Snapshot(n int) []float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n = min(n, t.filled)
	out := make([]float64, n)
	idx := t.next - n
	if idx < 0 {
		idx += len(t.ring)
	}
	for i := range out {
		out[i] = t.ring[idx]
		idx++
		if idx >= len(t.ring) {
			idx = 0
		}
	}
	return out
}

// Level is the Euclidean norm of the last block samples scaled by 10, the
// same measure the assistant's capture side reports.
func (t *Tap) Level(block int) float64 {
	var sum float64
	for _, s := range t.Snapshot(block) {
		sum += s * s
	}
	return math.Sqrt(sum) * 10
}
