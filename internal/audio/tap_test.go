package audio

import (
	"errors"
	"math"
	"os"
	"testing"

	"github.com/faiface/beep"
)

// rampStreamer emits samples 1, 2, 3, ... on the left channel and silence on
// the right, so the mono mix is n/2.
type rampStreamer struct {
	n   int
	err error
}

func (r *rampStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		r.n++
		samples[i] = [2]float64{float64(r.n), 0}
	}
	return len(samples), true
}

func (r *rampStreamer) Err() error { return r.err }

func pull(s beep.Streamer, n int) {
	buf := make([][2]float64, n)
	s.Stream(buf)
}

func TestTap_SnapshotOrderAndWrap(t *testing.T) {
	tap := NewTap(&rampStreamer{}, 8)

	if got := tap.Snapshot(4); len(got) != 0 {
		t.Fatalf("empty tap returned %v", got)
	}

	pull(tap, 5)
	if got := tap.Snapshot(10); len(got) != 5 || got[0] != 0.5 || got[4] != 2.5 {
		t.Errorf("Snapshot(10) after 5 samples = %v", got)
	}

	pull(tap, 6) // 11 samples total, ring of 8 has wrapped
	got := tap.Snapshot(8)
	want := []float64{2, 2.5, 3, 3.5, 4, 4.5, 5, 5.5}
	if len(got) != len(want) {
		t.Fatalf("Snapshot(8) len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Snapshot(8)[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if last := tap.Snapshot(2); last[0] != 5 || last[1] != 5.5 {
		t.Errorf("Snapshot(2) = %v, want [5 5.5]", last)
	}
}

type constStreamer float64

func (c constStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{float64(c), float64(c)}
	}
	return len(samples), true
}

func (constStreamer) Err() error { return nil }

func TestTap_Level(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		fill  int
		block int
		want  float64
	}{
		{"silence", 0, 2048, 1024, 0},
		{"constant 0.1 full block", 0.1, 2048, 1024, math.Sqrt(1024*0.01) * 10},
		{"partial block", 0.5, 16, 1024, math.Sqrt(16*0.25) * 10},
		{"nothing played", 0.5, 0, 1024, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tap := NewTap(constStreamer(tt.value), 4096)
			if tt.fill > 0 {
				pull(tap, tt.fill)
			}
			if got := tap.Level(tt.block); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Level() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTap_ErrPassesThrough(t *testing.T) {
	want := errors.New("decoder broke")
	tap := NewTap(&rampStreamer{err: want}, 4)
	if !errors.Is(tap.Err(), want) {
		t.Errorf("Err() = %v, want %v", tap.Err(), want)
	}
}

func TestDecode_RejectsUnknownExtension(t *testing.T) {
	p := NewPlayer()
	path := t.TempDir() + "/notes.txt"
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := p.Play(path); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Play(%s) error = %v, want ErrUnsupported", path, err)
	}
	if p.Playing() || p.Level() != 0 {
		t.Error("player reports playback after a failed Play")
	}
}
