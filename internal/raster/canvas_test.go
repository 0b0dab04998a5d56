package raster

import (
	"context"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/iburimskiy/voice-orb/internal/config"
	"github.com/iburimskiy/voice-orb/internal/engine"
	"github.com/iburimskiy/voice-orb/internal/orb"
)

var black = color.RGBA{A: 255}

func TestCanvas_Clear(t *testing.T) {
	c := NewCanvas(4, 3, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	c.Clear()
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if got := c.Image().RGBAAt(x, y); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
				t.Fatalf("pixel (%d,%d) = %v after Clear", x, y, got)
			}
		}
	}
}

func TestCanvas_FillCircle(t *testing.T) {
	c := NewCanvas(50, 50, black)
	c.Clear()
	c.FillCircle(25, 25, 10, color.NRGBA{R: 255, A: 255})

	if got := c.Image().RGBAAt(25, 25); got.R < 250 {
		t.Errorf("centre pixel = %v, want red", got)
	}
	if got := c.Image().RGBAAt(25, 40); got.R != 0 {
		t.Errorf("pixel outside radius = %v, want untouched", got)
	}
	if got := c.Image().RGBAAt(2, 2); got != black {
		t.Errorf("corner pixel = %v, want background", got)
	}
}

func TestCanvas_StrokeLineBlends(t *testing.T) {
	c := NewCanvas(40, 10, black)
	c.Clear()
	c.StrokeLine(0, 5, 40, 5, 2, color.NRGBA{G: 255, A: 128})

	got := c.Image().RGBAAt(20, 5)
	if got.G < 100 || got.G > 160 {
		t.Errorf("half-transparent line pixel = %v, want G about 128", got)
	}
	if got := c.Image().RGBAAt(20, 0); got.G != 0 {
		t.Errorf("pixel away from the line = %v", got)
	}
}

func TestCanvas_OffscreenAndDegenerateShapes(t *testing.T) {
	c := NewCanvas(20, 20, black)
	c.Clear()
	c.FillCircle(-50, -50, 5, color.White)
	c.FillCircle(10, 10, 0, color.White)
	c.StrokeLine(5, 5, 5, 5, 1, color.White)
	c.StrokeLine(-10, 10, 30, 10, 1, color.White) // clipped on both ends

	if got := c.Image().RGBAAt(0, 0); got != black {
		t.Errorf("offscreen circle touched (0,0): %v", got)
	}
	if got := c.Image().RGBAAt(10, 10); got.R == 0 {
		t.Errorf("clipped line missing at (10,10)")
	}
}

func TestCanvas_ZeroSize(t *testing.T) {
	c := NewCanvas(0, 0, black)
	c.Clear()
	c.FillCircle(0, 0, 3, color.White)
	if w, h := c.Size(); w != 0 || h != 0 {
		t.Errorf("Size() = %dx%d", w, h)
	}
	c.Resize(8, 6)
	if w, h := c.Size(); w != 8 || h != 6 {
		t.Errorf("Size() after Resize = %dx%d", w, h)
	}
}

func TestRecorder_WritesFrames(t *testing.T) {
	cfg := config.Default()
	cfg.Orb.Particles = 120
	sim := orb.NewSimulation(cfg, rand.New(rand.NewSource(3)))
	sched := &engine.ManualScheduler{}
	loop := engine.NewLoop(sim, staticSignals{State: orb.Listening, Amplitude: 40}, sched, cfg.Connection.Width)

	rec := &Recorder{Canvas: NewCanvas(160, 120, black), Sched: sched, FPS: 30}
	loop.Start()
	defer loop.Stop()

	dir := filepath.Join(t.TempDir(), "out")
	if err := rec.Record(context.Background(), loop, 3, dir); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 || entries[0].Name() != "frame_00000.png" {
		t.Errorf("wrote %d files, first %q", len(entries), entries[0].Name())
	}
	if got := loop.Stats().Frames; got != 3 {
		t.Errorf("loop ran %d frames, want 3", got)
	}
}

func TestRecorder_FollowsContainerSize(t *testing.T) {
	cfg := config.Default()
	cfg.Orb.Particles = 40
	sched := &engine.ManualScheduler{}
	loop := engine.NewLoop(orb.NewSimulation(cfg, rand.New(rand.NewSource(5))), staticSignals{}, sched, 0.5)

	sizes := [][2]int{{0, 0}, {64, 48}, {64, 48}, {32, 20}}
	frame := 0
	var seen []orb.Viewport
	rec := &Recorder{
		Canvas: NewCanvas(10, 10, black),
		Sched:  sched,
		Size: func() (int, int) {
			s := sizes[min(frame, len(sizes)-1)]
			if frame > 0 {
				seen = append(seen, loop.Stats().Viewport)
			}
			frame++
			return s[0], s[1]
		},
	}
	loop.Start()
	defer loop.Stop()

	dir := t.TempDir()
	if err := rec.Record(context.Background(), loop, len(sizes), dir); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	// the empty first frame ticks the loop but is not written
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 || entries[0].Name() != "frame_00001.png" {
		t.Fatalf("wrote %d files, first %q", len(entries), entries[0].Name())
	}
	if got := loop.Stats().Frames; got != len(sizes) {
		t.Errorf("loop ran %d frames, want %d", got, len(sizes))
	}

	want := []orb.Viewport{{}, {Width: 64, Height: 48}, {Width: 64, Height: 48}}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("frame %d viewport = %+v, want %+v", i, seen[i], want[i])
		}
	}
	if got := loop.Stats().Viewport; got != (orb.Viewport{Width: 32, Height: 20}) {
		t.Errorf("last viewport = %+v", got)
	}
	if w, h := rec.Canvas.Size(); w != 32 || h != 20 {
		t.Errorf("canvas size = %dx%d, want 32x20", w, h)
	}

	f, err := os.Open(filepath.Join(dir, "frame_00003.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 20 {
		t.Errorf("last frame is %dx%d, want 32x20", b.Dx(), b.Dy())
	}
}

func TestRecorder_StoppedLoop(t *testing.T) {
	cfg := config.Default()
	cfg.Orb.Particles = 10
	sched := &engine.ManualScheduler{}
	loop := engine.NewLoop(orb.NewSimulation(cfg, nil), staticSignals{}, sched, 0.5)

	rec := &Recorder{Canvas: NewCanvas(10, 10, black), Sched: sched}
	if err := rec.Record(context.Background(), loop, 2, t.TempDir()); err == nil {
		t.Error("Record() on a loop that was never started succeeded")
	}
}

type staticSignals orb.Signals

func (s staticSignals) Snapshot() orb.Signals { return orb.Signals(s) }
