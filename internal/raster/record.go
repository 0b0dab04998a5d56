package raster

import (
	"context"
	"fmt"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/iburimskiy/voice-orb/internal/engine"
)

// Recorder renders a fixed number of frames at a fixed rate without a
// window and writes each one as a PNG.
type Recorder struct {
	Canvas *Canvas
	Sched  *engine.ManualScheduler
	FPS    int
	// Background, when set, is consulted before each frame.
	Background func() color.Color
	// Size, when set, is the container size for each frame; the canvas is
	// resized to match before the tick runs.
	Size func() (width, height int)
}

// Record fires frames ticks on loop and writes frame_NNNNN.png files to dir.
// The loop must have been started on r.Sched. A frame whose canvas is empty
// still ticks the loop but writes no file.
func (r *Recorder) Record(ctx context.Context, loop *engine.Loop, frames int, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	fps := r.FPS
	if fps <= 0 {
		fps = 60
	}
	step := time.Second / time.Duration(fps)
	start := time.Now()

	written := 0
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.Background != nil {
			r.Canvas.SetBackground(r.Background())
		}
		if r.Size != nil {
			r.Canvas.Resize(r.Size())
		}
		if !r.Sched.Fire(engine.Frame{Now: start.Add(time.Duration(i) * step), Surface: r.Canvas}) {
			return fmt.Errorf("loop stopped after %d frames", i)
		}
		if w, h := r.Canvas.Size(); w == 0 || h == 0 {
			continue
		}
		if err := r.write(filepath.Join(dir, fmt.Sprintf("frame_%05d.png", i))); err != nil {
			return err
		}
		written++
	}
	log.Printf("[raster] wrote %d of %d frames to %s", written, frames, dir)
	return nil
}

func (r *Recorder) write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	if err := png.Encode(f, r.Canvas.Image()); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
