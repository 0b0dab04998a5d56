package game

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/voice-orb/internal/engine"
)

// screenSurface draws onto the ebiten screen for one Draw call.
type screenSurface struct {
	img *ebiten.Image
	bg  color.Color
}

func (s screenSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s screenSurface) Clear() { s.img.Fill(s.bg) }

func (s screenSurface) FillCircle(x, y, r float64, c color.Color) {
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), c, true)
}

func (s screenSurface) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}

// driver is the engine.Scheduler backed by ebiten's Draw callback: a
// submitted tick runs on the next display refresh.
type driver struct {
	pending engine.TickFunc
	gen     uint64
}

func (d *driver) Submit(tick engine.TickFunc) func() {
	d.gen++
	gen := d.gen
	d.pending = tick
	return func() {
		if d.gen == gen {
			d.pending = nil
		}
	}
}

func (d *driver) fire(s engine.Surface) {
	tick := d.pending
	if tick == nil {
		return
	}
	d.pending = nil
	tick(engine.Frame{Now: time.Now(), Surface: s})
}
