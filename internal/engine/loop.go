// Package engine drives the orb simulation once per display frame and draws
// it onto an immediate-mode surface.
package engine

import (
	"image/color"
	"log"
	"time"

	"github.com/iburimskiy/voice-orb/internal/orb"
)

// SignalSource supplies the external inputs. The loop only reads it.
type SignalSource interface {
	Snapshot() orb.Signals
}

// Stats describes the last frame the loop handled.
type Stats struct {
	Frames   uint64
	Viewport orb.Viewport
	Points   int
	Edges    int
	Skipped  bool
}

// Loop owns a simulation for its lifetime and redraws it every tick.
type Loop struct {
	sim       *orb.Simulation
	signals   SignalSource
	sched     Scheduler
	lineWidth float64

	running bool
	cancel  func()
	started time.Time
	stats   Stats
	colors  []color.NRGBA
}

func NewLoop(sim *orb.Simulation, signals SignalSource, sched Scheduler, lineWidth float64) *Loop {
	return &Loop{
		sim:       sim,
		signals:   signals,
		sched:     sched,
		lineWidth: lineWidth,
	}
}

func (l *Loop) Simulation() *orb.Simulation { return l.sim }

func (l *Loop) Stats() Stats { return l.stats }

func (l *Loop) Running() bool { return l.running }

// Start schedules the first tick. Calling it on a running loop does nothing.
func (l *Loop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.cancel = l.sched.Submit(l.tick)
	log.Printf("[orb %s] started with %d particles", l.sim.ID, len(l.sim.Particles))
}

// Stop cancels the pending tick. It is safe to call more than once.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	log.Printf("[orb %s] stopped after %d frames", l.sim.ID, l.stats.Frames)
}

func (l *Loop) tick(f Frame) {
	if !l.running {
		return
	}
	l.frame(f)
	if l.running {
		l.cancel = l.sched.Submit(l.tick)
	}
}

func (l *Loop) frame(f Frame) {
	if l.started.IsZero() {
		l.started = f.Now
	}
	l.stats.Frames++

	var vp orb.Viewport
	if f.Surface != nil {
		vp.Width, vp.Height = f.Surface.Size()
	}
	if vp != l.stats.Viewport {
		log.Printf("[orb %s] viewport %dx%d", l.sim.ID, vp.Width, vp.Height)
		l.stats.Viewport = vp
	}

	sig := l.signals.Snapshot()
	l.sim.Step(sig, f.Now.Sub(l.started))

	if vp.Empty() {
		l.stats.Skipped, l.stats.Points, l.stats.Edges = true, 0, 0
		return
	}
	l.stats.Skipped = false
	l.draw(f.Surface, vp)
}

// draw renders one projection. A panic from the surface drops the frame
// rather than the loop.
func (l *Loop) draw(s Surface, vp orb.Viewport) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[orb %s] frame %d dropped: %v", l.sim.ID, l.stats.Frames, r)
			l.stats.Skipped = true
		}
	}()

	s.Clear()
	pts := l.sim.Project(vp)
	st := &l.sim.State
	base := orb.BaseColor(st.Signals)
	mix := st.ColorMix.Current
	radius := st.RadiusMultiplier.Current

	if cap(l.colors) < len(pts) {
		l.colors = make([]color.NRGBA, len(pts))
	}
	l.colors = l.colors[:len(pts)]
	for i, p := range pts {
		c := orb.PointColor(base, p.ColorGroup, mix, p.Alpha())
		l.colors[i] = c
		s.FillCircle(p.Pos.X, p.Pos.Y, radius*p.Scale, c)
	}
	l.stats.Points = len(pts)

	edges := 0
	for e := range l.sim.Edges(pts) {
		c := l.colors[e.I]
		c.A = orb.Alpha8(e.Alpha)
		a, b := pts[e.I].Pos, pts[e.J].Pos
		s.StrokeLine(a.X, a.Y, b.X, b.Y, l.lineWidth, c)
		edges++
	}
	l.stats.Edges = edges
}
