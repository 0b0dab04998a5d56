package orb

import (
	"iter"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/iburimskiy/voice-orb/internal/config"
)

// Simulation is the state owned by one orb instance: the particle field,
// generated once, and the animation state advanced by the frame loop.
type Simulation struct {
	ID        uuid.UUID
	Particles []Particle
	State     AnimationState
	Projector Projector

	threshold float64
	useGrid   bool
	projected []ProjectedPoint
}

// NewSimulation builds the particle field for cfg. rng may be nil, in which
// case placement is seeded from cfg or the clock.
func NewSimulation(cfg config.Config, rng *rand.Rand) *Simulation {
	if rng == nil {
		seed := cfg.Orb.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	return &Simulation{
		ID:        uuid.New(),
		Particles: Generate(rng, cfg.Orb.Particles, cfg.Orb.BaseRadius),
		State:     NewAnimationState(),
		Projector: NewProjector(cfg.Orb.FieldOfView, cfg.Orb.Tilt, cfg.Orb.BaseRadius),
		threshold: cfg.Connection.Distance,
		useGrid:   cfg.Connection.Grid,
	}
}

// Step advances the animation by one frame.
func (s *Simulation) Step(sig Signals, elapsed time.Duration) {
	s.State.Advance(sig, elapsed)
}

// Project places the particles for vp. The returned slice is only valid
// until the next call.
func (s *Simulation) Project(vp Viewport) []ProjectedPoint {
	pts := s.Projector.Project(s.Particles, &s.State, vp, s.projected)
	if pts != nil {
		s.projected = pts
	}
	return pts
}

// Edges returns the plexus edges for a projection made by Project.
func (s *Simulation) Edges(points []ProjectedPoint) iter.Seq[Edge] {
	if s.useGrid {
		return GridConnections(points, s.threshold, s.State.Expansion.Current)
	}
	return Connections(points, s.threshold, s.State.Expansion.Current)
}
