package orb

import (
	"math"
	"strings"
	"time"

	"github.com/iburimskiy/voice-orb/internal/config"
)

type OperatingState int

const (
	Idle OperatingState = iota
	Listening
	Processing
)

func (s OperatingState) String() string {
	switch s {
	case Listening:
		return "listening"
	case Processing:
		return "processing"
	default:
		return "idle"
	}
}

// ParseState maps the wire name of a state. Anything unknown is idle.
func ParseState(name string) OperatingState {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "listening":
		return Listening
	case "processing":
		return Processing
	default:
		return Idle
	}
}

type Theme int

const (
	Dark Theme = iota
	Light
)

func (t Theme) String() string {
	if t == Light {
		return "light"
	}
	return "dark"
}

// ParseTheme maps the wire name of a theme. Anything unknown is dark.
func ParseTheme(name string) Theme {
	if strings.EqualFold(strings.TrimSpace(name), "light") {
		return Light
	}
	return Dark
}

// Signals is the snapshot of external inputs read at the start of a frame.
type Signals struct {
	State     OperatingState
	Amplitude float64
	Theme     Theme
}

// Normalized returns a copy with out-of-range enums folded to idle/dark and
// a negative or non-finite amplitude replaced by 0.
func (s Signals) Normalized() Signals {
	if s.State < Idle || s.State > Processing {
		s.State = Idle
	}
	if s.Theme != Light {
		s.Theme = Dark
	}
	if math.IsNaN(s.Amplitude) || math.IsInf(s.Amplitude, 0) || s.Amplitude < 0 {
		s.Amplitude = 0
	}
	return s
}

const (
	MaxExpansion = config.MaxExpansion

	// Damping per displayed frame. Colour and size settle faster than
	// expansion and spin.
	driftFactor = 0.05
	snapFactor  = 0.1

	idleSpeed       = 0.002
	listeningSpeed  = 0.015
	processingSpeed = 0.04

	idleRadius   = 1.5
	activeRadius = 4.0

	// Period divisor of the idle breathing, in milliseconds.
	breathPeriodMs = 2000
	breathDepth    = 0.05
)

// Smoothed is a value that chases its target by a fixed fraction per step.
type Smoothed struct {
	Current float64
	Target  float64
}

func (s *Smoothed) step(factor float64) {
	s.Current += (s.Target - s.Current) * factor
}

// Targets holds the goal values derived from one signal snapshot.
type Targets struct {
	Expansion        float64
	Speed            float64
	ColorMix         float64
	RadiusMultiplier float64
}

// TargetsFor derives the animation goals for a snapshot. elapsed drives the
// idle breathing and should be wall-clock time, not a frame count.
func TargetsFor(sig Signals, elapsed time.Duration) Targets {
	sig = sig.Normalized()
	switch sig.State {
	case Listening:
		return Targets{
			Expansion:        math.Min(1.2+sig.Amplitude/70, MaxExpansion),
			Speed:            listeningSpeed,
			ColorMix:         1,
			RadiusMultiplier: activeRadius,
		}
	case Processing:
		return Targets{
			Expansion:        0.9,
			Speed:            processingSpeed,
			ColorMix:         0,
			RadiusMultiplier: idleRadius,
		}
	default:
		ms := float64(elapsed) / float64(time.Millisecond)
		return Targets{
			Expansion:        1 + breathDepth*math.Sin(ms/breathPeriodMs),
			Speed:            idleSpeed,
			ColorMix:         0,
			RadiusMultiplier: idleRadius,
		}
	}
}

// AnimationState is the per-instance simulation state. It has a single
// writer, the frame loop, and is advanced exactly once per displayed frame.
type AnimationState struct {
	Rotation         float64
	Expansion        Smoothed
	Speed            Smoothed
	ColorMix         Smoothed
	RadiusMultiplier Smoothed

	// Signals seen by the last Advance, kept for colouring.
	Signals Signals
}

// NewAnimationState returns the cold-start state of an idle orb.
func NewAnimationState() AnimationState {
	return AnimationState{
		Expansion:        Smoothed{Current: 1, Target: 1},
		Speed:            Smoothed{Current: idleSpeed, Target: idleSpeed},
		ColorMix:         Smoothed{},
		RadiusMultiplier: Smoothed{Current: idleRadius, Target: idleRadius},
	}
}

// Advance moves the state one frame toward the targets implied by sig.
// Smoothing factors apply per call and are not scaled by frame time.
func (a *AnimationState) Advance(sig Signals, elapsed time.Duration) {
	sig = sig.Normalized()
	a.Signals = sig

	t := TargetsFor(sig, elapsed)
	a.Expansion.Target = t.Expansion
	a.Speed.Target = t.Speed
	a.ColorMix.Target = t.ColorMix
	a.RadiusMultiplier.Target = t.RadiusMultiplier

	a.Expansion.step(driftFactor)
	a.Speed.step(driftFactor)
	a.ColorMix.step(snapFactor)
	a.RadiusMultiplier.step(snapFactor)

	a.Expansion.Current = math.Min(a.Expansion.Current, MaxExpansion)
	a.ColorMix.Current = clamp01(a.ColorMix.Current)

	a.Rotation += a.Speed.Current
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
