package orb

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/iburimskiy/voice-orb/internal/config"
)

// Viewport is the drawing surface size in device-independent pixels.
type Viewport struct {
	Width, Height int
}

func (v Viewport) Empty() bool { return v.Width <= 0 || v.Height <= 0 }

func (v Viewport) Center() r2.Vec {
	return r2.Vec{X: float64(v.Width) / 2, Y: float64(v.Height) / 2}
}

// ProjectedPoint is a particle placed on screen for the current frame only.
type ProjectedPoint struct {
	Pos        r2.Vec
	Z          float64
	Scale      float64
	ColorGroup int
}

// Alpha fades points that sit further back on the sphere.
func (p ProjectedPoint) Alpha() float64 {
	return math.Max(0.1, (p.Scale-0.5)*2)
}

// Projector maps sphere particles to screen space. It keeps no per-frame
// state, so one value can be shared by every frame of an engine.
type Projector struct {
	FieldOfView float64
	Tilt        float64
	// DepthOffset is the camera distance, normally base radius plus
	// config.DepthPadding.
	DepthOffset float64
}

func NewProjector(fov, tilt, baseRadius float64) Projector {
	return Projector{
		FieldOfView: fov,
		Tilt:        tilt,
		DepthOffset: baseRadius + config.DepthPadding,
	}
}

// Project transforms particles with the current rotation and expansion. The
// result reuses dst's backing array when it is large enough. An empty
// viewport yields nil so the caller can skip drawing the frame.
func (pr Projector) Project(particles []Particle, state *AnimationState, vp Viewport, dst []ProjectedPoint) []ProjectedPoint {
	if vp.Empty() {
		return nil
	}
	center := vp.Center()

	sinR, cosR := math.Sincos(state.Rotation)
	sinT, cosT := math.Sincos(pr.Tilt)
	exp := state.Expansion.Current

	dst = dst[:0]
	for _, p := range particles {
		// spin about the vertical axis
		rx := p.X*cosR - p.Z*sinR
		rz := p.X*sinR + p.Z*cosR
		// fixed tilt toward the viewer
		ty := p.Y*cosT - rz*sinT
		tz := p.Y*sinT + rz*cosT

		ex, ey, ez := rx*exp, ty*exp, tz*exp
		scale := pr.FieldOfView / (pr.FieldOfView + ez + pr.DepthOffset)

		dst = append(dst, ProjectedPoint{
			Pos:        r2.Add(r2.Scale(scale, r2.Vec{X: ex, Y: ey}), center),
			Z:          ez,
			Scale:      scale,
			ColorGroup: p.ColorGroup,
		})
	}
	return dst
}
