package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

const (
	WindowWidth  = 1024
	WindowHeight = 768

	// Particle field
	ParticleCount = 600
	BaseRadius    = 200

	// Projection
	FieldOfView = 400
	Tilt        = 0.2
	// DepthPadding is added to the base radius to push the sphere behind the camera plane.
	DepthPadding = 100
	// MaxExpansion caps how far the sphere may swell while listening.
	MaxExpansion = 2.2

	// Plexus
	ConnectionDistance = 40
	LineWidth          = 0.5

	// Audio
	VisualRingSize = 8192
	LevelBlockSize = 1024
	MaxAmplitude   = 150
)

// Config holds the tunables read from an optional TOML file.
type Config struct {
	Window     Window     `toml:"window"`
	Orb        Orb        `toml:"orb"`
	Connection Connection `toml:"connections"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type Orb struct {
	Particles   int     `toml:"particles"`
	BaseRadius  float64 `toml:"base_radius"`
	FieldOfView float64 `toml:"fov"`
	Tilt        float64 `toml:"tilt"`
	// Seed for particle placement; 0 picks one from the clock.
	Seed int64 `toml:"seed"`
}

type Connection struct {
	Distance float64 `toml:"distance"`
	Width    float64 `toml:"width"`
	// Grid switches the plexus search to the spatial hash.
	Grid bool `toml:"grid"`
}

var ErrInvalid = errors.New("invalid config")

func Default() Config {
	return Config{
		Window: Window{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  "Voice Orb - L: listen, P: process, I: idle, T: theme, O: open audio, Esc/Q: quit",
		},
		Orb: Orb{
			Particles:   ParticleCount,
			BaseRadius:  BaseRadius,
			FieldOfView: FieldOfView,
			Tilt:        Tilt,
		},
		Connection: Connection{
			Distance: ConnectionDistance,
			Width:    LineWidth,
		},
	}
}

// Load reads path on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch {
	case c.Orb.Particles <= 0:
		return fmt.Errorf("%w: orb.particles must be positive, got %d", ErrInvalid, c.Orb.Particles)
	case c.Orb.BaseRadius <= 0:
		return fmt.Errorf("%w: orb.base_radius must be positive, got %g", ErrInvalid, c.Orb.BaseRadius)
	case c.Orb.FieldOfView <= 0:
		return fmt.Errorf("%w: orb.fov must be positive, got %g", ErrInvalid, c.Orb.FieldOfView)
	case c.nearestDepth() <= 0:
		// the front of a fully expanded sphere would reach the camera
		return fmt.Errorf("%w: orb.base_radius %g too large for orb.fov %g", ErrInvalid, c.Orb.BaseRadius, c.Orb.FieldOfView)
	case c.Connection.Distance < 0:
		return fmt.Errorf("%w: connections.distance must not be negative, got %g", ErrInvalid, c.Connection.Distance)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	return nil
}

// nearestDepth is the projection denominator for the closest point of the
// sphere at full expansion.
func (c Config) nearestDepth() float64 {
	return c.Orb.FieldOfView + c.Orb.BaseRadius + DepthPadding - c.Orb.BaseRadius*MaxExpansion
}
