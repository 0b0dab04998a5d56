package orb

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	cyan   = rgb(34, 211, 238)
	violet = rgb(167, 139, 250)
	navy   = rgb(20, 30, 90)

	// Palette is the highlight set blended in while listening:
	// blue, red, yellow, green.
	Palette = [ColorGroups]colorful.Color{
		rgb(66, 133, 244),
		rgb(234, 67, 53),
		rgb(251, 188, 5),
		rgb(52, 168, 83),
	}
)

// mixCutoff skips blending for mix values too small to show.
const mixCutoff = 0.01

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// BaseColor is the hue of the orb before any palette mixing. Theme only
// matters while idle.
func BaseColor(sig Signals) colorful.Color {
	sig = sig.Normalized()
	switch {
	case sig.State == Processing:
		return violet
	case sig.State == Idle && sig.Theme == Light:
		return navy
	default:
		return cyan
	}
}

// PointColor blends base toward the particle's palette entry by mix and
// applies alpha.
func PointColor(base colorful.Color, group int, mix, alpha float64) color.NRGBA {
	c := base
	if mix > mixCutoff && group >= 0 && group < ColorGroups {
		c = base.BlendRgb(Palette[group], clamp01(mix))
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: Alpha8(alpha)}
}

// Alpha8 converts a fade factor to an 8-bit alpha. Factors above 1 (close
// front-facing points and edges) saturate to opaque.
func Alpha8(alpha float64) uint8 {
	return uint8(clamp01(alpha)*255 + 0.5)
}
