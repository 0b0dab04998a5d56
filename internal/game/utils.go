package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/iburimskiy/voice-orb/internal/orb"
)

var (
	darkBackground  = color.RGBA{R: 0x0B, G: 0x0F, B: 0x1A, A: 255}
	lightBackground = color.RGBA{R: 0xF8, G: 0xFA, B: 0xFC, A: 255}
)

// Background is the page colour behind the orb for a theme.
func Background(t orb.Theme) color.Color {
	if t == orb.Light {
		return lightBackground
	}
	return darkBackground
}

// statusLine is the caption shown under the orb.
func statusLine(s orb.OperatingState) string {
	switch s {
	case orb.Listening:
		return "Listening..."
	case orb.Processing:
		return "Processing..."
	default:
		return "Awaiting Command"
	}
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
