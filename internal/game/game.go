// Package game hosts the orb in an ebiten window and wires keyboard and
// audio input into the signal bus.
package game

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/voice-orb/internal/audio"
	"github.com/iburimskiy/voice-orb/internal/config"
	"github.com/iburimskiy/voice-orb/internal/engine"
	"github.com/iburimskiy/voice-orb/internal/orb"
	"github.com/iburimskiy/voice-orb/internal/signal"
)

type Game struct {
	cfg    config.Config
	bus    *signal.Bus
	player *audio.Player
	drv    *driver
	loop   *engine.Loop

	// audioDriven is set while playback owns the amplitude signal.
	audioDriven bool
	opened      time.Time
	lastErr     error
}

func New(cfg config.Config, sim *orb.Simulation, bus *signal.Bus, player *audio.Player) *Game {
	drv := &driver{}
	return &Game{
		cfg:    cfg,
		bus:    bus,
		player: player,
		drv:    drv,
		loop:   engine.NewLoop(sim, bus, drv, cfg.Connection.Width),
		opened: time.Now(),
	}
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.cfg.Window.Width, g.cfg.Window.Height)
	ebiten.SetWindowTitle(g.cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g.loop.Start()
	defer g.Close()
	return ebiten.RunGame(g)
}

func (g *Game) Close() {
	g.loop.Stop()
	g.player.Close()
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.loop.Stop()
		return ebiten.Termination
	}

	sig := g.bus.Snapshot()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		if sig.State == orb.Listening {
			g.bus.SetState(orb.Idle)
		} else {
			g.bus.SetState(orb.Listening)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.bus.SetState(orb.Processing)
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		g.bus.SetState(orb.Idle)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.bus.ToggleTheme()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.player.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		if err := g.openAudio(); err != nil {
			g.lastErr = err
			log.Printf("[audio] %v", err)
		}
	}

	g.updateAmplitude()
	return nil
}

func (g *Game) openAudio() error {
	path, err := audio.PickFile()
	if err != nil || path == "" {
		return err
	}
	return g.player.Play(path)
}

// updateAmplitude feeds playback loudness to the bus while audio plays and
// zeroes it once when playback stops, leaving other writers alone otherwise.
func (g *Game) updateAmplitude() {
	if g.player.Playing() {
		g.bus.SetAmplitude(signal.AmplitudeFromLevel(g.player.Level()))
		g.audioDriven = true
		return
	}
	if g.audioDriven {
		g.bus.SetAmplitude(0)
		g.audioDriven = false
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	sig := g.bus.Snapshot()
	g.drv.fire(screenSurface{img: screen, bg: Background(sig.Theme)})

	st := g.loop.Stats()
	status := fmt.Sprintf("%s | %s | amp %.0f | %d pts %d edges | %.0f fps | %s",
		statusLine(sig.State), sig.Theme, sig.Amplitude, st.Points, st.Edges,
		ebiten.ActualFPS(), formatDuration(time.Since(g.opened)))
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

// Layout follows the window so the orb recentres on resize.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
