package main

import (
	"context"
	"errors"
	"flag"
	"image/color"
	"log"
	"math/rand"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/voice-orb/internal/audio"
	"github.com/iburimskiy/voice-orb/internal/config"
	"github.com/iburimskiy/voice-orb/internal/engine"
	"github.com/iburimskiy/voice-orb/internal/game"
	"github.com/iburimskiy/voice-orb/internal/orb"
	"github.com/iburimskiy/voice-orb/internal/raster"
	orbsignal "github.com/iburimskiy/voice-orb/internal/signal"
)

func main() {
	var (
		cfgPath   = flag.String("config", "", "TOML config file")
		audioPath = flag.String("audio", "", "audio file to play; its loudness drives the orb")
		signals   = flag.Bool("signals", false, "read JSON status lines from stdin")
		frames    = flag.Int("frames", 0, "render this many frames headless instead of opening a window")
		out       = flag.String("out", "frames", "output directory for headless frames")
		grid      = flag.Bool("grid", false, "use the spatial grid for plexus edges")
		seed      = flag.Int64("seed", 0, "particle placement seed, 0 for random")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *grid {
		cfg.Connection.Grid = true
	}
	if *seed != 0 {
		cfg.Orb.Seed = *seed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bus := orbsignal.NewBus()
	if *signals {
		go func() {
			if err := orbsignal.Decode(ctx, os.Stdin, bus); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("[signal] %v", err)
			}
		}()
	}

	var rng *rand.Rand
	if cfg.Orb.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Orb.Seed))
	}
	sim := orb.NewSimulation(cfg, rng)

	if *frames > 0 {
		if err := renderHeadless(ctx, cfg, sim, bus, *frames, *out); err != nil {
			log.Fatal(err)
		}
		return
	}

	player := audio.NewPlayer()
	if *audioPath != "" {
		if err := player.Play(*audioPath); err != nil {
			log.Printf("[audio] %v", err)
		}
	}

	g := game.New(cfg, sim, bus, player)
	if err := g.Run(); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

func renderHeadless(ctx context.Context, cfg config.Config, sim *orb.Simulation, bus *orbsignal.Bus, frames int, dir string) error {
	sched := &engine.ManualScheduler{}
	loop := engine.NewLoop(sim, bus, sched, cfg.Connection.Width)
	rec := &raster.Recorder{
		Canvas: raster.NewCanvas(cfg.Window.Width, cfg.Window.Height, game.Background(orb.Dark)),
		Sched:  sched,
		FPS:    60,
		Background: func() color.Color {
			return game.Background(bus.Snapshot().Theme)
		},
		Size: func() (int, int) {
			return cfg.Window.Width, cfg.Window.Height
		},
	}
	loop.Start()
	defer loop.Stop()
	return rec.Record(ctx, loop, frames, dir)
}
