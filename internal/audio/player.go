package audio

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/voice-orb/internal/config"
)

var ErrUnsupported = errors.New("unsupported file type")

// Player plays one file at a time through the speaker and exposes its tap.
type Player struct {
	mu       sync.Mutex
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *Tap
	initDone bool
	paused   bool
}

func NewPlayer() *Player { return &Player{} }

// PickFile asks the user for an audio file. A cancelled dialog returns "" and
// no error.
func PickFile() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", fmt.Errorf("select audio file: %w", err)
	}
	return filename, nil
}

func decode(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(f.Name())); ext {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// Play stops whatever is playing and starts path.
func (p *Player) Play(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open audio: %w", err)
	}
	streamer, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		p.initDone = true
	case p.format.SampleRate != format.SampleRate:
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("reinit speaker: %w", err)
		}
	default:
		speaker.Clear()
	}
	p.closeLocked()

	tap := NewTap(streamer, config.VisualRingSize)
	ctrl := &beep.Ctrl{Streamer: tap}
	p.file, p.streamer, p.format, p.ctrl, p.tap, p.paused = f, streamer, format, ctrl, tap, false

	// The callback runs under the speaker lock, which Play takes while
	// holding p.mu, so release resources off that goroutine.
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		go func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			if p.tap == tap {
				p.closeLocked()
			}
		}()
	})))
	log.Printf("[audio] playing %s (%d Hz)", filepath.Base(path), format.SampleRate)
	return nil
}

// TogglePause pauses or resumes playback. It does nothing when idle.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
}

// Playing reports whether a file is loaded and not paused.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tap != nil && !p.paused
}

// Level returns the loudness of the most recent output, 0 when nothing plays.
func (p *Player) Level() float64 {
	p.mu.Lock()
	tap := p.tap
	p.mu.Unlock()
	if tap == nil {
		return 0
	}
	return tap.Level(config.LevelBlockSize)
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initDone {
		speaker.Clear()
	}
	p.closeLocked()
}

func (p *Player) closeLocked() {
	if p.streamer != nil {
		_ = p.streamer.Close()
	}
	if p.file != nil {
		_ = p.file.Close()
	}
	p.file, p.streamer, p.ctrl, p.tap = nil, nil, nil, nil
}
