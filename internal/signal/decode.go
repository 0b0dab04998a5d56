package signal

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/iburimskiy/voice-orb/internal/config"
	"github.com/iburimskiy/voice-orb/internal/orb"
)

// Message is one line of the assistant's status channel.
type Message struct {
	Type  string  `json:"type"`
	State string  `json:"state,omitempty"`
	Level float64 `json:"level,omitempty"`
	Theme string  `json:"theme,omitempty"`
}

// AmplitudeFromLevel scales a capture level to the orb's amplitude range.
func AmplitudeFromLevel(level float64) float64 {
	if math.IsNaN(level) || level < 0 {
		return 0
	}
	return math.Min(level*25, config.MaxAmplitude)
}

// Apply writes one message to the bus. Unknown types are ignored.
func (m Message) Apply(b *Bus) {
	switch m.Type {
	case "state":
		b.SetState(orb.ParseState(m.State))
	case "volume":
		b.SetAmplitude(AmplitudeFromLevel(m.Level))
	case "theme":
		b.SetTheme(orb.ParseTheme(m.Theme))
	}
}

// Decode reads JSON lines from r until EOF or ctx is done. Lines that fail to
// parse are logged and skipped.
func Decode(ctx context.Context, r io.Reader, b *Bus) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var m Message
		if err := json.Unmarshal(line, &m); err != nil {
			log.Printf("[signal] skipping malformed line %q: %v", line, err)
			continue
		}
		m.Apply(b)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read signals: %w", err)
	}
	return nil
}
