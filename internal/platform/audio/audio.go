// Package audio turns engine cue events into short synthesized tones.
// Audio is optional: when the output device cannot be opened the game runs silently.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/coin-catcher/internal/config"
	"github.com/vovakirdan/coin-catcher/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a fire-and-forget sound trigger.
type Cue int

const (
	CueCoin Cue = iota // Single short beep
	CueLife            // Dual-tone beep
)

// String returns the name of the cue.
func (c Cue) String() string {
	switch c {
	case CueCoin:
		return "coin"
	case CueLife:
		return "life"
	default:
		return "unknown"
	}
}

// Cues maps step events to the cues they trigger, in order.
func Cues(events []core.EventKind) []Cue {
	var cues []Cue
	for _, e := range events {
		switch e {
		case core.EventCoinCollected:
			cues = append(cues, CueCoin)
		case core.EventLifeCollected:
			cues = append(cues, CueLife)
		}
	}
	return cues
}

// Player plays cues on the default speaker.
type Player struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	initialized bool
	muted       bool
}

// NewPlayer creates a player. Call Init before the first cue.
func NewPlayer(cfg config.AudioConfig) *Player {
	return &Player{cfg: cfg, muted: !cfg.Enabled}
}

// Init opens the speaker. A disabled or muted player never touches the device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || p.muted {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	p.initialized = true
	return nil
}

// SetMuted silences or re-enables cues.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// Muted reports whether cues are currently silenced.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Play starts a cue without waiting for it to finish.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}

	s, err := Stream(c, p.cfg)
	if err != nil {
		return
	}
	speaker.Play(s)
}

// HandleEvents plays the cues raised by one step.
func (p *Player) HandleEvents(events []core.EventKind) {
	for _, c := range Cues(events) {
		p.Play(c)
	}
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// Stream builds the finite streamer for a cue.
func Stream(c Cue, cfg config.AudioConfig) (beep.Streamer, error) {
	var freqs []float64
	switch c {
	case CueCoin:
		freqs = []float64{cfg.CoinToneHz}
	case CueLife:
		freqs = cfg.LifeToneHz
	default:
		return nil, fmt.Errorf("audio: unknown cue %d", c)
	}
	if len(freqs) == 0 {
		return nil, fmt.Errorf("audio: no tones configured for %s cue", c)
	}

	tones := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		sine, err := generators.SineTone(sampleRate, f)
		if err != nil {
			return nil, fmt.Errorf("audio: %s tone %.0fHz: %w", c, f, err)
		}
		// Equal share per tone keeps the mix within [-1, 1].
		tones = append(tones, newVolume(sine, 1/float64(len(freqs))))
	}

	n := sampleRate.N(time.Duration(cfg.DurationMs) * time.Millisecond)
	return newVolume(beep.Take(n, beep.Mix(tones...)), cfg.Volume), nil
}

// newVolume scales a streamer linearly. math.Log2(0) is -Inf, so zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
