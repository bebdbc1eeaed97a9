// Package sound plays a short click whenever the puzzle commits a move.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/phanxgames/twisty"
)

const (
	sampleRate    = beep.SampleRate(44100)
	clickDuration = 80 * time.Millisecond
	clickVolume   = 0.4
)

// Player mixes move clicks into the speaker. The zero value is not usable;
// call New.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	frequency   float64
	initialized bool
	logger      *log.Logger
}

// New creates a player for clicks at the given frequency in Hz. A nil logger
// uses the default charm logger.
func New(frequency float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		mixer:     &beep.Mixer{},
		frequency: frequency,
		logger:    logger,
	}
}

// Init opens the speaker and starts the mixer. Hosts treat a failure as
// non-fatal and keep running silently.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return errors.Wrap(err, "init speaker")
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Click queues one click. It is a no-op before Init.
func (p *Player) Click() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, err := NewClick(sampleRate, p.frequency, clickDuration)
	if err != nil {
		p.logger.Debug("click dropped", "err", err)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// EmitMove implements twisty.EventSink.
func (p *Player) EmitMove(e twisty.MoveEvent) {
	if e.Type == twisty.MoveCommitted {
		p.Click()
	}
}

// Close silences the mixer.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// NewClick returns a sine tone of length d that decays linearly to silence.
func NewClick(rate beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, errors.Wrapf(err, "click tone %v Hz", freq)
	}
	n := rate.N(d)
	shaped := &decay{streamer: beep.Take(n, tone), total: n}
	return &effects.Volume{Streamer: shaped, Base: 2, Volume: math.Log2(clickVolume)}, nil
}

// decay scales samples from 1 at the start down to 0 at total.
type decay struct {
	streamer beep.Streamer
	position int
	total    int
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1 - float64(d.position)/float64(d.total)
		if g < 0 {
			g = 0
		}
		samples[i][0] *= g
		samples[i][1] *= g
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }
