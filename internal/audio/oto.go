//go:build !headless

package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/retroenv/retrogolib/log"
)

// Player outputs a Tone through the default audio device.
type Player struct {
	logger *log.Logger
	tone   *Tone
	ctx    *oto.Context
	player *oto.Player
	mu     sync.Mutex
}

// New opens the audio device and starts streaming the tone. The tone is
// silent until SetActive is called.
func New(logger *log.Logger, frequency, volume float64) (*Player, error) {
	options := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(options)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	p := &Player{
		logger: logger,
		tone:   NewTone(frequency, volume),
		ctx:    ctx,
	}
	p.player = ctx.NewPlayer(p.tone)
	p.player.Play()

	logger.Debug("Audio output started",
		log.Int("sample_rate", SampleRate),
		log.Int("frequency", int(frequency)))
	return p, nil
}

// SetActive starts or stops the buzzer tone.
func (p *Player) SetActive(active bool) {
	p.tone.SetActive(active)
}

// Close stops the audio output.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return nil
	}
	p.tone.SetActive(false)
	err := p.player.Close()
	p.player = nil
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
