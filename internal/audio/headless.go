//go:build headless

package audio

import (
	"errors"

	"github.com/retroenv/retrogolib/log"
)

// ErrUnavailable is returned by New in builds without audio support.
var ErrUnavailable = errors.New("audio output is not available in headless builds")

// Player is not available in headless builds.
type Player struct{}

// New returns ErrUnavailable.
func New(_ *log.Logger, _, _ float64) (*Player, error) {
	return nil, ErrUnavailable
}

// SetActive does nothing.
func (p *Player) SetActive(bool) {}

// Close does nothing.
func (p *Player) Close() error {
	return nil
}
