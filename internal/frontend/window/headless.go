//go:build headless

package window

import (
	"context"
	"errors"
	"image/color"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnavailable is returned by New in builds without window support.
var ErrUnavailable = errors.New("window frontend is not available in headless builds")

// Sender receives the input events of the window.
type Sender interface {
	Send(event host.Event)
}

// Options configures the window.
type Options struct {
	Title         string
	Name          string
	Scale         int
	Foreground    color.RGBA
	Background    color.RGBA
	Keys          config.Keys
	ScreenshotDir string
}

// Window is not available in headless builds.
type Window struct{}

// New returns ErrUnavailable.
func New(*log.Logger, Sender, Options) (*Window, error) {
	return nil, ErrUnavailable
}

// Present does nothing.
func (w *Window) Present(chip8.Frame) {}

// SetStatus does nothing.
func (w *Window) SetStatus(host.Status) {}

// Run returns ErrUnavailable.
func (w *Window) Run(context.Context) error {
	return ErrUnavailable
}
