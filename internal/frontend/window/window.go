//go:build !headless

package window

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/screenshot"
	"github.com/retroenv/retrogolib/log"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

const overlayMargin = 8

var overlayColor = color.RGBA{R: 0xFF, G: 0x40, B: 0x40, A: 0xFF}

// Sender receives the input events of the window.
type Sender interface {
	Send(event host.Event)
}

// Options configures the window.
type Options struct {
	Title         string
	Name          string // program name used for screenshot files
	Scale         int
	Foreground    color.RGBA
	Background    color.RGBA
	Keys          config.Keys
	ScreenshotDir string
}

// Window shows the display in a desktop window and forwards keyboard
// input. It implements host.Presenter and ebiten.Game.
type Window struct {
	logger   *log.Logger
	sender   Sender
	options  Options
	bindings bindings
	ctx      context.Context

	mu     sync.Mutex
	frame  chip8.Frame
	status host.Status

	image  *ebiten.Image
	pixels []byte

	clipboardOnce sync.Once
	clipboardOK   bool
}

// New returns a new window frontend that sends input events to sender.
func New(logger *log.Logger, sender Sender, options Options) (*Window, error) {
	b, err := resolveBindings(options.Keys)
	if err != nil {
		return nil, err
	}
	if options.Scale <= 0 {
		options.Scale = 1
	}

	return &Window{
		logger:   logger,
		sender:   sender,
		options:  options,
		bindings: b,
		pixels:   make([]byte, chip8.DisplayWidth*chip8.DisplayHeight*bytesPerPixel),
	}, nil
}

// Present stores the frame for the next draw.
func (w *Window) Present(frame chip8.Frame) {
	w.mu.Lock()
	w.frame = frame
	w.mu.Unlock()
}

// SetStatus stores the run state shown as overlay.
func (w *Window) SetStatus(status host.Status) {
	w.mu.Lock()
	w.status = status
	w.mu.Unlock()
}

// Run opens the window and runs the event loop until the window is closed
// or the context is cancelled. It has to be called from the main goroutine.
func (w *Window) Run(ctx context.Context) error {
	w.ctx = ctx

	ebiten.SetWindowSize(chip8.DisplayWidth*w.options.Scale, chip8.DisplayHeight*w.options.Scale)
	ebiten.SetWindowTitle(w.options.Title)
	ebiten.SetWindowResizable(true)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetRunnableOnUnfocused(true)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Update processes the keyboard input.
func (w *Window) Update() error {
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(w.bindings.quit) {
		w.sender.Send(host.QuitEvent{})
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(w.bindings.pause) {
		w.sender.Send(host.PauseEvent{})
	}
	if inpututil.IsKeyJustPressed(w.bindings.reset) {
		w.sender.Send(host.ResetEvent{})
	}
	if inpututil.IsKeyJustPressed(w.bindings.screenshot) {
		w.saveScreenshot()
	}

	for key, chipKey := range w.bindings.keypad {
		switch {
		case inpututil.IsKeyJustPressed(key):
			w.sender.Send(host.KeyEvent{Key: chipKey, Pressed: true})
		case inpututil.IsKeyJustReleased(key):
			w.sender.Send(host.KeyEvent{Key: chipKey, Pressed: false})
		}
	}
	return nil
}

// Draw renders the last presented frame scaled to the screen.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(chip8.DisplayWidth, chip8.DisplayHeight)
	}

	w.mu.Lock()
	frame := w.frame
	status := w.status
	w.mu.Unlock()

	fillPixels(w.pixels, frame, w.options.Foreground, w.options.Background)
	w.image.WritePixels(w.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.options.Scale), float64(w.options.Scale))
	screen.DrawImage(w.image, op)

	if message := overlayText(status); message != "" {
		face := basicfont.Face7x13
		y := overlayMargin + face.Metrics().Ascent.Ceil()
		for _, line := range strings.Split(message, "\n") {
			text.Draw(screen, line, face, overlayMargin, y, overlayColor)
			y += face.Metrics().Height.Ceil()
		}
	}
}

// Layout returns the fixed scaled display size.
func (w *Window) Layout(_, _ int) (int, int) {
	return chip8.DisplayWidth * w.options.Scale, chip8.DisplayHeight * w.options.Scale
}

func overlayText(status host.Status) string {
	switch {
	case status.Halted:
		return fmt.Sprintf("HALTED\n%v", status.Err)
	case status.Paused:
		return "PAUSED"
	default:
		return ""
	}
}

// saveScreenshot writes the current frame to the screenshot directory and
// copies the image to the clipboard.
func (w *Window) saveScreenshot() {
	w.mu.Lock()
	frame := w.frame
	w.mu.Unlock()

	shot := screenshot.Options{
		Foreground: w.options.Foreground,
		Background: w.options.Background,
		Scale:      w.options.Scale,
	}

	var data []byte
	if w.options.ScreenshotDir != "" {
		path, encoded, err := screenshot.Save(w.options.ScreenshotDir, w.options.Name, frame, shot)
		if err != nil {
			w.logger.Error("Saving screenshot failed", log.Err(err))
			return
		}
		w.logger.Info("Screenshot saved", log.String("path", path))
		data = encoded
	} else {
		encoded, err := screenshot.Encode(frame, shot)
		if err != nil {
			w.logger.Error("Encoding screenshot failed", log.Err(err))
			return
		}
		data = encoded
	}

	w.clipboardOnce.Do(func() {
		w.clipboardOK = clipboard.Init() == nil
	})
	if !w.clipboardOK {
		w.logger.Warn("Clipboard is not available")
		return
	}
	clipboard.Write(clipboard.FmtImage, data)
	w.logger.Info("Screenshot copied to clipboard")
}
