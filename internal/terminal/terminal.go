// Package terminal implements a text frontend that renders the display
// with Unicode block characters and reads the keypad from the terminal.
package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/screenshot"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	clearLine   = "\x1b[K"

	releaseInterval = 20 * time.Millisecond
)

// Options configures the terminal frontend.
type Options struct {
	Bindings      Bindings
	HoldTime      time.Duration
	Name          string // program name used for screenshot files
	ScreenshotDir string
	Screenshot    screenshot.Options
}

// Terminal renders frames to the output and reads key input from stdin.
// It implements host.Presenter.
type Terminal struct {
	logger  *log.Logger
	out     io.Writer
	options Options
	input   *Input

	mu     sync.Mutex
	frame  chip8.Frame
	status host.Status
}

// New returns a new terminal frontend writing to out and sending input
// events to sender.
func New(logger *log.Logger, out io.Writer, sender Sender, options Options) *Terminal {
	t := &Terminal{
		logger:  logger,
		out:     out,
		options: options,
		input:   NewInput(options.Bindings, sender, options.HoldTime),
	}
	t.input.screenshot = t.saveScreenshot
	return t
}

// Present draws the frame.
func (t *Terminal) Present(frame chip8.Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.frame = frame
	t.draw()
}

// SetStatus updates the status line below the display.
func (t *Terminal) SetStatus(status host.Status) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status = status
	t.draw()
}

func (t *Terminal) draw() {
	// raw mode output needs explicit carriage returns
	text := cursorHome + Render(t.frame) + statusLine(t.status) + clearLine
	buf := make([]byte, 0, len(text)+chip8.DisplayHeight)
	for i := range len(text) {
		if text[i] == '\n' {
			buf = append(buf, '\r')
		}
		buf = append(buf, text[i])
	}
	_, _ = t.out.Write(buf)
}

func statusLine(status host.Status) string {
	switch {
	case status.Halted:
		return fmt.Sprintf("HALTED: %v", status.Err)
	case status.Paused:
		return "PAUSED"
	default:
		return ""
	}
}

func (t *Terminal) saveScreenshot() {
	if t.options.ScreenshotDir == "" {
		return
	}

	t.mu.Lock()
	frame := t.frame
	t.mu.Unlock()

	path, _, err := screenshot.Save(t.options.ScreenshotDir, t.options.Name, frame, t.options.Screenshot)
	if err != nil {
		t.logger.Error("Saving screenshot failed", log.Err(err))
		return
	}
	t.logger.Info("Screenshot saved", log.String("path", path))
}

// Run switches stdin to raw mode and processes key input until the context
// is cancelled or a quit key is pressed. The terminal state is restored on
// return.
func (t *Terminal) Run(ctx context.Context, stdin *os.File) error {
	fd := int(stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting terminal raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		_, _ = io.WriteString(t.out, showCursor+"\r\n")
	}()
	_, _ = io.WriteString(t.out, clearScreen+hideCursor)

	reads := make(chan []byte)
	go readInput(ctx, stdin, reads)

	ticker := time.NewTicker(releaseInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case data, ok := <-reads:
			if !ok {
				t.input.sender.Send(host.QuitEvent{})
				return nil
			}
			if !t.input.Handle(data, time.Now()) {
				return nil
			}

		case now := <-ticker.C:
			t.input.Release(now)
		}
	}
}

// readInput forwards all reads from r until an error occurs. The channel
// is closed on read errors.
func readInput(ctx context.Context, r io.Reader, reads chan<- []byte) {
	defer close(reads)

	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			select {
			case reads <- data:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// IsTerminal returns whether the file is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
