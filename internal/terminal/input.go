package terminal

import (
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/host"
)

// DefaultHoldTime is the time a keypad key stays pressed after the last
// received key byte. Terminals report no key release events, keys are
// released once this time elapsed without a repeat.
const DefaultHoldTime = 150 * time.Millisecond

const (
	ctrlC     = 0x03
	backspace = 0x08
	escape    = 0x1b
	deleteKey = 0x7f
)

// Sender receives the events generated from the input.
type Sender interface {
	Send(event host.Event)
}

// Bindings maps host key names to keypad keys and emulator functions.
type Bindings struct {
	Keypad     map[string]chip8.Key
	Pause      string
	Reset      string
	Screenshot string
	Quit       string
}

// Input converts raw terminal input to machine events.
type Input struct {
	bindings   Bindings
	sender     Sender
	holdTime   time.Duration
	pressed    map[chip8.Key]time.Time
	screenshot func()
}

// NewInput returns a new input decoder that sends all events to sender.
func NewInput(bindings Bindings, sender Sender, holdTime time.Duration) *Input {
	if holdTime <= 0 {
		holdTime = DefaultHoldTime
	}
	return &Input{
		bindings: bindings,
		sender:   sender,
		holdTime: holdTime,
		pressed:  map[chip8.Key]time.Time{},
	}
}

// Handle processes the bytes of one read from the terminal. It returns
// false if the input requested to quit.
func (in *Input) Handle(data []byte, now time.Time) bool {
	for i := 0; i < len(data); i++ {
		b := data[i]
		if b == ctrlC {
			in.sender.Send(host.QuitEvent{})
			return false
		}

		// skip control sequences like cursor keys
		if b == escape && i+1 < len(data) && data[i+1] == '[' {
			i += 2
			for i < len(data) && (data[i] < 0x40 || data[i] > 0x7e) {
				i++
			}
			continue
		}

		if !in.handleKey(keyName(b), now) {
			return false
		}
	}
	return true
}

func (in *Input) handleKey(name string, now time.Time) bool {
	switch name {
	case "":
		return true
	case in.bindings.Quit:
		in.sender.Send(host.QuitEvent{})
		return false
	case in.bindings.Pause:
		in.sender.Send(host.PauseEvent{})
		return true
	case in.bindings.Reset:
		in.sender.Send(host.ResetEvent{})
		return true
	case in.bindings.Screenshot:
		if in.screenshot != nil {
			in.screenshot()
		}
		return true
	}

	key, ok := in.bindings.Keypad[name]
	if !ok {
		return true
	}
	_, repeat := in.pressed[key]
	in.pressed[key] = now
	in.sender.Send(host.KeyEvent{Key: key, Pressed: true, Repeat: repeat})
	return true
}

// Release releases all keys whose hold time elapsed.
func (in *Input) Release(now time.Time) {
	for key, last := range in.pressed {
		if now.Sub(last) < in.holdTime {
			continue
		}
		delete(in.pressed, key)
		in.sender.Send(host.KeyEvent{Key: key, Pressed: false})
	}
}

// keyName returns the host key name of an input byte as used in the key
// configuration, or an empty string for unsupported bytes.
func keyName(b byte) string {
	switch b {
	case escape:
		return "escape"
	case backspace, deleteKey:
		return "backspace"
	case ' ':
		return "space"
	case '\r', '\n':
		return "enter"
	case '\t':
		return "tab"
	}

	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	if b > ' ' && b < deleteKey {
		return string(rune(b))
	}
	return ""
}
