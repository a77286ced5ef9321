package host

import "github.com/retroenv/retrochip8/internal/chip8"

// Event is an input event sent by a frontend to the machine.
type Event interface {
	event()
}

// KeyEvent reports a keypad key state change.
type KeyEvent struct {
	Key     chip8.Key
	Pressed bool
	Repeat  bool // generated by key repeat of the host
}

// PauseEvent toggles the pause state.
type PauseEvent struct{}

// ResetEvent restarts the loaded program.
type ResetEvent struct{}

// QuitEvent stops the machine.
type QuitEvent struct{}

func (KeyEvent) event()   {}
func (PauseEvent) event() {}
func (ResetEvent) event() {}
func (QuitEvent) event()  {}
