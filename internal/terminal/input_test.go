package terminal

import (
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrogolib/assert"
)

var testBindings = Bindings{
	Keypad: map[string]chip8.Key{
		"1": chip8.Key1,
		"q": chip8.Key4,
		"x": chip8.Key0,
	},
	Pause:      "p",
	Reset:      "backspace",
	Screenshot: "o",
	Quit:       "escape",
}

func TestInput_KeyHold(t *testing.T) {
	sender := &mockSender{}
	in := NewInput(testBindings, sender, 100*time.Millisecond)
	start := time.Now()

	assert.True(t, in.Handle([]byte("Q"), start))
	assert.True(t, in.Handle([]byte("q"), start.Add(50*time.Millisecond)))
	assert.Len(t, sender.events, 2)
	assert.Equal(t, host.Event(host.KeyEvent{Key: chip8.Key4, Pressed: true}), sender.events[0])
	assert.Equal(t, host.Event(host.KeyEvent{Key: chip8.Key4, Pressed: true, Repeat: true}), sender.events[1])

	// the hold time restarts with every repeat
	in.Release(start.Add(120 * time.Millisecond))
	assert.Len(t, sender.events, 2)

	in.Release(start.Add(150 * time.Millisecond))
	assert.Len(t, sender.events, 3)
	assert.Equal(t, host.Event(host.KeyEvent{Key: chip8.Key4, Pressed: false}), sender.events[2])
}

func TestInput_Functions(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected host.Event
		running  bool
	}{
		{"pause", []byte("p"), host.PauseEvent{}, true},
		{"reset with delete", []byte{deleteKey}, host.ResetEvent{}, true},
		{"reset with backspace", []byte{backspace}, host.ResetEvent{}, true},
		{"quit with escape", []byte{escape}, host.QuitEvent{}, false},
		{"quit with ctrl-c", []byte{ctrlC}, host.QuitEvent{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &mockSender{}
			in := NewInput(testBindings, sender, 0)
			assert.Equal(t, tt.running, in.Handle(tt.input, time.Now()))
			assert.Len(t, sender.events, 1)
			assert.Equal(t, tt.expected, sender.events[0])
		})
	}
}

func TestInput_Screenshot(t *testing.T) {
	sender := &mockSender{}
	in := NewInput(testBindings, sender, 0)
	taken := 0
	in.screenshot = func() { taken++ }

	assert.True(t, in.Handle([]byte("o"), time.Now()))
	assert.Equal(t, 1, taken)
	assert.Empty(t, sender.events)
}

func TestInput_SkipsControlSequences(t *testing.T) {
	sender := &mockSender{}
	in := NewInput(testBindings, sender, 0)

	// cursor up followed by key 1
	assert.True(t, in.Handle([]byte("\x1b[A1"), time.Now()))
	assert.Len(t, sender.events, 1)
	assert.Equal(t, host.Event(host.KeyEvent{Key: chip8.Key1, Pressed: true}), sender.events[0])
}

func TestInput_UnboundKeys(t *testing.T) {
	sender := &mockSender{}
	in := NewInput(testBindings, sender, 0)
	assert.True(t, in.Handle([]byte("zk\x01"), time.Now()))
	assert.Empty(t, sender.events)
}

func TestKeyName(t *testing.T) {
	assert.Equal(t, "a", keyName('A'))
	assert.Equal(t, "space", keyName(' '))
	assert.Equal(t, "enter", keyName('\r'))
	assert.Equal(t, "4", keyName('4'))
	assert.Equal(t, "", keyName(0x01))
	assert.Equal(t, "", keyName(0x80))
}
