package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, chip8.TickRate, cfg.Emulator.TickRate)
	assert.Nil(t, cfg.Emulator.Seed)

	bindings, err := cfg.Keys.Bindings()
	assert.NoError(t, err)
	assert.Len(t, bindings, chip8.KeyCount)
	assert.Equal(t, chip8.KeyC, bindings["4"])
	assert.Equal(t, chip8.Key0, bindings["x"])
	assert.Equal(t, chip8.KeyF, bindings["v"])
}

func TestParse(t *testing.T) {
	input := `
emulator:
  tick_rate: 700
  seed: 1234
display:
  scale: 8
  foreground: "#33FF66"
audio:
  enabled: false
keys:
  keypad:
    "0": "Space"
    "5": "k"
  pause: "f1"
`
	cfg, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)
	assert.Equal(t, 700, cfg.Emulator.TickRate)
	assert.NotNil(t, cfg.Emulator.Seed)
	assert.Equal(t, uint64(1234), *cfg.Emulator.Seed)
	assert.Equal(t, 8, cfg.Display.Scale)
	assert.Equal(t, "#000000", cfg.Display.Background)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, "f1", cfg.Keys.Pause)
	assert.Equal(t, "backspace", cfg.Keys.Reset)

	// the keypad mapping replaces the defaults
	bindings, err := cfg.Keys.Bindings()
	assert.NoError(t, err)
	assert.Len(t, bindings, 2)
	assert.Equal(t, chip8.Key0, bindings["space"])
	assert.Equal(t, chip8.Key5, bindings["k"])

	fg, bg := cfg.Display.Colors()
	assert.Equal(t, color.RGBA{R: 0x33, G: 0xFF, B: 0x66, A: 0xFF}, fg)
	assert.Equal(t, color.RGBA{A: 0xFF}, bg)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Equal(t, Default().Display, cfg.Display)
	assert.Len(t, cfg.Keys.Keypad, chip8.KeyCount)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"tick rate", "emulator:\n  tick_rate: 0\n", "emulator.tick_rate"},
		{"scale", "display:\n  scale: 100\n", "display.scale"},
		{"foreground", "display:\n  foreground: \"#12\"\n", "display.foreground"},
		{"background", "display:\n  background: \"#GGGGGG\"\n", "display.background"},
		{"volume", "audio:\n  volume: 1.5\n", "audio.volume"},
		{"frequency", "audio:\n  frequency: -1\n", "audio.frequency"},
		{"keypad digit", "keys:\n  keypad:\n    \"G\": \"a\"\n", "keys.keypad"},
		{"keypad duplicate", "keys:\n  keypad:\n    \"1\": \"a\"\n    \"2\": \"A\"\n", "keys.keypad"},
		{"keypad empty", "keys:\n  keypad:\n    \"1\": \"\"\n", "keys.keypad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			assert.True(t, errors.Is(err, ErrInvalid))
			assert.ErrorContains(t, err, tt.field)
		})
	}
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse(strings.NewReader("display:\n  zoom: 2\n"))
	assert.ErrorContains(t, err, "decoding yaml")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chip8.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("display:\n  scale: 4\n"), 0o600))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 4, cfg.Display.Scale)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(true, false, false))
	assert.NotNil(t, CreateLogger(false, true, false))
	assert.NotNil(t, CreateLogger(false, true, true))
	assert.NotNil(t, CreateLogger(false, false, false))
}

func TestSelectVerbosity(t *testing.T) {
	tests := []struct {
		name     string
		debug    bool
		quiet    bool
		trace    bool
		expected verbosity
	}{
		{"default", false, false, false, verbosityDefault},
		{"debug", true, false, false, verbosityDebug},
		{"quiet", false, true, false, verbosityQuiet},
		{"debug wins over quiet", true, true, false, verbosityDebug},
		{"trace keeps info output", false, true, true, verbosityDefault},
		{"trace without quiet", false, false, true, verbosityDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, selectVerbosity(tt.debug, tt.quiet, tt.trace))
		})
	}
}
