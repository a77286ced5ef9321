package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for configuration values that are out of range.
var ErrInvalid = errors.New("invalid configuration")

// Config is the emulator configuration file content.
type Config struct {
	Emulator Emulator `yaml:"emulator"`
	Display  Display  `yaml:"display"`
	Audio    Audio    `yaml:"audio"`
	Keys     Keys     `yaml:"keys"`
}

// Emulator contains the interpreter settings.
type Emulator struct {
	TickRate int     `yaml:"tick_rate"` // instructions per second
	Seed     *uint64 `yaml:"seed"`      // fixed random seed, a time based seed is used if not set
}

// Display contains the frontend settings.
type Display struct {
	Scale      int    `yaml:"scale"`
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
}

// Audio contains the buzzer settings.
type Audio struct {
	Enabled   bool    `yaml:"enabled"`
	Frequency float64 `yaml:"frequency"`
	Volume    float64 `yaml:"volume"`
}

// Keys maps host key names to keypad keys and emulator functions.
// Host key names are case insensitive, single characters name the
// character key, special keys use names like space, escape or f12.
type Keys struct {
	Keypad     map[string]string `yaml:"keypad"` // keypad hex digit to host key name
	Pause      string            `yaml:"pause"`
	Reset      string            `yaml:"reset"`
	Screenshot string            `yaml:"screenshot"`
	Quit       string            `yaml:"quit"`
}

const (
	maxTickRate = 100000
	maxScale    = 64
)

// Default returns the default configuration with the common keypad layout:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
func Default() Config {
	return Config{
		Emulator: Emulator{
			TickRate: chip8.TickRate,
		},
		Display: Display{
			Scale:      10,
			Foreground: "#FFFFFF",
			Background: "#000000",
		},
		Audio: Audio{
			Enabled:   true,
			Frequency: 440,
			Volume:    0.25,
		},
		Keys: Keys{
			Keypad: map[string]string{
				"1": "1", "2": "2", "3": "3", "C": "4",
				"4": "q", "5": "w", "6": "e", "D": "r",
				"7": "a", "8": "s", "9": "d", "E": "f",
				"A": "z", "0": "x", "B": "c", "F": "v",
			},
			Pause:      "p",
			Reset:      "backspace",
			Screenshot: "f12",
			Quit:       "escape",
		},
	}
}

// Load reads the configuration file at path. Values missing in the file
// keep their default value.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML configuration on top of the default configuration
// and validates the result. A keypad mapping in the file replaces the
// default keypad mapping.
func Parse(reader io.Reader) (Config, error) {
	cfg := Default()
	keypad := cfg.Keys.Keypad
	cfg.Keys.Keypad = nil

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decoding yaml: %w", err)
	}
	if cfg.Keys.Keypad == nil {
		cfg.Keys.Keypad = keypad
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks all values for valid ranges.
func (c Config) Validate() error {
	if c.Emulator.TickRate <= 0 || c.Emulator.TickRate > maxTickRate {
		return fmt.Errorf("%w: emulator.tick_rate %d is not in range 1-%d", ErrInvalid, c.Emulator.TickRate, maxTickRate)
	}
	if c.Display.Scale <= 0 || c.Display.Scale > maxScale {
		return fmt.Errorf("%w: display.scale %d is not in range 1-%d", ErrInvalid, c.Display.Scale, maxScale)
	}
	if _, err := ParseColor(c.Display.Foreground); err != nil {
		return fmt.Errorf("%w: display.foreground: %w", ErrInvalid, err)
	}
	if _, err := ParseColor(c.Display.Background); err != nil {
		return fmt.Errorf("%w: display.background: %w", ErrInvalid, err)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume %g is not in range 0-1", ErrInvalid, c.Audio.Volume)
	}
	if c.Audio.Enabled && c.Audio.Frequency <= 0 {
		return fmt.Errorf("%w: audio.frequency %g must be positive", ErrInvalid, c.Audio.Frequency)
	}
	if _, err := c.Keys.Bindings(); err != nil {
		return fmt.Errorf("%w: keys.keypad: %w", ErrInvalid, err)
	}
	return nil
}

// Bindings returns the keypad key for every bound host key name. Host key
// names are returned in lower case.
func (k Keys) Bindings() (map[string]chip8.Key, error) {
	bindings := make(map[string]chip8.Key, len(k.Keypad))
	for digit, hostKey := range k.Keypad {
		value, err := strconv.ParseUint(digit, 16, 8)
		if err != nil || len(digit) != 1 {
			return nil, fmt.Errorf("keypad key '%s' is not a hex digit", digit)
		}

		hostKey = strings.ToLower(strings.TrimSpace(hostKey))
		if hostKey == "" {
			return nil, fmt.Errorf("keypad key '%s' has no host key", digit)
		}
		if _, ok := bindings[hostKey]; ok {
			return nil, fmt.Errorf("host key '%s' is bound to multiple keypad keys", hostKey)
		}
		bindings[hostKey] = chip8.Key(value)
	}
	return bindings, nil
}

// ParseColor parses a color in #RRGGBB notation.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("color '%s' is not in #RRGGBB format", s)
	}

	value, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parsing color '%s': %w", s, err)
	}
	return color.RGBA{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
		A: 0xFF,
	}, nil
}

// Colors returns the parsed foreground and background colors. The
// configuration is expected to be validated.
func (d Display) Colors() (color.RGBA, color.RGBA) {
	fg, _ := ParseColor(d.Foreground)
	bg, _ := ParseColor(d.Background)
	return fg, bg
}
