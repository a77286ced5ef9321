//go:build !headless

package window

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
)

// keyNames maps lower case host key names to ebiten keys. Digit keys are
// also available by their digit, "1" is the same as "digit1".
var keyNames = buildKeyNames()

func buildKeyNames() map[string]ebiten.Key {
	names := map[string]ebiten.Key{}
	for key := ebiten.Key(0); key <= ebiten.KeyMax; key++ {
		name := strings.ToLower(key.String())
		if name == "" {
			continue
		}
		names[name] = key

		if digit, ok := strings.CutPrefix(name, "digit"); ok {
			names[digit] = key
		}
	}
	return names
}

func keyByName(name string) (ebiten.Key, bool) {
	key, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	return key, ok
}

// bindings contains the resolved host keys of the key configuration.
type bindings struct {
	keypad     map[ebiten.Key]chip8.Key
	pause      ebiten.Key
	reset      ebiten.Key
	screenshot ebiten.Key
	quit       ebiten.Key
}

func resolveBindings(keys config.Keys) (bindings, error) {
	keypad, err := keys.Bindings()
	if err != nil {
		return bindings{}, fmt.Errorf("resolving keypad bindings: %w", err)
	}

	b := bindings{
		keypad: make(map[ebiten.Key]chip8.Key, len(keypad)),
	}
	for name, chipKey := range keypad {
		key, ok := keyByName(name)
		if !ok {
			return bindings{}, fmt.Errorf("unsupported host key '%s' for keypad key %X", name, chipKey)
		}
		b.keypad[key] = chipKey
	}

	functions := []struct {
		field string
		name  string
		key   *ebiten.Key
	}{
		{"pause", keys.Pause, &b.pause},
		{"reset", keys.Reset, &b.reset},
		{"screenshot", keys.Screenshot, &b.screenshot},
		{"quit", keys.Quit, &b.quit},
	}
	for _, f := range functions {
		key, ok := keyByName(f.name)
		if !ok {
			return bindings{}, fmt.Errorf("unsupported host key '%s' for %s", f.name, f.field)
		}
		*f.key = key
	}
	return b, nil
}
