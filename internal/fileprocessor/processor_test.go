package fileprocessor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func writeROM(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestProcessFile(t *testing.T) {
	input := writeROM(t, "loop.ch8", []byte{
		0x60, 0x05, // LD V0, $05
		0x12, 0x02, // JP 0x202
	})
	output := filepath.Join(t.TempDir(), "loop.asm")

	opts := options.DisasmProgram{Input: input, Output: output}
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, options.NewDisassembler())
	assert.NoError(t, err)

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, "; ROM: loop.ch8"))
	assert.True(t, strings.Contains(text, "Start:"))
	assert.True(t, strings.Contains(text, "LD V0, $05"))
	assert.True(t, strings.Contains(text, "JP _label_0202"))
}

func TestProcessFile_Errors(t *testing.T) {
	logger := log.NewTestLogger(t)

	opts := options.DisasmProgram{Input: filepath.Join(t.TempDir(), "missing.ch8")}
	err := ProcessFile(context.Background(), logger, opts, options.NewDisassembler())
	assert.ErrorContains(t, err, "loading ROM")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts = options.DisasmProgram{
		Input:  writeROM(t, "loop.ch8", []byte{0x12, 0x00}),
		Output: filepath.Join(t.TempDir(), "loop.asm"),
	}
	err = ProcessFile(ctx, logger, opts, options.NewDisassembler())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestGenerateOutputFilename(t *testing.T) {
	assert.Equal(t, "games/pong.asm", GenerateOutputFilename("games/pong.ch8"))
	assert.Equal(t, "tetris.asm", GenerateOutputFilename("tetris"))
}
