// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete disassembly workflow of a ROM file.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.DisasmProgram, disasmOptions options.Disassembler) error {
	rom, err := loader.New(logger).Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if !opts.Quiet {
		logger.Info("Processing CHIP-8 ROM",
			log.String("file", opts.Input),
			log.Int("size", len(rom.Data)),
			log.String("xxh64", rom.HashString()))
	}

	dis, err := disasm.New(logger, rom.Name, rom.Data, disasmOptions)
	if err != nil {
		return fmt.Errorf("creating disassembler: %w", err)
	}

	app, err := dis.Process(ctx)
	if err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}

	output, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}

	w := writer.New(app, output, disasmOptions)
	if err := w.Write(); err != nil {
		_ = output.Close()
		return fmt.Errorf("writing output: %w", err)
	}
	if err := output.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".asm"
}

func createWriter(opts options.DisasmProgram) (io.WriteCloser, error) {
	if opts.Output == "" {
		return &nopCloser{os.Stdout}, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// nopCloser wraps an io.Writer to add a no-op Close method
type nopCloser struct {
	io.Writer
}

func (nc *nopCloser) Close() error {
	return nil
}
