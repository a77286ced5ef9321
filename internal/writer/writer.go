// Package writer implements the assembly listing output of disassembled programs.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/program"
)

const dataBytesPerLine = 16

type lineWriterFunc func(line string, byteCount int) error

// Writer implements the assembly file writing.
type Writer struct {
	app     *program.Program
	options options.Disassembler
	writer  io.Writer
}

// New creates a new writer.
func New(app *program.Program, writer io.Writer, options options.Disassembler) *Writer {
	return &Writer{
		app:     app,
		options: options,
		writer:  writer,
	}
}

// Write writes the comment header and all offsets of the program.
func (w Writer) Write() error {
	if err := w.WriteCommentHeader(); err != nil {
		return err
	}

	endIndex := len(w.app.Offsets)
	if !w.options.ZeroBytes {
		endIndex = w.app.LastNonZeroOffset()
	}
	return w.ProcessOffsets(endIndex)
}

// WriteCommentHeader writes the ROM checksum and code base address as comments to the output.
func (w Writer) WriteCommentHeader() error {
	if w.app.Name != "" {
		if _, err := fmt.Fprintf(w.writer, "; ROM: %s\n", w.app.Name); err != nil {
			return fmt.Errorf("writing rom name: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w.writer, "; XXH64 checksum: %016x\n", w.app.Checksums.XXH64); err != nil {
		return fmt.Errorf("writing checksum: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Code base address: $%04x\n\n", w.app.CodeBaseAddress); err != nil {
		return fmt.Errorf("writing code base address: %w", err)
	}
	return nil
}

// ProcessOffsets writes all code offsets, labels and their comments.
func (w Writer) ProcessOffsets(endIndex int) error {
	var previousLineWasCode bool

	for i := 0; i < endIndex; i++ {
		offset := w.app.Offsets[i]

		if err := w.writeLabel(i, offset); err != nil {
			return err
		}

		// print an empty line in case of data after code and vice versa
		isCode := offset.IsType(program.CodeOffset)
		if i > 0 && offset.Label == "" && isCode != previousLineWasCode {
			if _, err := fmt.Fprintln(w.writer); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
		previousLineWasCode = isCode

		adjustment, err := w.writeOffset(i, endIndex, offset)
		if err != nil {
			return err
		}
		i += adjustment
	}
	return nil
}

// BundleDataWrites bundles writes of data bytes to print dataBytesPerLine bytes per line.
func (w Writer) BundleDataWrites(data []byte, lineWriter lineWriterFunc) error {
	remaining := len(data)
	for i := 0; remaining > 0; {
		toWrite := min(remaining, dataBytesPerLine)

		buf := &strings.Builder{}
		buf.WriteString(".byte ")
		for j := range toWrite {
			if _, err := fmt.Fprintf(buf, "$%02x, ", data[i+j]); err != nil {
				return fmt.Errorf("writing data byte: %w", err)
			}
		}

		line := strings.TrimRight(buf.String(), ", ")

		if lineWriter != nil {
			if err := lineWriter(line, toWrite); err != nil {
				return fmt.Errorf("writing data line using custom writer: %w", err)
			}
		} else {
			if _, err := fmt.Fprintf(w.writer, "%s\n", line); err != nil {
				return fmt.Errorf("writing data line: %w", err)
			}
		}

		i += toWrite
		remaining -= toWrite
	}

	return nil
}

func (w Writer) writeOffset(index, endIndex int, offset program.Offset) (int, error) {
	if len(offset.Data) == 0 {
		return 0, nil
	}

	if !offset.IsType(program.CodeOffset) {
		count, err := w.bundleDataWrites(index, endIndex)
		if err != nil {
			return 0, err
		}
		if count > 0 {
			return count - 1, nil
		}
		return 0, nil
	}

	if err := w.writeCodeLine(offset); err != nil {
		return 0, fmt.Errorf("writing code line: %w", err)
	}
	return len(offset.Data) - 1, nil
}

func (w Writer) writeLabel(index int, offset program.Offset) error {
	if offset.Label == "" {
		return nil
	}

	if index > 0 {
		if _, err := fmt.Fprintln(w.writer); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}

	if offset.LabelComment == "" {
		if _, err := fmt.Fprintf(w.writer, "%s:\n", offset.Label); err != nil {
			return fmt.Errorf("writing label: %w", err)
		}
	} else {
		if _, err := fmt.Fprintf(w.writer, "%-32s ; %s\n", offset.Label+":", offset.LabelComment); err != nil {
			return fmt.Errorf("writing label: %w", err)
		}
	}
	return nil
}

func (w Writer) writeCodeLine(offset program.Offset) error {
	comment, err := w.codeComment(offset)
	if err != nil {
		return err
	}

	if comment == "" {
		if _, err := fmt.Fprintf(w.writer, "  %s\n", offset.Code); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	} else {
		if _, err := fmt.Fprintf(w.writer, "  %-30s ; %s\n", offset.Code, comment); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}

func (w Writer) codeComment(offset program.Offset) (string, error) {
	var parts []string
	if w.options.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%04X", offset.Address))
	}
	if w.options.HexComments {
		hex, err := offset.HexCodeComment()
		if err != nil {
			return "", err
		}
		parts = append(parts, hex)
	}
	if offset.Comment != "" {
		parts = append(parts, offset.Comment)
	}
	return strings.Join(parts, "  "), nil
}

// bundleDataWrites creates bundled writes of data bytes per line.
func (w Writer) bundleDataWrites(startIndex, endIndex int) (int, error) {
	data := w.getData(startIndex, endIndex)
	if len(data) == 0 {
		return 0, nil
	}

	currentIndex := startIndex
	lineWriter := func(line string, byteCount int) error {
		var err error

		offset := w.app.Offsets[currentIndex]
		comment := offset.Comment
		if w.options.OffsetComments {
			address := fmt.Sprintf("$%04X", offset.Address)
			if comment == "" {
				comment = address
			} else {
				comment = address + "  " + comment
			}
		}

		if comment == "" {
			_, err = fmt.Fprintf(w.writer, "  %s\n", line)
		} else {
			_, err = fmt.Fprintf(w.writer, "  %-30s ; %s\n", line, comment)
		}
		if err != nil {
			return fmt.Errorf("writing data line: %w", err)
		}

		currentIndex += byteCount
		return nil
	}

	if err := w.BundleDataWrites(data, lineWriter); err != nil {
		return 0, fmt.Errorf("writing data: %w", err)
	}

	return len(data), nil
}

func (w Writer) getData(startIndex, endIndex int) []byte {
	var data []byte

	for i := startIndex; i < endIndex; i++ {
		offset := w.app.Offsets[i]

		if offset.IsType(program.CodeOffset) || len(offset.Data) == 0 {
			break
		}
		// stop at first label or commented offset after start index
		if i > startIndex && (offset.Label != "" || offset.Comment != "") {
			break
		}

		data = append(data, offset.Data...)
	}

	return data
}
