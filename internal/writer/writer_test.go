package writer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/program"
	"github.com/retroenv/retrogolib/assert"
)

func testProgram() *program.Program {
	app := program.New("test.ch8", 0x200, 8)
	app.Checksums.XXH64 = 0x1122334455667788
	for i := range app.Offsets {
		app.Offsets[i].Address = 0x200 + uint16(i)
	}

	app.Offsets[0] = program.Offset{Address: 0x200, Type: program.CodeOffset, Data: []byte{0x60, 0x05},
		Label: "Start", Code: "LD V0, $05"}
	app.Offsets[2] = program.Offset{Address: 0x202, Type: program.CodeOffset, Data: []byte{0x12, 0x02},
		Label: "_label_0202", Code: "JP _label_0202"}
	app.Offsets[4] = program.Offset{Address: 0x204, Type: program.DataOffset, Data: []byte{0xF0},
		Label: "_data_0204"}
	app.Offsets[5] = program.Offset{Address: 0x205, Type: program.DataOffset, Data: []byte{0x90}}
	app.Offsets[6] = program.Offset{Address: 0x206, Type: program.DataOffset, Data: []byte{0x00}}
	app.Offsets[7] = program.Offset{Address: 0x207, Type: program.DataOffset, Data: []byte{0x00}}
	return app
}

func TestWriter_Write(t *testing.T) {
	buf := &bytes.Buffer{}
	w := New(testProgram(), buf, options.Disassembler{})
	assert.NoError(t, w.Write())

	expected := `; ROM: test.ch8
; XXH64 checksum: 1122334455667788
; Code base address: $0200

Start:
  LD V0, $05

_label_0202:
  JP _label_0202

_data_0204:
  .byte $f0, $90
`
	assert.Equal(t, expected, buf.String())
}

func TestWriter_ZeroBytesAndComments(t *testing.T) {
	buf := &bytes.Buffer{}
	opts := options.NewDisassembler()
	opts.ZeroBytes = true
	w := New(testProgram(), buf, opts)
	assert.NoError(t, w.Write())

	output := buf.String()
	assert.True(t, strings.Contains(output, "LD V0, $05"))
	assert.True(t, strings.Contains(output, "; $0200  60 05\n"))
	assert.True(t, strings.Contains(output, ".byte $f0, $90, $00, $00"))
	assert.True(t, strings.Contains(output, "; $0204\n"))
}

func TestWriter_BundleDataWrites(t *testing.T) {
	buf := &bytes.Buffer{}
	w := New(testProgram(), buf, options.Disassembler{})

	data := make([]byte, dataBytesPerLine+2)
	data[dataBytesPerLine] = 0xAB
	assert.NoError(t, w.BundleDataWrites(data, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, ".byte $ab, $00", lines[1])
}
