package program

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestOffset_IsType(t *testing.T) {
	offset := &Offset{}

	offset.SetType(CodeOffset)
	assert.True(t, offset.IsType(CodeOffset))
	assert.False(t, offset.IsType(DataOffset))

	offset.SetType(DataOffset)
	assert.True(t, offset.IsType(CodeOffset))
	assert.True(t, offset.IsType(DataOffset))
}

func TestOffset_SetType(t *testing.T) {
	offset := &Offset{}

	assert.False(t, offset.IsType(CodeOffset))
	offset.SetType(CodeOffset)
	assert.True(t, offset.IsType(CodeOffset))

	offset.SetType(DataOffset)
	assert.True(t, offset.IsType(CodeOffset))
	assert.True(t, offset.IsType(DataOffset))
}

func TestOffset_ClearType(t *testing.T) {
	offset := &Offset{}
	offset.SetType(CodeOffset)
	offset.SetType(DataOffset)

	assert.True(t, offset.IsType(CodeOffset))
	assert.True(t, offset.IsType(DataOffset))

	offset.ClearType(CodeOffset)
	assert.False(t, offset.IsType(CodeOffset))
	assert.True(t, offset.IsType(DataOffset))

	offset.ClearType(DataOffset)
	assert.False(t, offset.IsType(CodeOffset))
	assert.False(t, offset.IsType(DataOffset))
}

func TestOffset_HexCodeComment(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{
			name:     "single data byte",
			data:     []byte{0xF0},
			expected: "F0",
		},
		{
			name:     "opcode",
			data:     []byte{0x61, 0x05},
			expected: "61 05",
		},
		{
			name:     "call opcode",
			data:     []byte{0x22, 0x0A},
			expected: "22 0A",
		},
		{
			name:     "empty data",
			data:     []byte{},
			expected: "",
		},
		{
			name:     "multiple bytes with different values",
			data:     []byte{0x00, 0x01, 0xFE, 0xFF},
			expected: "00 01 FE FF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset := &Offset{
				Data: tt.data,
			}
			comment, err := offset.HexCodeComment()
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, comment)
		})
	}
}

func TestProgram_LastNonZeroOffset(t *testing.T) {
	app := New("test", 0x200, 6)
	app.Offsets[0].Data = []byte{0x12}
	app.Offsets[1].Data = []byte{0x00}
	app.Offsets[2].Data = []byte{0x80}
	app.Offsets[3].Data = []byte{0x00}
	app.Offsets[4].Data = []byte{0x00}
	app.Offsets[5].Data = []byte{0x00}
	assert.Equal(t, 3, app.LastNonZeroOffset())

	app.Offsets[4].Label = "_data_0204"
	assert.Equal(t, 5, app.LastNonZeroOffset())

	empty := New("empty", 0x200, 2)
	assert.Equal(t, 0, empty.LastNonZeroOffset())
}
