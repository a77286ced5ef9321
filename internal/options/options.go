// Package options contains the program options.
package options

import "strings"

// Frontends that can present the emulator output.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
	FrontendNone     = "none"
)

// Parameters contains file path options.
type Parameters struct {
	Input       string `flag:"i" usage:"input ROM file"`
	Config      string `flag:"c" usage:"YAML configuration file"`
	Listen      string `flag:"listen" usage:"address to serve the websocket remote viewer on"`
	Screenshots string `flag:"screenshots" usage:"directory to write screenshots to"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend string `flag:"frontend" usage:"frontend: window, terminal, none" default:"window"`
	Seed     uint64 `flag:"seed" usage:"fixed random generator seed"`
	TickRate int    `flag:"hz" usage:"instructions executed per second"`
	Scale    int    `flag:"scale" usage:"window pixel scale"`
	MaxTicks uint64 `flag:"max-ticks" usage:"stop after the given number of ticks"`
	Trace    bool   `flag:"trace" usage:"log every executed instruction"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`

	SeedSet bool // seed was passed explicitly
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}

// DisasmProgram options of the disassembler command.
type DisasmProgram struct {
	Input  string `arg:"positional" usage:"ROM file to disassemble"`
	Output string `flag:"o" usage:"name of the output .asm file, printed on console if no name given"`
	Debug  bool   `flag:"debug" usage:"enable debug logging"`
	Quiet  bool   `flag:"q" usage:"quiet mode"`
}

// Disassembler defines options to control the disassembler output.
type Disassembler struct {
	HexComments    bool
	OffsetComments bool
	ZeroBytes      bool // output trailing zero bytes of the ROM
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler() Disassembler {
	return Disassembler{
		HexComments:    true,
		OffsetComments: true,
	}
}

// NormalizeFrontend returns the lower case frontend name and whether it is supported.
func NormalizeFrontend(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case FrontendWindow, FrontendTerminal, FrontendNone:
		return name, true
	default:
		return name, false
	}
}
