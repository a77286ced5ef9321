// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses the emulator command line arguments without the
// program name.
func ParseFlags(args []string) (options.Program, error) {
	flags := flag.NewFlagSet("retrochip8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts options.Program
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error(), usage: emulatorUsage}
	}

	flags.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.SeedSet = true
		}
	})

	input, err := inputFile(flags, opts.Input, emulatorUsage)
	if err != nil {
		return opts, err
	}
	opts.Input = input

	frontend, ok := options.NormalizeFrontend(opts.Frontend)
	if !ok {
		return opts, fmt.Errorf("unsupported frontend: %s. Valid options: %s, %s, %s",
			opts.Frontend, options.FrontendWindow, options.FrontendTerminal, options.FrontendNone)
	}
	opts.Frontend = frontend

	if opts.TickRate < 0 {
		return opts, fmt.Errorf("invalid tick rate %d", opts.TickRate)
	}
	if opts.Scale < 0 {
		return opts, fmt.Errorf("invalid scale %d", opts.Scale)
	}
	return opts, nil
}

// ParseDisasmFlags parses the disassembler command line arguments without
// the program name.
func ParseDisasmFlags(args []string) (options.DisasmProgram, options.Disassembler, error) {
	flags := flag.NewFlagSet("chip8dis", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts options.DisasmProgram
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	disasmOptions := options.NewDisassembler()
	var noHexComments, noOffsets bool
	flags.BoolVar(&noHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&noOffsets, "nooffsets", false, "do not output offsets in comments")
	flags.BoolVar(&disasmOptions.ZeroBytes, "z", false, "output the trailing zero bytes of the ROM")

	if err := flags.Parse(args); err != nil {
		return opts, disasmOptions, &UsageError{flags: flags, msg: err.Error(), usage: disasmUsage}
	}

	input, err := inputFile(flags, "", disasmUsage)
	if err != nil {
		return opts, disasmOptions, err
	}
	opts.Input = input

	// Apply inverse logic for hex comments and offsets
	disasmOptions.HexComments = !noHexComments
	disasmOptions.OffsetComments = !noOffsets
	return opts, disasmOptions, nil
}

const (
	emulatorUsage = "usage: retrochip8 [options] <ROM file>"
	disasmUsage   = "usage: chip8dis [options] <ROM file>"
)

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
	usage string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and all flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("%s\n\n", e.usage)
	if e.flags != nil {
		e.flags.SetOutput(nil)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// inputFile returns the input file passed as -i parameter or as only
// positional argument.
func inputFile(flags *flag.FlagSet, input, usage string) (string, error) {
	args := flags.Args()
	if err := validateArgs(args); err != nil {
		return "", err
	}

	switch {
	case len(args) == 0 && input == "":
		return "", &UsageError{flags: flags, msg: "no ROM file given", usage: usage}
	case len(args) > 1 || (len(args) == 1 && input != ""):
		return "", &UsageError{flags: flags, msg: "only one ROM file can be given", usage: usage}
	case len(args) == 1:
		return args[0], nil
	default:
		return input, nil
	}
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Config, "c", "", "YAML configuration file")
	flags.StringVar(&opts.Listen, "listen", "", "address to serve the websocket remote viewer on, for example :8090")
	flags.StringVar(&opts.Screenshots, "screenshots", "", "directory to write screenshots to")
	flags.StringVar(&opts.Frontend, "frontend", options.FrontendWindow, "frontend to use (window/terminal/none)")
	flags.Uint64Var(&opts.Seed, "seed", 0, "fixed random generator seed, time based if not set")
	flags.IntVar(&opts.TickRate, "hz", 0, "instructions executed per second, overrides the configuration")
	flags.IntVar(&opts.Scale, "scale", 0, "window pixel scale, overrides the configuration")
	flags.Uint64Var(&opts.MaxTicks, "max-ticks", 0, "stop after the given number of executed instructions")
	flags.BoolVar(&opts.Trace, "trace", false, "log the disassembly of every executed instruction")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
