// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/lmc/cpu"
	"github.com/ezrec/lmc/emulator"
	lmcio "github.com/ezrec/lmc/io"
)

// Process exit status codes.
const (
	EXIT_OK      = 0 // Program assembled and halted.
	EXIT_USAGE   = 1 // Bad command line.
	EXIT_FILE    = 2 // Source, image, input or output file error.
	EXIT_SYNTAX  = 3 // Source syntax error.
	EXIT_SYMBOL  = 4 // Undefined label, or address out of range.
	EXIT_RUNTIME = 5 // Invalid opcode, program counter fault, or step limit.
	EXIT_IO      = 6 // INP or OUT failure.
)

var errUsage = errors.New("usage")

// exitStatus classifies an error into a process exit status.
func exitStatus(err error) int {
	var runtime *emulator.ErrRuntime

	switch {
	case err == nil:
		return EXIT_OK
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		return EXIT_USAGE
	case errors.As(err, &runtime):
		if errors.Is(err, cpu.ErrIO) {
			return EXIT_IO
		}
		return EXIT_RUNTIME
	case errors.Is(err, cpu.ErrSyntax):
		return EXIT_SYNTAX
	case errors.Is(err, cpu.ErrSymbol), errors.Is(err, cpu.ErrRange):
		return EXIT_SYMBOL
	default:
		return EXIT_FILE
	}
}

// isTerminal is true if the reader is an interactive console.
func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// run assembles and executes the program named by args.
func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) (err error) {
	var legacy bool
	var binary bool
	var save string
	var listing bool
	var input string
	var output string
	var steps int
	var verbose bool

	asm := &cpu.Assembler{}

	flags := flag.NewFlagSet("lmc", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVar(&legacy, "legacy", false, "Use the legacy label heuristic")
	flags.BoolVar(&binary, "b", false, "SOURCE is a binary memory image")
	flags.StringVar(&save, "s", "", "Save memory image to file, do not execute")
	flags.BoolVar(&listing, "l", false, "Print listing, do not execute")
	flags.StringVar(&input, "i", "-", "Input")
	flags.StringVar(&output, "o", "-", "Output")
	flags.IntVar(&steps, "n", 0, "Step limit, 0 for unlimited")
	flags.BoolVar(&verbose, "v", false, "Verbose mode")
	flags.Func("D", "Predefine NAME=VALUE for $(...) expressions", func(text string) (err error) {
		name, value, ok := strings.Cut(text, "=")
		if !ok {
			return errUsage
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			return
		}
		asm.Predefine(name, v)
		return
	})
	flags.Usage = func() {
		fmt.Fprintf(stderr, "usage: lmc [flags] SOURCE\n")
		flags.PrintDefaults()
	}

	err = flags.Parse(args)
	if err != nil {
		err = errors.Join(errUsage, err)
		return
	}

	if flags.NArg() != 1 {
		flags.Usage()
		err = errUsage
		return
	}
	source := flags.Arg(0)

	prog := &cpu.Program{}
	if binary {
		var data []byte
		data, err = os.ReadFile(source)
		if err != nil {
			return
		}
		err = prog.Image.UnmarshalBinary(data)
		if err != nil {
			err = fmt.Errorf("%v: %w", source, err)
			return
		}
	} else {
		var inf *os.File
		inf, err = os.Open(source)
		if err != nil {
			return
		}
		defer inf.Close()

		asm.Verbose = verbose
		asm.Legacy = legacy
		prog, err = asm.Parse(inf)
		if err != nil {
			err = fmt.Errorf("%v: %w", source, err)
			return
		}
	}

	if listing {
		return prog.Listing(stdout)
	}

	if len(save) != 0 {
		return os.WriteFile(save, prog.Binary(), 0o644)
	}

	tape := &lmcio.Tape{Reader: stdin, Writer: stdout}
	if input == "-" {
		tape.Prompt = isTerminal(stdin)
	} else {
		var inf *os.File
		inf, err = os.Open(input)
		if err != nil {
			return
		}
		defer inf.Close()
		tape.Reader = inf
	}

	if output != "-" {
		var ouf *os.File
		ouf, err = os.Create(output)
		if err != nil {
			return
		}
		defer ouf.Close()
		tape.Writer = ouf
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Channel = tape
	emu.Verbose = verbose
	emu.StepLimit = steps

	err = emu.Reset()
	if err != nil {
		return
	}

	err = emu.Run()
	if err != nil {
		err = fmt.Errorf("%v: %w", source, err)
		return
	}

	return
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("lmc: ")

	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	status := exitStatus(err)
	if status != EXIT_OK {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			log.Print(err)
		}
		os.Exit(status)
	}
}
