// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"log"

	"github.com/ezrec/lmc/cpu"
	"github.com/ezrec/lmc/io"
)

// Emulator state. CPU + program listing + IO channel.
type Emulator struct {
	Verbose   bool         // If set, enables verbose logging.
	*cpu.Cpu               // Reference to the CPU simulation.
	Program   *cpu.Program // Reference to the currently running program listing.
	Channel   io.Channel   // IO channel for INP and OUT.
	StepLimit int          // If non-zero, Run fails after this many ticks.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(nil),
		Program: &cpu.Program{},
	}

	return
}

// Reset loads the program image into the CPU, rewinds the IO channel,
// and restarts execution at address 0.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	rewinder, ok := emu.Channel.(io.Rewinder)
	if ok {
		rewinder.Rewind()
	}

	emu.Cpu.SetChannel(emu.Channel)

	emu.Cpu.Reset(&emu.Program.Image)

	return
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	code, err := emu.Cpu.Load(int(emu.Cpu.Pc))
	if err != nil {
		return cpu.Code(0)
	}

	return code
}

// LineNo returns the current line number for the executing cell.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(int(emu.Cpu.Pc))
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Cpu.Halted {
		done = true
		return
	}

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	addr := int(emu.Cpu.Pc)
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Addr: addr, LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = emu.Cpu.Halted
	return
}

// Run ticks the emulator until the program halts, fails, or exceeds
// the StepLimit.
func (emu *Emulator) Run() (err error) {
	var done bool
	for steps := 0; !done; steps++ {
		if emu.StepLimit > 0 && steps >= emu.StepLimit {
			err = &ErrRuntime{Addr: int(emu.Cpu.Pc), LineNo: emu.LineNo(), Err: ErrStepLimit}
			return
		}
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: halted after %d ticks", emu.Cpu.Ticks)
	}

	return
}
