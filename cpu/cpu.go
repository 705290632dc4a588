package cpu

import (
	"errors"
	"fmt"
	"log"

	"github.com/ezrec/lmc/io"
)

// Channel is an I/O channel interface.
type Channel io.Channel

// Cpu is the simulation context for the Little Man Computer.
//
// Arithmetic on the accumulator wraps as signed 16-bit; there is no
// decimal overflow.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Pc          uint16 // Program counter.
	Accumulator int16  // Accumulator.
	Halted      bool   // Set once HLT executes.
	Memory      Image  // Memory cells, shared by code and data.

	Ticks int // Executed instruction count.

	channel Channel // IO channel for INP and OUT.
}

// NewCpu creates a new CPU attached to an IO channel.
func NewCpu(channel Channel) (cpu *Cpu) {
	cpu = &Cpu{
		channel: channel,
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	state := "running"
	if cpu.Halted {
		state = "halted"
	}

	text += fmt.Sprintf("% 5s: %02d\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %d\n", "acc", cpu.Accumulator)
	text += fmt.Sprintf("% 5s: %v\n", "state", state)
	text += fmt.Sprintf("% 5s: %d\n", "ticks", cpu.Ticks)

	return
}

// Reset the CPU state.
// - Loads the memory image.
// - Clears the program counter and accumulator.
// - Zeros the tick counter.
func (cpu *Cpu) Reset(image *Image) {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Memory = *image
	cpu.Pc = 0
	cpu.Accumulator = 0
	cpu.Halted = false
	cpu.Ticks = 0
}

// SetChannel attaches the IO channel.
func (cpu *Cpu) SetChannel(channel Channel) {
	cpu.channel = channel
}

// GetChannel gets the attached IO channel.
func (cpu *Cpu) GetChannel() (channel Channel, err error) {
	if cpu.channel == nil {
		err = errors.Join(ErrIO, ErrNoChannel)
		return
	}

	channel = cpu.channel
	return
}

// Load reads a memory cell.
func (cpu *Cpu) Load(addr int) (code Code, err error) {
	if addr < 0 || addr >= len(cpu.Memory) {
		err = errors.Join(ErrRange, ErrAddress)
		return
	}

	code = cpu.Memory[addr]
	return
}

// Store writes a memory cell.
func (cpu *Cpu) Store(addr int, value int16) (err error) {
	if addr < 0 || addr >= len(cpu.Memory) {
		err = errors.Join(ErrRange, ErrAddress)
		return
	}

	cpu.Memory[addr] = Code(value)
	return
}

// FetchCode fetches the cell at the program counter, and advances it.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	if int(cpu.Pc) >= len(cpu.Memory) {
		err = errors.Join(ErrRange, ErrPcRange)
		return
	}

	code = cpu.Memory[cpu.Pc]
	cpu.Pc++

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(code)
	return
}

// Run ticks the CPU until it halts. There is no step limit.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Halted {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single decoded instruction.
// A failing instruction leaves the accumulator and memory unchanged.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	if cpu.Verbose {
		log.Printf("%02d: %v", int(cpu.Pc)-1, code)
	}

	class, operand := code.Decode()

	var value Code
	switch class {
	case OP_ADD, OP_SUB, OP_LDA:
		value, err = cpu.Load(operand)
		if err != nil {
			return
		}
	}

	switch class {
	case OP_HLT:
		cpu.Halted = true
	case OP_ADD:
		cpu.Accumulator += int16(value)
	case OP_SUB:
		cpu.Accumulator -= int16(value)
	case OP_STA:
		err = cpu.Store(operand, cpu.Accumulator)
		if err != nil {
			return
		}
	case OP_LDA:
		cpu.Accumulator = int16(value)
	case OP_BRA:
		cpu.Pc = uint16(operand)
	case OP_BRZ:
		if cpu.Accumulator == 0 {
			cpu.Pc = uint16(operand)
		}
	case OP_BRP:
		if cpu.Accumulator >= 0 {
			cpu.Pc = uint16(operand)
		}
	case OP_IO:
		var channel Channel
		switch operand {
		case IO_OP_INP:
			channel, err = cpu.GetChannel()
			if err != nil {
				return
			}
			var input int16
			input, err = channel.Input()
			if err != nil {
				err = errors.Join(ErrIO, err)
				return
			}
			cpu.Accumulator = input
		case IO_OP_OUT:
			channel, err = cpu.GetChannel()
			if err != nil {
				return
			}
			err = channel.Output(cpu.Accumulator)
			if err != nil {
				err = errors.Join(ErrIO, err)
				return
			}
		default:
			err = errors.Join(ErrInvalidOpcode, ErrOpcodeIo)
			return
		}
	case OP_RSVD:
		err = errors.Join(ErrInvalidOpcode, ErrOpcodeRsvd)
		return
	default:
		err = ErrInvalidOpcode
		return
	}

	cpu.Ticks += 1

	if cpu.Verbose {
		log.Printf("cpu: acc %d pc %02d", cpu.Accumulator, cpu.Pc)
	}

	return
}
