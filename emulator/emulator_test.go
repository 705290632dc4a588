package emulator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/lmc/cpu"
	"github.com/ezrec/lmc/io"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.NotNil(emu.Program)
	assert.Equal(0, emu.StepLimit)

	// An empty program halts on its first tick.
	assert.NoError(emu.Reset())
	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func doLoad(emu *Emulator, program []string, t *testing.T) {
	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	emu.Program = prog

	err = emu.Reset()
	assert.NoError(t, err)
}

func doRunSingle(emu *Emulator, program []string, inputs []int16, t *testing.T) (outputs []int16) {
	assert := assert.New(t)

	buffer := &io.Buffer{Inputs: inputs}
	emu.Channel = buffer
	doLoad(emu, program, t)

	for _, op := range emu.Program.Opcodes {
		if op.Code == 0 {
			break
		}
		here := program[op.LineNo-1]
		assert.Equal(op.LineNo, emu.LineNo(), here)
		assert.Equal(op.Code, emu.Code(), here)
		done, err := emu.Tick()
		if err != nil {
			t.Log(emu.Cpu.String())
			t.Fatalf("%v", err)
		}
		assert.False(done, here)
	}
	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)

	outputs = buffer.Outputs
	return
}

func doRunBranch(emu *Emulator, program []string, inputs []int16, t *testing.T) (outputs []int16) {
	assert := assert.New(t)

	buffer := &io.Buffer{Inputs: inputs}
	emu.Channel = buffer
	emu.StepLimit = 1000
	doLoad(emu, program, t)

	err := emu.Run()
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}
	assert.True(emu.Cpu.Halted)

	outputs = buffer.Outputs
	return
}

func TestEmulatorStraight(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"; add two inputs",
		"     INP",
		"     STA a",
		"     INP",
		"     ADD a",
		"     OUT",
		"     HLT",
		"a    DAT",
	}

	outputs := doRunSingle(emu, program, []int16{3, 4}, t)
	assert.Equal([]int16{7}, outputs)
	assert.Equal(6, emu.Cpu.Ticks)
	assert.Equal(8, emu.LineNo())
}

func TestEmulatorCountdown(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"      INP",
		"loop  OUT",
		"      BRZ done",
		"      SUB one",
		"      BRA loop",
		"done  HLT",
		"one   DAT 1",
	}

	outputs := doRunBranch(emu, program, []int16{3}, t)
	assert.Equal([]int16{3, 2, 1, 0}, outputs)

	// Reset rewinds the scripted inputs.
	assert.NoError(emu.Reset())
	assert.NoError(emu.Run())
	assert.Equal([]int16{3, 2, 1, 0}, emu.Channel.(*io.Buffer).Outputs)
}

func TestEmulatorExpression(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"      LDA $(data + 1)",
		"      OUT",
		"      LDA $(HERE + 3)",
		"      OUT",
		"      HLT",
		"data  DAT $(OUT)",
		"      DAT $(MEMORY_SIZE * 3)",
	}

	outputs := doRunSingle(emu, program, nil, t)
	assert.Equal([]int16{300, 902}, outputs)
}

func TestEmulatorTemp(t *testing.T) {
	assert := assert.New(t)

	// Output values loop back as inputs.
	temp := &io.Temporary{Capacity: 4}
	temp.Data = []int16{99}

	emu := NewEmulator()
	emu.Channel = temp
	doLoad(emu, []string{
		"LDA five",
		"OUT",
		"ADD five",
		"OUT",
		"INP",
		"INP",
		"ADD five",
		"OUT",
		"HLT",
		"five DAT 5",
	}, t)

	// Reset empties the loopback queue.
	assert.Empty(temp.Data)

	err := emu.Run()
	assert.NoError(err)
	assert.Equal(int16(15), emu.Cpu.Accumulator)
	assert.Equal([]int16{15}, temp.Data)
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Channel = &io.Buffer{}
	doLoad(emu, []string{
		"; no inputs are available",
		"LDA 5",
		"INP",
		"HLT",
	}, t)

	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)

	done, err = emu.Tick()
	assert.False(done)
	assert.ErrorIs(err, cpu.ErrIO)
	assert.ErrorIs(err, io.ErrInputMissing)

	var rerr *ErrRuntime
	assert.ErrorAs(err, &rerr)
	assert.Equal(1, rerr.Addr)
	assert.Equal(3, rerr.LineNo)
}

func TestEmulatorInvalidOpcode(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doLoad(emu, []string{
		"BRA bad",
		"bad DAT 404",
	}, t)

	err := emu.Run()
	assert.ErrorIs(err, cpu.ErrInvalidOpcode)
	assert.ErrorIs(err, cpu.ErrOpcodeRsvd)

	var rerr *ErrRuntime
	assert.ErrorAs(err, &rerr)
	assert.Equal(1, rerr.Addr)
	assert.Equal(2, rerr.LineNo)
}

func TestEmulatorPcRange(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doLoad(emu, []string{"BRA 99"}, t)
	emu.Cpu.Memory[99] = 198

	err := emu.Run()
	assert.ErrorIs(err, cpu.ErrRange)
	assert.ErrorIs(err, cpu.ErrPcRange)

	var rerr *ErrRuntime
	assert.ErrorAs(err, &rerr)
	assert.Equal(cpu.MEMORY_SIZE, rerr.Addr)
	assert.Equal(0, rerr.LineNo)
	assert.Equal(0, emu.LineNo())
	assert.Equal(cpu.Code(0), emu.Code())
}

func TestEmulatorStepLimit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.StepLimit = 10
	doLoad(emu, []string{
		"loop BRA loop",
	}, t)

	err := emu.Run()
	assert.ErrorIs(err, ErrStepLimit)
	assert.Equal(10, emu.Cpu.Ticks)

	var rerr *ErrRuntime
	assert.ErrorAs(err, &rerr)
	assert.Equal(0, rerr.Addr)
	assert.Equal(1, rerr.LineNo)

	// A halting program under the limit is unaffected.
	doLoad(emu, []string{"HLT"}, t)
	assert.NoError(emu.Run())
}

func TestEmulatorHalted(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doLoad(emu, []string{"HLT"}, t)

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)

	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(1, emu.Cpu.Ticks)
}
