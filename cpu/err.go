package cpu

import (
	"errors"

	"github.com/ezrec/lmc/translate"
)

var f = translate.From

var (
	// Error classes
	ErrSyntax        = errors.New(f("syntax error"))
	ErrSymbol        = errors.New(f("symbol error"))
	ErrRange         = errors.New(f("range error"))
	ErrInvalidOpcode = errors.New(f("invalid opcode"))
	ErrIO            = errors.New(f("io error"))

	// Cpu errors
	ErrHalted     = errors.New(f("cpu halted"))
	ErrPcRange    = errors.New(f("program counter out of memory"))
	ErrAddress    = errors.New(f("address out of memory"))
	ErrOpcodeIo   = errors.New(f("io operand"))
	ErrOpcodeRsvd = errors.New(f("reserved opcode"))
	ErrNoChannel  = errors.New(f("no io channel"))

	// Assembler errors
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrOpcodeMissing      = errors.New(f("opcode missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrOperandMissing     = errors.New(f("operand missing"))
	ErrOperandExtra       = errors.New(f("excessive operands"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrProgramTooLong     = errors.New(f("program exceeds memory"))
	ErrExpressionEmpty    = errors.New(f("expression empty"))

	// Image errors
	ErrImageSize = errors.New(f("image size invalid"))
)

// ErrLabelMissing is returned when an operand names a label that is never defined.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

func (el ErrLabelMissing) Unwrap() error {
	return ErrSymbol
}

// ErrOpcode annotates a runtime error with the offending cell.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad cell %v '%v'", int16(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrLine locates an assembly error in the source text.
type ErrLine struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrLine) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrLine) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrOutOfRange reports a value that does not fit the space it must occupy.
type ErrOutOfRange struct {
	Value int64
	Min   int64
	Max   int64
}

func (err *ErrOutOfRange) Error() string {
	return f("%v is out of range [%v, %v]", err.Value, err.Min, err.Max)
}

func (err *ErrOutOfRange) Unwrap() error {
	return ErrRange
}
