package cpu

import (
	"fmt"
	"strings"
)

const (
	MEMORY_SIZE = 100 // Number of memory cells.
	CODE_RADIX  = 100 // A cell is class * CODE_RADIX + operand.
)

// CodeClass is the opcode class, the hundreds digit of a cell.
type CodeClass int

//go:generate go tool stringer -linecomment -type=CodeClass
const (
	OP_HLT  = CodeClass(0) // HLT
	OP_ADD  = CodeClass(1) // ADD
	OP_SUB  = CodeClass(2) // SUB
	OP_STA  = CodeClass(3) // STA
	OP_RSVD = CodeClass(4) // RSVD
	OP_LDA  = CodeClass(5) // LDA
	OP_BRA  = CodeClass(6) // BRA
	OP_BRZ  = CodeClass(7) // BRZ
	OP_BRP  = CodeClass(8) // BRP
	OP_IO   = CodeClass(9) // IO
)

// Operands of the OP_IO class.
const (
	IO_OP_INP = 1
	IO_OP_OUT = 2
)

// Mnemonic is an assembly language instruction name.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	MN_ADD = Mnemonic(0)  // ADD
	MN_SUB = Mnemonic(1)  // SUB
	MN_STA = Mnemonic(2)  // STA
	MN_LDA = Mnemonic(3)  // LDA
	MN_BRA = Mnemonic(4)  // BRA
	MN_BRZ = Mnemonic(5)  // BRZ
	MN_BRP = Mnemonic(6)  // BRP
	MN_INP = Mnemonic(7)  // INP
	MN_OUT = Mnemonic(8)  // OUT
	MN_HLT = Mnemonic(9)  // HLT
	MN_DAT = Mnemonic(10) // DAT
)

// mnemonicMap maps upper case mnemonic names.
var mnemonicMap = map[string]Mnemonic{
	"ADD": MN_ADD,
	"SUB": MN_SUB,
	"STA": MN_STA,
	"LDA": MN_LDA,
	"BRA": MN_BRA,
	"BRZ": MN_BRZ,
	"BRP": MN_BRP,
	"INP": MN_INP,
	"OUT": MN_OUT,
	"HLT": MN_HLT,
	"DAT": MN_DAT,
}

// LookupMnemonic finds a mnemonic by name, ignoring case.
func LookupMnemonic(word string) (mn Mnemonic, ok bool) {
	mn, ok = mnemonicMap[strings.ToUpper(word)]
	return
}

// TakesAddress is true for the mnemonics that require an address operand.
func (mn Mnemonic) TakesAddress() bool {
	return mn >= MN_ADD && mn <= MN_BRP
}

// Code returns the encoding of the mnemonic with a zero operand.
// DAT has no fixed encoding and returns ok == false.
func (mn Mnemonic) Code() (code Code, ok bool) {
	ok = true
	switch mn {
	case MN_ADD:
		code = MakeCode(OP_ADD, 0)
	case MN_SUB:
		code = MakeCode(OP_SUB, 0)
	case MN_STA:
		code = MakeCode(OP_STA, 0)
	case MN_LDA:
		code = MakeCode(OP_LDA, 0)
	case MN_BRA:
		code = MakeCode(OP_BRA, 0)
	case MN_BRZ:
		code = MakeCode(OP_BRZ, 0)
	case MN_BRP:
		code = MakeCode(OP_BRP, 0)
	case MN_INP:
		code = MakeCode(OP_IO, IO_OP_INP)
	case MN_OUT:
		code = MakeCode(OP_IO, IO_OP_OUT)
	case MN_HLT:
		code = MakeCode(OP_HLT, 0)
	default:
		ok = false
	}

	return
}

// Code is the content of a single memory cell.
type Code int16

// MakeCode encodes an opcode class and operand into a cell.
func MakeCode(class CodeClass, operand int) Code {
	return Code(int(class)*CODE_RADIX + operand)
}

// Class returns the opcode class of the cell.
// Division truncates, so negative cells yield zero or negative classes.
func (code Code) Class() CodeClass {
	return CodeClass(int16(code) / CODE_RADIX)
}

// Operand returns the operand digits of the cell.
func (code Code) Operand() int {
	return int(int16(code) % CODE_RADIX)
}

// Decode returns both the opcode class and the operand.
func (code Code) Decode() (class CodeClass, operand int) {
	return code.Class(), code.Operand()
}

// Mnemonic recovers the mnemonic a cell executes as.
// Reserved and out-of-table cells return ok == false.
func (code Code) Mnemonic() (mn Mnemonic, ok bool) {
	class, operand := code.Decode()

	ok = true
	switch class {
	case OP_HLT:
		mn = MN_HLT
	case OP_ADD:
		mn = MN_ADD
	case OP_SUB:
		mn = MN_SUB
	case OP_STA:
		mn = MN_STA
	case OP_LDA:
		mn = MN_LDA
	case OP_BRA:
		mn = MN_BRA
	case OP_BRZ:
		mn = MN_BRZ
	case OP_BRP:
		mn = MN_BRP
	case OP_IO:
		switch operand {
		case IO_OP_INP:
			mn = MN_INP
		case IO_OP_OUT:
			mn = MN_OUT
		default:
			ok = false
		}
	default:
		ok = false
	}

	return
}

// String returns the assembly language representation of the cell.
// Cells that do not execute as a canonical instruction render as DAT.
func (code Code) String() string {
	mn, ok := code.Mnemonic()
	switch {
	case !ok:
		// not an instruction
	case mn.TakesAddress():
		return fmt.Sprintf("%v %02d", mn, code.Operand())
	case mn == MN_HLT && code != 0:
		// halts, but was clearly data
	default:
		return mn.String()
	}

	return fmt.Sprintf("%v %d", MN_DAT, int16(code))
}
