package cpu

import (
	"strconv"
)

// Address is an instruction operand: one of Exact, Symbol or Expression.
type Address interface {
	String() string
	isAddress()
}

// Exact is a numeric cell index.
type Exact uint16

// Symbol is a label name, resolved once all labels are known.
type Symbol string

// Expression is the text of a $(...) operand, evaluated once all labels are known.
type Expression string

func (Exact) isAddress()      {}
func (Symbol) isAddress()     {}
func (Expression) isAddress() {}

func (a Exact) String() string      { return strconv.Itoa(int(a)) }
func (a Symbol) String() string     { return string(a) }
func (a Expression) String() string { return "$(" + string(a) + ")" }

// Instruction is a parsed instruction: one of *AddressInstruction,
// *BareInstruction or *DataInstruction.
type Instruction interface {
	Mnemonic() Mnemonic
	isInstruction()
}

// AddressInstruction is ADD, SUB, STA, LDA, BRA, BRZ or BRP.
type AddressInstruction struct {
	Op      Mnemonic
	Address Address
}

// BareInstruction is INP, OUT or HLT.
type BareInstruction struct {
	Op Mnemonic
}

// DataInstruction is DAT. A non-empty Expression takes precedence over Value.
type DataInstruction struct {
	Value      int16
	Expression Expression
}

func (*AddressInstruction) isInstruction() {}
func (*BareInstruction) isInstruction()    {}
func (*DataInstruction) isInstruction()    {}

func (in *AddressInstruction) Mnemonic() Mnemonic { return in.Op }
func (in *BareInstruction) Mnemonic() Mnemonic    { return in.Op }
func (in *DataInstruction) Mnemonic() Mnemonic    { return MN_DAT }

// Statement is a single parsed source line.
type Statement struct {
	LineNo      int      // Source line number, from 1.
	Line        string   // Source text.
	Addr        int      // Memory cell occupied.
	Words       []string // Tokens of the line.
	Label       string   // Label defined by the line, if any.
	Instruction Instruction
}
