// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"log"
	"maps"
	"math"
	"slices"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/lmc/internal"
)

// Predefined expression constants: the memory size and the encoding of
// every mnemonic with a zero operand.
var sysDefine = func() (defines map[string]int) {
	defines = map[string]int{
		"MEMORY_SIZE": MEMORY_SIZE,
	}
	for name, mn := range mnemonicMap {
		code, ok := mn.Code()
		if ok {
			defines[name] = int(code)
		}
	}
	return
}()

// Assembler is a two pass assembler for the Little Man Computer.
//
// The first pass parses every line and collects labels; the second pass
// resolves operands against the complete symbol table and encodes the
// memory image.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.
	Legacy  bool // If set, use the legacy label heuristic.

	Statement []Statement // Parsed statements, one per memory cell.
	Label     SymbolTable // Map of labels to memory addresses.

	predefine map[string]int // Predefines
}

// Predefine defines a new expression constant or redefines an existing one.
func (asm *Assembler) Predefine(name string, value int) {
	if asm.predefine == nil {
		asm.predefine = map[string]int{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// Defines iterates over the constants visible to an expression in the
// cell at address 'here'. Labels shadow predefines, which shadow the
// system constants.
func (asm *Assembler) Defines(here int) iter.Seq2[string, int] {
	return internal.IterSeq2Concat(
		maps.All(sysDefine),
		maps.All(map[string]int{"HERE": here}),
		maps.All(asm.predefine),
		asm.Label.All(),
	)
}

// Parse parses an input stream into a Program containing the memory image.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	asm.Statement = asm.Statement[:0]
	clear(asm.Label)

	var lineno int
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		err = asm.parseLine(text, lineno)
		if err != nil {
			err = &ErrLine{LineNo: lineno, Line: text, Err: err}
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	return asm.link()
}

// parseLine is the first pass for a single line.
func (asm *Assembler) parseLine(text string, lineno int) (err error) {
	stmt, err := ParseLine(text, asm.Legacy)
	if err != nil {
		return
	}

	if stmt.Instruction == nil {
		return
	}

	addr := len(asm.Statement)
	if addr >= MEMORY_SIZE {
		err = errors.Join(ErrRange, ErrProgramTooLong)
		return
	}

	stmt.LineNo = lineno
	stmt.Addr = addr

	if len(stmt.Label) != 0 {
		err = asm.Label.Define(stmt.Label, addr, asm.Legacy)
		if err != nil {
			return
		}
	}

	asm.Statement = append(asm.Statement, stmt)

	return
}

// link is the second pass, encoding every statement.
func (asm *Assembler) link() (prog *Program, err error) {
	image := Image{}
	opcodes := make([]Opcode, 0, len(asm.Statement))

	for _, stmt := range asm.Statement {
		var code Code
		code, err = asm.encode(&stmt)
		if err != nil {
			err = &ErrLine{LineNo: stmt.LineNo, Line: stmt.Line, Err: err}
			return
		}

		if asm.Verbose {
			log.Printf("asm: %02d %04d %v", stmt.Addr, int16(code), code)
		}

		image[stmt.Addr] = code

		var link string
		if in, ok := stmt.Instruction.(*AddressInstruction); ok {
			if _, exact := in.Address.(Exact); !exact {
				link = in.Address.String()
			}
		}

		opcodes = append(opcodes, Opcode{
			LineNo:    stmt.LineNo,
			Addr:      stmt.Addr,
			Words:     slices.Clone(stmt.Words),
			Code:      code,
			LinkLabel: link,
		})
	}

	prog = &Program{
		Image:   image,
		Opcodes: opcodes,
	}

	return
}

// encode generates the memory cell of a statement.
func (asm *Assembler) encode(stmt *Statement) (code Code, err error) {
	switch in := stmt.Instruction.(type) {
	case *AddressInstruction:
		var addr int64
		addr, err = asm.resolve(in.Address, stmt.Addr)
		if err != nil {
			return
		}
		if addr < 0 || addr >= MEMORY_SIZE {
			err = &ErrOutOfRange{Value: addr, Min: 0, Max: MEMORY_SIZE - 1}
			return
		}
		code, _ = in.Op.Code()
		code += Code(addr)
	case *BareInstruction:
		code, _ = in.Op.Code()
	case *DataInstruction:
		if len(in.Expression) == 0 {
			code = Code(in.Value)
			return
		}
		var value int64
		value, err = asm.evaluate(in.Expression, stmt.Addr)
		if err != nil {
			return
		}
		if value < math.MinInt16 || value > math.MaxInt16 {
			err = &ErrOutOfRange{Value: value, Min: math.MinInt16, Max: math.MaxInt16}
			return
		}
		code = Code(value)
	default:
		err = errors.Join(ErrSyntax, ErrInstructionInvalid)
	}

	return
}

// resolve finds the value of an address operand.
func (asm *Assembler) resolve(addr Address, here int) (value int64, err error) {
	switch a := addr.(type) {
	case Exact:
		value = int64(a)
	case Symbol:
		ip, ok := asm.Label.Lookup(string(a))
		if !ok {
			err = ErrLabelMissing(a)
			return
		}
		value = int64(ip)
	case Expression:
		value, err = asm.evaluate(a, here)
	default:
		err = errors.Join(ErrSyntax, ErrInstructionInvalid)
	}

	return
}

// evaluate does compile-time $(...) evaluations.
func (asm *Assembler) evaluate(expr Expression, here int) (value int64, err error) {
	thread := starlark.Thread{Name: "lmc"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, val := range asm.Defines(here) {
		pred[key] = starlark.MakeInt(val)
	}

	prog := "rc=" + string(expr) + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		var unresolved resolve.ErrorList
		if errors.As(err, &unresolved) {
			err = errors.Join(ErrSymbol, ErrParseExpression(expr), err)
		} else {
			err = errors.Join(ErrSyntax, ErrParseExpression(expr), err)
		}
		return
	}

	st_rc, ok := dict["rc"]
	if !ok {
		err = errors.Join(ErrSyntax, ErrParseExpression(expr))
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = errors.Join(ErrSyntax, ErrParseExpression(expr))
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = &ErrOutOfRange{Value: math.MaxInt64, Min: math.MinInt16, Max: math.MaxInt16}
		return
	}

	return
}
