// Package cpu implements the assembler and the processor of a Little Man
// Computer.
//
// The processor has a single signed 16-bit accumulator, a program counter and
// one hundred signed 16-bit memory cells shared by code and data. Every cell
// decodes as a three digit instruction: the hundreds digit selects the opcode
// class, the remaining two digits are the operand address.
//
// The assembler is a two pass assembler. The first pass parses every source
// line into a statement and collects labels into a symbol table; the second
// pass resolves operands and encodes one memory cell per statement. Operands
// may be compile-time $(...) expressions, evaluated with Starlark.
package cpu
