package cpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"text/tabwriter"
)

// Image is the content of all memory cells.
type Image [MEMORY_SIZE]Code

// MarshalBinary encodes the image as little-endian 16-bit cells.
func (img *Image) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 0, 2*len(img))
	for _, code := range img {
		data = binary.LittleEndian.AppendUint16(data, uint16(code))
	}

	return
}

// UnmarshalBinary decodes an image written by MarshalBinary.
func (img *Image) UnmarshalBinary(data []byte) (err error) {
	if len(data) != 2*len(img) {
		err = errors.Join(ErrImageSize, &ErrOutOfRange{Value: int64(len(data)), Min: 2 * MEMORY_SIZE, Max: 2 * MEMORY_SIZE})
		return
	}

	for n := range img {
		img[n] = Code(binary.LittleEndian.Uint16(data[2*n:]))
	}

	return
}

// Opcode is the listing of one assembled memory cell.
type Opcode struct {
	LineNo    int      // Source line number.
	Addr      int      // Memory address.
	Words     []string // Source words.
	Code      Code     // Encoded cell.
	LinkLabel string   // Symbolic operand, if any.
}

// Program is an assembled memory image and its listing.
type Program struct {
	Image   Image
	Opcodes []Opcode
}

// Debug returns the listing entry for an address, or nil.
func (prog *Program) Debug(addr int) (op *Opcode) {
	for n := range prog.Opcodes {
		if prog.Opcodes[n].Addr == addr {
			op = &prog.Opcodes[n]
			break
		}
	}

	return
}

// Binary returns the memory image in its binary form.
func (prog *Program) Binary() (bins []byte) {
	bins, _ = prog.Image.MarshalBinary()
	return
}

// Codes iterates over the assembled cells.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(addr int, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Addr, op.Code) {
				return
			}
		}
	}
}

// Listing writes the address, cell, disassembly and source of every
// assembled cell.
func (prog *Program) Listing(w io.Writer) (err error) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for _, op := range prog.Opcodes {
		_, err = fmt.Fprintf(tw, "%02d\t%04d\t%v\t; %d: %v\n",
			op.Addr, int16(op.Code), op.Code, op.LineNo, strings.Join(op.Words, " "))
		if err != nil {
			return
		}
	}

	return tw.Flush()
}
