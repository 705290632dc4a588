package cpu

import (
	"errors"
	"iter"
	"maps"
)

// SymbolTable maps labels to memory addresses.
type SymbolTable map[string]int

// Define binds a label to an address. Unless replace is set, redefining
// a label is an error.
func (st *SymbolTable) Define(label string, addr int, replace bool) (err error) {
	if *st == nil {
		*st = make(SymbolTable, 16)
	}

	_, ok := (*st)[label]
	if ok && !replace {
		err = errors.Join(ErrSyntax, ErrLabelDuplicate)
		return
	}

	(*st)[label] = addr
	return
}

// Lookup returns the address of a label.
func (st SymbolTable) Lookup(label string) (addr int, ok bool) {
	addr, ok = st[label]
	return
}

// All iterates over every label and its address.
func (st SymbolTable) All() iter.Seq2[string, int] {
	return maps.All(st)
}
