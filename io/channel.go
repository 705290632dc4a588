// Package io provides the input/output channels of the Little Man Computer.
// A channel supplies values for INP and records values from OUT. It
// includes a line oriented console channel (Tape), a scripted channel for
// tests and embedding (Buffer), and a bounded loopback queue (Temporary).
package io

// Channel is the input/output capability the processor depends on.
type Channel interface {
	// Input returns the next input value. It may block.
	Input() (value int16, err error)
	// Output records an output value.
	Output(value int16) error
}

// Rewinder is implemented by channels that can be reset to their initial state.
type Rewinder interface {
	// Rewind resets the channel to its initial state.
	Rewind()
}
