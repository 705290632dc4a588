package io

// Buffer is a scripted channel: Input returns Inputs in order, and Output
// appends to Outputs.
type Buffer struct {
	Inputs  []int16
	Outputs []int16

	readIndex int
}

var _ Channel = (*Buffer)(nil)
var _ Rewinder = (*Buffer)(nil)

// Rewind restarts the inputs and discards the outputs.
func (bc *Buffer) Rewind() {
	bc.readIndex = 0
	bc.Outputs = nil
}

// Input returns the next scripted input.
// Returns ErrInputMissing once all inputs are consumed.
func (bc *Buffer) Input() (value int16, err error) {
	if bc.readIndex >= len(bc.Inputs) {
		err = ErrInputMissing
		return
	}

	value = bc.Inputs[bc.readIndex]
	bc.readIndex++
	return
}

// Output records a value.
func (bc *Buffer) Output(value int16) (err error) {
	bc.Outputs = append(bc.Outputs, value)
	return
}
