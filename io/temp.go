package io

// Temporary implements a bounded FIFO loopback: values sent by Output are
// returned, in order, by later calls to Input.
type Temporary struct {
	Capacity int // Capacity in values. Zero is unbounded.

	Data []int16
}

var _ Channel = (*Temporary)(nil)
var _ Rewinder = (*Temporary)(nil)

// Rewind empties the queue.
func (temp *Temporary) Rewind() {
	temp.Data = temp.Data[:0]
}

// Input removes the oldest value from the queue.
// Returns ErrInputMissing if the queue is empty.
func (temp *Temporary) Input() (value int16, err error) {
	if len(temp.Data) == 0 {
		err = ErrInputMissing
		return
	}

	value = temp.Data[0]
	temp.Data = temp.Data[1:]
	return
}

// Output appends a value to the queue.
// Returns ErrChannelFull if the queue has reached capacity.
func (temp *Temporary) Output(value int16) (err error) {
	if temp.Capacity > 0 && len(temp.Data) >= temp.Capacity {
		err = ErrChannelFull
		return
	}

	temp.Data = append(temp.Data, value)
	return
}
