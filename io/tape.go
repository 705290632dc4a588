package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Tape provides line oriented console I/O. Each input is one line of
// decimal text read from Reader; each output is written to Writer as
// 'OUT: <value>'.
type Tape struct {
	Reader io.Reader
	Writer io.Writer
	Prompt bool // If set, writes 'IN: ' to Writer before each input.

	scanner *bufio.Scanner
	source  io.Reader
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Input reads and parses the next line.
func (tc *Tape) Input() (value int16, err error) {
	if tc.Prompt {
		_, err = io.WriteString(tc.Writer, "IN: ")
		if err != nil {
			return
		}
	}

	if tc.scanner == nil || tc.source != tc.Reader {
		tc.scanner = bufio.NewScanner(tc.Reader)
		tc.source = tc.Reader
	}

	if !tc.scanner.Scan() {
		err = tc.scanner.Err()
		if err == nil {
			err = ErrInputMissing
		}
		return
	}

	text := strings.TrimSpace(tc.scanner.Text())
	v64, err := strconv.ParseInt(text, 10, 16)
	if err != nil {
		err = ErrParseNumber(text)
		return
	}

	value = int16(v64)
	return
}

// Output writes the value on its own line.
func (tc *Tape) Output(value int16) (err error) {
	_, err = fmt.Fprintf(tc.Writer, "OUT: %d\n", value)
	return
}
