package cpu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 2, Addr: 0, Words: []string{"INP"}, Code: 901},
			{LineNo: 3, Addr: 1, Words: []string{"OUT"}, Code: 902},
			{LineNo: 5, Addr: 2, Words: []string{"BRA", "done"}, Code: 603, LinkLabel: "done"},
			{LineNo: 6, Addr: 3, Words: []string{"done", "HLT"}, Code: 0},
		},
	}

	dbg := prog.Debug(0)
	assert.NotNil(dbg)
	assert.Equal(2, dbg.LineNo)

	dbg = prog.Debug(2)
	assert.NotNil(dbg)
	assert.Equal(5, dbg.LineNo)
	assert.Equal("done", dbg.LinkLabel)

	dbg = prog.Debug(3)
	assert.NotNil(dbg)
	assert.Equal(6, dbg.LineNo)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Addr: 0, Words: []string{"HLT"}},
		},
	}

	assert.Nil(prog.Debug(1))
	assert.Nil(prog.Debug(-1))
	assert.Nil(prog.Debug(MEMORY_SIZE))
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("INP\nOUT\nHLT\n"))
	assert.NoError(err)

	addrs := []int{}
	codes := []Code{}
	for addr, code := range prog.Codes() {
		addrs = append(addrs, addr)
		codes = append(codes, code)
	}
	assert.Equal([]int{0, 1, 2}, addrs)
	assert.Equal([]Code{901, 902, 0}, codes)

	// Early exit
	count := 0
	for range prog.Codes() {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{}
	prog.Image[0] = 901
	prog.Image[1] = -2
	prog.Image[99] = 32767

	data := prog.Binary()
	assert.Len(data, 2*MEMORY_SIZE)
	assert.Equal([]byte{0x85, 0x03}, data[0:2])
	assert.Equal([]byte{0xfe, 0xff}, data[2:4])
	assert.Equal([]byte{0xff, 0x7f}, data[198:200])

	image := &Image{}
	err := image.UnmarshalBinary(data)
	assert.NoError(err)
	assert.Equal(prog.Image, *image)
}

func TestImage_UnmarshalBinary_Size(t *testing.T) {
	assert := assert.New(t)

	image := &Image{}
	image[5] = 123

	for _, size := range []int{0, 1, 2*MEMORY_SIZE - 1, 2*MEMORY_SIZE + 1} {
		err := image.UnmarshalBinary(make([]byte, size))
		assert.ErrorIs(err, ErrImageSize, size)
		assert.ErrorIs(err, ErrRange, size)
		assert.Equal(Code(123), image[5], size)
	}
}

func TestProgram_Listing(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"; print one",
		"      LDA one",
		"      OUT",
		"      HLT",
		"one   DAT 1",
	}, "\n")

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(source))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	buff := &bytes.Buffer{}
	err = prog.Listing(buff)
	assert.NoError(err)

	lines := strings.Split(strings.TrimRight(buff.String(), "\n"), "\n")
	assert.Len(lines, 4)

	fields := strings.Fields(lines[0])
	assert.Equal([]string{"00", "0503", "LDA", "03", ";", "2:", "LDA", "one"}, fields)

	fields = strings.Fields(lines[1])
	assert.Equal([]string{"01", "0902", "OUT", ";", "3:", "OUT"}, fields)

	fields = strings.Fields(lines[3])
	assert.Equal([]string{"03", "0001", "DAT", "1", ";", "5:", "one", "DAT", "1"}, fields)
}
