package cpu

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// labelRegexp matches the labels accepted by the strict grammar.
var labelRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// isSpace matches ASCII whitespace.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// isExpression is true for a $(...) word.
func isExpression(word string) bool {
	return strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")")
}

// splitWords splits a line on whitespace, keeping each $(...) group as
// a single word, and dropping any ';' comment.
func splitWords(line string) (words []string, err error) {
	var word strings.Builder
	depth := 0

	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

scan:
	for n := 0; n < len(line); n++ {
		c := line[n]
		switch {
		case depth == 0 && c == ';':
			break scan
		case depth == 0 && isSpace(c):
			flush()
		case depth == 0 && c == '$' && n+1 < len(line) && line[n+1] == '(':
			word.WriteString("$(")
			depth = 1
			n++
		case depth > 0 && c == '(':
			word.WriteByte(c)
			depth++
		case depth > 0 && c == ')':
			word.WriteByte(c)
			depth--
		default:
			word.WriteByte(c)
		}
	}

	if depth != 0 {
		err = errors.Join(ErrSyntax, ErrParseExpression(strings.TrimPrefix(word.String(), "$(")))
		return
	}

	flush()
	return
}

// splitLegacy splits a line on whitespace only.
func splitLegacy(line string) (words []string) {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r < 0x80 && isSpace(byte(r))
	})
}

// ParseLine parses one line of source text into a statement.
// Statement.LineNo and Statement.Addr are left for the caller to fill in.
//
// A blank or comment-only line yields a statement with a nil Instruction
// under the strict grammar. Under the legacy grammar it is an error.
func ParseLine(line string, legacy bool) (stmt Statement, err error) {
	stmt.Line = line

	if legacy {
		stmt.Words = splitLegacy(line)
		stmt.Label, stmt.Instruction, err = parseLegacy(stmt.Words)
		return
	}

	stmt.Words, err = splitWords(line)
	if err != nil {
		return
	}

	stmt.Label, stmt.Instruction, err = parseStrict(stmt.Words)
	return
}

// parseStrict parses words as '[label] MNEMONIC [operand]'.
func parseStrict(words []string) (label string, inst Instruction, err error) {
	if len(words) == 0 {
		return
	}

	mn, ok := LookupMnemonic(words[0])
	if !ok {
		label = words[0]
		if !labelRegexp.MatchString(label) {
			err = errors.Join(ErrSyntax, ErrLabelInvalid)
			return
		}
		words = words[1:]
		if len(words) == 0 {
			err = errors.Join(ErrSyntax, ErrOpcodeMissing)
			return
		}
		mn, ok = LookupMnemonic(words[0])
		if !ok {
			err = errors.Join(ErrSyntax, ErrOpcodeInvalid)
			return
		}
	}

	inst, err = makeInstruction(mn, words[1:], false)
	return
}

// parseLegacy parses words with the try-instruction-then-label heuristic:
// three words are always 'label MNEMONIC operand'; otherwise the first word
// is tried as a mnemonic, and on failure taken as a label for a bare
// second word mnemonic.
func parseLegacy(words []string) (label string, inst Instruction, err error) {
	if len(words) == 0 {
		err = errors.Join(ErrSyntax, ErrOpcodeMissing)
		return
	}

	if len(words) == 3 {
		label = words[0]
		inst, err = makeLegacy(words[1], words[2:])
		return
	}

	inst, err = makeLegacy(words[0], words[1:min(2, len(words))])
	if err == nil {
		return
	}

	if len(words) < 2 {
		return
	}

	label = words[0]
	inst, err = makeLegacy(words[1], nil)
	return
}

// makeLegacy looks up a mnemonic and builds its legacy instruction.
func makeLegacy(word string, operands []string) (inst Instruction, err error) {
	mn, ok := LookupMnemonic(word)
	if !ok {
		err = errors.Join(ErrSyntax, ErrOpcodeInvalid)
		return
	}

	return makeInstruction(mn, operands, true)
}

// makeInstruction builds the instruction for a mnemonic and its operands.
func makeInstruction(mn Mnemonic, operands []string, legacy bool) (inst Instruction, err error) {
	if !legacy {
		limit := 0
		if mn.TakesAddress() || mn == MN_DAT {
			limit = 1
		}
		if len(operands) > limit {
			err = errors.Join(ErrSyntax, ErrOperandExtra)
			return
		}
	}

	switch {
	case mn.TakesAddress():
		if len(operands) == 0 {
			err = errors.Join(ErrSyntax, ErrOperandMissing)
			return
		}
		var addr Address
		addr, err = parseAddress(operands[0], legacy)
		if err != nil {
			return
		}
		inst = &AddressInstruction{Op: mn, Address: addr}
	case mn == MN_DAT:
		data := &DataInstruction{}
		if len(operands) > 0 {
			word := operands[0]
			if !legacy && isExpression(word) {
				data.Expression, err = parseExpression(word)
				if err != nil {
					return
				}
			} else {
				value, perr := strconv.ParseInt(word, 10, 64)
				switch {
				case perr == nil && value >= math.MinInt16 && value <= math.MaxInt16:
					data.Value = int16(value)
				case legacy:
					// unparsable literals are zero
				case perr == nil || errors.Is(perr, strconv.ErrRange):
					err = &ErrOutOfRange{Value: value, Min: math.MinInt16, Max: math.MaxInt16}
					return
				default:
					err = errors.Join(ErrSyntax, ErrParseNumber(word))
					return
				}
			}
		}
		inst = data
	default:
		inst = &BareInstruction{Op: mn}
	}

	return
}

// parseExpression returns the body of a $(...) word.
func parseExpression(word string) (expr Expression, err error) {
	body := strings.TrimSpace(word[2 : len(word)-1])
	if len(body) == 0 {
		err = errors.Join(ErrSyntax, ErrExpressionEmpty)
		return
	}

	expr = Expression(body)
	return
}

// parseAddress parses an address operand: an unsigned 16-bit literal, or
// failing that a label. The strict grammar also accepts $(...) expressions,
// and rejects numbers outside 16 bits and malformed labels.
func parseAddress(word string, legacy bool) (addr Address, err error) {
	value, err := strconv.ParseUint(word, 10, 16)
	if err == nil {
		addr = Exact(value)
		return
	}
	err = nil

	if legacy {
		addr = Symbol(word)
		return
	}

	if isExpression(word) {
		var expr Expression
		expr, err = parseExpression(word)
		addr = expr
		return
	}

	signed, perr := strconv.ParseInt(word, 10, 64)
	if perr == nil || errors.Is(perr, strconv.ErrRange) {
		err = &ErrOutOfRange{Value: signed, Min: 0, Max: MEMORY_SIZE - 1}
		return
	}

	if !labelRegexp.MatchString(word) {
		err = errors.Join(ErrSyntax, ErrLabelInvalid)
		return
	}

	addr = Symbol(word)
	return
}
