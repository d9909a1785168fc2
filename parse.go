package vjson

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Parse errors. Parse wraps ErrInvalidJSON with the byte offset of the
// failure; there is no finer-grained diagnostic than that.
var (
	ErrEmptyDocument = errors.New("vjson: empty document")
	ErrInvalidJSON   = errors.New("vjson: invalid json document")
)

// parser is a single-pass recursive-descent parser over a fully
// buffered input. State is the read cursor plus two scratch buffers:
// decoded UTF-8 bytes for the string in progress, and pending UTF-16
// code units collected from consecutive \uXXXX escapes.
type parser struct {
	data  []byte
	pos   int
	utf8  []byte
	utf16 []uint16
}

// Parse decodes one JSON value from data. Tolerances beyond RFC 8259:
// strtod-style numbers (leading '+' accepted), a non-standard \0
// escape, trailing commas in arrays and objects, and trailing bytes
// after the root value are ignored. Duplicate object keys are kept in
// parse order.
func Parse(data []byte) (Value, error) {
	if len(data) == 0 {
		return Value{}, ErrEmptyDocument
	}
	p := parser{
		data:  data,
		utf8:  make([]byte, 0, 64),
		utf16: make([]uint16, 0, 16),
	}
	var root Value
	if !p.parseValue(&root) {
		return Value{}, fmt.Errorf("%w at offset %d", ErrInvalidJSON, p.pos)
	}
	return root, nil
}

// ParseString decodes one JSON value from a string.
func ParseString(src string) (Value, error) {
	return Parse([]byte(src))
}

// Read decodes one JSON value from a string, yielding Null for the
// entire input on any failure.
func Read(src string) Value {
	v, err := ParseString(src)
	if err != nil {
		return Value{}
	}
	return v
}

// ReadFrom buffers the whole reader and parses it. There is no
// streaming mode; the input must fit in memory.
func ReadFrom(r io.Reader) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Value{}, err
	}
	return Parse(data)
}

func (p *parser) parseValue(root *Value) bool {
	p.skipSpace()
	if p.pos >= len(p.data) {
		return false
	}
	switch p.data[p.pos] {
	case 'n':
		return p.parseKeyword("null", Value{}, root)
	case 't':
		return p.parseKeyword("true", Bool(true), root)
	case 'f':
		return p.parseKeyword("false", Bool(false), root)
	case '"':
		return p.parseString(root)
	case '[':
		return p.parseArray(root)
	case '{':
		return p.parseObject(root)
	}
	return p.parseNumber(root)
}

// parseKeyword matches a literal keyword followed by a delimiter, so
// "nullx" fails as one unrecognized token rather than parsing as null.
func (p *parser) parseKeyword(lit string, v Value, root *Value) bool {
	end := p.pos + len(lit)
	if end > len(p.data) || string(p.data[p.pos:end]) != lit {
		return false
	}
	if end < len(p.data) && !isDelimiter(p.data[end]) {
		return false
	}
	p.pos = end
	*root = v
	return true
}

func (p *parser) parseNumber(root *Value) bool {
	f, n := floatPrefix(p.data[p.pos:])
	if n == 0 {
		return false
	}
	p.pos += n
	*root = Number(f)
	return true
}

func (p *parser) parseString(root *Value) bool {
	if !p.scanString() {
		return false
	}
	*root = String(string(p.utf8))
	return true
}

// scanString consumes a quoted string and leaves its decoded bytes in
// the utf8 scratch buffer. An unescaped control byte fails the parse.
func (p *parser) scanString() bool {
	if !p.skipByte('"') {
		return false
	}
	p.utf8 = p.utf8[:0]
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c < 0x20 {
			return false
		}
		if c == '"' {
			p.pos++
			return true
		}
		if c == '\\' {
			if !p.scanEscape() {
				return false
			}
			continue
		}
		p.utf8 = append(p.utf8, c)
		p.pos++
	}
	return false
}

func (p *parser) scanEscape() bool {
	if p.pos+1 >= len(p.data) {
		return false
	}
	var b byte
	switch p.data[p.pos+1] {
	case '0': // \0 is not valid JSON, but \u0000 is
		b = 0x00
	case '"':
		b = '"'
	case '\\':
		b = '\\'
	case '/':
		b = '/'
	case 'b':
		b = '\b'
	case 'f':
		b = '\f'
	case 'n':
		b = '\n'
	case 'r':
		b = '\r'
	case 't':
		b = '\t'
	case 'u':
		return p.scanUnicodeEscapes()
	default:
		return false
	}
	p.utf8 = append(p.utf8, b)
	p.pos += 2
	return true
}

// scanUnicodeEscapes collects every consecutive \uXXXX escape as UTF-16
// code units and decodes the block at once, so surrogate pairs combine
// into one codepoint before re-encoding as UTF-8. An unpaired surrogate
// anywhere in the block fails.
func (p *parser) scanUnicodeEscapes() bool {
	p.utf16 = p.utf16[:0]
	for p.pos+6 <= len(p.data) && p.data[p.pos] == '\\' && p.data[p.pos+1] == 'u' {
		var u uint16
		for _, c := range p.data[p.pos+2 : p.pos+6] {
			d, ok := hexDigit(c)
			if !ok {
				return false
			}
			u = u<<4 | uint16(d)
		}
		p.utf16 = append(p.utf16, u)
		p.pos += 6
	}
	if len(p.utf16) == 0 {
		// truncated \u escape
		return false
	}
	var ok bool
	p.utf8, ok = appendUTF16(p.utf8, p.utf16)
	return ok
}

func (p *parser) parseArray(root *Value) bool {
	if !p.skipByte('[') {
		return false
	}
	elems := make([]Value, 0, 8)
	for p.pos < len(p.data) {
		p.skipSpace()
		if p.skipByte(']') {
			*root = Value{typ: TypeArray, arr: elems}
			return true
		}
		var elem Value
		if !p.parseValue(&elem) {
			return false
		}
		elems = append(elems, elem)
		p.skipSpace()
		p.skipByte(',')
	}
	return false
}

func (p *parser) parseObject(root *Value) bool {
	if !p.skipByte('{') {
		return false
	}
	props := make([]Property, 0, 8)
	for p.pos < len(p.data) {
		p.skipSpace()
		if p.skipByte('}') {
			*root = Value{typ: TypeObject, obj: props}
			return true
		}
		if !p.scanString() {
			return false
		}
		name := string(p.utf8)
		p.skipSpace()
		if !p.skipByte(':') {
			return false
		}
		var val Value
		if !p.parseValue(&val) {
			return false
		}
		props = append(props, Property{Value: val, name: name})
		p.skipSpace()
		p.skipByte(',')
	}
	return false
}

// Scanning utilities -----------------------------------------------------

func (p *parser) skipSpace() {
	for p.pos < len(p.data) && isSpace(p.data[p.pos]) {
		p.pos++
	}
}

func (p *parser) skipByte(c byte) bool {
	if p.pos < len(p.data) && p.data[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDelimiter(c byte) bool {
	return isSpace(c) || c == ',' || c == ']' || c == '}'
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// floatPrefix scans the longest strtod-style numeric prefix of s and
// returns its value and byte length. Accepts an optional leading sign
// (including '+', which strict JSON rejects), a fractional part, and
// an exponent. Returns length 0 when no prefix parses.
func floatPrefix(s []byte) (float64, int) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := false
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits = true
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits = true
		}
	}
	if !digits {
		return 0, 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := false
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			expDigits = true
		}
		if expDigits {
			i = j
		}
	}
	f, err := strconv.ParseFloat(string(s[:i]), 64)
	if err != nil {
		return 0, 0
	}
	return f, i
}
