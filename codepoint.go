package vjson

// UTF-16 / UTF-8 codepoint conversion used by the string-escape decoder.
// Surrogate handling is explicit: the parser buffers consecutive \uXXXX
// escapes as UTF-16 code units and decodes them here as a block, so pairs
// combine into a single codepoint before re-encoding as UTF-8.

const (
	surrogateMin  = 0xD800
	surrogateMax  = 0xDFFF
	maxCodepoint  = 0x10FFFF
	surrogateSelf = 0x10000 // offset added to a decoded surrogate pair
)

func isSurrogateHead(u uint16) bool { return u&0xFC00 == 0xD800 }

func isSurrogateTail(u uint16) bool { return u&0xFC00 == 0xDC00 }

// validCodepoint reports whether r is a Unicode scalar value: at most
// U+10FFFF and outside the surrogate block.
func validCodepoint(r rune) bool {
	return r >= 0 && r <= maxCodepoint && (r < surrogateMin || r > surrogateMax)
}

// decodeUTF16 consumes one codepoint from the front of units. A head
// surrogate followed by a tail surrogate decodes as a pair; any other
// lone surrogate yields an invalid codepoint. Returns the codepoint and
// the number of units consumed; ok is false when the unit sequence does
// not form a valid scalar value.
func decodeUTF16(units []uint16) (r rune, size int, ok bool) {
	if len(units) == 0 {
		return 0, 0, false
	}
	u0 := units[0]
	if isSurrogateHead(u0) && len(units) > 1 && isSurrogateTail(units[1]) {
		u1 := units[1]
		r = surrogateSelf + (rune(u0&0x03FF) << 10) + rune(u1&0x03FF)
		return r, 2, true
	}
	r = rune(u0)
	return r, 1, validCodepoint(r)
}

// appendCodepoint appends the UTF-8 encoding of r to dst. Invalid
// codepoints append nothing and report false.
func appendCodepoint(dst []byte, r rune) ([]byte, bool) {
	if !validCodepoint(r) {
		return dst, false
	}
	switch {
	case r <= 0x7F:
		return append(dst, byte(r)), true
	case r <= 0x7FF:
		return append(dst,
			0xC0|byte(r>>6),
			0x80|byte(r)&0x3F), true
	case r <= 0xFFFF:
		return append(dst,
			0xE0|byte(r>>12),
			0x80|byte(r>>6)&0x3F,
			0x80|byte(r)&0x3F), true
	default:
		return append(dst,
			0xF0|byte(r>>18),
			0x80|byte(r>>12)&0x3F,
			0x80|byte(r>>6)&0x3F,
			0x80|byte(r)&0x3F), true
	}
}

// decodeCodepoint consumes one codepoint from the front of a UTF-8 byte
// sequence, classifying by leading byte prefix (0xxxxxxx, 110xxxxx,
// 1110xxxx, 11110xxx). Returns the codepoint and byte count; ok is false
// for a malformed prefix, a truncated sequence, a bad continuation byte,
// or a decoded value outside the scalar range.
func decodeCodepoint(p []byte) (r rune, size int, ok bool) {
	if len(p) == 0 {
		return 0, 0, false
	}
	c0 := p[0]
	switch {
	case c0&0x80 == 0x00:
		return rune(c0), 1, true
	case c0&0xE0 == 0xC0:
		r = rune(c0 & 0x1F)
		size = 2
	case c0&0xF0 == 0xE0:
		r = rune(c0 & 0x0F)
		size = 3
	case c0&0xF8 == 0xF0:
		r = rune(c0 & 0x07)
		size = 4
	default:
		return 0, 0, false
	}
	if len(p) < size {
		return 0, 0, false
	}
	for _, c := range p[1:size] {
		if c&0xC0 != 0x80 {
			return 0, 0, false
		}
		r = r<<6 | rune(c&0x3F)
	}
	return r, size, validCodepoint(r)
}

// appendUTF16 re-encodes a block of UTF-16 code units as UTF-8. The whole
// block must decode cleanly; an unpaired surrogate anywhere fails the
// block and returns dst grown by whatever decoded before it.
func appendUTF16(dst []byte, units []uint16) ([]byte, bool) {
	for len(units) > 0 {
		r, size, ok := decodeUTF16(units)
		if !ok {
			return dst, false
		}
		dst, ok = appendCodepoint(dst, r)
		if !ok {
			return dst, false
		}
		units = units[size:]
	}
	return dst, true
}
