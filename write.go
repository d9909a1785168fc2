package vjson

import (
	"fmt"
	"io"
)

// Format controls text emission: the token after an object key, the
// token between elements or properties, the per-depth indent unit, the
// line break token, and the fmt verb used for numbers.
type Format struct {
	Colon   string
	Comma   string
	Indent  string
	Newline string
	Numbers string
}

// Compact returns the minimal single-line format.
func Compact() Format {
	return Format{Colon: ":", Comma: ",", Numbers: "%g"}
}

// Indented returns the multi-line format: four-space indent, "\n"
// newlines, ": " after keys.
func Indented() Format {
	return Format{Colon: ": ", Comma: ",", Indent: "    ", Newline: "\n", Numbers: "%g"}
}

// Write renders the value as text under f.
func (v Value) Write(f Format) string {
	return string(v.AppendFormat(nil, f))
}

// Fprint renders the value to w under f.
func (v Value) Fprint(w io.Writer, f Format) error {
	_, err := w.Write(v.AppendFormat(nil, f))
	return err
}

// AppendFormat appends the rendered value to dst and returns the
// extended buffer.
func (v Value) AppendFormat(dst []byte, f Format) []byte {
	return appendValue(dst, &f, &v, 0)
}

// String renders with the indented format.
func (v Value) String() string {
	return v.Write(Indented())
}

func appendValue(dst []byte, f *Format, v *Value, depth int) []byte {
	switch v.typ {
	case TypeNull:
		return append(dst, "null"...)
	case TypeBoolean:
		if v.num != 0 {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case TypeNumber:
		return fmt.Appendf(dst, f.Numbers, v.num)
	case TypeString:
		return appendQuoted(dst, v.str)
	case TypeArray:
		return appendArray(dst, f, v.arr, depth)
	case TypeObject:
		return appendObject(dst, f, v.obj, depth)
	}
	return dst
}

// Shorthand escapes for \b \t \n \f \r, \u00XX for the rest of the
// control range.
var controlEscapes = [0x20]string{
	`\u0000`, `\u0001`, `\u0002`, `\u0003`,
	`\u0004`, `\u0005`, `\u0006`, `\u0007`,
	`\b`, `\t`, `\n`, `\u000B`,
	`\f`, `\r`, `\u000E`, `\u000F`,
	`\u0010`, `\u0011`, `\u0012`, `\u0013`,
	`\u0014`, `\u0015`, `\u0016`, `\u0017`,
	`\u0018`, `\u0019`, `\u001A`, `\u001B`,
	`\u001C`, `\u001D`, `\u001E`, `\u001F`,
}

// appendQuoted writes a quoted JSON string. Control bytes, the quote,
// the backslash, and DEL are escaped; every other byte passes through
// verbatim. The writer trusts the string's bytes and does not
// re-validate UTF-8.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c < 0x20:
			dst = append(dst, controlEscapes[c]...)
		case c == '"':
			dst = append(dst, '\\', '"')
		case c == '\\':
			dst = append(dst, '\\', '\\')
		case c == 0x7F:
			dst = append(dst, `\u007F`...)
		default:
			dst = append(dst, c)
		}
	}
	return append(dst, '"')
}

func appendIndent(dst []byte, indent string, depth int) []byte {
	if indent == "" {
		return dst
	}
	for i := 0; i < depth; i++ {
		dst = append(dst, indent...)
	}
	return dst
}

func appendArray(dst []byte, f *Format, elems []Value, depth int) []byte {
	if len(elems) == 0 {
		return append(dst, '[', ']')
	}
	dst = append(dst, '[')
	for i := range elems {
		if i > 0 {
			dst = append(dst, f.Comma...)
		}
		dst = append(dst, f.Newline...)
		dst = appendIndent(dst, f.Indent, depth+1)
		dst = appendValue(dst, f, &elems[i], depth+1)
	}
	dst = append(dst, f.Newline...)
	dst = appendIndent(dst, f.Indent, depth)
	return append(dst, ']')
}

func appendObject(dst []byte, f *Format, props []Property, depth int) []byte {
	if len(props) == 0 {
		return append(dst, '{', '}')
	}
	dst = append(dst, '{')
	for i := range props {
		if i > 0 {
			dst = append(dst, f.Comma...)
		}
		dst = append(dst, f.Newline...)
		dst = appendIndent(dst, f.Indent, depth+1)
		dst = appendQuoted(dst, props[i].name)
		dst = append(dst, f.Colon...)
		dst = appendValue(dst, f, &props[i].Value, depth+1)
	}
	dst = append(dst, f.Newline...)
	dst = appendIndent(dst, f.Indent, depth)
	return append(dst, '}')
}
