// Package vjson is an in-memory JSON document library centered on a
// mutable value tree. Text is parsed into a Value, navigated and edited
// through slash-delimited paths or direct accessors, patched with
// insert/remove/set operations, and written back out under a pluggable
// format. Values are not safe for concurrent mutation; callers that
// share a tree across goroutines must synchronize externally.
package vjson

import (
	"strconv"
	"strings"
)

// Type identifies the active representation of a Value.
type Type uint8

const (
	TypeNull Type = iota
	TypeBoolean
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

// String returns the type name, mainly for test failure output.
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	}
	return "unknown"
}

// Value is a JSON value: null, boolean, number, string, array, or
// object. The zero Value is Null. Exactly one payload field is active
// at a time, selected by the tag; booleans share the numeric slot and
// are distinguished from numbers only by the tag. A Value owns its
// children exclusively, so a tree never shares or cycles.
type Value struct {
	typ Type
	num float64 // Boolean (0/1) and Number payload
	str string
	arr []Value
	obj []Property
}

// Property is a named Value, the element type of Object. Names are not
// required to be unique; lookups resolve to the last matching property
// in insertion order, so a re-declared name shadows the earlier one
// without removing it.
type Property struct {
	Value
	name string
}

// Prop builds a Property from a name and a value.
func Prop(name string, value Value) Property {
	return Property{Value: value, name: name}
}

// Name returns the property name.
func (p Property) Name() string { return p.name }

// Constructors -----------------------------------------------------------

// Null returns a null Value. Equivalent to the zero Value.
func Null() Value { return Value{} }

// Bool returns a boolean Value.
func Bool(b bool) Value {
	v := Value{typ: TypeBoolean}
	if b {
		v.num = 1
	}
	return v
}

// Number returns a numeric Value.
func Number(f float64) Value { return Value{typ: TypeNumber, num: f} }

// Int returns a numeric Value from an integer.
func Int(n int) Value { return Value{typ: TypeNumber, num: float64(n)} }

// String returns a string Value. The byte content is taken as-is and is
// not validated as UTF-8.
func String(s string) Value { return Value{typ: TypeString, str: s} }

// StringPtr returns a string Value from a nullable pointer: nil
// constructs a Null, non-nil constructs a String (even when empty).
func StringPtr(p *string) Value {
	if p == nil {
		return Value{}
	}
	return String(*p)
}

// Array returns an array Value holding the given elements in order.
func Array(elems ...Value) Value {
	return Value{typ: TypeArray, arr: elems}
}

// Object returns an object Value holding the given properties in order.
// Duplicate names are kept; the last one shadows the rest on lookup.
func Object(props ...Property) Value {
	return Value{typ: TypeObject, obj: props}
}

// Type returns the tag identifying the active representation.
func (v Value) Type() Type { return v.typ }

// Lifecycle --------------------------------------------------------------

// Clone returns a deep copy: new backing storage for strings, arrays,
// and objects, recursively, with no sharing.
func (v Value) Clone() Value {
	switch v.typ {
	case TypeArray:
		arr := make([]Value, len(v.arr))
		for i := range v.arr {
			arr[i] = v.arr[i].Clone()
		}
		return Value{typ: TypeArray, arr: arr}
	case TypeObject:
		obj := make([]Property, len(v.obj))
		for i := range v.obj {
			obj[i] = Property{Value: v.obj[i].Value.Clone(), name: v.obj[i].name}
		}
		return Value{typ: TypeObject, obj: obj}
	default:
		return v
	}
}

// Take transfers the payload out of v and resets v to Null. The
// emptied value stays well-defined and usable. Safe when the result is
// assigned back over the source.
func (v *Value) Take() Value {
	out := *v
	*v = Value{}
	return out
}

// Swap exchanges the payloads of v and o. Safe for v == o.
func (v *Value) Swap(o *Value) {
	*v, *o = *o, *v
}

// Write access (auto-vivification) ---------------------------------------

// At returns a pointer to element i, coercing v to an Array first when
// it holds anything else (prior content is discarded) and growing with
// Nulls when i is past the end. The pointer stays valid until the next
// structural mutation of the array. A negative index panics, as with a
// slice.
func (v *Value) At(i int) *Value {
	if v.typ != TypeArray {
		*v = Value{typ: TypeArray}
	}
	for len(v.arr) <= i {
		v.arr = append(v.arr, Value{})
	}
	return &v.arr[i]
}

// Key returns a pointer to the value of the property named name,
// coercing v to an Object first when it holds anything else (prior
// content is discarded). Lookup resolves the last matching property; a
// missing name appends a new Null property.
func (v *Value) Key(name string) *Value {
	if v.typ != TypeObject {
		*v = Value{typ: TypeObject}
	}
	for i := len(v.obj) - 1; i >= 0; i-- {
		if v.obj[i].name == name {
			return &v.obj[i].Value
		}
	}
	v.obj = append(v.obj, Property{name: name})
	return &v.obj[len(v.obj)-1].Value
}

// Read access ------------------------------------------------------------

// pathIndex converts a path segment to a non-negative array index. The
// entire segment must be base-10 digits; anything else returns -1.
func pathIndex(name string) int {
	if name == "" || len(name) > 10 {
		return -1
	}
	n := 0
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c < '0' || c > '9' {
			return -1
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// ChildAt returns a pointer to array element i, or nil when v is not an
// array or i is out of range. Never mutates.
func (v *Value) ChildAt(i int) *Value {
	if v.typ == TypeArray && i >= 0 && i < len(v.arr) {
		return &v.arr[i]
	}
	return nil
}

// Child returns a pointer to the named child, or nil when absent.
// Never mutates. On an object the last matching property wins; on an
// array the name resolves only if it converts entirely to a
// non-negative index.
func (v *Value) Child(name string) *Value {
	switch v.typ {
	case TypeArray:
		if i := pathIndex(name); i >= 0 {
			return v.ChildAt(i)
		}
	case TypeObject:
		for i := len(v.obj) - 1; i >= 0; i-- {
			if v.obj[i].name == name {
				return &v.obj[i].Value
			}
		}
	}
	return nil
}

// Descendant resolves a slash-delimited path by repeated Child lookups
// and returns nil at the first segment that does not resolve. An empty
// path or "/" returns v itself.
func (v *Value) Descendant(path string) *Value {
	leaf := v
	for _, seg := range SplitPath(path) {
		child := leaf.Child(seg)
		if child == nil {
			return nil
		}
		leaf = child
	}
	return leaf
}

// Get returns array element i, or a Null Value when absent. The result
// shares backing storage with v; use Clone for an independent copy.
func (v Value) Get(i int) Value {
	if c := v.ChildAt(i); c != nil {
		return *c
	}
	return Value{}
}

// GetKey returns the named child, or a Null Value when absent. The
// result shares backing storage with v.
func (v Value) GetKey(name string) Value {
	if c := v.Child(name); c != nil {
		return *c
	}
	return Value{}
}

// Views ------------------------------------------------------------------

// Elements returns the array elements as a slice sharing the value's
// storage, or nil when v is not an array. Mutating elements through the
// slice mutates the tree.
func (v Value) Elements() []Value {
	if v.typ == TypeArray {
		return v.arr
	}
	return nil
}

// Properties returns the object properties as a slice sharing the
// value's storage, or nil when v is not an object.
func (v Value) Properties() []Property {
	if v.typ == TypeObject {
		return v.obj
	}
	return nil
}

// Len returns the element or property count, or 0 for scalar tags.
func (v Value) Len() int {
	switch v.typ {
	case TypeArray:
		return len(v.arr)
	case TypeObject:
		return len(v.obj)
	}
	return 0
}

// Mutators ---------------------------------------------------------------

// Clear empties the payload while keeping the tag: numbers and booleans
// reset to zero, strings to empty, arrays and objects to length zero.
func (v *Value) Clear() {
	switch v.typ {
	case TypeString:
		v.str = ""
	case TypeArray:
		v.arr = v.arr[:0]
	case TypeObject:
		v.obj = v.obj[:0]
	default:
		v.num = 0
	}
}

// EraseAt removes array element i, shifting later elements down.
// Returns false when v is not an array or i is out of range.
func (v *Value) EraseAt(i int) bool {
	if v.typ != TypeArray || i < 0 || i >= len(v.arr) {
		return false
	}
	v.arr = append(v.arr[:i], v.arr[i+1:]...)
	return true
}

// Erase removes children by name. On an object every matching property
// is removed, not just the first. On an array the name must convert
// entirely to an index. Returns false when nothing was removed.
func (v *Value) Erase(name string) bool {
	switch v.typ {
	case TypeArray:
		if i := pathIndex(name); i >= 0 {
			return v.EraseAt(i)
		}
	case TypeObject:
		kept := v.obj[:0]
		erased := false
		for _, p := range v.obj {
			if p.name == name {
				erased = true
				continue
			}
			kept = append(kept, p)
		}
		v.obj = kept
		return erased
	}
	return false
}

// InsertAt inserts elem at position i, shifting later elements up. A
// non-array v is coerced to an empty Array first; an index past the end
// grows the array with Nulls. Negative indexes clamp to 0.
func (v *Value) InsertAt(i int, elem Value) {
	if v.typ != TypeArray {
		*v = Value{typ: TypeArray}
	}
	if i < 0 {
		i = 0
	}
	if i >= len(v.arr) {
		for len(v.arr) < i {
			v.arr = append(v.arr, Value{})
		}
		v.arr = append(v.arr, elem)
		return
	}
	v.arr = append(v.arr, Value{})
	copy(v.arr[i+1:], v.arr[i:])
	v.arr[i] = elem
}

// Append adds elem at the end, coercing a non-array v to an empty
// Array first.
func (v *Value) Append(elem Value) {
	if v.typ != TypeArray {
		*v = Value{typ: TypeArray}
	}
	v.arr = append(v.arr, elem)
}

// Pop removes the last array element. Returns false when v is not an
// array or is empty.
func (v *Value) Pop() bool {
	if v.typ != TypeArray || len(v.arr) == 0 {
		return false
	}
	v.arr = v.arr[:len(v.arr)-1]
	return true
}

// Coercions --------------------------------------------------------------

// AsBool converts loosely to a boolean and never fails. Booleans and
// numbers test the numeric payload against zero. Strings match "true"
// and "false" case-insensitively, then fall back to the numeric parse.
// Everything else is false.
func (v Value) AsBool() bool {
	switch v.typ {
	case TypeBoolean, TypeNumber:
		return v.num != 0
	case TypeString:
		if strings.EqualFold(v.str, "true") {
			return true
		}
		if strings.EqualFold(v.str, "false") {
			return false
		}
		return v.AsNumber() != 0
	}
	return false
}

// AsNumber converts loosely to a float64 and never fails. Strings parse
// like strtod: leading whitespace and the longest numeric prefix are
// accepted, trailing garbage is ignored, unparsable text yields 0.
// Everything but booleans, numbers, and strings yields 0.
func (v Value) AsNumber() float64 {
	switch v.typ {
	case TypeBoolean, TypeNumber:
		return v.num
	case TypeString:
		s := v.str
		i := 0
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		f, _ := floatPrefix([]byte(s[i:]))
		return f
	}
	return 0
}

// AsInt converts loosely to an int, truncating toward zero.
func (v Value) AsInt() int { return int(v.AsNumber()) }

// AsString converts loosely to a string and never fails. Booleans
// render as "true"/"false", numbers in their shortest round-trippable
// form, strings as themselves, everything else as "".
func (v Value) AsString() string {
	switch v.typ {
	case TypeBoolean:
		if v.num != 0 {
			return "true"
		}
		return "false"
	case TypeNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case TypeString:
		return v.str
	}
	return ""
}

// Fallback accessors: the payload on an exact tag match, the fallback
// otherwise. Unlike the As* coercions these do not convert across tags.

func (v Value) BoolOr(fallback bool) bool {
	if v.typ == TypeBoolean {
		return v.num != 0
	}
	return fallback
}

func (v Value) NumberOr(fallback float64) float64 {
	if v.typ == TypeNumber {
		return v.num
	}
	return fallback
}

func (v Value) IntOr(fallback int) int {
	if v.typ == TypeNumber {
		return int(v.num)
	}
	return fallback
}

func (v Value) StringOr(fallback string) string {
	if v.typ == TypeString {
		return v.str
	}
	return fallback
}

// Equality ---------------------------------------------------------------

// Equal reports deep structural equality. Arrays compare pairwise in
// order. Objects compare as a set of name-to-value pairs using
// last-match lookup on both sides, so property order and shadowed
// duplicates are invisible.
func (v Value) Equal(w Value) bool {
	if v.typ != w.typ {
		return false
	}
	switch v.typ {
	case TypeNull:
		return true
	case TypeBoolean, TypeNumber:
		return v.num == w.num
	case TypeString:
		return v.str == w.str
	case TypeArray:
		if len(v.arr) != len(w.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(w.arr[i]) {
				return false
			}
		}
		return true
	case TypeObject:
		for i := range v.obj {
			name := v.obj[i].name
			wc := w.Child(name)
			if wc == nil || !v.Child(name).Equal(*wc) {
				return false
			}
		}
		for i := range w.obj {
			if v.Child(w.obj[i].name) == nil {
				return false
			}
		}
		return true
	}
	return false
}
