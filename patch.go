package vjson

import "errors"

// Op names a patch operation.
type Op string

const (
	OpInsert Op = "insert"
	OpRemove Op = "remove"
	OpSet    Op = "set"
)

// Patch errors. A failing operation may already have resolved and
// mutated intermediate containers; there is no transactional rollback.
var (
	ErrInvalidPatch = errors.New("vjson: invalid patch descriptor")
	ErrEmptyPath    = errors.New("vjson: empty path")
	ErrPathNotFound = errors.New("vjson: path not found in document")
	ErrArrayIndex   = errors.New("vjson: array parent needs an integer path segment")
	ErrParentType   = errors.New("vjson: parent is not an array or object")
)

// ApplyPatch applies a single patch described as a JSON object with a
// required "op" (insert, remove, or set) and "path", plus a required
// "value" for insert and set. A malformed descriptor fails before
// touching the target. The value is deep-copied out of the descriptor.
func ApplyPatch(target *Value, patch Value) error {
	op := patch.Child("op")
	path := patch.Child("path")
	if op == nil || path == nil {
		return ErrInvalidPatch
	}
	switch Op(op.AsString()) {
	case OpRemove:
		return RemovePath(target, path.AsString())
	case OpInsert, OpSet:
		value := patch.Child("value")
		if value == nil {
			return ErrInvalidPatch
		}
		if Op(op.AsString()) == OpInsert {
			return InsertPath(target, path.AsString(), value.Clone())
		}
		return SetPath(target, path.AsString(), value.Clone())
	}
	return ErrInvalidPatch
}

// resolveParent walks the non-leaf segments by Child lookups.
func resolveParent(target *Value, segs []string) (*Value, error) {
	parent := target
	for _, seg := range segs {
		child := parent.Child(seg)
		if child == nil {
			return nil, ErrPathNotFound
		}
		parent = child
	}
	return parent, nil
}

// RemovePath erases the value addressed by path. On an object parent
// every property matching the leaf name is removed. The empty path
// cannot be removed.
func RemovePath(target *Value, path string) error {
	segs := SplitPath(path)
	if len(segs) == 0 {
		return ErrEmptyPath
	}
	leaf := segs[len(segs)-1]
	parent, err := resolveParent(target, segs[:len(segs)-1])
	if err != nil {
		return err
	}
	if !parent.Erase(leaf) {
		return ErrPathNotFound
	}
	return nil
}

// InsertPath places value at path. The empty path replaces the whole
// target. An array parent takes a positional insert, shifting later
// elements; an object parent upserts, so a pre-existing key is not an
// error.
func InsertPath(target *Value, path string, value Value) error {
	segs := SplitPath(path)
	if len(segs) == 0 {
		*target = value
		return nil
	}
	leaf := segs[len(segs)-1]
	parent, err := resolveParent(target, segs[:len(segs)-1])
	if err != nil {
		return err
	}
	switch parent.Type() {
	case TypeArray:
		i := pathIndex(leaf)
		if i < 0 {
			return ErrArrayIndex
		}
		parent.InsertAt(i, value)
		return nil
	case TypeObject:
		*parent.Key(leaf) = value
		return nil
	}
	return ErrParentType
}

// SetPath replaces the value at path. The empty path replaces the
// whole target. An array parent takes an in-place replacement, growing
// with Nulls past the end; an object parent upserts.
func SetPath(target *Value, path string, value Value) error {
	segs := SplitPath(path)
	if len(segs) == 0 {
		*target = value
		return nil
	}
	leaf := segs[len(segs)-1]
	parent, err := resolveParent(target, segs[:len(segs)-1])
	if err != nil {
		return err
	}
	switch parent.Type() {
	case TypeArray:
		i := pathIndex(leaf)
		if i < 0 {
			return ErrArrayIndex
		}
		*parent.At(i) = value
		return nil
	case TypeObject:
		*parent.Key(leaf) = value
		return nil
	}
	return ErrParentType
}
