package vjson

import (
	"fmt"
	"strings"
)

// Paths address descendants as slash-delimited segments: "/a/1" names
// element 1 of the array held by property "a". A leading slash is
// optional; the empty path and "/" both denote the root. A segment
// resolving against an array must convert entirely to a non-negative
// base-10 index.

// SplitPath splits a path into its segments. "" and "/" yield no
// segments.
func SplitPath(path string) []string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// JoinPath builds a path from segments, formatting each with fmt.Sprint
// so indexes can be passed as integers: JoinPath("a", 1) == "/a/1".
func JoinPath(parts ...any) string {
	var b strings.Builder
	for _, part := range parts {
		b.WriteByte('/')
		fmt.Fprint(&b, part)
	}
	return b.String()
}
