package walker

import "strings"

// Path is the representation of a walk root and of every path the walk
// produces from it. Byte roots stay bytes end to end and are never decoded.
type Path interface {
	~string | ~[]byte
}

// rootSentinel is the root that composes children without a prefix.
const rootSentinel = "."

// JoinPath appends a child name to parent in parent's representation.
// A parent of "." yields the bare name, avoiding a "./" prefix, and a
// parent already ending in sep (such as "/") is not given a second one.
//
// Go strings carry arbitrary bytes, so routing a []byte parent through
// string concatenation is lossless. The conversion back to P allocates a
// fresh slice, so sibling paths never share a backing array.
func JoinPath[P Path](parent P, name string, sep byte) P {
	if string(parent) == rootSentinel {
		return P(name)
	}

	if s := string(parent); s != "" && s[len(s)-1] == sep {
		return P(s + name)
	}

	return P(string(parent) + string(sep) + name)
}

// TrimSeparator removes one trailing '/' or '\' so "dir/" and "dir" walk
// identically. A root that is only a separator is kept as is.
func TrimSeparator[P Path](root P) P {
	s := string(root)
	if len(s) < 2 {
		return root
	}

	if last := s[len(s)-1]; last == '/' || last == '\\' {
		return P(s[:len(s)-1])
	}

	return root
}

// matchJoin extends a normalized match path by one name.
func matchJoin(parent, name string) string {
	if strings.HasSuffix(parent, "/") {
		return parent + name
	}

	return parent + "/" + name
}
