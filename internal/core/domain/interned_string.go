package domain

import "unique"

// InternedString is a canonicalized string. Property names repeat across
// every object of a class, so path tree edges are keyed by interned names
// and compare by pointer.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s.
func NewInternedString(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// IsZero reports whether is was never assigned. The path tree's root edge
// is the only zero name.
func (is InternedString) IsZero() bool {
	return is == InternedString{}
}

func (is InternedString) String() string {
	if is.IsZero() {
		return ""
	}
	return is.h.Value()
}
