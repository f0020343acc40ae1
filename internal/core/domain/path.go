package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Path is a sequence of property names leading from a root to a value.
type Path []string

// ParsePath splits a dotted path such as "trade.instrument.rating".
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, zerr.Wrap(ErrEmptyPath, "invalid path")
	}
	p := Path(strings.Split(s, "."))
	if err := p.Validate(); err != nil {
		return nil, zerr.With(err, "path", s)
	}
	return p, nil
}

// Validate reports whether every segment of the path is non-empty.
func (p Path) Validate() error {
	if len(p) == 0 {
		return zerr.Wrap(ErrEmptyPath, "invalid path")
	}
	for _, seg := range p {
		if seg == "" {
			return zerr.Wrap(ErrEmptyPath, "invalid path")
		}
	}
	return nil
}

// String returns the dotted form of the path.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Child returns a new path extended by name.
func (p Path) Child(name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, name)
}

// Last returns the final segment, or "" for the empty path.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// HasPrefix reports whether prefix is a leading part of p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}
