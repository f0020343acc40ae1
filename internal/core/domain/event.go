package domain

import "time"

type notReady struct{}

func (notReady) String() string { return "<not ready>" }

// NotReady is the value reported for a property whose asynchronous load has
// not completed yet.
var NotReady any = notReady{}

// IsNotReady reports whether v is the NotReady sentinel.
func IsNotReady(v any) bool {
	_, ok := v.(notReady)
	return ok
}

// ChangeEvent reports a change of the value at one path for a set of roots.
type ChangeEvent struct {
	Roots    []any
	Owner    any
	Path     Path
	OldValue any
	NewValue any
	// Origin is set when the change was produced by an asynchronous load and
	// holds the time the load was requested.
	Origin time.Time
}

// Change is one (path, roots, old, new) tuple of a MultiChange.
type Change struct {
	Path     Path
	Roots    []any
	OldValue any
	NewValue any
}

// MultiChange reports every path below Prefix that changed as the result of a
// single property change.
type MultiChange struct {
	Prefix  Path
	Owner   any
	Changes []Change
	// AllAffectSameRoots is true when every change carries the same root set.
	AllAffectSameRoots bool
	Origin             time.Time
}

// CacheStats is a snapshot of the cache's bookkeeping sizes.
type CacheStats struct {
	Roots        int
	Records      int
	Nodes        int
	PendingLoads int
}
