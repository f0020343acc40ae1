package graphcache

import (
	"slices"

	"github.com/RoaringBitmap/roaring"
	"go.trai.ch/pathcache/internal/core/ports"
)

// readiness tracks, per root, the path nodes whose value is NotReady. The
// pending sets only exist while at least one listener is registered.
type readiness struct {
	listeners []ports.ReadinessListener
	pending   map[uint32]map[nodeID]struct{}
	// touched remembers whether a root's pending set was empty the first
	// time it changed during the current operation.
	touched map[uint32]bool
}

func newReadiness() *readiness {
	return &readiness{touched: make(map[uint32]bool)}
}

func (r *readiness) tracking() bool {
	return r.pending != nil
}

func (r *readiness) touch(root uint32) {
	if _, ok := r.touched[root]; !ok {
		r.touched[root] = len(r.pending[root]) == 0
	}
}

func (r *readiness) mark(roots *roaring.Bitmap, node nodeID) {
	if !r.tracking() {
		return
	}
	for _, root := range roots.ToArray() {
		r.touch(root)
		set, ok := r.pending[root]
		if !ok {
			set = make(map[nodeID]struct{})
			r.pending[root] = set
		}
		set[node] = struct{}{}
	}
}

func (r *readiness) resolve(roots *roaring.Bitmap, node nodeID) {
	if !r.tracking() {
		return
	}
	for _, root := range roots.ToArray() {
		set, ok := r.pending[root]
		if !ok {
			continue
		}
		if _, ok := set[node]; !ok {
			continue
		}
		r.touch(root)
		delete(set, node)
	}
}

func (r *readiness) forget(root uint32) {
	if r.pending != nil {
		delete(r.pending, root)
	}
	delete(r.touched, root)
}

func (r *readiness) reset() {
	if r.pending != nil {
		r.pending = make(map[uint32]map[nodeID]struct{})
	}
	clear(r.touched)
}

// settled returns the roots whose pending set became empty during the
// operation and clears the per-operation state.
func (r *readiness) settled() []uint32 {
	var out []uint32
	for root, wasEmpty := range r.touched {
		if !wasEmpty && len(r.pending[root]) == 0 {
			out = append(out, root)
			delete(r.pending, root)
		}
	}
	clear(r.touched)
	slices.Sort(out)
	return out
}

func (r *readiness) add(l ports.ReadinessListener) bool {
	if slices.Contains(r.listeners, l) {
		return false
	}
	r.listeners = append(r.listeners, l)
	return true
}

func (r *readiness) remove(l ports.ReadinessListener) {
	if idx := slices.Index(r.listeners, l); idx >= 0 {
		r.listeners = slices.Delete(r.listeners, idx, idx+1)
	}
	if len(r.listeners) == 0 {
		r.pending = nil
		clear(r.touched)
	}
}
