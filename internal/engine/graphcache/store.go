package graphcache

import (
	"slices"

	"github.com/RoaringBitmap/roaring"
	"go.trai.ch/pathcache/internal/core/domain"
)

type recordID int32

type uninitialised struct{}

// uninit marks a slot that was never read.
var uninit any = uninitialised{}

// usage records that the roots in the set reach the owning object at node.
type usage struct {
	node  nodeID
	roots *roaring.Bitmap
}

// record is the cache state of one observable object. slots holds one entry
// per property some usage needs: the cached value, uninit or domain.NotReady.
type record struct {
	obj   domain.Observable
	gen   uint64
	slots map[string]any
	uses  []usage
}

func (r *record) usage(node nodeID) *usage {
	for i := range r.uses {
		if r.uses[i].node == node {
			return &r.uses[i]
		}
	}
	return nil
}

// addUsage merges roots into the usage pair for node and returns the roots
// that were not present before.
func (r *record) addUsage(node nodeID, roots *roaring.Bitmap) *roaring.Bitmap {
	if u := r.usage(node); u != nil {
		added := roaring.AndNot(roots, u.roots)
		u.roots.Or(added)
		return added
	}
	r.uses = append(r.uses, usage{node: node, roots: roots.Clone()})
	return roots.Clone()
}

func (r *record) dropUsage(node nodeID) {
	r.uses = slices.DeleteFunc(r.uses, func(u usage) bool {
		return u.node == node
	})
}

// recordStore owns every cache record. Records are addressed by an arena
// handle; the object itself is only used for the identity index.
type recordStore struct {
	records []*record
	free    []recordID
	index   map[domain.Observable]recordID
	byNode  map[nodeID]map[recordID]struct{}
	gen     uint64
}

func newRecordStore() *recordStore {
	return &recordStore{
		index:  make(map[domain.Observable]recordID),
		byNode: make(map[nodeID]map[recordID]struct{}),
	}
}

func (s *recordStore) lookup(obj domain.Observable) (recordID, *record) {
	id, ok := s.index[obj]
	if !ok {
		return -1, nil
	}
	return id, s.records[id]
}

func (s *recordStore) get(id recordID) *record {
	if id < 0 || int(id) >= len(s.records) {
		return nil
	}
	return s.records[id]
}

func (s *recordStore) create(obj domain.Observable) (recordID, *record) {
	s.gen++
	rec := &record{
		obj:   obj,
		gen:   s.gen,
		slots: make(map[string]any),
	}

	var id recordID
	if k := len(s.free); k > 0 {
		id = s.free[k-1]
		s.free = s.free[:k-1]
		s.records[id] = rec
	} else {
		id = recordID(len(s.records))
		s.records = append(s.records, rec)
	}
	s.index[obj] = id
	return id, rec
}

func (s *recordStore) release(id recordID) {
	rec := s.records[id]
	if rec == nil {
		return
	}
	delete(s.index, rec.obj)
	s.records[id] = nil
	s.free = append(s.free, id)
}

func (s *recordStore) indexNode(node nodeID, id recordID) {
	set, ok := s.byNode[node]
	if !ok {
		set = make(map[recordID]struct{})
		s.byNode[node] = set
	}
	set[id] = struct{}{}
}

func (s *recordStore) unindexNode(node nodeID, id recordID) {
	set := s.byNode[node]
	delete(set, id)
	if len(set) == 0 {
		delete(s.byNode, node)
	}
}

// usersOf returns the records with a usage pair at node in handle order.
func (s *recordStore) usersOf(node nodeID) []recordID {
	set := s.byNode[node]
	out := make([]recordID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (s *recordStore) len() int {
	return len(s.index)
}

// live iterates the records in handle order.
func (s *recordStore) live(yield func(recordID, *record) bool) {
	for i, rec := range s.records {
		if rec == nil {
			continue
		}
		if !yield(recordID(i), rec) {
			return
		}
	}
}
