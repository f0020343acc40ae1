package graphcache

import (
	"github.com/RoaringBitmap/roaring"
)

// rootRegistry hands out stable handles for root objects. Handles are never
// reused, so a root that is removed and added again starts from scratch.
type rootRegistry struct {
	ids  map[any]uint32
	objs map[uint32]any
	next uint32
}

func newRootRegistry() *rootRegistry {
	return &rootRegistry{
		ids:  make(map[any]uint32),
		objs: make(map[uint32]any),
	}
}

func (r *rootRegistry) add(obj any) (uint32, bool) {
	if id, ok := r.ids[obj]; ok {
		return id, false
	}
	id := r.next
	r.next++
	r.ids[obj] = id
	r.objs[id] = obj
	return id, true
}

func (r *rootRegistry) remove(obj any) (uint32, bool) {
	id, ok := r.ids[obj]
	if !ok {
		return 0, false
	}
	delete(r.ids, obj)
	delete(r.objs, id)
	return id, true
}

func (r *rootRegistry) id(obj any) (uint32, bool) {
	id, ok := r.ids[obj]
	return id, ok
}

func (r *rootRegistry) has(id uint32) bool {
	_, ok := r.objs[id]
	return ok
}

func (r *rootRegistry) object(id uint32) any {
	return r.objs[id]
}

func (r *rootRegistry) len() int {
	return len(r.ids)
}

// all returns the handles of every registered root in registration order.
func (r *rootRegistry) all() *roaring.Bitmap {
	bm := roaring.New()
	for id := range r.objs {
		bm.Add(id)
	}
	return bm
}

// objects resolves a root set to the registered objects in registration order.
func (r *rootRegistry) objects(set *roaring.Bitmap) []any {
	out := make([]any, 0, set.GetCardinality())
	for _, id := range set.ToArray() {
		if obj, ok := r.objs[id]; ok {
			out = append(out, obj)
		}
	}
	return out
}

func rootSet(ids ...uint32) *roaring.Bitmap {
	return roaring.BitmapOf(ids...)
}
