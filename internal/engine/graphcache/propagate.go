package graphcache

import (
	"context"
	"slices"
	"time"

	"github.com/RoaringBitmap/roaring"
	"go.trai.ch/pathcache/internal/core/domain"
	"go.trai.ch/pathcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// hit is one usage pair of a changed object whose node has the changed
// property as a child.
type hit struct {
	child nodeID
	roots *roaring.Bitmap
}

type valueAt struct {
	node  nodeID
	value any
}

// use records that roots reach obj at node. It creates the record on first
// use and attaches the values below node for the roots that are new.
func (c *Cache) use(obj any, node nodeID, roots *roaring.Bitmap) {
	if roots.IsEmpty() {
		return
	}
	o, ok := observable(obj)
	if !ok {
		return
	}

	id, rec := c.recs.lookup(o)
	if rec == nil {
		id, rec = c.recs.create(o)
	}
	added := rec.addUsage(node, roots)
	if added.IsEmpty() {
		return
	}
	c.recs.indexNode(node, id)
	c.syncSlots(rec)

	for _, child := range c.tree.children(node) {
		c.populate(rec, child, added)
	}
}

// populate brings the slot for child up to date for roots and descends.
// Synchronous mode reads intermediate values eagerly and leaves lazily;
// asynchronous mode queues a load for every unresolved slot.
func (c *Cache) populate(rec *record, child nodeID, roots *roaring.Bitmap) {
	name := c.tree.name(child)
	v, ok := rec.slots[name]
	if !ok {
		return
	}

	if v == uninit {
		switch {
		case c.async:
			v = domain.NotReady
			rec.slots[name] = v
			c.enqueueLoad(rec, name)
		case c.tree.hasChildren(child):
			v = c.read(rec.obj, name)
			rec.slots[name] = v
		default:
			return
		}
	}

	if domain.IsNotReady(v) {
		c.ready.mark(roots, child)
		return
	}
	if c.tree.hasChildren(child) {
		c.use(v, child, roots)
	}
}

// unuse removes roots from obj's usage pair at node, detaches the values
// below it for those roots and disposes the record once nothing uses it.
func (c *Cache) unuse(obj any, node nodeID, roots *roaring.Bitmap) {
	if roots.IsEmpty() {
		return
	}
	o, ok := observable(obj)
	if !ok {
		return
	}

	id, rec := c.recs.lookup(o)
	if rec == nil {
		c.logger.Error(c.inconsistency(domain.ErrMissingRecord, obj, node))
		return
	}
	u := rec.usage(node)
	if u == nil {
		c.logger.Error(c.inconsistency(domain.ErrMissingUsage, obj, node))
		return
	}

	removed := roaring.And(u.roots, roots)
	if removed.IsEmpty() {
		return
	}
	u.roots.AndNot(removed)

	for _, child := range c.tree.children(node) {
		c.depopulate(rec, child, removed)
	}

	// The recursion may have touched rec.uses when obj also sits deeper on
	// the same path, so the pair is looked up again.
	if u := rec.usage(node); u == nil || !u.roots.IsEmpty() {
		return
	}
	rec.dropUsage(node)
	c.recs.unindexNode(node, id)
	if len(rec.uses) == 0 {
		c.disposeRecord(id, rec)
		return
	}
	c.syncSlots(rec)
}

func (c *Cache) depopulate(rec *record, child nodeID, roots *roaring.Bitmap) {
	v, ok := rec.slots[c.tree.name(child)]
	if !ok {
		return
	}
	switch {
	case domain.IsNotReady(v):
		c.ready.resolve(roots, child)
	case v != uninit && c.usedAt(v, child):
		c.unuse(v, child, roots)
	}
}

// syncSlots adds a slot for every property a usage node needs and drops the
// rest, attaching and detaching the change listener per property.
func (c *Cache) syncSlots(rec *record) {
	want := make(map[string]struct{})
	for _, u := range rec.uses {
		for _, child := range c.tree.children(u.node) {
			want[c.tree.name(child)] = struct{}{}
		}
	}

	for name := range rec.slots {
		if _, ok := want[name]; !ok {
			delete(rec.slots, name)
			rec.obj.RemovePropertyChangeListener(name, c.sink)
		}
	}
	for name := range want {
		if _, ok := rec.slots[name]; !ok {
			rec.slots[name] = uninit
			rec.obj.AddPropertyChangeListener(name, c.sink)
		}
	}
}

func (c *Cache) disposeRecord(id recordID, rec *record) {
	for name := range rec.slots {
		rec.obj.RemovePropertyChangeListener(name, c.sink)
	}
	c.recs.release(id)
}

func (c *Cache) enqueueLoad(rec *record, name string) {
	c.loader.push(loadRequest{
		obj:    rec.obj,
		gen:    rec.gen,
		epoch:  c.epoch,
		name:   name,
		origin: time.Now(),
	})
	c.metrics.LoadsQueued(1)
}

func (c *Cache) inconsistency(sentinel error, obj any, node nodeID) error {
	err := zerr.Wrap(sentinel, "cache bookkeeping is inconsistent")
	err = zerr.With(err, "path", c.tree.path(node).String())
	return zerr.With(err, "object", obj)
}

// applyChange propagates one property change. For loads, req carries the
// request and the old value is NotReady.
func (c *Cache) applyChange(ch domain.PropertyChange, req *loadRequest) {
	_, rec := c.recordOf(ch.Source)
	if rec == nil {
		return
	}
	name := ch.Property
	cur, ok := rec.slots[name]
	if !ok {
		return
	}

	old := cur
	var origin time.Time
	if req != nil {
		origin = req.origin
	} else if cur == uninit {
		old = ch.OldValue
	}
	if domain.Equal(old, ch.NewValue) {
		return
	}

	hits := c.affected(rec, name)
	if len(hits) == 0 {
		rec.slots[name] = ch.NewValue
		return
	}

	before := make([][]valueAt, len(hits))
	for i, h := range hits {
		before[i] = c.gather(old, h.child, nil)
	}

	// Stale usages go first so that no root sees both values attached.
	for _, h := range hits {
		switch {
		case domain.IsNotReady(old):
			c.ready.resolve(h.roots, h.child)
		case cur != uninit && c.usedAt(old, h.child):
			c.unuse(old, h.child, h.roots)
		}
	}

	rec.slots[name] = ch.NewValue

	after := make([][]valueAt, len(hits))
	for i, h := range hits {
		if c.tree.hasChildren(h.child) {
			c.use(ch.NewValue, h.child, h.roots)
		}
		after[i] = c.gather(ch.NewValue, h.child, nil)
	}

	c.emit(ch.Source, hits, before, after, origin)
}

func (c *Cache) affected(rec *record, name string) []hit {
	var hits []hit
	for _, u := range rec.uses {
		if u.roots.IsEmpty() {
			continue
		}
		if child, ok := c.tree.child(u.node, name); ok {
			hits = append(hits, hit{child: child, roots: u.roots.Clone()})
		}
	}
	return hits
}

// gather collects v and every value below it along the registered subtree
// of node, in tree order.
func (c *Cache) gather(v any, node nodeID, out []valueAt) []valueAt {
	out = append(out, valueAt{node: node, value: v})
	for _, child := range c.tree.children(node) {
		out = c.gather(c.peek(v, child), child, out)
	}
	return out
}

// peek returns the child property of v, preferring the cached slot.
func (c *Cache) peek(v any, child nodeID) any {
	if v == nil || domain.IsNotReady(v) {
		return v
	}
	name := c.tree.name(child)
	if _, rec := c.recordOf(v); rec != nil {
		if s, ok := rec.slots[name]; ok {
			if s != uninit {
				return s
			}
			if !c.async && !c.tree.hasChildren(child) {
				s = c.read(v, name)
				rec.slots[name] = s
				return s
			}
		}
	}
	return c.read(v, name)
}

// emit turns the gathered values into events. A change confined to one leaf
// node becomes a single ChangeEvent; anything else becomes one MultiChange
// per listener below the common ancestor of the affected nodes.
func (c *Cache) emit(owner any, hits []hit, before, after [][]valueAt, origin time.Time) {
	if len(hits) == 1 && !c.tree.hasChildren(hits[0].child) {
		h := hits[0]
		ev := domain.ChangeEvent{
			Roots:    c.roots.objects(h.roots),
			Owner:    owner,
			Path:     c.tree.path(h.child),
			OldValue: before[0][0].value,
			NewValue: after[0][0].value,
			Origin:   origin,
		}
		for _, l := range c.tree.listeners(h.child) {
			c.outbox = append(c.outbox, delivery{kind: deliverSingle, path: l, single: ev})
		}
		return
	}

	uber := hits[0].child
	for _, h := range hits[1:] {
		uber = c.tree.commonAncestor(uber, h.child)
	}

	var (
		changes []domain.Change
		targets []ports.PathListener
	)
	same := true
	for i, h := range hits {
		if i > 0 && !h.roots.Equals(hits[0].roots) {
			same = false
		}
		roots := c.roots.objects(h.roots)
		for j, was := range before[i] {
			now := after[i][j]
			if j > 0 && domain.Equal(was.value, now.value) {
				continue
			}
			changes = append(changes, domain.Change{
				Path:     c.tree.path(was.node),
				Roots:    roots,
				OldValue: was.value,
				NewValue: now.value,
			})
			for _, l := range c.tree.listeners(was.node) {
				if !slices.Contains(targets, l) {
					targets = append(targets, l)
				}
			}
		}
	}

	if len(targets) == 0 {
		return
	}
	ev := domain.MultiChange{
		Prefix:             c.tree.path(uber),
		Owner:              owner,
		Changes:            changes,
		AllAffectSameRoots: same,
		Origin:             origin,
	}
	for _, l := range targets {
		c.outbox = append(c.outbox, delivery{kind: deliverMulti, path: l, multi: ev})
	}
}

// applyLoop receives batches read by the loader and applies each under one
// acquisition of the lock.
func (c *Cache) applyLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case batch := <-c.loader.results:
			c.applying.Store(true)
			c.applyBatch(ctx, batch)
			c.applying.Store(false)
		}
	}
}

func (c *Cache) applyBatch(ctx context.Context, batch []loadResult) {
	_, span := c.tracer.Start(ctx, "graphcache.apply_loads", ports.WithAttribute("loads", len(batch)))
	defer span.End()

	c.mu.Lock()
	defer c.release()
	if c.disposed {
		return
	}

	applied := 0
	for _, res := range batch {
		req := res.req
		if !c.loadIsCurrent(req) {
			c.metrics.LoadDiscarded()
			c.logger.Debug("stale load discarded", "property", req.name)
			continue
		}

		v := res.value
		if res.err != nil {
			err := zerr.With(zerr.Wrap(res.err, "property load failed"), "property", req.name)
			c.logger.Error(err)
			span.RecordError(err)
			v = nil
		}
		c.applyChange(domain.PropertyChange{
			Source:   req.obj,
			Property: req.name,
			OldValue: domain.NotReady,
			NewValue: v,
		}, &req)
		c.metrics.LoadApplied()
		applied++
	}
	span.SetAttribute("applied", applied)
}

// loadIsCurrent reports whether the slot a load was queued for still waits
// for it. A value delivered by a regular change in the meantime wins.
func (c *Cache) loadIsCurrent(req loadRequest) bool {
	if req.epoch != c.epoch {
		return false
	}
	_, rec := c.recs.lookup(req.obj)
	if rec == nil || rec.gen != req.gen {
		return false
	}
	return domain.IsNotReady(rec.slots[req.name])
}
