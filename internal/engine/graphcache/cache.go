// Package graphcache implements an incrementally maintained cache over a
// graph of observable objects reached from a set of roots by property paths.
package graphcache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.trai.ch/pathcache/internal/core/domain"
	"go.trai.ch/pathcache/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options configures a Cache.
type Options struct {
	// RootClass, when set, validates registered paths.
	RootClass *domain.Class
	// Accessor reads properties of objects. Required.
	Accessor ports.Accessor
	Logger   ports.Logger
	Metrics  ports.Metrics
	Tracer   ports.Tracer
	// Async resolves properties on a background worker. Unresolved values
	// read as domain.NotReady until their load is applied.
	Async bool
	// Controller gates the background worker.
	Controller ports.ExecutionController
	// LoadBatch caps the number of loads read and applied together.
	LoadBatch int
}

// Cache keeps the values at every registered path of every root current and
// reports each change once, as a minimal event.
//
// One mutex serializes all state. Listeners run after it is released, in the
// order their events were produced.
type Cache struct {
	mu        sync.Mutex
	rootClass *domain.Class
	accessor  ports.Accessor
	logger    ports.Logger
	metrics   ports.Metrics
	tracer    ports.Tracer
	async     bool

	tree   *pathTree
	roots  *rootRegistry
	recs   *recordStore
	ready  *readiness
	sink   *changeSink
	outbox []delivery
	epoch  uint64

	disposed bool

	// dmu guards the delivery queue.
	dmu      sync.Mutex
	queue    []delivery
	draining bool

	// reading is set while the accessor is called with the lock held.
	reading atomic.Pointer[readMark]

	// deferred holds changes that arrived during a locked read.
	deferMu  sync.Mutex
	deferred []domain.PropertyChange

	loader *loader
	cancel context.CancelFunc
	group  *errgroup.Group
	// applying is set while the apply loop handles a batch, delivery included.
	applying atomic.Bool
}

type readMark struct {
	obj      any
	property string
}

// changeSink is the single PropertyChangeListener attached to every observed
// object.
type changeSink struct {
	c *Cache
}

func (s *changeSink) PropertyChanged(ch domain.PropertyChange) {
	s.c.onChange(ch)
}

// New creates a Cache. In asynchronous mode it starts the background loader,
// which runs until Dispose.
func New(opts Options) *Cache {
	c := &Cache{
		rootClass: opts.RootClass,
		accessor:  opts.Accessor,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		tracer:    opts.Tracer,
		async:     opts.Async,
		tree:      newPathTree(),
		roots:     newRootRegistry(),
		recs:      newRecordStore(),
		ready:     newReadiness(),
	}
	if c.logger == nil {
		c.logger = nopLogger{}
	}
	if c.metrics == nil {
		c.metrics = nopMetrics{}
	}
	if c.tracer == nil {
		c.tracer = nopTracer{}
	}
	c.sink = &changeSink{c: c}

	if c.async {
		c.loader = newLoader(c.accessor.Get, opts.LoadBatch, c.logger)
		c.loader.setController(opts.Controller)

		ctx, cancel := context.WithCancel(context.Background())
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return c.loader.run(gctx) })
		g.Go(func() error { return c.applyLoop(gctx) })
		c.cancel = cancel
		c.group = g
	}
	return c
}

// AddRoot registers obj as a root. Adding a registered root is a no-op.
func (c *Cache) AddRoot(obj any) error {
	if !domain.Comparable(obj) {
		return zerr.With(zerr.Wrap(domain.ErrRootNotComparable, "cannot add root"), "type", fmt.Sprintf("%T", obj))
	}

	c.mu.Lock()
	defer c.release()
	if c.disposed {
		return domain.ErrDisposed
	}

	id, added := c.roots.add(obj)
	if !added {
		return nil
	}
	c.use(obj, rootNode, rootSet(id))
	return nil
}

// RemoveRoot unregisters obj and drops every record only it was using.
// Removing an unknown root is a no-op.
func (c *Cache) RemoveRoot(obj any) error {
	if !domain.Comparable(obj) {
		return nil
	}

	c.mu.Lock()
	defer c.release()
	if c.disposed {
		return domain.ErrDisposed
	}

	id, ok := c.roots.remove(obj)
	if !ok {
		c.logger.Debug("remove of unknown root ignored", "type", fmt.Sprintf("%T", obj))
		return nil
	}
	c.unuse(obj, rootNode, rootSet(id))
	c.ready.forget(id)
	return nil
}

// AddPathListener registers l for p. Registering the same pair twice has no
// further effect.
func (c *Cache) AddPathListener(p domain.Path, l ports.PathListener) error {
	if err := c.checkListener(l); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if c.rootClass != nil {
		if err := c.rootClass.Resolve(p); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.release()
	if c.disposed {
		return domain.ErrDisposed
	}

	first, _ := c.tree.addListener(p, l)
	if first == noNode {
		return nil
	}

	// A leaf that gains its first child turns the values cached there into
	// intermediates, so the subtree is populated from the leaf itself.
	top := first
	if parent := c.tree.parent(first); parent != rootNode && len(c.tree.children(parent)) == 1 {
		top = parent
	}

	owner := c.tree.parent(top)
	for _, id := range c.recs.usersOf(owner) {
		rec := c.recs.get(id)
		c.syncSlots(rec)
		if u := rec.usage(owner); u != nil {
			c.populate(rec, top, u.roots.Clone())
		}
	}
	return nil
}

// RemovePathListener detaches l from p and prunes the part of the tree that
// no listener needs any more. Unknown pairs are ignored.
func (c *Cache) RemovePathListener(p domain.Path, l ports.PathListener) error {
	if err := c.checkListener(l); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.release()
	if c.disposed {
		return domain.ErrDisposed
	}

	prune, _ := c.tree.removeListener(p, l)
	if prune == noNode {
		return nil
	}

	parent := c.tree.parent(prune)
	if parent != rootNode && len(c.tree.children(parent)) == 1 {
		// parent turns back into a leaf: the values cached at it stop being
		// intermediates and lose their records.
		owner := c.tree.parent(parent)
		name := c.tree.name(parent)
		for _, id := range c.recs.usersOf(owner) {
			rec := c.recs.get(id)
			if rec == nil {
				continue
			}
			u := rec.usage(owner)
			if u == nil {
				continue
			}
			if v := rec.slots[name]; c.usedAt(v, parent) {
				c.unuse(v, parent, u.roots.Clone())
			}
		}
	}

	users := c.recs.usersOf(parent)
	for _, id := range users {
		rec := c.recs.get(id)
		if u := rec.usage(parent); u != nil {
			c.depopulate(rec, prune, u.roots.Clone())
		}
	}
	c.tree.detach(prune)
	for _, id := range users {
		if rec := c.recs.get(id); rec != nil {
			c.syncSlots(rec)
		}
	}
	return nil
}

// Get returns the value at p for root. In asynchronous mode an unresolved
// value yields domain.NotReady and schedules its load.
func (c *Cache) Get(root any, p domain.Path) (any, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !domain.Comparable(root) {
		return nil, zerr.Wrap(domain.ErrUnknownRoot, "cannot read path")
	}

	c.mu.Lock()
	defer c.release()
	if c.disposed {
		return nil, domain.ErrDisposed
	}

	if _, ok := c.roots.id(root); !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownRoot, "cannot read path"), "path", p.String())
	}
	return c.lookup(root, p), nil
}

// AddReadinessListener registers l. Pending sets are rebuilt from the
// current state when the first listener arrives.
func (c *Cache) AddReadinessListener(l ports.ReadinessListener) error {
	if l == nil {
		return domain.ErrNilListener
	}
	if !domain.Comparable(l) {
		return zerr.With(zerr.Wrap(domain.ErrListenerNotComparable, "cannot register listener"), "type", fmt.Sprintf("%T", l))
	}

	c.mu.Lock()
	defer c.release()
	if c.disposed {
		return domain.ErrDisposed
	}

	if c.ready.add(l) && !c.ready.tracking() {
		c.rebuildPending()
	}
	return nil
}

// RemoveReadinessListener unregisters l. Tracking stops with the last one.
func (c *Cache) RemoveReadinessListener(l ports.ReadinessListener) error {
	if l == nil {
		return domain.ErrNilListener
	}
	if !domain.Comparable(l) {
		return nil
	}

	c.mu.Lock()
	defer c.release()
	if c.disposed {
		return domain.ErrDisposed
	}
	c.ready.remove(l)
	return nil
}

// SetExecutionController replaces the gate consulted by the background
// loader. It has no effect in synchronous mode.
func (c *Cache) SetExecutionController(ec ports.ExecutionController) {
	if c.loader != nil {
		c.loader.setController(ec)
	}
}

// Clear removes every root and discards all queued loads. Path listeners and
// readiness listeners stay registered.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.release()
	if c.disposed {
		return domain.ErrDisposed
	}
	c.clearLocked()
	return nil
}

func (c *Cache) clearLocked() {
	ids := c.roots.all().ToArray()
	for _, id := range ids {
		obj := c.roots.object(id)
		c.roots.remove(obj)
		c.unuse(obj, rootNode, rootSet(id))
	}
	c.ready.reset()
	c.epoch++
	if c.loader != nil {
		for range c.loader.reset() {
			c.metrics.LoadDiscarded()
		}
	}
}

// Dispose clears the cache, detaches all listeners and stops the background
// loader. Every later operation returns domain.ErrDisposed. Called from a
// listener while loaded values are being applied, it cancels the loader
// without waiting for it to exit.
func (c *Cache) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.clearLocked()
	c.disposed = true
	c.tree = newPathTree()
	c.ready = newReadiness()
	c.outbox = nil
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		if c.applying.Load() {
			return
		}
		if err := c.group.Wait(); err != nil {
			c.logger.Error(zerr.Wrap(err, "background loader stopped with error"))
		}
	}
}

// Stats returns a snapshot of the bookkeeping sizes.
func (c *Cache) Stats() domain.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statsLocked()
}

func (c *Cache) statsLocked() domain.CacheStats {
	s := domain.CacheStats{
		Roots:   c.roots.len(),
		Records: c.recs.len(),
		Nodes:   c.tree.size(),
	}
	if c.loader != nil {
		s.PendingLoads = c.loader.len()
	}
	return s
}

// Settled reports whether no registered value is waiting for its load.
func (c *Cache) Settled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, rec := range c.recs.live {
		for _, u := range rec.uses {
			for _, child := range c.tree.children(u.node) {
				if domain.IsNotReady(rec.slots[c.tree.name(child)]) {
					return false
				}
			}
		}
	}
	return true
}

// Paths lists every node of the path tree with its listener count.
func (c *Cache) Paths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.paths()
}

// Digest fingerprints the structure of the path tree.
func (c *Cache) Digest() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.digest()
}

func (c *Cache) checkListener(l ports.PathListener) error {
	if l == nil {
		return domain.ErrNilListener
	}
	if !domain.Comparable(l) {
		return zerr.With(zerr.Wrap(domain.ErrListenerNotComparable, "cannot register listener"), "type", fmt.Sprintf("%T", l))
	}
	return nil
}

// release finishes a locked operation: it applies changes deferred during
// locked reads, settles readiness, queues the produced events, unlocks and
// delivers.
func (c *Cache) release() {
	for {
		c.applyDeferred()
		c.settleReadiness()
		c.publish()
		c.metrics.ObserveStats(c.statsLocked())
		c.mu.Unlock()

		if !c.hasDeferred() || !c.mu.TryLock() {
			break
		}
	}
	c.drain()
}

// onChange is the entry point for property changes of observed objects. A
// change that cannot take the lock while the holder is inside the accessor is
// deferred, whatever goroutine fired it. Its setter then returns before the
// lock holder delivers the events.
func (c *Cache) onChange(ch domain.PropertyChange) {
	if !c.mu.TryLock() {
		if m := c.reading.Load(); m != nil {
			if m.obj == any(ch.Source) {
				c.logger.Warn("property change fired while the property was being read",
					"property", ch.Property, "reading", m.property, "type", fmt.Sprintf("%T", ch.Source))
			}
			c.deferChange(ch)
			return
		}
		c.mu.Lock()
	}
	if !c.disposed {
		c.applyChange(ch, nil)
	}
	c.release()
}

// deferChange queues a change that cannot take the lock because the lock
// holder is inside an accessor call, possibly on this goroutine.
func (c *Cache) deferChange(ch domain.PropertyChange) {
	c.deferMu.Lock()
	c.deferred = append(c.deferred, ch)
	c.deferMu.Unlock()

	if c.mu.TryLock() {
		c.release()
	}
}

func (c *Cache) hasDeferred() bool {
	c.deferMu.Lock()
	defer c.deferMu.Unlock()
	return len(c.deferred) > 0
}

func (c *Cache) applyDeferred() {
	for {
		c.deferMu.Lock()
		pending := c.deferred
		c.deferred = nil
		c.deferMu.Unlock()

		if len(pending) == 0 {
			return
		}
		if c.disposed {
			continue
		}
		for _, ch := range pending {
			c.applyChange(ch, nil)
		}
	}
}

// read performs one accessor call with the lock held. Failures are logged
// and read as nil.
func (c *Cache) read(obj any, property string) any {
	prev := c.reading.Swap(&readMark{obj: obj, property: property})
	v, err := c.accessor.Get(obj, property)
	c.reading.Store(prev)

	if err != nil {
		err = zerr.With(zerr.Wrap(err, "property read failed"), "property", property)
		c.logger.Error(zerr.With(err, "type", fmt.Sprintf("%T", obj)))
		return nil
	}
	return v
}

func (c *Cache) readPath(obj any, p domain.Path) any {
	prev := c.reading.Swap(&readMark{obj: obj, property: p.String()})
	v, err := c.accessor.GetPath(obj, p)
	c.reading.Store(prev)

	if err != nil {
		err = zerr.With(zerr.Wrap(err, "path read failed"), "path", p.String())
		c.logger.Error(zerr.With(err, "type", fmt.Sprintf("%T", obj)))
		return nil
	}
	return v
}

// lookup walks cached slots along p, resolving uninitialised slots on the
// way, and falls back to the accessor where nothing is cached.
func (c *Cache) lookup(root any, p domain.Path) any {
	cur := root
	node := rootNode
	for i, seg := range p {
		if cur == nil || domain.IsNotReady(cur) {
			return cur
		}
		child, ok := c.tree.child(node, seg)
		if !ok {
			return c.readPath(cur, p[i:])
		}
		_, rec := c.recordOf(cur)
		if rec == nil {
			return c.readPath(cur, p[i:])
		}
		v, ok := rec.slots[seg]
		if !ok {
			c.logger.Error(zerr.With(zerr.Wrap(domain.ErrMissingUsage, "cached object lacks slot"), "path", p[:i+1].String()))
			return c.readPath(cur, p[i:])
		}
		if v == uninit {
			v = c.resolveSlot(rec, node, child)
		}
		cur = v
		node = child
	}
	return cur
}

// resolveSlot fills an uninitialised slot on demand.
func (c *Cache) resolveSlot(rec *record, parent, child nodeID) any {
	name := c.tree.name(child)
	if c.async {
		rec.slots[name] = domain.NotReady
		c.enqueueLoad(rec, name)
		if u := rec.usage(parent); u != nil {
			c.ready.mark(u.roots, child)
		}
		return domain.NotReady
	}
	v := c.read(rec.obj, name)
	rec.slots[name] = v
	if c.tree.hasChildren(child) {
		if u := rec.usage(parent); u != nil {
			c.use(v, child, u.roots.Clone())
		}
	}
	return v
}

func (c *Cache) recordOf(obj any) (recordID, *record) {
	o, ok := observable(obj)
	if !ok {
		return -1, nil
	}
	return c.recs.lookup(o)
}

// usedAt reports whether obj's record holds a usage pair at node.
func (c *Cache) usedAt(obj any, node nodeID) bool {
	_, rec := c.recordOf(obj)
	return rec != nil && rec.usage(node) != nil
}

// observable reports whether obj can own a cache record.
func observable(obj any) (domain.Observable, bool) {
	o, ok := obj.(domain.Observable)
	if !ok || !domain.Comparable(o) {
		return nil, false
	}
	return o, true
}

func (c *Cache) rebuildPending() {
	c.ready.pending = make(map[uint32]map[nodeID]struct{})
	for _, rec := range c.recs.live {
		for _, u := range rec.uses {
			for _, child := range c.tree.children(u.node) {
				if domain.IsNotReady(rec.slots[c.tree.name(child)]) {
					c.ready.mark(u.roots, child)
				}
			}
		}
	}
	clear(c.ready.touched)
}

func (c *Cache) settleReadiness() {
	for _, id := range c.ready.settled() {
		if !c.roots.has(id) {
			continue
		}
		root := c.roots.object(id)
		for _, l := range c.ready.listeners {
			c.outbox = append(c.outbox, delivery{kind: deliverReady, ready: l, root: root})
		}
	}
}
