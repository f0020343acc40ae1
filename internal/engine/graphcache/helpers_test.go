package graphcache_test

import (
	"context"
	"fmt"
	"sync"

	"go.trai.ch/pathcache/internal/core/domain"
)

// item is a minimal observable object backed by a map.
type item struct {
	domain.ChangeSupport

	mu     sync.Mutex
	name   string
	values map[string]any
	onGet  func(property string)
}

func newItem(name string, kv ...any) *item {
	it := &item{name: name, values: make(map[string]any)}
	for i := 0; i+1 < len(kv); i += 2 {
		it.values[kv[i].(string)] = kv[i+1]
	}
	return it
}

func (i *item) String() string { return i.name }

func (i *item) get(property string) any {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.values[property]
}

func (i *item) set(property string, v any) {
	i.mu.Lock()
	old := i.values[property]
	i.values[property] = v
	i.mu.Unlock()
	i.Fire(i, property, old, v)
}

// plain is an object without change notification.
type plain struct {
	fields map[string]any
}

type itemAccessor struct{}

func (itemAccessor) Get(obj any, property string) (any, error) {
	switch o := obj.(type) {
	case *item:
		if o.onGet != nil {
			o.onGet(property)
		}
		return o.get(property), nil
	case *plain:
		return o.fields[property], nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("cannot read %q from %T", property, obj)
	}
}

func (a itemAccessor) GetPath(obj any, p domain.Path) (any, error) {
	cur := obj
	for _, seg := range p {
		if cur == nil {
			return nil, nil
		}
		v, err := a.Get(cur, seg)
		if err != nil {
			return nil, err
		}
		cur = v
	}
	return cur, nil
}

func (itemAccessor) Set(obj any, property string, value any) error {
	it, ok := obj.(*item)
	if !ok {
		return fmt.Errorf("cannot write %q on %T", property, obj)
	}
	it.set(property, value)
	return nil
}

// recorder collects the events delivered to one path listener.
type recorder struct {
	mu      sync.Mutex
	singles []domain.ChangeEvent
	multis  []domain.MultiChange
	onEvent func()
}

func (r *recorder) PathChanged(ev domain.ChangeEvent) {
	r.mu.Lock()
	r.singles = append(r.singles, ev)
	r.mu.Unlock()
	if r.onEvent != nil {
		r.onEvent()
	}
}

func (r *recorder) PathsChanged(ev domain.MultiChange) {
	r.mu.Lock()
	r.multis = append(r.multis, ev)
	r.mu.Unlock()
	if r.onEvent != nil {
		r.onEvent()
	}
}

func (r *recorder) events() ([]domain.ChangeEvent, []domain.MultiChange) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ChangeEvent(nil), r.singles...), append([]domain.MultiChange(nil), r.multis...)
}

func (r *recorder) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.singles) + len(r.multis)
}

type readyRecorder struct {
	mu    sync.Mutex
	roots []any
}

func (r *readyRecorder) RootReady(root any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roots = append(r.roots, root)
}

func (r *readyRecorder) fired() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]any(nil), r.roots...)
}

// gate blocks the loader until opened.
type gate struct {
	open chan struct{}
}

func newGate() *gate {
	return &gate{open: make(chan struct{})}
}

func (g *gate) Wait(ctx context.Context) error {
	select {
	case <-g.open:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stepGate lets one load batch through per value sent on step.
type stepGate struct {
	step chan struct{}
}

func (g *stepGate) Wait(ctx context.Context) error {
	select {
	case <-g.step:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// countingMetrics counts load outcomes.
type countingMetrics struct {
	mu        sync.Mutex
	queued    int
	applied   int
	discarded int
	delivered map[string]int
}

func (m *countingMetrics) EventDelivered(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.delivered == nil {
		m.delivered = make(map[string]int)
	}
	m.delivered[kind]++
}

func (m *countingMetrics) LoadsQueued(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queued += n
}

func (m *countingMetrics) LoadApplied() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applied++
}

func (m *countingMetrics) LoadDiscarded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discarded++
}

func (m *countingMetrics) ObserveStats(domain.CacheStats) {}

func (m *countingMetrics) snapshot() (queued, applied, discarded int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queued, m.applied, m.discarded
}

func path(s string) domain.Path {
	p, err := domain.ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}
