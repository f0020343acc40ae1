package app

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/pathcache/internal/adapters/beans"
	"go.trai.ch/pathcache/internal/core/domain"
	"go.trai.ch/pathcache/internal/core/ports"
	"go.trai.ch/pathcache/internal/engine/graphcache"
	"go.trai.ch/zerr"
)

// settlePoll bounds how long wait_ready sleeps between checks when no
// readiness event arrives.
const settlePoll = 50 * time.Millisecond

// instantiate creates one bean per scenario object and assigns the declared
// values and references. The scenario's classes are registered first.
func (a *App) instantiate(sc *domain.Scenario) (map[string]*beans.Bean, error) {
	for _, c := range sc.Classes {
		a.registry.Register(c)
	}

	objects := make(map[string]*beans.Bean, len(sc.Objects))
	for _, spec := range sc.Objects {
		objects[spec.ID] = beans.New(spec.ID, sc.Classes[spec.Class])
	}
	for _, spec := range sc.Objects {
		b := objects[spec.ID]
		for name, v := range spec.Values {
			if err := b.Set(name, v); err != nil {
				return nil, zerr.With(err, "object", spec.ID)
			}
		}
		for name, ref := range spec.Refs {
			target, ok := objects[ref]
			if !ok {
				return nil, zerr.With(zerr.Wrap(domain.ErrUnknownObject, "reference does not resolve"), "object", ref)
			}
			if err := b.Set(name, target); err != nil {
				return nil, zerr.With(err, "object", spec.ID)
			}
		}
	}
	return objects, nil
}

// session is one replay of a scenario against one cache.
type session struct {
	sc       *domain.Scenario
	objects  map[string]*beans.Bean
	cache    *graphcache.Cache
	accessor ports.Accessor
	renderer ports.Renderer

	listeners map[string]*pathListener
	ready     *readyListener
}

func newSession(
	sc *domain.Scenario,
	objects map[string]*beans.Bean,
	cache *graphcache.Cache,
	accessor ports.Accessor,
	renderer ports.Renderer,
) *session {
	return &session{
		sc:        sc,
		objects:   objects,
		cache:     cache,
		accessor:  accessor,
		renderer:  renderer,
		listeners: make(map[string]*pathListener),
		ready:     &readyListener{renderer: renderer, signal: make(chan struct{}, 1)},
	}
}

// setup registers the readiness listener, the declared paths and the
// declared roots, in that order.
func (s *session) setup() error {
	if err := s.cache.AddReadinessListener(s.ready); err != nil {
		return err
	}
	for _, p := range s.sc.Paths {
		if err := s.addPath(p); err != nil {
			return err
		}
	}
	for _, id := range s.sc.Roots {
		if err := s.cache.AddRoot(s.objects[id]); err != nil {
			return zerr.With(err, "object", id)
		}
	}
	return nil
}

func (s *session) run(ctx context.Context, step domain.Step) error {
	switch step.Kind {
	case domain.StepSet:
		return s.set(step)
	case domain.StepAddRoot:
		return s.cache.AddRoot(s.objects[step.Object])
	case domain.StepRemoveRoot:
		return s.cache.RemoveRoot(s.objects[step.Object])
	case domain.StepAddPath:
		return s.addPath(step.Path)
	case domain.StepRemovePath:
		return s.removePath(step.Path)
	case domain.StepGet:
		v, err := s.cache.Get(s.objects[step.Object], step.Path)
		if err != nil {
			return zerr.With(err, "object", step.Object)
		}
		s.renderer.OnValue(step.Object, step.Path, v)
		return nil
	case domain.StepWaitReady:
		return s.waitSettled(ctx)
	case domain.StepClear:
		return s.cache.Clear()
	default:
		return zerr.With(zerr.Wrap(domain.ErrInvalidStep, "unknown step kind"), "kind", step.Kind.String())
	}
}

func (s *session) set(step domain.Step) error {
	obj, ok := s.objects[step.Object]
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrUnknownObject, "cannot set attribute"), "object", step.Object)
	}
	value := step.Value
	if step.Ref != "" {
		target, ok := s.objects[step.Ref]
		if !ok {
			return zerr.With(zerr.Wrap(domain.ErrUnknownObject, "reference does not resolve"), "object", step.Ref)
		}
		value = target
	}
	if err := s.accessor.Set(obj, step.Attribute, value); err != nil {
		return zerr.With(err, "object", step.Object)
	}
	return nil
}

func (s *session) addPath(p domain.Path) error {
	key := p.String()
	if _, ok := s.listeners[key]; ok {
		return nil
	}
	l := &pathListener{name: key, renderer: s.renderer}
	if err := s.cache.AddPathListener(p, l); err != nil {
		return err
	}
	s.listeners[key] = l
	return nil
}

func (s *session) removePath(p domain.Path) error {
	key := p.String()
	l, ok := s.listeners[key]
	if !ok {
		return nil
	}
	delete(s.listeners, key)
	return s.cache.RemovePathListener(p, l)
}

// waitSettled blocks until no registered value is waiting for its load.
func (s *session) waitSettled(ctx context.Context) error {
	ticker := time.NewTicker(settlePoll)
	defer ticker.Stop()

	for !s.cache.Settled() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.ready.signal:
		case <-ticker.C:
		}
	}
	return nil
}

// pathListener renders the events of one registered path.
type pathListener struct {
	name     string
	renderer ports.Renderer
}

func (l *pathListener) PathChanged(ev domain.ChangeEvent) {
	l.renderer.OnChange(l.name, ev)
}

func (l *pathListener) PathsChanged(ev domain.MultiChange) {
	l.renderer.OnMultiChange(l.name, ev)
}

// readyListener renders readiness and wakes a pending wait_ready step.
type readyListener struct {
	renderer ports.Renderer
	signal   chan struct{}
}

func (l *readyListener) RootReady(root any) {
	l.renderer.OnReady(objectName(root))
	select {
	case l.signal <- struct{}{}:
	default:
	}
}

func objectName(obj any) string {
	if b, ok := obj.(interface{ ID() string }); ok {
		return b.ID()
	}
	return fmt.Sprint(obj)
}
