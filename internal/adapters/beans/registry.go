package beans

import (
	"slices"
	"sync"

	"go.trai.ch/pathcache/internal/core/domain"
	"go.trai.ch/pathcache/internal/core/ports"
)

// Classed is implemented by objects that know their own class.
type Classed interface {
	Class() *domain.Class
}

// Registry keeps classes by name and resolves the class of objects.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*domain.Class
}

var _ ports.ClassResolver = (*Registry)(nil)

// NewRegistry creates a registry holding classes.
func NewRegistry(classes ...*domain.Class) *Registry {
	r := &Registry{classes: make(map[string]*domain.Class)}
	for _, c := range classes {
		r.Register(c)
	}
	return r
}

// Register adds or replaces a class.
func (r *Registry) Register(c *domain.Class) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[c.Name] = c
}

// Lookup finds a class by name.
func (r *Registry) Lookup(name string) (*domain.Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[name]
	return c, ok
}

// Names lists the registered class names in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ClassOf returns the class an object reports for itself.
func (r *Registry) ClassOf(obj any) (*domain.Class, bool) {
	c, ok := obj.(Classed)
	if !ok || c.Class() == nil {
		return nil, false
	}
	return c.Class(), true
}
