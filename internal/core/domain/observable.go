package domain

import "sync"

// PropertyChange describes one mutation of a property on an observable object.
type PropertyChange struct {
	Source   Observable
	Property string
	OldValue any
	NewValue any
}

// PropertyChangeListener receives property changes from an Observable.
type PropertyChangeListener interface {
	PropertyChanged(change PropertyChange)
}

// Observable is implemented by objects that report mutations of their properties.
// Listeners are invoked synchronously on the goroutine that performed the mutation.
type Observable interface {
	AddPropertyChangeListener(property string, l PropertyChangeListener)
	RemovePropertyChangeListener(property string, l PropertyChangeListener)
}

// ChangeSupport keeps per-property listener lists for an Observable.
// The zero value is ready to use and is meant to be embedded.
type ChangeSupport struct {
	mu        sync.Mutex
	listeners map[string][]PropertyChangeListener
}

// AddPropertyChangeListener registers l for changes of property.
func (s *ChangeSupport) AddPropertyChangeListener(property string, l PropertyChangeListener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listeners == nil {
		s.listeners = make(map[string][]PropertyChangeListener)
	}
	s.listeners[property] = append(s.listeners[property], l)
}

// RemovePropertyChangeListener removes one registration of l for property.
func (s *ChangeSupport) RemovePropertyChangeListener(property string, l PropertyChangeListener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ls := s.listeners[property]
	for i, existing := range ls {
		if existing == l {
			ls = append(ls[:i:i], ls[i+1:]...)
			break
		}
	}
	if len(ls) == 0 {
		delete(s.listeners, property)
		return
	}
	s.listeners[property] = ls
}

// ListenerCount returns the number of listeners registered for property.
func (s *ChangeSupport) ListenerCount(property string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners[property])
}

// Observed reports whether any property has a registered listener.
func (s *ChangeSupport) Observed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners) > 0
}

// Fire notifies the listeners of property. Nothing is sent when a non-nil
// old value equals the new one. Listeners run outside the internal lock.
func (s *ChangeSupport) Fire(source Observable, property string, oldValue, newValue any) {
	if oldValue != nil && Equal(oldValue, newValue) {
		return
	}

	s.mu.Lock()
	ls := append([]PropertyChangeListener(nil), s.listeners[property]...)
	s.mu.Unlock()

	change := PropertyChange{
		Source:   source,
		Property: property,
		OldValue: oldValue,
		NewValue: newValue,
	}
	for _, l := range ls {
		l.PropertyChanged(change)
	}
}
