// Package beans provides generic observable objects described by
// domain.Class metadata, and the accessor that reads and writes them.
package beans

import (
	"fmt"
	"sync"

	"go.trai.ch/pathcache/internal/core/domain"
	"go.trai.ch/zerr"
)

// Bean is an observable object whose attributes are declared by a class.
// Set notifies listeners on the calling goroutine after the bean's own lock
// is released.
type Bean struct {
	domain.ChangeSupport

	id    string
	class *domain.Class

	mu     sync.RWMutex
	values map[string]any
}

// New creates a bean of class with every attribute unset.
func New(id string, class *domain.Class) *Bean {
	return &Bean{
		id:     id,
		class:  class,
		values: make(map[string]any),
	}
}

// ID returns the bean's identifier.
func (b *Bean) ID() string {
	return b.id
}

// Class returns the bean's class.
func (b *Bean) Class() *domain.Class {
	return b.class
}

func (b *Bean) String() string {
	return b.id
}

// Value returns the current value of an attribute.
func (b *Bean) Value(name string) (any, error) {
	if _, ok := b.class.Attribute(name); !ok {
		return nil, b.unknown(name)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.values[name], nil
}

// Set assigns an attribute and fires a property change when the value
// differs from the previous one.
func (b *Bean) Set(name string, value any) error {
	attr, ok := b.class.Attribute(name)
	if !ok {
		return b.unknown(name)
	}
	if err := CheckValue(attr, value); err != nil {
		return zerr.With(err, "object", b.id)
	}

	b.mu.Lock()
	old := b.values[name]
	b.values[name] = value
	b.mu.Unlock()

	b.Fire(b, name, old, value)
	return nil
}

func (b *Bean) unknown(name string) error {
	err := zerr.Wrap(domain.ErrUnknownAttribute, "bean has no such attribute")
	err = zerr.With(err, "class", b.class.Name)
	return zerr.With(err, "attribute", name)
}

// CheckValue reports whether value fits the kind of attr. nil fits every
// kind.
func CheckValue(attr *domain.Attribute, value any) error {
	if value == nil {
		return nil
	}

	var ok bool
	switch attr.Kind {
	case domain.KindAny:
		ok = true
	case domain.KindInt:
		_, ok = value.(int)
	case domain.KindFloat:
		_, ok = value.(float64)
	case domain.KindString:
		_, ok = value.(string)
	case domain.KindBool:
		_, ok = value.(bool)
	case domain.KindObject:
		ok = fitsClass(attr.Class, value)
	}
	if ok {
		return nil
	}

	err := zerr.Wrap(domain.ErrTypeMismatch, "cannot assign attribute")
	err = zerr.With(err, "attribute", attr.Name)
	err = zerr.With(err, "want", kindName(attr))
	return zerr.With(err, "got", fmt.Sprintf("%T", value))
}

func fitsClass(class *domain.Class, value any) bool {
	if _, ok := value.(domain.Observable); !ok {
		return false
	}
	if class == nil {
		return true
	}
	c, ok := value.(interface{ Class() *domain.Class })
	return ok && c.Class() == class
}

func kindName(attr *domain.Attribute) string {
	if attr.Kind == domain.KindObject && attr.Class != nil {
		return attr.Class.Name
	}
	return attr.Kind.String()
}
