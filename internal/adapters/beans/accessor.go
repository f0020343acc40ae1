package beans

import (
	"fmt"

	"go.trai.ch/pathcache/internal/core/domain"
	"go.trai.ch/pathcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// Accessor reads and writes properties through attribute descriptors.
// Attributes with their own Get or Set functions use them; plain beans fall
// back to their value map.
type Accessor struct {
	resolver ports.ClassResolver
}

var _ ports.Accessor = (*Accessor)(nil)

// NewAccessor creates an Accessor resolving classes with resolver.
func NewAccessor(resolver ports.ClassResolver) *Accessor {
	return &Accessor{resolver: resolver}
}

// Get reads one property. Reading from nil yields nil.
func (a *Accessor) Get(obj any, property string) (any, error) {
	if obj == nil {
		return nil, nil
	}
	attr, err := a.attribute(obj, property)
	if err != nil {
		return nil, err
	}

	if attr.Get != nil {
		v, err := attr.Get(obj)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrReadFailed, err.Error()), "attribute", property)
		}
		return v, nil
	}
	if b, ok := obj.(*Bean); ok {
		return b.Value(property)
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrReadFailed, "attribute has no getter"), "attribute", property)
}

// GetPath follows p from obj. A nil value part way yields nil.
func (a *Accessor) GetPath(obj any, p domain.Path) (any, error) {
	cur := obj
	for _, seg := range p {
		if cur == nil {
			return nil, nil
		}
		v, err := a.Get(cur, seg)
		if err != nil {
			return nil, zerr.With(err, "path", p.String())
		}
		cur = v
	}
	return cur, nil
}

// Set writes one property after checking the value against its kind.
func (a *Accessor) Set(obj any, property string, value any) error {
	attr, err := a.attribute(obj, property)
	if err != nil {
		return err
	}
	if err := CheckValue(attr, value); err != nil {
		return err
	}

	if attr.Set != nil {
		if err := attr.Set(obj, value); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrWriteFailed, err.Error()), "attribute", property)
		}
		return nil
	}
	if b, ok := obj.(*Bean); ok {
		return b.Set(property, value)
	}
	return zerr.With(zerr.Wrap(domain.ErrReadOnlyAttribute, "cannot assign attribute"), "attribute", property)
}

func (a *Accessor) attribute(obj any, property string) (*domain.Attribute, error) {
	class, ok := a.resolver.ClassOf(obj)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownClass, "object has no class"), "type", fmt.Sprintf("%T", obj))
	}
	attr, ok := class.Attribute(property)
	if !ok {
		err := zerr.Wrap(domain.ErrUnknownAttribute, "class has no such attribute")
		err = zerr.With(err, "class", class.Name)
		return nil, zerr.With(err, "attribute", property)
	}
	return attr, nil
}
