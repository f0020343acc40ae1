package domain

import "go.trai.ch/zerr"

// Kind classifies the values an attribute holds.
type Kind uint8

const (
	// KindAny holds any value. Paths may continue below it without validation.
	KindAny Kind = iota
	// KindInt holds an int.
	KindInt
	// KindFloat holds a float64.
	KindFloat
	// KindString holds a string.
	KindString
	// KindBool holds a bool.
	KindBool
	// KindObject holds a reference to another object.
	KindObject
)

// String returns the schema name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	default:
		return "any"
	}
}

// Attribute describes one named, typed property of a class.
// Get and Set are the typed accessors used instead of runtime reflection.
type Attribute struct {
	Name  string
	Kind  Kind
	Class *Class // element class when Kind is KindObject, nil when unknown
	Get   func(obj any) (any, error)
	Set   func(obj any, value any) error
}

// Class is the attribute metadata of a domain type.
type Class struct {
	Name  string
	attrs map[string]*Attribute
	order []string
}

// NewClass creates an empty class.
func NewClass(name string) *Class {
	return &Class{
		Name:  name,
		attrs: make(map[string]*Attribute),
	}
}

// Define adds or replaces an attribute and returns the class for chaining.
func (c *Class) Define(attr Attribute) *Class {
	if _, exists := c.attrs[attr.Name]; !exists {
		c.order = append(c.order, attr.Name)
	}
	a := attr
	c.attrs[attr.Name] = &a
	return c
}

// Attribute looks up an attribute by name.
func (c *Class) Attribute(name string) (*Attribute, bool) {
	a, ok := c.attrs[name]
	return a, ok
}

// Attributes returns the attributes in declaration order.
func (c *Class) Attributes() []*Attribute {
	out := make([]*Attribute, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.attrs[name])
	}
	return out
}

// Resolve checks that p is reachable from the class. Every segment but the
// last must hold an object. Validation stops below KindAny attributes and
// object attributes without a declared class.
func (c *Class) Resolve(p Path) error {
	if err := p.Validate(); err != nil {
		return err
	}

	cur := c
	for i, seg := range p {
		attr, ok := cur.Attribute(seg)
		if !ok {
			err := zerr.Wrap(ErrUnknownAttribute, "path does not resolve")
			err = zerr.With(err, "class", cur.Name)
			err = zerr.With(err, "attribute", seg)
			return zerr.With(err, "path", p.String())
		}
		if i == len(p)-1 {
			return nil
		}
		switch attr.Kind {
		case KindAny:
			return nil
		case KindObject:
			if attr.Class == nil {
				return nil
			}
			cur = attr.Class
		default:
			err := zerr.Wrap(ErrNotAnObject, "path does not resolve")
			err = zerr.With(err, "class", cur.Name)
			err = zerr.With(err, "attribute", seg)
			return zerr.With(err, "path", p.String())
		}
	}
	return nil
}
