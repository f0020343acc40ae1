package ports

import "go.trai.ch/pathcache/internal/core/domain"

// Accessor reads and writes properties of domain objects through their
// attribute descriptors.
//
//go:generate mockgen -source=accessor.go -destination=mocks/mock_accessor.go -package=mocks
type Accessor interface {
	// Get reads a single property of obj.
	Get(obj any, property string) (any, error)
	// GetPath follows p from obj and returns the value at its end.
	// A nil intermediate value yields nil without error.
	GetPath(obj any, p domain.Path) (any, error)
	// Set writes a single property of obj.
	Set(obj any, property string, value any) error
}

// ClassResolver maps objects to their attribute metadata.
type ClassResolver interface {
	// ClassOf returns the class of obj, or false when obj has none.
	ClassOf(obj any) (*domain.Class, bool)
}
