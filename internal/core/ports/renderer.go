package ports

import "go.trai.ch/pathcache/internal/core/domain"

// Renderer presents what a scenario replay observes.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// OnStep is called before a scenario step runs.
	OnStep(index int, step domain.Step)
	// OnChange is called for every single-path event.
	OnChange(listener string, ev domain.ChangeEvent)
	// OnMultiChange is called for every batched event.
	OnMultiChange(listener string, ev domain.MultiChange)
	// OnReady is called when a root became ready.
	OnReady(root string)
	// OnValue is called with the result of a get step.
	OnValue(root string, p domain.Path, value any)
	// Flush writes any buffered output.
	Flush() error
}
