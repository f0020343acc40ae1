package ports

import (
	"context"

	"go.trai.ch/pathcache/internal/core/domain"
)

// PathListener receives the change events of a registered path.
// Implementations are compared by identity and must be comparable.
//
//go:generate mockgen -source=listener.go -destination=mocks/mock_listener.go -package=mocks
type PathListener interface {
	// PathChanged is called when a single leaf path changed.
	PathChanged(ev domain.ChangeEvent)
	// PathsChanged is called once per listener when a change affected
	// several paths or roots at once.
	PathsChanged(ev domain.MultiChange)
}

// ReadinessListener is notified when a root has no pending loads left.
type ReadinessListener interface {
	RootReady(root any)
}

// ExecutionController gates the background loader. Wait is called before
// each batch of loads and blocks until the batch may run.
type ExecutionController interface {
	Wait(ctx context.Context) error
}
