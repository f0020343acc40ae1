package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pathcache/internal/adapters/logger"
	"go.trai.ch/pathcache/internal/core/ports"
)

// NodeID is the unique identifier for the watcher factory Graft node.
const NodeID graft.ID = "adapter.watcher"

// Factory creates watchers. A watcher cannot be restarted after Stop, so
// every watch session asks for a new one.
type Factory func() (ports.Watcher, error)

// NewFactory returns a Factory whose watchers log through logger.
func NewFactory(log ports.Logger) Factory {
	return func() (ports.Watcher, error) {
		return New(log)
	}
}

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (Factory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(log), nil
		},
	})
}
