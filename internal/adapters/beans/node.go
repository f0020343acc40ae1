package beans

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pathcache/internal/core/ports"
)

const (
	// RegistryNodeID is the unique identifier for the class registry Graft node.
	RegistryNodeID graft.ID = "adapter.beans.registry"
	// AccessorNodeID is the unique identifier for the accessor Graft node.
	AccessorNodeID graft.ID = "adapter.beans.accessor"
)

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        RegistryNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Registry, error) {
			return NewRegistry(), nil
		},
	})

	graft.Register(graft.Node[ports.Accessor]{
		ID:        AccessorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{RegistryNodeID},
		Run: func(ctx context.Context) (ports.Accessor, error) {
			reg, err := graft.Dep[*Registry](ctx)
			if err != nil {
				return nil, err
			}
			return NewAccessor(reg), nil
		},
	})
}
