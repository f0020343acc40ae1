package throttle

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the load gate Graft node.
const NodeID graft.ID = "adapter.throttle"

func init() {
	graft.Register(graft.Node[*Gate]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Gate, error) {
			return NewGate(0), nil
		},
	})
}
