package selfcrate

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the self handler Graft node.
const NodeID graft.ID = "adapter.handler.self"

func init() {
	graft.Register(graft.Node[*Handler]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Handler, error) {
			return NewHandler(), nil
		},
	})
}
