package gen

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crater/internal/adapters/logger"
	"go.trai.ch/crater/internal/core/ports"
)

// NodeID is the unique identifier for the generator set Graft node.
const NodeID graft.ID = "adapter.generators"

func init() {
	graft.Register(graft.Node[*Set]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Set, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewDefaultSet(log), nil
		},
	})
}
