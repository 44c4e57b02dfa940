package git

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crater/internal/adapters/logger"
	"go.trai.ch/crater/internal/adapters/shell"
	"go.trai.ch/crater/internal/adapters/telemetry/progrock"
	"go.trai.ch/crater/internal/core/ports"
)

// NodeID is the unique identifier for the git handler Graft node.
const NodeID graft.ID = "adapter.handler.git"

func init() {
	graft.Register(graft.Node[*Handler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID, progrock.NodeID},
		Run: func(ctx context.Context) (*Handler, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return NewHandler(runner, log, telemetry), nil
		},
	})
}
