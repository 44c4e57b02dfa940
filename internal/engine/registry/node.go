package registry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crater/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/crater/internal/adapters/git"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/crater/internal/adapters/lockfile"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/crater/internal/adapters/selfcrate" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/crater/internal/core/ports"
)

// NodeID is the unique identifier for the registry opener Graft node.
const NodeID graft.ID = "engine.registry"

func init() {
	graft.Register(graft.Node[*Opener]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			lockfile.NodeID,
			config.NodeID,
			git.NodeID,
			selfcrate.NodeID,
		},
		Run: func(ctx context.Context) (*Opener, error) {
			store, err := graft.Dep[ports.LockfileStore](ctx)
			if err != nil {
				return nil, err
			}

			loader, err := graft.Dep[ports.DeclarationLoader](ctx)
			if err != nil {
				return nil, err
			}

			gitHandler, err := graft.Dep[*git.Handler](ctx)
			if err != nil {
				return nil, err
			}

			selfHandler, err := graft.Dep[*selfcrate.Handler](ctx)
			if err != nil {
				return nil, err
			}

			return NewOpener(store, loader, NewHandlers(gitHandler, selfHandler)), nil
		},
	})
}
