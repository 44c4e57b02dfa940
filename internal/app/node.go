package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crater/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/crater/internal/adapters/gen"                //nolint:depguard // Wired in app layer
	"go.trai.ch/crater/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/crater/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/crater/internal/core/ports"
	"go.trai.ch/crater/internal/engine/registry"
	"go.trai.ch/crater/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			registry.NodeID,
			config.NodeID,
			resolver.NodeID,
			gen.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	opener, err := graft.Dep[*registry.Opener](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.DeclarationLoader](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	generators, err := graft.Dep[*gen.Set](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(opener, loader, res, generators, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
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

	return NewComponents(app, log, telemetry), nil
}
