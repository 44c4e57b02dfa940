package app

import (
	"context"

	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/engine/registry"
)

// Generate rewrites the build glue files configured in the gen blocks of every crate.
func (a *App) Generate(_ context.Context, dir string) error {
	reg, err := a.open(dir)
	if err != nil {
		return err
	}
	return a.generate(reg)
}

func (a *App) generate(reg *registry.Registry) error {
	graph := buildGraph(reg)
	if err := graph.Validate(); err != nil {
		return err
	}

	for node := range graph.Walk() {
		decls, err := a.loader.LoadDir(node.Dir)
		if err != nil {
			return err
		}
		if len(decls.Gen) == 0 {
			continue
		}
		if _, err := a.generators.Emit(graph, node, decls.Gen); err != nil {
			return err
		}
	}
	return nil
}

func buildGraph(reg *registry.Registry) *domain.Graph {
	graph := domain.NewGraph()
	for _, c := range reg.Crates() {
		deps := make(map[string]string, len(c.Deps))
		for name, target := range c.Deps {
			deps[name] = target.Name
		}
		graph.AddNode(domain.GraphNode{Name: c.Name, Dir: c.Path(), Deps: deps})
	}
	return graph
}
