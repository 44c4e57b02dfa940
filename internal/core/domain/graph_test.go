package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crater/internal/core/domain"
)

func names(nodes []domain.GraphNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestGraph_WalkOrdersDependenciesFirst(t *testing.T) {
	g := domain.NewGraph()
	g.AddNode(domain.GraphNode{Name: "", Deps: map[string]string{"a": "_deps/a", "b": "_deps/b"}})
	g.AddNode(domain.GraphNode{Name: "_deps/a", Deps: map[string]string{"c": "_deps/c"}})
	g.AddNode(domain.GraphNode{Name: "_deps/b", Deps: map[string]string{"c": "_deps/c"}})
	g.AddNode(domain.GraphNode{Name: "_deps/c"})

	require.NoError(t, g.Validate())

	var order []string
	for n := range g.Walk() {
		order = append(order, n.Name)
	}
	assert.Equal(t, []string{"_deps/c", "_deps/a", "_deps/b", ""}, order)
}

func TestGraph_Reachable(t *testing.T) {
	g := domain.NewGraph()
	g.AddNode(domain.GraphNode{Name: "", Deps: map[string]string{"a": "_deps/a"}})
	g.AddNode(domain.GraphNode{Name: "_deps/a", Deps: map[string]string{"c": "_deps/c"}})
	g.AddNode(domain.GraphNode{Name: "_deps/b"})
	g.AddNode(domain.GraphNode{Name: "_deps/c"})
	require.NoError(t, g.Validate())

	assert.Equal(t, []string{"_deps/c", "_deps/a"}, names(g.Reachable("")))
	assert.Equal(t, []string{"_deps/c"}, names(g.Reachable("_deps/a")))
	assert.Empty(t, g.Reachable("_deps/b"))
}

func TestGraph_CycleDetected(t *testing.T) {
	g := domain.NewGraph()
	g.AddNode(domain.GraphNode{Name: "", Deps: map[string]string{"a": "_deps/a"}})
	g.AddNode(domain.GraphNode{Name: "_deps/a", Deps: map[string]string{"b": "_deps/b"}})
	g.AddNode(domain.GraphNode{Name: "_deps/b", Deps: map[string]string{"a": "_deps/a"}})

	err := g.Validate()
	require.ErrorContains(t, err, domain.ErrCycleDetected.Error())
}

func TestGraph_MissingDependency(t *testing.T) {
	g := domain.NewGraph()
	g.AddNode(domain.GraphNode{Name: "", Deps: map[string]string{"a": "_deps/a"}})

	err := g.Validate()
	require.ErrorContains(t, err, domain.ErrMissingDependency.Error())
}
