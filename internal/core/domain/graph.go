package domain

import (
	"iter"
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// GraphNode is one crate in the resolved dependency graph.
type GraphNode struct {
	// Name is the crate name; empty for the self crate.
	Name string
	// Dir is the absolute directory of the crate checkout.
	Dir string
	// Deps maps local dependency names to crate names.
	Deps map[string]string
}

// Graph is the resolved crate graph handed to generators.
type Graph struct {
	nodes map[string]GraphNode
	order []string
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]GraphNode),
	}
}

// AddNode adds a crate to the graph, replacing any node with the same name.
func (g *Graph) AddNode(n GraphNode) {
	g.nodes[n.Name] = n
	g.order = nil
}

// Node returns the crate with the given name.
func (g *Graph) Node(name string) (GraphNode, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Validate checks for cycles using a depth-first topological sort.
// On success, Walk yields dependencies before the crates that reference them.
func (g *Graph) Validate() error {
	g.order = make([]string, 0, len(g.nodes))
	visited := make(map[string]int) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(u string) error
	visit = func(u string) error {
		visited[u] = 1
		path = append(path, u)

		node, exists := g.nodes[u]
		if !exists {
			return zerr.With(ErrMissingDependency, "crate", u)
		}

		for _, depName := range slices.Sorted(maps.Keys(node.Deps)) {
			dep := node.Deps[depName]
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.order = append(g.order, u)
		return nil
	}

	for _, name := range slices.Sorted(maps.Keys(g.nodes)) {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

func (g *Graph) buildCycleError(path []string, dep string) error {
	cyclePath := ""
	startIdx := slices.Index(path, dep)
	for _, node := range path[startIdx:] {
		cyclePath += displayName(node) + " -> "
	}
	cyclePath += displayName(dep)
	return zerr.With(ErrCycleDetected, "cycle", cyclePath)
}

// Walk returns an iterator over every crate in topological order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[GraphNode] {
	return func(yield func(GraphNode) bool) {
		for _, name := range g.order {
			if !yield(g.nodes[name]) {
				return
			}
		}
	}
}

// Reachable returns the crates transitively referenced by name, in topological order,
// excluding name itself. It assumes Validate() has been called and returned nil.
func (g *Graph) Reachable(name string) []GraphNode {
	seen := make(map[string]bool)
	var mark func(string)
	mark = func(n string) {
		for _, dep := range g.nodes[n].Deps {
			if !seen[dep] {
				seen[dep] = true
				mark(dep)
			}
		}
	}
	mark(name)

	out := make([]GraphNode, 0, len(seen))
	for n := range g.Walk() {
		if n.Name != name && seen[n.Name] {
			out = append(out, n)
		}
	}
	return out
}

func displayName(name string) string {
	if name == "" {
		return "<self>"
	}
	return name
}
