package ports

import "go.trai.ch/crater/internal/core/domain"

// Generator renders build-system glue for one crate of the resolved graph.
//
//go:generate go run go.uber.org/mock/mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks
type Generator interface {
	// Name returns the key selecting this generator in a gen block.
	Name() string

	// Generate renders the file for crate. It returns the file path relative to the crate and its content.
	Generate(graph *domain.Graph, crate domain.GraphNode, settings domain.Document) (string, []byte, error)
}
