package gen

import (
	"maps"
	"path/filepath"
	"slices"

	"go.trai.ch/crater/internal/adapters/fs"
	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/core/ports"
	"go.trai.ch/zerr"
)

// Set is the collection of generators selectable from a gen block.
type Set struct {
	logger     ports.Logger
	generators map[string]ports.Generator
}

// NewSet creates a Set from generators.
func NewSet(logger ports.Logger, generators ...ports.Generator) *Set {
	s := &Set{
		logger:     logger,
		generators: make(map[string]ports.Generator, len(generators)),
	}
	for _, g := range generators {
		s.generators[g.Name()] = g
	}
	return s
}

// NewDefaultSet creates a Set with every built-in generator.
func NewDefaultSet(logger ports.Logger) *Set {
	return NewSet(logger, NewMSBuild(), NewMakefile(), NewCMake(), NewQMake())
}

// Names returns the registered generator names in sorted order.
func (s *Set) Names() []string {
	return slices.Sorted(maps.Keys(s.generators))
}

// Get returns the generator registered under name.
func (s *Set) Get(name string) (ports.Generator, error) {
	g, ok := s.generators[name]
	if !ok {
		return nil, zerr.With(zerr.With(domain.ErrUnknownGenerator, "generator", name), "known", s.Names())
	}
	return g, nil
}

// Emit runs every generator configured for crate and writes the results into the crate directory.
// Files whose content is unchanged are left alone. It returns the paths that were written.
func (s *Set) Emit(graph *domain.Graph, crate domain.GraphNode, config map[string]domain.Document) ([]string, error) {
	var written []string
	for _, name := range slices.Sorted(maps.Keys(config)) {
		g, err := s.Get(name)
		if err != nil {
			return written, zerr.With(err, "crate", displayName(crate.Name))
		}

		rel, data, err := g.Generate(graph, crate, config[name])
		if err != nil {
			return written, zerr.With(err, "crate", displayName(crate.Name))
		}

		path := filepath.Join(crate.Dir, filepath.FromSlash(rel))
		changed, err := fs.WriteFileIfChanged(path, data)
		if err != nil {
			return written, zerr.Wrap(err, domain.ErrGenerateFailed.Error())
		}
		if changed {
			s.logger.Info("generated " + s.display(graph, path))
			written = append(written, path)
		}
	}
	return written, nil
}

func (s *Set) display(graph *domain.Graph, path string) string {
	self, ok := graph.Node("")
	if !ok {
		return path
	}
	rel, err := filepath.Rel(self.Dir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func displayName(name string) string {
	if name == "" {
		return "<self>"
	}
	return name
}
