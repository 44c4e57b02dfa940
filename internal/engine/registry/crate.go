package registry

import (
	"context"
	"maps"
	"slices"

	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/core/ports"
)

// Crate is one entry of the lock store: a checkout location with its backend,
// its resolved remote and version, and its resolved dependency edges.
type Crate struct {
	// Name is the crate path relative to the project root; empty for the self crate.
	Name    string
	Handler ports.Handler
	Remote  domain.Remote
	Version domain.Version
	// Deps maps local dependency names to their target crates.
	Deps map[string]*Crate

	reg   *Registry
	decls *domain.Declarations
}

// Dependency is a parsed entry of a declaration file.
type Dependency struct {
	Name    string
	Handler ports.Handler
	Remote  domain.Remote
	Spec    domain.DepSpec
}

// IsSelf reports whether c is the project's own crate.
func (c *Crate) IsSelf() bool {
	return c.Name == ""
}

// DisplayName returns the name used in user-facing output.
func (c *Crate) DisplayName() string {
	if c.IsSelf() {
		return "<self>"
	}
	return c.Name
}

// Path returns the absolute checkout directory of the crate.
func (c *Crate) Path() string {
	return c.reg.Path(c.Name)
}

// DepNames returns the names of the resolved edges in sorted order.
func (c *Crate) DepNames() []string {
	return slices.Sorted(maps.Keys(c.Deps))
}

// Declarations returns the declaration file of the crate at its current version.
// The result is cached until ResetDeclarations is called.
func (c *Crate) Declarations(ctx context.Context) (*domain.Declarations, error) {
	if c.decls != nil {
		return c.decls, nil
	}
	if c.Version.IsZero() {
		return c.reg.loader.Parse(domain.RawDeclarations{})
	}
	decls, err := c.reg.DeclarationsAt(ctx, c, c.Version)
	if err != nil {
		return nil, err
	}
	c.decls = decls
	return decls, nil
}

// DeclaredDeps returns the dependencies the crate declares at its current version.
func (c *Crate) DeclaredDeps(ctx context.Context) (map[string]Dependency, error) {
	decls, err := c.Declarations(ctx)
	if err != nil {
		return nil, err
	}
	return c.reg.ParseDependencies(decls)
}

// ResetDeclarations drops the cached declarations, e.g. after the crate moved to another version.
func (c *Crate) ResetDeclarations() {
	c.decls = nil
}

// Status reports the on-disk state of the crate.
func (c *Crate) Status(ctx context.Context) (domain.CrateStatus, error) {
	return c.Handler.Status(ctx, c.Path())
}
