package app

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/engine/registry"
	"go.trai.ch/crater/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// AddOptions configuration for the Add method.
type AddOptions struct {
	URL      string
	Type     string
	Branches []string
	// Name is the local dependency name; derived from the URL when empty.
	Name string
	// Crate is the crate receiving the edge; empty for the project itself.
	Crate   string
	DepsDir string
}

// Add binds a new dependency edge that is not necessarily declared in a DEPS file,
// locks its target and checks it out. Upgrades keep such edges.
func (a *App) Add(ctx context.Context, dir string, opts AddOptions) error {
	reg, err := a.open(dir)
	if err != nil {
		return err
	}

	owner, err := reg.Get(opts.Crate)
	if err != nil {
		return err
	}

	typ := opts.Type
	if typ == "" {
		typ = domain.DefaultBackend
	}
	handler, err := a.opener.Handlers().Get(typ)
	if err != nil || typ == domain.SelfType {
		return zerr.With(domain.ErrUnknownBackend, "type", typ)
	}

	doc := domain.Document{"url": opts.URL}
	if len(opts.Branches) > 0 {
		branches := make([]any, 0, len(opts.Branches))
		for _, b := range opts.Branches {
			branches = append(branches, b)
		}
		doc["branches"] = branches
	}
	remote, spec, err := handler.LoadDepSpec(doc)
	if err != nil {
		return err
	}

	name := opts.Name
	if name == "" {
		name = handler.NameHint(remote)
	}
	if err := domain.ValidateDependencyName(name); err != nil {
		return err
	}
	if _, ok := owner.Deps[name]; ok {
		return zerr.With(zerr.With(domain.ErrDependencyExists, "crate", owner.DisplayName()), "dependency", name)
	}

	var target *registry.Crate
	switch crates := reg.WithRemote(remote); len(crates) {
	case 0:
		depsDir := opts.DepsDir
		if depsDir == "" {
			if depsDir, err = reg.GuessDepsDir(); err != nil {
				return err
			}
		}
		crateName, err := reg.AllocateName(handler, remote, depsDir)
		if err != nil {
			return err
		}
		if target, err = reg.NewCrate(crateName, handler, remote); err != nil {
			return err
		}
		a.logger.Info("adding " + remote.Location + " as " + crateName)
	case 1:
		target = crates[0]
	default:
		return zerr.With(domain.ErrAmbiguousRemote, "remote", remote.String())
	}
	owner.Deps[name] = target

	if err := a.resolver.Resolve(ctx, reg, target, spec, resolver.Options{DepsDir: opts.DepsDir}); err != nil {
		return err
	}
	return a.generate(reg)
}

// RemoveOptions configuration for the Remove method.
type RemoveOptions struct {
	// Path is the crate directory, relative to the current directory.
	Path string
	// Purge also deletes the checkout from disk.
	Purge bool
}

// Remove drops a crate and every edge pointing at it from the lockfile.
func (a *App) Remove(_ context.Context, dir string, opts RemoveOptions) error {
	reg, err := a.open(dir)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(opts.Path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve path"), "path", opts.Path)
	}
	c, err := reg.Locate(abs)
	if err != nil {
		return err
	}
	if c.Path() != abs {
		return zerr.With(domain.ErrCrateNotFound, "path", opts.Path)
	}

	if err := reg.Remove(c); err != nil {
		return err
	}
	if opts.Purge {
		if err := os.RemoveAll(c.Path()); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to delete checkout"), "path", c.Path())
		}
	}
	if err := reg.Save(true); err != nil {
		return err
	}
	a.logger.Info("removed " + c.Name)
	return nil
}

// ListEntry describes one crate and its resolved edges.
type ListEntry struct {
	Name    string
	Remote  domain.Remote
	Version domain.Version
	// Deps maps dependency names to target crate names.
	Deps map[string]string
}

// List returns every crate of the lockfile with its edges, self first.
func (a *App) List(_ context.Context, dir string) ([]ListEntry, error) {
	reg, err := a.open(dir)
	if err != nil {
		return nil, err
	}

	crates := reg.Crates()
	entries := make([]ListEntry, 0, len(crates))
	for _, c := range crates {
		deps := make(map[string]string, len(c.Deps))
		for name, target := range c.Deps {
			deps[name] = target.Name
		}
		entries = append(entries, ListEntry{
			Name:    c.Name,
			Remote:  c.Remote,
			Version: c.Version,
			Deps:    deps,
		})
	}
	return entries, nil
}
