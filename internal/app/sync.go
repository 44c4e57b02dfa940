package app

import (
	"context"
	"fmt"
	"maps"
	"runtime"
	"slices"

	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/engine/registry"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Checkout moves every crate to its locked version and regenerates build glue.
// Crates are checked out in name order, so enclosing crates come before nested ones.
func (a *App) Checkout(ctx context.Context, dir string) error {
	reg, err := a.open(dir)
	if err != nil {
		return err
	}

	crates := dependencies(reg)
	for _, c := range crates {
		if c.Version.IsZero() {
			return zerr.With(domain.ErrUnlockedCrate, "crate", c.Name)
		}
	}
	for _, c := range crates {
		if err := c.Handler.Checkout(ctx, c.Remote, c.Version, c.Path()); err != nil {
			return zerr.With(err, "crate", c.Name)
		}
		c.ResetDeclarations()
	}

	return a.generate(reg)
}

// CommitOptions configuration for the Commit method.
type CommitOptions struct {
	// Force records crates with uncommitted changes instead of failing.
	Force bool
}

// Commit records the versions currently checked out on disk in the lockfile.
func (a *App) Commit(ctx context.Context, dir string, opts CommitOptions) error {
	reg, err := a.open(dir)
	if err != nil {
		return err
	}

	crates := dependencies(reg)
	statuses := make([]domain.CrateStatus, len(crates))
	for i, c := range crates {
		st, err := c.Status(ctx)
		if err != nil {
			return zerr.With(err, "crate", c.Name)
		}
		if !st.Present {
			return zerr.With(domain.ErrCrateMissing, "crate", c.Name)
		}
		if st.Dirty && !opts.Force {
			return zerr.With(domain.ErrDirtyCrate, "crate", c.Name)
		}
		statuses[i] = st
	}

	for i, c := range crates {
		st := statuses[i]
		if st.Dirty {
			a.logger.Warn(c.Name + " has uncommitted changes, recording its HEAD")
		}
		if st.Version != c.Version {
			a.logger.Info(fmt.Sprintf("%s: %s -> %s", c.Name, c.Version.Short(), st.Version.Short()))
			c.Version = st.Version
		}
	}
	return reg.Save(true)
}

// Fetch refreshes the remote state of every crate in parallel.
func (a *App) Fetch(ctx context.Context, dir string) error {
	reg, err := a.open(dir)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, c := range dependencies(reg) {
		g.Go(func() error {
			if err := c.Handler.Fetch(ctx, c.Remote, c.Path()); err != nil {
				return zerr.With(err, "crate", c.Name)
			}
			return nil
		})
	}
	return g.Wait()
}

// SyncState classifies a crate checkout against the lockfile.
type SyncState int

const (
	// StateClean means the checkout is at the locked version without local changes.
	StateClean SyncState = iota
	// StateModified means the checkout has uncommitted changes.
	StateModified
	// StateMoved means the checkout is at another version than the locked one.
	StateMoved
	// StateMissing means there is no checkout on disk.
	StateMissing
	// StateUnlocked means the crate has no locked version yet.
	StateUnlocked
)

func (s SyncState) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateModified:
		return "modified"
	case StateMoved:
		return "moved"
	case StateMissing:
		return "missing"
	case StateUnlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// CrateState is one line of the status report.
type CrateState struct {
	Name    string
	Remote  domain.Remote
	Locked  domain.Version
	Current domain.CrateStatus
	State   SyncState
	// Unbound lists declared dependencies without a resolved edge.
	Unbound []string
}

// Status inspects every crate in parallel and reports how it relates to the lockfile.
func (a *App) Status(ctx context.Context, dir string) ([]CrateState, error) {
	reg, err := a.open(dir)
	if err != nil {
		return nil, err
	}

	crates := reg.Crates()
	states := make([]CrateState, len(crates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, c := range crates {
		g.Go(func() error {
			st, err := inspect(ctx, c)
			if err != nil {
				return zerr.With(err, "crate", c.DisplayName())
			}
			states[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return states, nil
}

func inspect(ctx context.Context, c *registry.Crate) (CrateState, error) {
	out := CrateState{Name: c.Name, Remote: c.Remote, Locked: c.Version}

	if !c.IsSelf() {
		st, err := c.Status(ctx)
		if err != nil {
			return out, err
		}
		out.Current = st
		switch {
		case c.Version.IsZero():
			out.State = StateUnlocked
		case !st.Present:
			out.State = StateMissing
		case st.Dirty:
			out.State = StateModified
		case st.Version != c.Version:
			out.State = StateMoved
		}
		if out.State == StateUnlocked || out.State == StateMissing {
			return out, nil
		}
	}

	declared, err := c.DeclaredDeps(ctx)
	if err != nil {
		return out, err
	}
	for _, name := range slices.Sorted(maps.Keys(declared)) {
		if _, ok := c.Deps[name]; !ok {
			out.Unbound = append(out.Unbound, name)
		}
	}
	return out, nil
}

// dependencies returns every crate except self, sorted by name.
func dependencies(reg *registry.Registry) []*registry.Crate {
	return reg.Crates()[1:]
}
