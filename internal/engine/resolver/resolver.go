// Package resolver implements the backtracking upgrade of a project's crates.
package resolver

import (
	"context"
	"fmt"

	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/core/ports"
	"go.trai.ch/crater/internal/engine/registry"
	"go.trai.ch/zerr"
)

// Options configures an upgrade.
type Options struct {
	// DepsDir is the directory new crates are created in, relative to the root.
	// When empty it is inferred from the existing crates.
	DepsDir string
}

// Resolver assigns a version to every crate reachable from a starting point
// such that every dependency spec converging on a crate is satisfied.
type Resolver struct {
	logger ports.Logger
}

// New creates a new Resolver.
func New(logger ports.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Upgrade resolves the whole graph, starting from the self crate.
func (r *Resolver) Upgrade(ctx context.Context, reg *registry.Registry, opts Options) error {
	run := r.newRun(ctx, reg, opts)
	st := newState(reg)
	self := reg.Self()
	st.unlocked = []pending{{crate: self, spec: self.Handler.EmptyDepSpec()}}
	return run.execute(st)
}

// UpgradeDependency resolves the graph reachable from a single edge of crate.
func (r *Resolver) UpgradeDependency(ctx context.Context, reg *registry.Registry, crate *registry.Crate, depName string, opts Options) error {
	run := r.newRun(ctx, reg, opts)
	st := newState(reg)

	deps, err := crate.DeclaredDeps(ctx)
	if err != nil {
		return err
	}

	var tgt *registry.Crate
	var spec domain.DepSpec
	if dep, ok := deps[depName]; ok {
		tgt, err = run.associate(st, crate, dep)
		if err != nil {
			return err
		}
		if tgt == nil {
			return nil
		}
		spec = dep.Spec
	} else if existing, ok := crate.Deps[depName]; ok {
		tgt, spec = existing, existing.Handler.EmptyDepSpec()
	} else {
		return zerr.With(zerr.With(domain.ErrDependencyNotFound, "crate", crate.DisplayName()), "dependency", depName)
	}

	st.targets[edge{crate, depName}] = tgt
	st.unlocked = []pending{{crate: tgt, spec: spec}}
	return run.execute(st)
}

// Resolve locks crate to a version satisfying spec, together with everything it reaches.
func (r *Resolver) Resolve(ctx context.Context, reg *registry.Registry, crate *registry.Crate, spec domain.DepSpec, opts Options) error {
	run := r.newRun(ctx, reg, opts)
	st := newState(reg)
	st.unlocked = []pending{{crate: crate, spec: spec}}
	return run.execute(st)
}

func (r *Resolver) newRun(ctx context.Context, reg *registry.Registry, opts Options) *run {
	return &run{
		ctx:     ctx,
		reg:     reg,
		logger:  r.logger,
		depsDir: opts.DepsDir,
		fetched: make(map[*registry.Crate]bool),
		created: make(map[domain.Remote]*registry.Crate),
	}
}

type rejection struct {
	crate *registry.Crate
	spec  domain.DepSpec
	depth int
}

// run holds what survives backtracking: fetches and crates already created on disk and in the lockfile.
type run struct {
	ctx     context.Context
	reg     *registry.Registry
	logger  ports.Logger
	depsDir string
	fetched map[*registry.Crate]bool
	created map[domain.Remote]*registry.Crate
	deepest *rejection
}

func (r *run) execute(st *state) error {
	sol, err := r.solve(st, 0)
	if err != nil {
		return err
	}
	if sol == nil {
		return r.conflict()
	}
	return r.apply(sol)
}

// solve picks the oldest pending crate and tries its candidate versions in handler order.
// It returns nil without error when every candidate was rejected.
func (r *run) solve(st *state, depth int) (*state, error) {
	if len(st.unlocked) == 0 {
		return st, nil
	}
	next := st.unlocked[0]
	c := next.crate

	if err := r.fetch(c); err != nil {
		return nil, err
	}

	tried := false
	for v, err := range c.Handler.Versions(r.ctx, c.Remote, c.Path(), next.spec) {
		if err != nil {
			return nil, err
		}
		tried = true

		cand := st.clone()
		cand.unlocked = cand.unlocked[1:]
		cand.locked[c] = v

		ok, err := r.expand(cand, c, v, depth)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		sol, err := r.solve(cand, depth+1)
		if err != nil || sol != nil {
			return sol, err
		}
	}

	if !tried {
		r.reject(c, next.spec, depth)
	}
	return nil, nil
}

// expand binds every dependency c declares at v and merges its spec into the target.
// It reports false when a target cannot satisfy the spec.
func (r *run) expand(st *state, c *registry.Crate, v domain.Version, depth int) (bool, error) {
	decls, err := r.reg.DeclarationsAt(r.ctx, c, v)
	if err != nil {
		return false, err
	}
	deps, err := r.reg.ParseDependencies(decls)
	if err != nil {
		return false, zerr.With(err, "crate", c.DisplayName())
	}

	for _, name := range decls.DependencyNames() {
		dep := deps[name]
		tgt, err := r.associate(st, c, dep)
		if err != nil {
			return false, err
		}
		if tgt == nil {
			continue
		}

		if locked, ok := st.locked[tgt]; ok {
			compatible, err := tgt.Handler.IsCompatible(r.ctx, tgt.Path(), locked, dep.Spec)
			if err != nil {
				return false, err
			}
			if !compatible {
				r.reject(tgt, dep.Spec, depth+1)
				return false, nil
			}
		} else if i := st.pendingIndex(tgt); i >= 0 {
			joined, ok := st.unlocked[i].spec.Join(dep.Spec)
			if !ok {
				r.reject(tgt, dep.Spec, depth+1)
				return false, nil
			}
			st.unlocked[i].spec = joined
		} else {
			st.unlocked = append(st.unlocked, pending{crate: tgt, spec: dep.Spec})
		}

		st.targets[edge{c, name}] = tgt
	}
	return true, nil
}

// associate picks the crate a dependency of c is bound to. It returns nil when the
// remote is ambiguous, after logging a warning.
func (r *run) associate(st *state, c *registry.Crate, dep registry.Dependency) (*registry.Crate, error) {
	if existing, ok := c.Deps[dep.Name]; ok && existing.Remote == dep.Remote {
		return existing, nil
	}

	switch crates := st.remotes[dep.Remote]; len(crates) {
	case 0:
	case 1:
		return crates[0], nil
	default:
		r.logger.Warn(fmt.Sprintf("%s matches %d crates for %s, skipping",
			domain.EdgeRef{Crate: c.Name, Dependency: dep.Name}, len(crates), dep.Remote))
		return nil, nil
	}

	tgt, ok := r.created[dep.Remote]
	if !ok {
		var err error
		if tgt, err = r.create(dep); err != nil {
			return nil, err
		}
	}
	st.remotes[dep.Remote] = append(st.remotes[dep.Remote], tgt)
	return tgt, nil
}

// create allocates and persists a new crate for dep.
func (r *run) create(dep registry.Dependency) (*registry.Crate, error) {
	if r.depsDir == "" {
		dir, err := r.reg.GuessDepsDir()
		if err != nil {
			return nil, zerr.With(err, "remote", dep.Remote.String())
		}
		r.depsDir = dir
	}

	name, err := r.reg.AllocateName(dep.Handler, dep.Remote, r.depsDir)
	if err != nil {
		return nil, err
	}
	tgt, err := r.reg.NewCrate(name, dep.Handler, dep.Remote)
	if err != nil {
		return nil, err
	}
	r.created[dep.Remote] = tgt
	r.logger.Info(fmt.Sprintf("adding %s as %s", dep.Remote.Location, name))

	if err := r.reg.Save(false); err != nil {
		return nil, err
	}
	return tgt, nil
}

func (r *run) fetch(c *registry.Crate) error {
	if r.fetched[c] {
		return nil
	}
	if err := c.Handler.Fetch(r.ctx, c.Remote, c.Path()); err != nil {
		return err
	}
	r.fetched[c] = true
	return nil
}

func (r *run) reject(c *registry.Crate, spec domain.DepSpec, depth int) {
	if r.deepest == nil || depth > r.deepest.depth {
		r.deepest = &rejection{crate: c, spec: spec, depth: depth}
	}
}

func (r *run) conflict() error {
	err := domain.ErrNoCompatibleVersion
	if r.deepest == nil {
		return err
	}
	err = zerr.With(err, "crate", r.deepest.crate.DisplayName())
	err = zerr.With(err, "remote", r.deepest.crate.Remote.String())
	return zerr.With(err, "spec", r.deepest.spec.String())
}

// apply binds the solution's edges, checks out every resolved crate and persists the registry.
// Crates created during the search that the solution doesn't reach are dropped again.
func (r *run) apply(sol *state) error {
	for e, tgt := range sol.targets {
		e.crate.Deps[e.dep] = tgt
	}

	for _, c := range r.created {
		if _, ok := sol.locked[c]; !ok {
			if err := r.reg.Remove(c); err != nil {
				return err
			}
		}
	}

	for _, c := range sol.lockedCrates() {
		v := sol.locked[c]
		if c.Version != v && !c.IsSelf() {
			r.logger.Info(fmt.Sprintf("%s: %s -> %s", c.Name, c.Version.Short(), v.Short()))
		}
		c.Version = v
		if err := c.Handler.Checkout(r.ctx, c.Remote, v, c.Path()); err != nil {
			return err
		}
		c.ResetDeclarations()
	}

	return r.reg.Save(true)
}
