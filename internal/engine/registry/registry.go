// Package registry implements the in-memory lock store of a project.
package registry

import (
	"context"
	"errors"
	iofs "io/fs"
	"math/rand/v2"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/core/ports"
	"go.trai.ch/zerr"
)

// Opener opens the registry of a project root.
type Opener struct {
	store    ports.LockfileStore
	loader   ports.DeclarationLoader
	handlers Handlers
}

// NewOpener creates a new Opener.
func NewOpener(store ports.LockfileStore, loader ports.DeclarationLoader, handlers Handlers) *Opener {
	return &Opener{store: store, loader: loader, handlers: handlers}
}

// Handlers returns the backends known to the opener.
func (o *Opener) Handlers() Handlers {
	return o.handlers
}

// Open loads the lockfile of root into a Registry. A missing lockfile yields a bare self crate.
func (o *Opener) Open(root string) (*Registry, error) {
	r := &Registry{
		root:     root,
		store:    o.store,
		loader:   o.loader,
		handlers: o.handlers,
		crates:   make(map[string]*Crate),
		letter:   func() byte { return byte('a' + rand.IntN(26)) }, //nolint:gosec // Name suffixes need no crypto
	}

	lock, err := o.store.Load(root)
	if err != nil {
		return nil, err
	}
	if lock == nil {
		lock = domain.NewLockfile()
	}
	if err := r.load(lock); err != nil {
		return nil, err
	}
	return r, nil
}

// Registry owns every crate of a project, keyed by name.
type Registry struct {
	root     string
	store    ports.LockfileStore
	loader   ports.DeclarationLoader
	handlers Handlers
	crates   map[string]*Crate
	letter   func() byte
}

func (r *Registry) load(lock *domain.Lockfile) error {
	self, err := r.handlers.Get(domain.SelfType)
	if err != nil {
		return err
	}
	r.crates[""] = &Crate{
		Handler: self,
		Remote:  domain.SelfRemote,
		Version: domain.SelfVersion,
		Deps:    make(map[string]*Crate),
		reg:     r,
	}

	for _, name := range lock.Names() {
		if name == "" {
			continue
		}
		entry := lock.Entries[name]
		if err := domain.ValidateCrateName(name); err != nil {
			return err
		}
		handler, err := r.handlers.Get(entry.Type)
		if err != nil || entry.Type == domain.SelfType {
			return zerr.With(zerr.With(domain.ErrUnknownBackend, "type", entry.Type), "crate", name)
		}
		remote, version, err := handler.LoadLock(entry.Fields)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrLockfileParseFailed.Error()), "crate", name)
		}
		r.crates[name] = &Crate{
			Name:    name,
			Handler: handler,
			Remote:  remote,
			Version: version,
			Deps:    make(map[string]*Crate),
			reg:     r,
		}
	}

	for _, name := range lock.Names() {
		c := r.crates[name]
		for dep, target := range lock.Entries[name].Dependencies {
			if err := domain.ValidateDependencyName(dep); err != nil {
				return zerr.With(err, "crate", c.DisplayName())
			}
			t, ok := r.crates[target]
			if !ok {
				return zerr.With(zerr.With(domain.ErrMissingDependency, "crate", c.DisplayName()), "target", target)
			}
			c.Deps[dep] = t
		}
	}
	return nil
}

// Root returns the absolute project root.
func (r *Registry) Root() string {
	return r.root
}

// Path returns the absolute directory of the crate called name.
func (r *Registry) Path(name string) string {
	return filepath.Join(r.root, filepath.FromSlash(name))
}

// Self returns the project's own crate.
func (r *Registry) Self() *Crate {
	return r.crates[""]
}

// Crates returns every crate sorted by name. The self crate comes first.
func (r *Registry) Crates() []*Crate {
	out := make([]*Crate, 0, len(r.crates))
	for _, name := range r.names() {
		out = append(out, r.crates[name])
	}
	return out
}

// Get returns the crate called name.
func (r *Registry) Get(name string) (*Crate, error) {
	c, ok := r.crates[name]
	if !ok {
		return nil, zerr.With(domain.ErrCrateNotFound, "crate", name)
	}
	return c, nil
}

// Locate returns the crate containing p. Relative paths are taken from the current directory.
// The innermost crate wins; the self crate contains everything below the root.
func (r *Registry) Locate(p string) (*Crate, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve path"), "path", p)
	}
	rel, err := filepath.Rel(r.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, zerr.With(zerr.With(domain.ErrPathOutsideRoot, "path", p), "root", r.root)
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		rel = ""
	}

	best := r.Self()
	for _, name := range r.names() {
		if name == "" || len(name) <= len(best.Name) {
			continue
		}
		if rel == name || strings.HasPrefix(rel, name+"/") {
			best = r.crates[name]
		}
	}
	return best, nil
}

// Add registers c.
func (r *Registry) Add(c *Crate) error {
	if err := domain.ValidateCrateName(c.Name); err != nil {
		return err
	}
	if _, ok := r.crates[c.Name]; ok {
		return zerr.With(domain.ErrCrateExists, "crate", c.DisplayName())
	}
	c.reg = r
	if c.Deps == nil {
		c.Deps = make(map[string]*Crate)
	}
	r.crates[c.Name] = c
	return nil
}

// NewCrate creates and registers an unlocked crate bound to remote.
func (r *Registry) NewCrate(name string, handler ports.Handler, remote domain.Remote) (*Crate, error) {
	c := &Crate{Name: name, Handler: handler, Remote: remote}
	if err := r.Add(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Remove unregisters c and deletes every edge pointing at it.
func (r *Registry) Remove(c *Crate) error {
	if c.IsSelf() {
		return domain.ErrRemoveSelf
	}
	if r.crates[c.Name] != c {
		return zerr.With(domain.ErrCrateNotFound, "crate", c.Name)
	}
	delete(r.crates, c.Name)
	for _, other := range r.crates {
		for dep, target := range other.Deps {
			if target == c {
				delete(other.Deps, dep)
			}
		}
	}
	return nil
}

// WithRemote returns the crates bound to remote, sorted by name.
func (r *Registry) WithRemote(remote domain.Remote) []*Crate {
	var out []*Crate
	for _, c := range r.Crates() {
		if c.Remote == remote {
			out = append(out, c)
		}
	}
	return out
}

// GuessDepsDir infers where new crates go from the longest common parent directory of the
// existing ones. A project without dependency crates uses the default directory.
func (r *Registry) GuessDepsDir() (string, error) {
	var common []string
	first := true
	for _, name := range r.names() {
		if name == "" {
			continue
		}
		parent := strings.Split(path.Dir(name), "/")
		if parent[0] == "." {
			parent = nil
		}
		if first {
			common, first = parent, false
			continue
		}
		n := 0
		for n < len(common) && n < len(parent) && common[n] == parent[n] {
			n++
		}
		common = common[:n]
	}

	if first {
		return domain.DefaultDepsDir, nil
	}
	if len(common) == 0 {
		return "", domain.ErrDepsDirGuessFailed
	}
	return strings.Join(common, "/"), nil
}

// AllocateName returns an unused crate name for remote under baseDir.
// Collisions with registered crates or existing paths get a random letter suffix.
func (r *Registry) AllocateName(handler ports.Handler, remote domain.Remote, baseDir string) (string, error) {
	name := path.Join(filepath.ToSlash(baseDir), handler.NameHint(remote))
	if err := domain.ValidateCrateName(name); err != nil {
		return "", err
	}

	for sep := "-"; ; sep = "" {
		taken, err := r.taken(name)
		if err != nil {
			return "", err
		}
		if !taken {
			return name, nil
		}
		name += sep + string(r.letter())
	}
}

func (r *Registry) taken(name string) (bool, error) {
	if _, ok := r.crates[name]; ok {
		return true, nil
	}
	_, err := os.Lstat(r.Path(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, iofs.ErrNotExist) {
		return false, nil
	}
	return false, zerr.With(zerr.Wrap(err, "failed to inspect crate path"), "path", r.Path(name))
}

// DeclarationsAt reads the declaration file of c as recorded in version.
func (r *Registry) DeclarationsAt(ctx context.Context, c *Crate, version domain.Version) (*domain.Declarations, error) {
	raw, err := c.Handler.DependencyDeclarations(ctx, c.Path(), version)
	if err != nil {
		return nil, err
	}
	decls, err := r.loader.Parse(raw)
	if err != nil {
		return nil, zerr.With(err, "crate", c.DisplayName())
	}
	return decls, nil
}

// ParseDependencies decodes every dependency descriptor of decls with its backend.
func (r *Registry) ParseDependencies(decls *domain.Declarations) (map[string]Dependency, error) {
	out := make(map[string]Dependency, len(decls.Dependencies))
	for _, name := range decls.DependencyNames() {
		doc := decls.Dependencies[name]
		typ, err := doc.OptionalString("type", domain.DefaultBackend)
		if err != nil {
			return nil, zerr.With(err, "dependency", name)
		}
		handler, err := r.handlers.Get(typ)
		if err != nil || typ == domain.SelfType {
			return nil, zerr.With(zerr.With(domain.ErrUnknownBackend, "type", typ), "dependency", name)
		}
		remote, spec, err := handler.LoadDepSpec(doc)
		if err != nil {
			return nil, zerr.With(err, "dependency", name)
		}
		out[name] = Dependency{Name: name, Handler: handler, Remote: remote, Spec: spec}
	}
	return out, nil
}

// Save writes the lockfile. A bare registry is only written when a lockfile already exists or force is set.
func (r *Registry) Save(force bool) error {
	if !force && len(r.crates) == 1 && len(r.Self().Deps) == 0 {
		exists, err := r.store.Exists(r.root)
		if err != nil {
			return err
		}
		if !exists {
			return nil
		}
	}

	lock := domain.NewLockfile()
	for _, c := range r.Crates() {
		entry := domain.LockEntry{Fields: domain.Document{}}
		if !c.IsSelf() {
			fields, err := c.Handler.SaveLock(c.Remote, c.Version)
			if err != nil {
				return zerr.With(err, "crate", c.Name)
			}
			entry.Type = c.Handler.Type()
			entry.Fields = fields
		}
		if len(c.Deps) > 0 {
			entry.Dependencies = make(map[string]string, len(c.Deps))
			for dep, target := range c.Deps {
				entry.Dependencies[dep] = target.Name
			}
		}
		lock.Entries[c.Name] = entry
	}
	return r.store.Save(r.root, lock)
}

func (r *Registry) names() []string {
	names := make([]string, 0, len(r.crates))
	for name := range r.crates {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
