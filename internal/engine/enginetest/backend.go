// Package enginetest provides an in-memory crate backend for engine tests.
package enginetest

import (
	"context"
	"iter"
	"path"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/crater/internal/adapters/git"
	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Dep describes one declared dependency of a commit.
type Dep struct {
	URL      string
	Branches []string
}

// Repo is an in-memory repository. Branch histories list commits newest first.
type Repo struct {
	URL      string
	Default  string
	branches map[string][]string
}

// Backend implements ports.Handler over in-memory repositories.
// It registers as the git backend and uses git.BranchSpec, so descriptors and lock
// entries look exactly like git ones.
type Backend struct {
	mu        sync.Mutex
	repos     map[string]*Repo
	decls     map[string][]byte
	owner     map[string]*Repo
	checkouts map[string]domain.Version
	dirty     map[string]bool

	// Fetches counts Fetch calls per path.
	Fetches map[string]int
	// Checkouts counts checkouts that changed a path.
	Checkouts map[string]int
}

// NewBackend returns an empty backend.
func NewBackend() *Backend {
	return &Backend{
		repos:     make(map[string]*Repo),
		decls:     make(map[string][]byte),
		owner:     make(map[string]*Repo),
		checkouts: make(map[string]domain.Version),
		dirty:     make(map[string]bool),
		Fetches:   make(map[string]int),
		Checkouts: make(map[string]int),
	}
}

var _ ports.Handler = (*Backend)(nil)

// Repo returns the repository at url, creating it with default branch main.
func (b *Backend) Repo(url string) *Repo {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.repos[url]
	if !ok {
		r = &Repo{URL: url, Default: "main", branches: make(map[string][]string)}
		b.repos[url] = r
	}
	return r
}

// Branch sets the history of branch, newest commit first. Commit ids must be unique across repos.
func (b *Backend) Branch(url, branch string, commits ...string) *Backend {
	r := b.Repo(url)
	b.mu.Lock()
	defer b.mu.Unlock()
	r.branches[branch] = commits
	for _, c := range commits {
		b.owner[c] = r
	}
	return b
}

// Declare sets the dependencies declared by commit.
func (b *Backend) Declare(commit string, deps map[string]Dep) *Backend {
	data := MarshalDeps(deps)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.decls[commit] = data
	return b
}

// MarshalDeps renders deps as a DEPS file.
func MarshalDeps(deps map[string]Dep) []byte {
	entries := make(map[string]map[string]any, len(deps))
	for name, d := range deps {
		entry := map[string]any{"url": d.URL}
		if len(d.Branches) > 0 {
			entry["branches"] = d.Branches
		}
		entries[name] = entry
	}
	data, err := yaml.Marshal(map[string]any{"dependencies": entries})
	if err != nil {
		panic(err)
	}
	return data
}

// SetDirty marks the checkout at path as modified.
func (b *Backend) SetDirty(p string, dirty bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dirty[p] = dirty
}

// CheckedOut returns the version checked out at path.
func (b *Backend) CheckedOut(p string) (domain.Version, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.checkouts[p]
	return v, ok
}

// Type returns the git discriminator.
func (b *Backend) Type() string { return git.Type }

// LoadLock decodes url and commit fields.
func (b *Backend) LoadLock(doc domain.Document) (domain.Remote, domain.Version, error) {
	url, err := doc.String("url")
	if err != nil {
		return domain.Remote{}, domain.Version{}, err
	}
	commit, err := doc.OptionalString("commit", "")
	if err != nil {
		return domain.Remote{}, domain.Version{}, err
	}
	return remote(url), version(commit), nil
}

// SaveLock encodes url and commit fields.
func (b *Backend) SaveLock(r domain.Remote, v domain.Version) (domain.Document, error) {
	doc := domain.Document{"url": r.Location}
	if !v.IsZero() {
		doc["commit"] = v.ID
	}
	return doc, nil
}

// LoadDepSpec decodes url and branches fields.
func (b *Backend) LoadDepSpec(doc domain.Document) (domain.Remote, domain.DepSpec, error) {
	url, err := doc.String("url")
	if err != nil {
		return domain.Remote{}, nil, err
	}
	branches, err := doc.Strings("branches")
	if err != nil {
		return domain.Remote{}, nil, err
	}
	more, err := doc.Strings("branch")
	if err != nil {
		return domain.Remote{}, nil, err
	}
	return remote(url), git.NewBranchSpec(append(branches, more...)...), nil
}

// EmptyDepSpec returns the default branch spec.
func (b *Backend) EmptyDepSpec() domain.DepSpec { return git.BranchSpec{} }

// Checkout records version at path.
func (b *Backend) Checkout(_ context.Context, r domain.Remote, v domain.Version, p string) error {
	if v.IsZero() {
		return zerr.With(domain.ErrUnlockedCrate, "path", p)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.repos[r.Location]; !ok {
		return zerr.With(domain.ErrCheckoutFailed, "url", r.Location)
	}
	if b.checkouts[p] == v {
		return nil
	}
	b.checkouts[p] = v
	b.Checkouts[p]++
	return nil
}

// Fetch counts the call.
func (b *Backend) Fetch(_ context.Context, r domain.Remote, p string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.repos[r.Location]; !ok {
		return zerr.With(domain.ErrFetchFailed, "url", r.Location)
	}
	b.Fetches[p]++
	return nil
}

// Versions yields the commits of the spec's branches, branch by branch in sorted order.
func (b *Backend) Versions(_ context.Context, r domain.Remote, _ string, spec domain.DepSpec) iter.Seq2[domain.Version, error] {
	return func(yield func(domain.Version, error) bool) {
		b.mu.Lock()
		repo, ok := b.repos[r.Location]
		var commits []string
		if ok {
			commits = repo.commits(spec.(git.BranchSpec))
		}
		b.mu.Unlock()

		if !ok {
			yield(domain.Version{}, zerr.With(domain.ErrFetchFailed, "url", r.Location))
			return
		}
		for _, c := range commits {
			if !yield(version(c), nil) {
				return
			}
		}
	}
}

// DependencyDeclarations returns the DEPS content declared for the commit.
func (b *Backend) DependencyDeclarations(_ context.Context, _ string, v domain.Version) (domain.RawDeclarations, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.decls[v.ID]
	if !ok {
		return domain.RawDeclarations{}, nil
	}
	return domain.RawDeclarations{FileName: domain.DepsFileName, Data: data}, nil
}

// Status reports the recorded checkout at path.
func (b *Backend) Status(_ context.Context, p string) (domain.CrateStatus, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.checkouts[p]
	if !ok {
		return domain.CrateStatus{}, nil
	}
	return domain.CrateStatus{Version: v, Present: true, Dirty: b.dirty[p]}, nil
}

// IsCompatible reports whether the commit is on one of the spec's branches.
func (b *Backend) IsCompatible(_ context.Context, _ string, v domain.Version, spec domain.DepSpec) (bool, error) {
	bs, ok := spec.(git.BranchSpec)
	if !ok {
		return false, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	repo, ok := b.owner[v.ID]
	if !ok {
		return false, nil
	}
	return slices.Contains(repo.commits(bs), v.ID), nil
}

// NameHint returns the last URL segment.
func (b *Backend) NameHint(r domain.Remote) string {
	return path.Base(strings.TrimSuffix(r.Location, ".git"))
}

func (r *Repo) commits(spec git.BranchSpec) []string {
	branches := spec.Branches()
	if len(branches) == 0 {
		branches = []string{r.Default}
	}
	var out []string
	for _, br := range branches {
		for _, c := range r.branches[br] {
			if !slices.Contains(out, c) {
				out = append(out, c)
			}
		}
	}
	return out
}

func remote(url string) domain.Remote {
	return domain.Remote{Type: git.Type, Location: url}
}

func version(commit string) domain.Version {
	if commit == "" {
		return domain.Version{}
	}
	return domain.Version{Type: git.Type, ID: commit}
}
