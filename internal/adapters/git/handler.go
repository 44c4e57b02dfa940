// Package git implements the crate backend for git repositories by driving the git binary.
package git

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/crater/internal/adapters/shell"
	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/core/ports"
	"go.trai.ch/zerr"
)

// Type is the backend discriminator of git crates.
const Type = "git"

const (
	fieldURL      = "url"
	fieldCommit   = "commit"
	fieldBranch   = "branch"
	fieldBranches = "branches"
)

// DefaultEnv scrubs inherited GIT_* variables so repository discovery of the
// surrounding project (e.g. inside hooks) doesn't leak into crate checkouts.
func DefaultEnv() domain.EnvPolicy {
	return domain.EnvPolicy{
		ScrubPrefixes: []string{"GIT_"},
		Keep:          []string{"GIT_SSH", "GIT_SSH_COMMAND"},
	}
}

// Handler implements ports.Handler for git remotes.
type Handler struct {
	runner    ports.CommandRunner
	logger    ports.Logger
	telemetry ports.Telemetry
	env       domain.EnvPolicy
}

// NewHandler creates a new git Handler.
func NewHandler(runner ports.CommandRunner, logger ports.Logger, telemetry ports.Telemetry) *Handler {
	return &Handler{
		runner:    runner,
		logger:    logger,
		telemetry: telemetry,
		env:       DefaultEnv(),
	}
}

var _ ports.Handler = (*Handler)(nil)

// Type returns the git backend discriminator.
func (h *Handler) Type() string { return Type }

// LoadLock decodes the url and commit fields of a lock entry. A missing commit yields the zero Version.
func (h *Handler) LoadLock(doc domain.Document) (domain.Remote, domain.Version, error) {
	url, err := doc.String(fieldURL)
	if err != nil {
		return domain.Remote{}, domain.Version{}, err
	}
	commit, err := doc.OptionalString(fieldCommit, "")
	if err != nil {
		return domain.Remote{}, domain.Version{}, err
	}
	return h.remote(url), h.version(commit), nil
}

// SaveLock encodes a crate as url and commit fields.
func (h *Handler) SaveLock(remote domain.Remote, version domain.Version) (domain.Document, error) {
	doc := domain.Document{fieldURL: remote.Location}
	if !version.IsZero() {
		doc[fieldCommit] = version.ID
	}
	return doc, nil
}

// LoadDepSpec decodes a descriptor with a url and optional branch or branches fields.
func (h *Handler) LoadDepSpec(doc domain.Document) (domain.Remote, domain.DepSpec, error) {
	url, err := doc.String(fieldURL)
	if err != nil {
		return domain.Remote{}, nil, err
	}
	branches, err := doc.Strings(fieldBranch)
	if err != nil {
		return domain.Remote{}, nil, err
	}
	more, err := doc.Strings(fieldBranches)
	if err != nil {
		return domain.Remote{}, nil, err
	}
	return h.remote(url), NewBranchSpec(append(branches, more...)...), nil
}

// EmptyDepSpec returns the spec following the remote's default branch.
func (h *Handler) EmptyDepSpec() domain.DepSpec { return BranchSpec{} }

// Checkout moves the working tree at path to version, cloning the remote first if needed.
// A checkout already at version is left untouched.
func (h *Handler) Checkout(ctx context.Context, remote domain.Remote, version domain.Version, path string) (err error) {
	if version.IsZero() {
		return zerr.With(domain.ErrUnlockedCrate, "path", path)
	}

	ctx, vertex := h.telemetry.Record(ctx, "checkout "+path)
	cached := false
	defer func() {
		if cached {
			vertex.Cached()
		}
		vertex.Complete(err)
	}()

	exists, err := h.isRepo(path)
	if err != nil {
		return err
	}

	if exists {
		known, err := h.succeeds(ctx, path, "rev-parse", "--verify", "--quiet", version.ID+"^{commit}")
		if err != nil {
			return err
		}
		if !known {
			if err := h.run(ctx, h.progress(path, "fetch", "origin")); err != nil {
				return wrapCheckout(err, path, version)
			}
		}
		head, err := h.head(ctx, path)
		if err != nil {
			return err
		}
		if head == version.ID {
			cached = true
			return nil
		}
	} else if err := h.clone(ctx, remote, path); err != nil {
		return wrapCheckout(err, path, version)
	}

	h.logger.Info(fmt.Sprintf("checkout %s to %s", version.Short(), path))
	if err := h.run(ctx, h.git(path, "config", "hooks.suppresscrater", "true")); err != nil {
		return wrapCheckout(err, path, version)
	}
	if err := h.run(ctx, h.git(path, "-c", "advice.detachedHead=false", "checkout", "--quiet", version.ID)); err != nil {
		return wrapCheckout(err, path, version)
	}
	return nil
}

// Fetch refreshes the remote-tracking branches at path, cloning the remote when path holds no repository.
func (h *Handler) Fetch(ctx context.Context, remote domain.Remote, path string) (err error) {
	ctx, vertex := h.telemetry.Record(ctx, "fetch "+path)
	defer func() { vertex.Complete(err) }()

	exists, err := h.isRepo(path)
	if err != nil {
		return err
	}
	if !exists {
		err = h.clone(ctx, remote, path)
	} else {
		err = h.run(ctx, h.progress(path, "fetch", "origin", "--prune"))
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "path", path)
	}
	return nil
}

// Versions streams the commits reachable from the branches of spec, newest first.
// Branches missing on the remote contribute no commits.
func (h *Handler) Versions(ctx context.Context, _ domain.Remote, path string, spec domain.DepSpec) iter.Seq2[domain.Version, error] {
	return func(yield func(domain.Version, error) bool) {
		bs, ok := spec.(BranchSpec)
		if !ok {
			yield(domain.Version{}, zerr.With(domain.ErrUnknownBackend, "type", spec.Type()))
			return
		}

		refs, err := h.existingRefs(ctx, path, bs)
		if err != nil {
			yield(domain.Version{}, err)
			return
		}
		if len(refs) == 0 {
			return
		}

		args := append([]string{"rev-list", "--topo-order"}, refs...)
		for line, err := range h.runner.Lines(ctx, h.git(path, append(args, "--")...)) {
			if err != nil {
				yield(domain.Version{}, err)
				return
			}
			if line = strings.TrimSpace(line); line == "" {
				continue
			}
			if !yield(h.version(line), nil) {
				return
			}
		}
	}
}

// DependencyDeclarations reads the declaration file recorded in version without checking it out.
func (h *Handler) DependencyDeclarations(ctx context.Context, path string, version domain.Version) (domain.RawDeclarations, error) {
	if version.IsZero() {
		return domain.RawDeclarations{}, zerr.With(domain.ErrUnlockedCrate, "path", path)
	}

	args := append([]string{"ls-tree", "--name-only", version.ID, "--"}, domain.DeclarationFileNames()...)
	res, err := h.output(ctx, h.git(path, args...))
	if err != nil {
		return domain.RawDeclarations{}, err
	}
	present := strings.Fields(string(res))

	for _, name := range domain.DeclarationFileNames() {
		if !slices.Contains(present, name) {
			continue
		}
		data, err := h.output(ctx, h.git(path, "show", version.ID+":"+name))
		if err != nil {
			return domain.RawDeclarations{}, err
		}
		return domain.RawDeclarations{FileName: name, Data: data}, nil
	}
	return domain.RawDeclarations{}, nil
}

// Status reports the commit checked out at path and whether the working tree has local changes.
func (h *Handler) Status(ctx context.Context, path string) (domain.CrateStatus, error) {
	exists, err := h.isRepo(path)
	if err != nil || !exists {
		return domain.CrateStatus{}, err
	}

	res, err := h.runner.Run(ctx, h.git(path, "rev-parse", "--verify", "--quiet", "HEAD"))
	if err != nil {
		return domain.CrateStatus{}, err
	}
	if !res.Success() {
		return domain.CrateStatus{}, nil
	}
	status := domain.CrateStatus{
		Version: h.version(strings.TrimSpace(string(res.Stdout))),
		Present: true,
	}

	if _, err := h.runner.Run(ctx, h.git(path, "update-index", "-q", "--refresh")); err != nil {
		return domain.CrateStatus{}, err
	}
	cmd := h.git(path, "diff-index", "--quiet", "HEAD", "--")
	res, err = h.runner.Run(ctx, cmd)
	if err != nil {
		return domain.CrateStatus{}, err
	}
	switch res.ExitCode {
	case 0:
	case 1:
		status.Dirty = true
	default:
		return domain.CrateStatus{}, shell.CommandError(cmd, res.ExitCode, res.Stderr)
	}
	return status, nil
}

// IsCompatible reports whether version is an ancestor of any branch of spec.
// A branch missing on the remote has no ancestors.
func (h *Handler) IsCompatible(ctx context.Context, path string, version domain.Version, spec domain.DepSpec) (bool, error) {
	bs, ok := spec.(BranchSpec)
	if !ok || version.Type != Type {
		return false, nil
	}
	refs, err := h.existingRefs(ctx, path, bs)
	if err != nil {
		return false, err
	}
	for _, ref := range refs {
		cmd := h.git(path, "merge-base", "--is-ancestor", version.ID, ref)
		res, err := h.runner.Run(ctx, cmd)
		if err != nil {
			return false, err
		}
		switch res.ExitCode {
		case 0:
			return true, nil
		case 1:
		default:
			return false, shell.CommandError(cmd, res.ExitCode, res.Stderr)
		}
	}
	return false, nil
}

// NameHint returns the last path component of the remote URL without a .git suffix.
func (h *Handler) NameHint(remote domain.Remote) string {
	loc := strings.TrimRight(remote.Location, "/")
	if i := strings.LastIndexAny(loc, "/:"); i >= 0 {
		loc = loc[i+1:]
	}
	loc = strings.TrimSuffix(loc, ".git")
	if loc == "" {
		return "crate"
	}
	return loc
}

func (h *Handler) remote(url string) domain.Remote {
	return domain.Remote{Type: Type, Location: url}
}

func (h *Handler) version(commit string) domain.Version {
	if commit == "" {
		return domain.Version{}
	}
	return domain.Version{Type: Type, ID: commit}
}

func (h *Handler) git(dir string, args ...string) domain.Command {
	return domain.Command{Name: "git", Args: args, Dir: dir, Env: h.env}
}

func (h *Handler) progress(dir string, args ...string) domain.Command {
	cmd := h.git(dir, args...)
	cmd.Progress = true
	return cmd
}

func (h *Handler) clone(ctx context.Context, remote domain.Remote, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create crate directory"), "path", path)
	}
	return h.run(ctx, h.progress("", "clone", "--no-checkout", remote.Location, path))
}

func (h *Handler) head(ctx context.Context, path string) (string, error) {
	out, err := h.output(ctx, h.git(path, "rev-parse", "--verify", "HEAD"))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// run executes cmd and fails on a non-zero exit status.
func (h *Handler) run(ctx context.Context, cmd domain.Command) error {
	_, err := h.output(ctx, cmd)
	return err
}

func (h *Handler) output(ctx context.Context, cmd domain.Command) ([]byte, error) {
	res, err := h.runner.Run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, shell.CommandError(cmd, res.ExitCode, res.Stderr)
	}
	return res.Stdout, nil
}

// existingRefs returns the remote-tracking refs of spec that resolve to a commit.
func (h *Handler) existingRefs(ctx context.Context, path string, spec BranchSpec) ([]string, error) {
	var refs []string
	for _, ref := range spec.refs() {
		cmd := h.git(path, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
		res, err := h.runner.Run(ctx, cmd)
		if err != nil {
			return nil, err
		}
		switch res.ExitCode {
		case 0:
			refs = append(refs, ref)
		case 1:
		default:
			return nil, shell.CommandError(cmd, res.ExitCode, res.Stderr)
		}
	}
	return refs, nil
}

// succeeds reports whether cmd exits with status zero.
func (h *Handler) succeeds(ctx context.Context, dir string, args ...string) (bool, error) {
	res, err := h.runner.Run(ctx, h.git(dir, args...))
	if err != nil {
		return false, err
	}
	return res.Success(), nil
}

func (h *Handler) isRepo(path string) (bool, error) {
	_, err := os.Stat(filepath.Join(path, ".git"))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, iofs.ErrNotExist) {
		return false, nil
	}
	return false, zerr.With(zerr.Wrap(err, "failed to inspect checkout"), "path", path)
}

func wrapCheckout(err error, path string, version domain.Version) error {
	err = zerr.Wrap(err, domain.ErrCheckoutFailed.Error())
	err = zerr.With(err, "path", path)
	return zerr.With(err, "commit", version.ID)
}
