package git_test

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crater/internal/adapters/git"
	"go.trai.ch/crater/internal/adapters/telemetry"
	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const (
	url    = "https://example.com/org/zlib.git"
	commit = "0123456789abcdef0123456789abcdef01234567"
	other  = "89abcdef0123456789abcdef0123456789abcdef"
)

var (
	remote  = domain.Remote{Type: git.Type, Location: url}
	version = domain.Version{Type: git.Type, ID: commit}
)

func gitCmd(dir string, args ...string) domain.Command {
	return domain.Command{Name: "git", Args: args, Dir: dir, Env: git.DefaultEnv()}
}

func progressCmd(dir string, args ...string) domain.Command {
	cmd := gitCmd(dir, args...)
	cmd.Progress = true
	return cmd
}

func ok(stdout string) *domain.CommandResult {
	return &domain.CommandResult{Stdout: []byte(stdout)}
}

func exit(code int) *domain.CommandResult {
	return &domain.CommandResult{ExitCode: code}
}

func repoDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o750))
	return dir
}

func refExists(dir, ref string) domain.Command {
	return gitCmd(dir, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
}

func lines(values ...string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, v := range values {
			if !yield(v, nil) {
				return
			}
		}
	}
}

type fixture struct {
	runner *mocks.MockCommandRunner
	logger *mocks.MockLogger
	h      *git.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		runner: mocks.NewMockCommandRunner(ctrl),
		logger: mocks.NewMockLogger(ctrl),
	}
	f.h = git.NewHandler(f.runner, f.logger, telemetry.NewNoop())
	return f
}

func TestHandler_LockRoundTrip(t *testing.T) {
	f := newFixture(t)

	doc, err := f.h.SaveLock(remote, version)
	require.NoError(t, err)
	assert.Equal(t, domain.Document{"url": url, "commit": commit}, doc)

	gotRemote, gotVersion, err := f.h.LoadLock(doc)
	require.NoError(t, err)
	assert.Equal(t, remote, gotRemote)
	assert.Equal(t, version, gotVersion)
}

func TestHandler_LockUnlockedCrate(t *testing.T) {
	f := newFixture(t)

	doc, err := f.h.SaveLock(remote, domain.Version{})
	require.NoError(t, err)
	assert.Equal(t, domain.Document{"url": url}, doc)

	_, gotVersion, err := f.h.LoadLock(doc)
	require.NoError(t, err)
	assert.True(t, gotVersion.IsZero())

	_, _, err = f.h.LoadLock(domain.Document{"commit": commit})
	assert.ErrorContains(t, err, domain.ErrMissingField.Error())
}

func TestHandler_LoadDepSpec(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		doc  domain.Document
		want git.BranchSpec
	}{
		{"default branch", domain.Document{"url": url}, git.BranchSpec{}},
		{"single branch", domain.Document{"url": url, "branch": "v1"}, git.NewBranchSpec("v1")},
		{"branch list", domain.Document{"url": url, "branches": []any{"v2", "v1"}}, git.NewBranchSpec("v1", "v2")},
		{"both", domain.Document{"url": url, "branch": "main", "branches": []any{"v1"}}, git.NewBranchSpec("main", "v1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotRemote, spec, err := f.h.LoadDepSpec(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, remote, gotRemote)
			assert.Equal(t, tt.want, spec)
		})
	}

	_, _, err := f.h.LoadDepSpec(domain.Document{"url": url, "branches": 3})
	assert.ErrorContains(t, err, domain.ErrInvalidField.Error())
}

func TestHandler_NameHint(t *testing.T) {
	f := newFixture(t)

	tests := map[string]string{
		"https://example.com/org/zlib.git": "zlib",
		"https://example.com/org/fmt/":     "fmt",
		"git@example.com:org/json.git":     "json",
		"git@example.com:json.git":         "json",
		"/srv/git/local":                   "local",
		"":                                 "crate",
	}
	for loc, want := range tests {
		assert.Equal(t, want, f.h.NameHint(domain.Remote{Type: git.Type, Location: loc}), loc)
	}
}

func TestHandler_Checkout_AlreadyAtVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	tel := mocks.NewMockTelemetry(ctrl)
	vertex := mocks.NewMockVertex(ctrl)
	h := git.NewHandler(runner, mocks.NewMockLogger(ctrl), tel)

	dir := repoDir(t)
	ctx := context.Background()

	tel.EXPECT().Record(ctx, "checkout "+dir).Return(ctx, vertex)
	gomock.InOrder(
		runner.EXPECT().Run(ctx, gitCmd(dir, "rev-parse", "--verify", "--quiet", commit+"^{commit}")).Return(ok(commit+"\n"), nil),
		runner.EXPECT().Run(ctx, gitCmd(dir, "rev-parse", "--verify", "HEAD")).Return(ok(commit+"\n"), nil),
		vertex.EXPECT().Cached(),
		vertex.EXPECT().Complete(nil),
	)

	require.NoError(t, h.Checkout(ctx, remote, version, dir))
}

func TestHandler_Checkout_FetchesUnknownCommit(t *testing.T) {
	f := newFixture(t)
	dir := repoDir(t)
	ctx := context.Background()

	gomock.InOrder(
		f.runner.EXPECT().Run(ctx, gitCmd(dir, "rev-parse", "--verify", "--quiet", commit+"^{commit}")).Return(exit(1), nil),
		f.runner.EXPECT().Run(ctx, progressCmd(dir, "fetch", "origin")).Return(ok(""), nil),
		f.runner.EXPECT().Run(ctx, gitCmd(dir, "rev-parse", "--verify", "HEAD")).Return(ok(other+"\n"), nil),
		f.logger.EXPECT().Info("checkout 0123456789ab to "+dir),
		f.runner.EXPECT().Run(ctx, gitCmd(dir, "config", "hooks.suppresscrater", "true")).Return(ok(""), nil),
		f.runner.EXPECT().Run(ctx, gitCmd(dir, "-c", "advice.detachedHead=false", "checkout", "--quiet", commit)).Return(ok(""), nil),
	)

	require.NoError(t, f.h.Checkout(ctx, remote, version, dir))
}

func TestHandler_Checkout_ClonesMissingRepository(t *testing.T) {
	f := newFixture(t)
	dir := filepath.Join(t.TempDir(), "_deps", "zlib")
	ctx := context.Background()

	gomock.InOrder(
		f.runner.EXPECT().Run(ctx, progressCmd("", "clone", "--no-checkout", url, dir)).Return(ok(""), nil),
		f.logger.EXPECT().Info(gomock.Any()),
		f.runner.EXPECT().Run(ctx, gitCmd(dir, "config", "hooks.suppresscrater", "true")).Return(ok(""), nil),
		f.runner.EXPECT().Run(ctx, gitCmd(dir, "-c", "advice.detachedHead=false", "checkout", "--quiet", commit)).Return(ok(""), nil),
	)

	require.NoError(t, f.h.Checkout(ctx, remote, version, dir))
	assert.DirExists(t, filepath.Dir(dir))
}

func TestHandler_Checkout_Failure(t *testing.T) {
	f := newFixture(t)
	dir := filepath.Join(t.TempDir(), "zlib")
	ctx := context.Background()

	f.runner.EXPECT().Run(ctx, progressCmd("", "clone", "--no-checkout", url, dir)).
		Return(&domain.CommandResult{ExitCode: 128, Stderr: []byte("fatal: repository not found")}, nil)

	err := f.h.Checkout(ctx, remote, version, dir)
	require.ErrorIs(t, err, domain.ErrCommandFailed)
	assert.ErrorContains(t, err, domain.ErrCheckoutFailed.Error())
}

func TestHandler_Checkout_Unlocked(t *testing.T) {
	f := newFixture(t)

	err := f.h.Checkout(context.Background(), remote, domain.Version{}, t.TempDir())
	assert.ErrorContains(t, err, domain.ErrUnlockedCrate.Error())
}

func TestHandler_Fetch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	existing := repoDir(t)
	f.runner.EXPECT().Run(ctx, progressCmd(existing, "fetch", "origin", "--prune")).Return(ok(""), nil)
	require.NoError(t, f.h.Fetch(ctx, remote, existing))

	missing := filepath.Join(t.TempDir(), "zlib")
	f.runner.EXPECT().Run(ctx, progressCmd("", "clone", "--no-checkout", url, missing)).Return(exit(128), nil)
	err := f.h.Fetch(ctx, remote, missing)
	assert.ErrorContains(t, err, domain.ErrFetchFailed.Error())
}

func TestHandler_Versions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dir := repoDir(t)

	f.runner.EXPECT().Run(ctx, refExists(dir, "origin/main")).Return(ok(commit+"\n"), nil).Times(2)
	f.runner.EXPECT().Run(ctx, refExists(dir, "origin/v1")).Return(ok(other+"\n"), nil).Times(2)
	f.runner.EXPECT().
		Lines(ctx, gitCmd(dir, "rev-list", "--topo-order", "origin/main", "origin/v1", "--")).
		Return(lines(commit, "", other)).
		Times(2)

	spec := git.NewBranchSpec("v1", "main")
	var got []domain.Version
	for v, err := range f.h.Versions(ctx, remote, dir, spec) {
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []domain.Version{version, {Type: git.Type, ID: other}}, got)

	// A second enumeration restarts from the newest commit.
	for v, err := range f.h.Versions(ctx, remote, dir, spec) {
		require.NoError(t, err)
		assert.Equal(t, version, v)
		break
	}
}

func TestHandler_Versions_DefaultBranch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dir := repoDir(t)

	f.runner.EXPECT().Run(ctx, refExists(dir, "origin/HEAD")).Return(ok(commit+"\n"), nil)
	f.runner.EXPECT().
		Lines(ctx, gitCmd(dir, "rev-list", "--topo-order", "origin/HEAD", "--")).
		Return(lines(commit))

	got := slices.Collect(func(yield func(domain.Version) bool) {
		for v, err := range f.h.Versions(ctx, remote, dir, f.h.EmptyDepSpec()) {
			require.NoError(t, err)
			if !yield(v) {
				return
			}
		}
	})
	assert.Equal(t, []domain.Version{version}, got)
}

func TestHandler_Versions_MissingBranch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dir := repoDir(t)

	t.Run("skipped when others exist", func(t *testing.T) {
		gomock.InOrder(
			f.runner.EXPECT().Run(ctx, refExists(dir, "origin/gone")).Return(exit(1), nil),
			f.runner.EXPECT().Run(ctx, refExists(dir, "origin/main")).Return(ok(commit+"\n"), nil),
			f.runner.EXPECT().
				Lines(ctx, gitCmd(dir, "rev-list", "--topo-order", "origin/main", "--")).
				Return(lines(commit)),
		)

		var got []domain.Version
		for v, err := range f.h.Versions(ctx, remote, dir, git.NewBranchSpec("gone", "main")) {
			require.NoError(t, err)
			got = append(got, v)
		}
		assert.Equal(t, []domain.Version{version}, got)
	})

	t.Run("no candidates when all are missing", func(t *testing.T) {
		f.runner.EXPECT().Run(ctx, refExists(dir, "origin/gone")).Return(exit(1), nil)

		for v, err := range f.h.Versions(ctx, remote, dir, git.NewBranchSpec("gone")) {
			t.Fatalf("unexpected candidate %v (err %v)", v, err)
		}
	})

	t.Run("broken repository is an error", func(t *testing.T) {
		f.runner.EXPECT().Run(ctx, refExists(dir, "origin/main")).Return(exit(128), nil)

		for _, err := range f.h.Versions(ctx, remote, dir, git.NewBranchSpec("main")) {
			assert.ErrorIs(t, err, domain.ErrCommandFailed)
		}
	})
}

func TestHandler_DependencyDeclarations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dir := repoDir(t)

	gomock.InOrder(
		f.runner.EXPECT().Run(ctx, gitCmd(dir, "ls-tree", "--name-only", commit, "--", "DEPS", "DEPS.toml")).Return(ok("DEPS.toml\n"), nil),
		f.runner.EXPECT().Run(ctx, gitCmd(dir, "show", commit+":DEPS.toml")).Return(ok("[dependencies]\n"), nil),
	)

	raw, err := f.h.DependencyDeclarations(ctx, dir, version)
	require.NoError(t, err)
	assert.Equal(t, domain.RawDeclarations{FileName: "DEPS.toml", Data: []byte("[dependencies]\n")}, raw)
}

func TestHandler_DependencyDeclarations_None(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dir := repoDir(t)

	f.runner.EXPECT().Run(ctx, gitCmd(dir, "ls-tree", "--name-only", commit, "--", "DEPS", "DEPS.toml")).Return(ok(""), nil)

	raw, err := f.h.DependencyDeclarations(ctx, dir, version)
	require.NoError(t, err)
	assert.True(t, raw.Empty())
}

func TestHandler_Status(t *testing.T) {
	tests := []struct {
		name      string
		diffIndex int
		want      domain.CrateStatus
	}{
		{"clean", 0, domain.CrateStatus{Version: version, Present: true}},
		{"dirty", 1, domain.CrateStatus{Version: version, Present: true, Dirty: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			dir := repoDir(t)

			gomock.InOrder(
				f.runner.EXPECT().Run(ctx, gitCmd(dir, "rev-parse", "--verify", "--quiet", "HEAD")).Return(ok(commit+"\n"), nil),
				f.runner.EXPECT().Run(ctx, gitCmd(dir, "update-index", "-q", "--refresh")).Return(exit(1), nil),
				f.runner.EXPECT().Run(ctx, gitCmd(dir, "diff-index", "--quiet", "HEAD", "--")).Return(exit(tt.diffIndex), nil),
			)

			status, err := f.h.Status(ctx, dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestHandler_Status_Missing(t *testing.T) {
	f := newFixture(t)

	status, err := f.h.Status(context.Background(), filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.False(t, status.Present)
}

func TestHandler_IsCompatible(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dir := repoDir(t)
	spec := git.NewBranchSpec("main", "v1")

	gomock.InOrder(
		f.runner.EXPECT().Run(ctx, refExists(dir, "origin/main")).Return(ok(other+"\n"), nil),
		f.runner.EXPECT().Run(ctx, refExists(dir, "origin/v1")).Return(ok(commit+"\n"), nil),
		f.runner.EXPECT().Run(ctx, gitCmd(dir, "merge-base", "--is-ancestor", commit, "origin/main")).Return(exit(1), nil),
		f.runner.EXPECT().Run(ctx, gitCmd(dir, "merge-base", "--is-ancestor", commit, "origin/v1")).Return(exit(0), nil),
	)

	compatible, err := f.h.IsCompatible(ctx, dir, version, spec)
	require.NoError(t, err)
	assert.True(t, compatible)
}

func TestHandler_IsCompatible_UnknownCommit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dir := repoDir(t)

	gomock.InOrder(
		f.runner.EXPECT().Run(ctx, refExists(dir, "origin/HEAD")).Return(ok(other+"\n"), nil),
		f.runner.EXPECT().Run(ctx, gitCmd(dir, "merge-base", "--is-ancestor", commit, "origin/HEAD")).Return(exit(128), nil),
	)

	_, err := f.h.IsCompatible(ctx, dir, version, git.BranchSpec{})
	assert.ErrorIs(t, err, domain.ErrCommandFailed)
}

func TestHandler_IsCompatible_MissingBranch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dir := repoDir(t)

	f.runner.EXPECT().Run(ctx, refExists(dir, "origin/gone")).Return(exit(1), nil)

	compatible, err := f.h.IsCompatible(ctx, dir, version, git.NewBranchSpec("gone"))
	require.NoError(t, err)
	assert.False(t, compatible)
}
