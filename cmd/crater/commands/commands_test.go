package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crater/cmd/crater/commands"
	"go.trai.ch/crater/internal/app"
	"go.trai.ch/crater/internal/build"
	"go.trai.ch/crater/internal/core/domain"
)

type mockApp struct {
	calls []string
	dir   string

	commitOpts  app.CommitOptions
	addOpts     app.AddOptions
	removeOpts  app.RemoveOptions
	upgradeOpts app.UpgradeOptions

	states  []app.CrateState
	entries []app.ListEntry
	err     error
}

func (m *mockApp) record(name, dir string) error {
	m.calls = append(m.calls, name)
	m.dir = dir
	return m.err
}

func (m *mockApp) Init(_ context.Context, dir string) error     { return m.record("init", dir) }
func (m *mockApp) Checkout(_ context.Context, dir string) error { return m.record("checkout", dir) }
func (m *mockApp) Fetch(_ context.Context, dir string) error    { return m.record("fetch", dir) }
func (m *mockApp) Generate(_ context.Context, dir string) error { return m.record("gen", dir) }

func (m *mockApp) Commit(_ context.Context, dir string, opts app.CommitOptions) error {
	m.commitOpts = opts
	return m.record("commit", dir)
}

func (m *mockApp) Status(_ context.Context, dir string) ([]app.CrateState, error) {
	return m.states, m.record("status", dir)
}

func (m *mockApp) Add(_ context.Context, dir string, opts app.AddOptions) error {
	m.addOpts = opts
	return m.record("add", dir)
}

func (m *mockApp) Remove(_ context.Context, dir string, opts app.RemoveOptions) error {
	m.removeOpts = opts
	return m.record("remove", dir)
}

func (m *mockApp) List(_ context.Context, dir string) ([]app.ListEntry, error) {
	return m.entries, m.record("list", dir)
}

func (m *mockApp) Upgrade(_ context.Context, dir string, opts app.UpgradeOptions) error {
	m.upgradeOpts = opts
	return m.record("upgrade", dir)
}

func execute(t *testing.T, mock *mockApp, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Simple(t *testing.T) {
	for _, name := range []string{"init", "checkout", "fetch", "gen"} {
		t.Run(name, func(t *testing.T) {
			mock := &mockApp{}
			_, err := execute(t, mock, name, "--dir", "sub")
			require.NoError(t, err)
			assert.Equal(t, []string{name}, mock.calls)
			assert.Equal(t, "sub", mock.dir)
		})
	}
}

func TestCommands_DefaultDir(t *testing.T) {
	mock := &mockApp{}
	_, err := execute(t, mock, "checkout")
	require.NoError(t, err)
	assert.Equal(t, ".", mock.dir)
}

func TestCommands_Commit(t *testing.T) {
	mock := &mockApp{}
	_, err := execute(t, mock, "commit", "--force")
	require.NoError(t, err)
	assert.True(t, mock.commitOpts.Force)
}

func TestCommands_Add(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		mock := &mockApp{}
		_, err := execute(t, mock, "add", "https://example.com/zlib.git",
			"--name", "z", "-b", "main", "-b", "stable", "--deps-dir", "ext", "--crate", "_deps/a")
		require.NoError(t, err)
		assert.Equal(t, app.AddOptions{
			URL:      "https://example.com/zlib.git",
			Type:     "git",
			Branches: []string{"main", "stable"},
			Name:     "z",
			Crate:    "_deps/a",
			DepsDir:  "ext",
		}, mock.addOpts)
	})

	t.Run("requires a url", func(t *testing.T) {
		mock := &mockApp{}
		_, err := execute(t, mock, "add")
		require.Error(t, err)
		assert.Empty(t, mock.calls)
	})
}

func TestCommands_Remove(t *testing.T) {
	mock := &mockApp{}
	_, err := execute(t, mock, "remove", "_deps/a", "--purge")
	require.NoError(t, err)
	assert.Equal(t, app.RemoveOptions{Path: "_deps/a", Purge: true}, mock.removeOpts)
}

func TestCommands_Upgrade(t *testing.T) {
	t.Run("everything", func(t *testing.T) {
		mock := &mockApp{}
		_, err := execute(t, mock, "upgrade")
		require.NoError(t, err)
		assert.Equal(t, app.UpgradeOptions{}, mock.upgradeOpts)
	})

	t.Run("one edge", func(t *testing.T) {
		mock := &mockApp{}
		_, err := execute(t, mock, "upgrade", ":zlib", "--deps-dir", "ext")
		require.NoError(t, err)
		assert.Equal(t, app.UpgradeOptions{Edge: ":zlib", DepsDir: "ext"}, mock.upgradeOpts)
	})
}

func TestCommands_Status(t *testing.T) {
	mock := &mockApp{states: []app.CrateState{
		{Name: "", Remote: domain.SelfRemote, Locked: domain.SelfVersion, Unbound: []string{"extra"}},
		{
			Name:   "_deps/a",
			Remote: domain.Remote{Type: "git", Location: "https://example.com/a.git"},
			Locked: domain.Version{Type: "git", ID: "a1"},
			State:  app.StateClean,
		},
		{
			Name:    "_deps/b",
			Remote:  domain.Remote{Type: "git", Location: "https://example.com/b.git"},
			Locked:  domain.Version{Type: "git", ID: "b1"},
			Current: domain.CrateStatus{Version: domain.Version{Type: "git", ID: "b2"}, Present: true},
			State:   app.StateMoved,
		},
		{
			Name:   "_deps/c",
			Remote: domain.Remote{Type: "git", Location: "https://example.com/c.git"},
			State:  app.StateUnlocked,
		},
	}}

	out, err := execute(t, mock, "status")
	require.NoError(t, err)
	assert.Equal(t, "✓ .\n"+
		"  unbound: extra\n"+
		"✓ _deps/a a1\n"+
		"~ _deps/b b1 → b2\n"+
		"○ _deps/c unlocked\n", out)
}

func TestCommands_List(t *testing.T) {
	mock := &mockApp{entries: []app.ListEntry{
		{Name: "", Remote: domain.SelfRemote, Version: domain.SelfVersion, Deps: map[string]string{"zlib": "_deps/zlib", "a": "_deps/a"}},
		{
			Name:    "_deps/zlib",
			Remote:  domain.Remote{Type: "git", Location: "https://example.com/zlib.git"},
			Version: domain.Version{Type: "git", ID: "0123456789abcdef"},
		},
	}}

	out, err := execute(t, mock, "list")
	require.NoError(t, err)
	assert.Equal(t, ".\n"+
		"  a → _deps/a\n"+
		"  zlib → _deps/zlib\n"+
		"_deps/zlib git:https://example.com/zlib.git @ 0123456789ab\n", out)
}

func TestCommands_Errors(t *testing.T) {
	mock := &mockApp{err: errors.New("simulated error")}
	_, err := execute(t, mock, "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulated error")
}

func TestCommands_JSONLogs(t *testing.T) {
	var json bool
	cli := commands.New(&mockApp{}, commands.WithJSONLogs(func(enable bool) { json = enable }))
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"fetch", "--json"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, json)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
	assert.Contains(t, out, build.Commit)
}
