package enginetest

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/crater/internal/adapters/config"
	"go.trai.ch/crater/internal/adapters/lockfile"
	"go.trai.ch/crater/internal/adapters/logger"
	"go.trai.ch/crater/internal/adapters/selfcrate"
	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/engine/registry"
)

// Project is a temporary project root wired to an in-memory backend.
type Project struct {
	t       testing.TB
	Root    string
	Backend *Backend
	Logger  *logger.Logger
	Opener  *registry.Opener
}

// NewProject creates an empty project in a temporary directory.
func NewProject(t testing.TB) *Project {
	t.Helper()
	log := logger.New()
	log.SetOutput(io.Discard)

	backend := NewBackend()
	return &Project{
		t:       t,
		Root:    t.TempDir(),
		Backend: backend,
		Logger:  log,
		Opener: registry.NewOpener(
			lockfile.NewStore(),
			config.NewLoader(log),
			registry.NewHandlers(backend, selfcrate.NewHandler()),
		),
	}
}

// WriteFile writes a file relative to the project root.
func (p *Project) WriteFile(rel, content string) {
	p.t.Helper()
	path := filepath.Join(p.Root, filepath.FromSlash(rel))
	require.NoError(p.t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(p.t, os.WriteFile(path, []byte(content), 0o600))
}

// Declare writes the DEPS file of the self crate.
func (p *Project) Declare(deps map[string]Dep) {
	p.t.Helper()
	p.WriteFile(domain.DepsFileName, string(MarshalDeps(deps)))
}

// Open loads the project's registry.
func (p *Project) Open() *registry.Registry {
	p.t.Helper()
	reg, err := p.Opener.Open(p.Root)
	require.NoError(p.t, err)
	return reg
}

// Lockfile returns the content of the lockfile, or "" when there is none.
func (p *Project) Lockfile() string {
	p.t.Helper()
	data, err := os.ReadFile(filepath.Join(p.Root, domain.LockFileName))
	if os.IsNotExist(err) {
		return ""
	}
	require.NoError(p.t, err)
	return string(data)
}
