// Package app implements the application layer for crater.
package app

import (
	"context"
	"path/filepath"

	"go.trai.ch/crater/internal/adapters/gen" //nolint:depguard // Wired in app layer
	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/core/ports"
	"go.trai.ch/crater/internal/engine/registry"
	"go.trai.ch/crater/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	opener     *registry.Opener
	loader     ports.DeclarationLoader
	resolver   *resolver.Resolver
	generators *gen.Set
	logger     ports.Logger
}

// New creates a new App instance.
func New(
	opener *registry.Opener,
	loader ports.DeclarationLoader,
	res *resolver.Resolver,
	generators *gen.Set,
	log ports.Logger,
) *App {
	return &App{
		opener:     opener,
		loader:     loader,
		resolver:   res,
		generators: generators,
		logger:     log,
	}
}

// Init creates the lockfile of the project in dir. Running it again is harmless.
func (a *App) Init(_ context.Context, dir string) error {
	root, err := filepath.Abs(dir)
	if err != nil {
		return zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	reg, err := a.opener.Open(root)
	if err != nil {
		return err
	}
	if err := reg.Save(true); err != nil {
		return err
	}
	a.logger.Info("initialized " + root)
	return nil
}

// open discovers the project root above dir and loads its registry.
func (a *App) open(dir string) (*registry.Registry, error) {
	if dir == "" {
		dir = "."
	}
	root, err := a.loader.FindRoot(dir)
	if err != nil {
		return nil, err
	}
	return a.opener.Open(root)
}
