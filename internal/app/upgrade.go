package app

import (
	"context"

	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/engine/resolver"
)

// UpgradeOptions configuration for the Upgrade method.
type UpgradeOptions struct {
	// Edge restricts the upgrade to one "crate:dependency" edge. Empty upgrades everything.
	Edge string
	// DepsDir is where new crates are created; inferred when empty.
	DepsDir string
}

// Upgrade resolves the newest compatible versions, checks them out and regenerates build glue.
func (a *App) Upgrade(ctx context.Context, dir string, opts UpgradeOptions) error {
	reg, err := a.open(dir)
	if err != nil {
		return err
	}

	ropts := resolver.Options{DepsDir: opts.DepsDir}
	if opts.Edge == "" {
		err = a.resolver.Upgrade(ctx, reg, ropts)
	} else {
		ref, perr := domain.ParseEdgeRef(opts.Edge)
		if perr != nil {
			return perr
		}
		owner, gerr := reg.Get(ref.Crate)
		if gerr != nil {
			return gerr
		}
		err = a.resolver.UpgradeDependency(ctx, reg, owner, ref.Dependency, ropts)
	}
	if err != nil {
		return err
	}
	return a.generate(reg)
}
