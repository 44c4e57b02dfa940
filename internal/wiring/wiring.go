// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/crater/internal/adapters/config"
	_ "go.trai.ch/crater/internal/adapters/gen"
	_ "go.trai.ch/crater/internal/adapters/git"
	_ "go.trai.ch/crater/internal/adapters/lockfile"
	_ "go.trai.ch/crater/internal/adapters/logger"
	_ "go.trai.ch/crater/internal/adapters/selfcrate"
	_ "go.trai.ch/crater/internal/adapters/shell"
	_ "go.trai.ch/crater/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/crater/internal/app"
	_ "go.trai.ch/crater/internal/engine/registry"
	_ "go.trai.ch/crater/internal/engine/resolver"
)
