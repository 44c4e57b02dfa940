package ports

import "go.trai.ch/crater/internal/core/domain"

// LockfileStore persists the lockfile of a project root.
//
//go:generate go run go.uber.org/mock/mockgen -source=lockfile.go -destination=mocks/mock_lockfile.go -package=mocks
type LockfileStore interface {
	// Load reads the lockfile in root.
	// Returns nil, nil if no lockfile exists.
	Load(root string) (*domain.Lockfile, error)

	// Save atomically replaces the lockfile in root.
	Save(root string, lock *domain.Lockfile) error

	// Exists reports whether root already has a lockfile.
	Exists(root string) (bool, error)
}
