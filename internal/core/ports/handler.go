package ports

import (
	"context"
	"iter"

	"go.trai.ch/crater/internal/core/domain"
)

// Handler is a backend that knows how to lock, fetch and check out one kind of remote.
//
//go:generate go run go.uber.org/mock/mockgen -source=handler.go -destination=mocks/mock_handler.go -package=mocks
type Handler interface {
	// Type returns the backend discriminator used in lockfiles and descriptors.
	Type() string

	// LoadLock decodes a lockfile entry.
	LoadLock(doc domain.Document) (domain.Remote, domain.Version, error)

	// SaveLock encodes a crate for the lockfile. Encoding must be deterministic.
	SaveLock(remote domain.Remote, version domain.Version) (domain.Document, error)

	// LoadDepSpec decodes a dependency descriptor.
	LoadDepSpec(doc domain.Document) (domain.Remote, domain.DepSpec, error)

	// EmptyDepSpec returns the unconstrained spec of this backend.
	EmptyDepSpec() domain.DepSpec

	// Checkout materializes version at path. Checking out the current version is a no-op.
	Checkout(ctx context.Context, remote domain.Remote, version domain.Version, path string) error

	// Fetch refreshes knowledge of the remote, initializing path when it doesn't exist yet.
	Fetch(ctx context.Context, remote domain.Remote, path string) error

	// Versions lazily enumerates candidate versions satisfying spec in preference order.
	// Each call restarts the enumeration.
	Versions(ctx context.Context, remote domain.Remote, path string, spec domain.DepSpec) iter.Seq2[domain.Version, error]

	// DependencyDeclarations returns the declaration file of the crate at version.
	DependencyDeclarations(ctx context.Context, path string, version domain.Version) (domain.RawDeclarations, error)

	// Status reports the on-disk state of the checkout at path.
	Status(ctx context.Context, path string) (domain.CrateStatus, error)

	// IsCompatible reports whether version satisfies spec.
	IsCompatible(ctx context.Context, path string, version domain.Version, spec domain.DepSpec) (bool, error)

	// NameHint suggests a directory name for a new crate bound to remote.
	NameHint(remote domain.Remote) string
}
