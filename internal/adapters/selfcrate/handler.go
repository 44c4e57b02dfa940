// Package selfcrate implements the backend of the project's own crate.
package selfcrate

import (
	"context"
	"errors"
	iofs "io/fs"
	"iter"
	"os"
	"path/filepath"

	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/core/ports"
	"go.trai.ch/zerr"
)

// Spec is the only spec of the self crate. It is satisfied by the sentinel version.
type Spec struct{}

// Type returns the self backend discriminator.
func (Spec) Type() string { return domain.SelfType }

// Join succeeds only with another self spec.
func (s Spec) Join(other domain.DepSpec) (domain.DepSpec, bool) {
	if _, ok := other.(Spec); ok {
		return s, true
	}
	return nil, false
}

func (Spec) String() string { return domain.SelfType }

// Handler implements ports.Handler for the self crate.
// The project is always "checked out" at the sentinel version, so all mutations are no-ops.
type Handler struct{}

// NewHandler creates a new self handler.
func NewHandler() *Handler {
	return &Handler{}
}

var _ ports.Handler = (*Handler)(nil)

// Type returns the self backend discriminator.
func (h *Handler) Type() string { return domain.SelfType }

// LoadLock returns the sentinels; the self entry carries no backend fields.
func (h *Handler) LoadLock(domain.Document) (domain.Remote, domain.Version, error) {
	return domain.SelfRemote, domain.SelfVersion, nil
}

// SaveLock returns an empty document.
func (h *Handler) SaveLock(domain.Remote, domain.Version) (domain.Document, error) {
	return domain.Document{}, nil
}

// LoadDepSpec rejects descriptors: nothing can depend on the project itself.
func (h *Handler) LoadDepSpec(domain.Document) (domain.Remote, domain.DepSpec, error) {
	return domain.Remote{}, nil, zerr.With(domain.ErrUnknownBackend, "type", domain.SelfType)
}

// EmptyDepSpec returns Spec{}.
func (h *Handler) EmptyDepSpec() domain.DepSpec { return Spec{} }

// Checkout is a no-op.
func (h *Handler) Checkout(context.Context, domain.Remote, domain.Version, string) error {
	return nil
}

// Fetch is a no-op.
func (h *Handler) Fetch(context.Context, domain.Remote, string) error {
	return nil
}

// Versions yields the sentinel version.
func (h *Handler) Versions(context.Context, domain.Remote, string, domain.DepSpec) iter.Seq2[domain.Version, error] {
	return func(yield func(domain.Version, error) bool) {
		yield(domain.SelfVersion, nil)
	}
}

// DependencyDeclarations reads the declaration file from the working tree at path.
func (h *Handler) DependencyDeclarations(_ context.Context, path string, _ domain.Version) (domain.RawDeclarations, error) {
	for _, name := range domain.DeclarationFileNames() {
		data, err := os.ReadFile(filepath.Join(path, name)) //nolint:gosec // Path is the project root
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				continue
			}
			return domain.RawDeclarations{}, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
		}
		return domain.RawDeclarations{FileName: name, Data: data}, nil
	}
	return domain.RawDeclarations{}, nil
}

// Status reports the project as present and clean.
func (h *Handler) Status(context.Context, string) (domain.CrateStatus, error) {
	return domain.CrateStatus{Version: domain.SelfVersion, Present: true}, nil
}

// IsCompatible always reports true.
func (h *Handler) IsCompatible(context.Context, string, domain.Version, domain.DepSpec) (bool, error) {
	return true, nil
}

// NameHint is never used for the self crate.
func (h *Handler) NameHint(domain.Remote) string { return "" }
