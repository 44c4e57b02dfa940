package ports

import "go.trai.ch/crater/internal/core/domain"

// DeclarationLoader reads crate declaration files.
//
//go:generate go run go.uber.org/mock/mockgen -source=declarations.go -destination=mocks/mock_declarations.go -package=mocks
type DeclarationLoader interface {
	// LoadDir reads the declaration file found in dir.
	// A directory without a declaration file yields empty declarations.
	LoadDir(dir string) (*domain.Declarations, error)

	// Parse decodes a declaration file produced by a backend.
	Parse(raw domain.RawDeclarations) (*domain.Declarations, error)

	// FindRoot walks up from cwd to the nearest directory holding a lockfile or declaration file.
	FindRoot(cwd string) (string, error)
}
