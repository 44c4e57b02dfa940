// Package config reads crate declaration files and discovers the project root.
package config

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.DeclarationLoader.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new declaration loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

var _ ports.DeclarationLoader = (*Loader)(nil)

// LoadDir reads the declaration file in dir. DEPS takes precedence over DEPS.toml.
func (l *Loader) LoadDir(dir string) (*domain.Declarations, error) {
	var found []domain.RawDeclarations
	for _, name := range domain.DeclarationFileNames() {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path) //nolint:gosec // Path is a declaration file inside a crate
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
		}
		found = append(found, domain.RawDeclarations{FileName: name, Data: data})
	}

	if len(found) == 0 {
		return emptyDeclarations(), nil
	}
	if len(found) > 1 {
		l.logger.Warn("both " + domain.DepsFileName + " and " + domain.DepsTOMLFileName + " found in " + dir + ", using " + found[0].FileName)
	}

	decls, err := l.Parse(found[0])
	if err != nil {
		return nil, zerr.With(err, "path", filepath.Join(dir, found[0].FileName))
	}
	return decls, nil
}

// Parse decodes a declaration file. The format follows the file extension.
func (l *Loader) Parse(raw domain.RawDeclarations) (*domain.Declarations, error) {
	if raw.Empty() {
		return emptyDeclarations(), nil
	}

	var file Depsfile
	var err error
	if strings.EqualFold(filepath.Ext(raw.FileName), ".toml") {
		err = toml.Unmarshal(raw.Data, &file)
	} else {
		err = yaml.Unmarshal(raw.Data, &file)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "file", raw.FileName)
	}

	return toDeclarations(&file)
}

func toDeclarations(file *Depsfile) (*domain.Declarations, error) {
	decls := emptyDeclarations()

	for name, descriptor := range file.Dependencies {
		if err := domain.ValidateDependencyName(name); err != nil {
			return nil, err
		}
		doc := domain.Document(descriptor).Clone()
		if _, ok := doc["type"]; !ok {
			doc["type"] = domain.DefaultBackend
		}
		decls.Dependencies[name] = doc
	}

	for name, settings := range file.Gen {
		decls.Gen[name] = domain.Document(settings).Clone()
	}

	return decls, nil
}

func emptyDeclarations() *domain.Declarations {
	return &domain.Declarations{
		Dependencies: make(map[string]domain.Document),
		Gen:          make(map[string]domain.Document),
	}
}

// FindRoot walks up from cwd to the nearest directory holding a lockfile.
// Without a lockfile anywhere above, the nearest directory holding a declaration file wins,
// and failing that cwd itself.
func (l *Loader) FindRoot(cwd string) (string, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	if dir, ok := walkUp(abs, []string{domain.LockFileName}); ok {
		return dir, nil
	}
	if dir, ok := walkUp(abs, domain.DeclarationFileNames()); ok {
		return dir, nil
	}
	return abs, nil
}

func walkUp(start string, names []string) (string, bool) {
	for dir := start; ; {
		for _, name := range names {
			if info, err := os.Stat(filepath.Join(dir, name)); err == nil && !info.IsDir() {
				return dir, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
