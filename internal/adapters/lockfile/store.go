// Package lockfile persists the .deps.lock file.
package lockfile

import (
	"bytes"
	"encoding/json"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/crater/internal/adapters/fs"
	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	typeKey         = "type"
	dependenciesKey = "dependencies"
)

// Store implements ports.LockfileStore with a JSON file at the project root.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

var _ ports.LockfileStore = (*Store)(nil)

// Load reads the lockfile in root. Returns nil, nil if it doesn't exist.
func (s *Store) Load(root string) (*domain.Lockfile, error) {
	path := filepath.Join(root, domain.LockFileName)
	data, err := os.ReadFile(path) //nolint:gosec // Path is the project lockfile
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockfileReadFailed.Error()), "path", path)
	}

	lock, err := Decode(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return lock, nil
}

// Save writes the lockfile atomically. An unchanged lockfile is not rewritten.
func (s *Store) Save(root string, lock *domain.Lockfile) error {
	data, err := Encode(lock)
	if err != nil {
		return err
	}
	if _, err := fs.WriteFileIfChanged(filepath.Join(root, domain.LockFileName), data); err != nil {
		return zerr.Wrap(err, domain.ErrLockfileWriteFailed.Error())
	}
	return nil
}

// Exists reports whether root already has a lockfile.
func (s *Store) Exists(root string) (bool, error) {
	_, err := os.Stat(filepath.Join(root, domain.LockFileName))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, iofs.ErrNotExist) {
		return false, nil
	}
	return false, zerr.Wrap(err, domain.ErrLockfileReadFailed.Error())
}

// Decode parses lockfile content.
func Decode(data []byte) (*domain.Lockfile, error) {
	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, zerr.Wrap(err, domain.ErrLockfileParseFailed.Error())
	}

	lock := domain.NewLockfile()
	for name, fields := range raw {
		entry, err := decodeEntry(fields)
		if err != nil {
			return nil, zerr.With(err, "crate", name)
		}
		lock.Entries[name] = entry
	}
	if _, ok := lock.Entries[""]; !ok {
		lock.Entries[""] = domain.LockEntry{}
	}
	return lock, nil
}

func decodeEntry(fields map[string]any) (domain.LockEntry, error) {
	doc := domain.Document(fields).Clone()

	typ, err := doc.OptionalString(typeKey, "")
	if err != nil {
		return domain.LockEntry{}, zerr.Wrap(err, domain.ErrLockfileParseFailed.Error())
	}
	delete(doc, typeKey)

	entry := domain.LockEntry{Type: typ, Fields: doc}

	if rawDeps, ok := doc[dependenciesKey]; ok {
		delete(doc, dependenciesKey)
		depsDoc, err := domain.AsDocument(rawDeps)
		if err != nil {
			return domain.LockEntry{}, zerr.Wrap(err, domain.ErrLockfileParseFailed.Error())
		}
		entry.Dependencies = make(map[string]string, len(depsDoc))
		for _, dep := range depsDoc.Keys() {
			target, err := depsDoc.String(dep)
			if err != nil {
				return domain.LockEntry{}, zerr.Wrap(err, domain.ErrLockfileParseFailed.Error())
			}
			entry.Dependencies[dep] = target
		}
	}
	return entry, nil
}

// Encode renders the lockfile as indented JSON with sorted keys and a trailing newline.
func Encode(lock *domain.Lockfile) ([]byte, error) {
	raw := make(map[string]map[string]any, len(lock.Entries)+1)
	raw[""] = map[string]any{}
	for name, entry := range lock.Entries {
		fields := make(map[string]any, len(entry.Fields)+2)
		for k, v := range entry.Fields {
			fields[k] = v
		}
		if entry.Type != "" {
			fields[typeKey] = entry.Type
		}
		if len(entry.Dependencies) > 0 {
			fields[dependenciesKey] = entry.Dependencies
		}
		raw[name] = fields
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(raw); err != nil {
		return nil, zerr.Wrap(err, domain.ErrLockfileWriteFailed.Error())
	}
	return buf.Bytes(), nil
}
