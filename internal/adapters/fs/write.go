// Package fs provides content-aware file writing shared by the lockfile store and the generators.
package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/zerr"
)

// ComputeFileHash computes the XXHash of a file's content.
// A missing file reports ok=false.
func ComputeFileHash(path string) (sum uint64, ok bool, err error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, false, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), true, nil
}

// WriteFileIfChanged atomically replaces path with data unless the file already holds
// exactly that content. It reports whether the file was written.
func WriteFileIfChanged(path string, data []byte) (bool, error) {
	current, exists, err := ComputeFileHash(path)
	if err != nil {
		return false, err
	}
	if exists && current == xxhash.Sum64(data) {
		return false, nil
	}
	if err := WriteFileAtomic(path, data); err != nil {
		return false, zerr.With(err, "path", path)
	}
	return true, nil
}

// WriteFileAtomic writes data to a temp file next to path and renames it into place.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
