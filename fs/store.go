// Package fs provides file-based storage for downloaded assets.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/arenadl"
)

// Ensure AssetStore implements arenadl.AssetStore at compile time.
var _ arenadl.AssetStore = (*AssetStore)(nil)

// AssetStore writes assets as files into a single directory.
// Files are written under a temporary name and renamed into place, so a
// crash mid-write never leaves a truncated file under the final name.
type AssetStore struct {
	dir string
}

// NewAssetStore creates a new AssetStore rooted at dir.
func NewAssetStore(dir string) *AssetStore {
	return &AssetStore{dir: dir}
}

// Dir returns the directory assets are written to.
func (s *AssetStore) Dir() string {
	return s.dir
}

// EnsureDir creates the output directory and its parents if needed.
func (s *AssetStore) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

// Exists reports whether name is already present in the directory.
func (s *AssetStore) Exists(name string) (bool, error) {
	p, err := s.path(name)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(p)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Write stores data under name using write-then-rename.
func (s *AssetStore) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p, err := s.path(name)
	if err != nil {
		return err
	}

	// The temp name is independent of name so a final name near NAME_MAX
	// still fits.
	tmp, err := os.CreateTemp(s.dir, ".arenadl-*.part")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Remove the temp file on any failure below.
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpName, p); err != nil {
		return err
	}

	committed = true
	return nil
}

// path resolves name inside the store directory.
func (s *AssetStore) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", arenadl.Errorf(arenadl.EINVALID, "invalid filename %q", name)
	}
	return filepath.Join(s.dir, name), nil
}
