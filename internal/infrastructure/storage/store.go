package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"
)

// PublicPrefix is the URL prefix under which stored images are served.
const PublicPrefix = "images"

// DiskStore persists uploaded images on the local filesystem and addresses
// them by their public path ("images/<name>").
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes the image under a unique timestamped name derived from the
// original filename and returns its public path.
func (s *DiskStore) Save(originalName string, src io.Reader) (string, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UTC().UnixNano(), filepath.Base(originalName))

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, src); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write image file: %w", err)
	}
	return path.Join(PublicPrefix, name), nil
}

// Remove deletes a previously stored image by its public path. Only the base
// name is honored, so a crafted path cannot escape the upload directory.
func (s *DiskStore) Remove(publicPath string) error {
	name := filepath.Base(filepath.FromSlash(publicPath))
	if name == "." || name == string(filepath.Separator) {
		return fmt.Errorf("invalid image path %q", publicPath)
	}
	return os.Remove(filepath.Join(s.dir, name))
}

// Dir returns the directory images are stored in.
func (s *DiskStore) Dir() string { return s.dir }
