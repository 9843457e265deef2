package datasource

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store is the persistence contract the editor saves through. Both
// implementations exchange only serialized text with the caller.
type Store interface {
	// Load returns the document's current text.
	Load() (string, error)
	// Save replaces the document's text.
	Save(text string) error
	// Close releases any underlying resources.
	Close() error
}

// FileStore persists one document as a plain text file.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the given path. The file need
// not exist yet; Load on a missing file returns empty text.
func NewFileStore(path string) (*FileStore, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	return &FileStore{path: abs}, nil
}

// Path returns the absolute path of the backing file.
func (s *FileStore) Path() string { return s.path }

// Load reads the file. A missing file is an empty document, not an
// error: opening a new outline by name is how documents get created.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", s.path, err)
	}
	return string(data), nil
}

// Save writes through a temp file in the same directory and renames it
// into place, so watchers and concurrent readers never observe a
// half-written document.
func (s *FileStore) Save(text string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".lw-save-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op for file stores.
func (s *FileStore) Close() error { return nil }
