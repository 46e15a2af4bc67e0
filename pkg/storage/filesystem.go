package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BlobStore is the path-based get/put surface the contract pipeline consumes.
type BlobStore interface {
	Put(path string, data []byte, contentType string) (string, error)
	Get(path string) ([]byte, error)
	Delete(path string) error
}

// LocalStorage persists contract files on disk under a base directory. It
// stands in for the bucket used in production; paths are kept
// bucket-style (forward slashes, prefix namespacing) so the two are
// interchangeable behind BlobStore.
type LocalStorage struct {
	baseDir string
}

var _ BlobStore = (*LocalStorage)(nil)

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./contratos"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create contracts directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// Put writes the given bytes to the provided bucket-style path. Existing
// files are overwritten, matching upsert semantics on the bucket.
func (s *LocalStorage) Put(path string, data []byte, contentType string) (string, error) {
	full := s.resolve(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("prepare contract directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write contract file: %w", err)
	}
	return path, nil
}

// Get returns the stored bytes for a bucket-style path.
func (s *LocalStorage) Get(path string) ([]byte, error) {
	data, err := os.ReadFile(s.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("read contract file: %w", err)
	}
	return data, nil
}

// Delete removes a stored file if present.
func (s *LocalStorage) Delete(path string) error {
	if err := os.Remove(s.resolve(path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete contract file: %w", err)
	}
	return nil
}

// Path exposes the underlying absolute path (useful for debugging).
func (s *LocalStorage) Path(path string) string {
	return s.resolve(path)
}

func (s *LocalStorage) resolve(path string) string {
	cleaned := filepath.FromSlash(strings.TrimPrefix(path, "/"))
	return filepath.Join(s.baseDir, cleaned)
}
