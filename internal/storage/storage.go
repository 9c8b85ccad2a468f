// Package storage implements the local file store for uploaded assets
package storage

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage writes uploaded assets to a directory tree on the local
// filesystem, keyed by category and generated filename
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage rooted at basePath
func NewLocalStorage(basePath string) *LocalStorage {
	return &LocalStorage{
		basePath: basePath,
	}
}

// BasePath returns the root directory of the store
func (s *LocalStorage) BasePath() string {
	return s.basePath
}

// path builds the full on-disk path for a file: <base>/<category>/<filename>
func (s *LocalStorage) path(category, filename string) string {
	return filepath.Join(s.basePath, category, filename)
}

// Save writes the reader's contents byte-for-byte to <base>/<category>/<filename>,
// creating the category directory if needed. A partially written file is removed
// on copy failure.
func (s *LocalStorage) Save(category, filename string, r io.Reader) error {
	path := s.path(category, filename)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close file: %w", err)
	}

	return nil
}

// SaveImage encodes img as WebP (quality 80) to <base>/<category>/<filename>.
// A partially written file is removed on encode failure.
func (s *LocalStorage) SaveImage(category, filename string, img image.Image) error {
	path := s.path(category, filename)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := EncodeWebP(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to encode image: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close file: %w", err)
	}

	return nil
}

// Remove deletes the file at <base>/<category>/<filename>
func (s *LocalStorage) Remove(category, filename string) error {
	return os.Remove(s.path(category, filename))
}
