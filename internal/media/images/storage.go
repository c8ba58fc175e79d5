// Package images stores processed recipe images on disk and derives
// compact blur hash placeholders for clients to render while loading.
package images

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage persists recipe images under a base directory. Files are named
// {imageID}.jpg; everything written here has already been re-encoded to
// JPEG by Process.
type Storage struct {
	mu  sync.RWMutex
	dir string
}

// NewStorage creates the image directory under basePath if needed.
func NewStorage(basePath string) (*Storage, error) {
	dir := filepath.Join(basePath, "recipes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Save writes image data for the given ID, replacing any previous file.
func (s *Storage) Save(imageID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path(imageID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if err := os.Rename(tmp, s.path(imageID)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalize image: %w", err)
	}
	return nil
}

// Get reads the stored image data for the given ID.
func (s *Storage) Get(imageID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(imageID))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

// Exists reports whether an image is stored under the given ID.
func (s *Storage) Exists(imageID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.path(imageID))
	return err == nil
}

// Delete removes the stored image. Missing files are not an error.
func (s *Storage) Delete(imageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(imageID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

// Path returns the on-disk path for the given image ID.
func (s *Storage) Path(imageID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path(imageID)
}

func (s *Storage) path(imageID string) string {
	return filepath.Join(s.dir, imageID+".jpg")
}
