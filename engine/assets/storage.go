package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/emberengine/ember/engine/core"
)

// Storage resolves and reads raw resource bytes from an ordered list of
// search paths: application-declared ones first, then the static defaults.
type Storage struct {
	searchPaths []string
}

var defaultSearchPaths = []string{"assets"}

func NewStorage(searchPaths ...string) *Storage {
	return &Storage{
		searchPaths: append(searchPaths, defaultSearchPaths...),
	}
}

// Locate resolves a relative resource path against the search paths in
// order and returns the first existing absolute path.
func (s *Storage) Locate(path string) (string, error) {
	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		return "", fmt.Errorf("%s: %w", path, core.ErrNotFound)
	}
	for _, base := range s.searchPaths {
		candidate := filepath.Join(base, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s: %w", path, core.ErrNotFound)
}

// Load resolves the path and reads the whole file.
func (s *Storage) Load(path string) ([]byte, error) {
	resolved, err := s.Locate(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %v", resolved, core.ErrIO, err)
	}
	return data, nil
}

// ModTime reports the last modification time of a resource. Used by the
// resource manager's hot-reload poll.
func (s *Storage) ModTime(path string) (time.Time, error) {
	resolved, err := s.Locate(path)
	if err != nil {
		return time.Time{}, err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return time.Time{}, fmt.Errorf("stat %s: %w: %v", resolved, core.ErrIO, err)
	}
	return info.ModTime(), nil
}
