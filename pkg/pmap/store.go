package pmap

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultExtension is appended to map file names
const DefaultExtension = ".pmap"

// Store resolves map file ids to files below a data directory
type Store struct {
	Dir       string
	Extension string
}

// NewStore creates a store rooted at dir
func NewStore(dir, extension string) *Store {
	if extension == "" {
		extension = DefaultExtension
	}
	return &Store{Dir: dir, Extension: extension}
}

// FileName returns the base name for a map file id, e.g. "MAP 0000123456.pmap"
func (s *Store) FileName(fileID uint32) string {
	return fmt.Sprintf("MAP %010d%s", fileID, s.Extension)
}

// Path returns the full path of a map file id
func (s *Store) Path(fileID uint32) string {
	return filepath.Join(s.Dir, s.FileName(fileID))
}

// Exists reports whether the data directory is present
func (s *Store) Exists() bool {
	info, err := os.Stat(s.Dir)
	return err == nil && info.IsDir()
}

// Load parses the map with the given file id
func (s *Store) Load(fileID uint32) (*Map, error) {
	m, err := Parse(s.Path(fileID))
	if err != nil {
		return nil, fmt.Errorf("failed to load map %d: %w", fileID, err)
	}
	return m, nil
}
