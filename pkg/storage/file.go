package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileKV stores each key as a file in a directory. Writes go through a temp
// file and an atomic rename so a crash never leaves a torn value behind.
type FileKV struct {
	dir string
}

// NewFileKV creates the directory if needed and returns a store over it.
// Files are user-only: conversation history is sensitive.
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

func (s *FileKV) path(key string) string {
	// Keys are internal identifiers, but keep path traversal impossible
	safe := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, safe+".json")
}

// Get returns the value stored under key.
func (s *FileKV) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Set stores value under key atomically.
func (s *FileKV) Set(key string, value []byte) error {
	target := s.path(key)
	temp := target + ".tmp"

	if err := os.WriteFile(temp, value, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(temp, target); err != nil {
		os.Remove(temp)
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}
	return nil
}

// Delete removes key if present.
func (s *FileKV) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
