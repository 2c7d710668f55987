// Package store holds the string-keyed persistence used for the high score.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// MemStore is an in-memory store for tests and headless runs.
type MemStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

// Get returns the value for key and whether it was present.
func (m *MemStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key.
func (m *MemStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// persistedValues is the on-disk layout of a FileStore.
type persistedValues struct {
	Version int               `yaml:"version"`
	Values  map[string]string `yaml:"values"`
}

// FileStore keeps every key in one YAML file. Each Set rewrites the whole
// file synchronously; there is no transaction, the last write wins.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// OpenFileStore loads path. A missing file is an empty store; it is created
// on the first Set.
func OpenFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path, values: make(map[string]string)}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fs, nil
		}
		return nil, fmt.Errorf("read store %s: %w", path, err)
	}
	var data persistedValues
	if err := yaml.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("parse store %s: %w", path, err)
	}
	for k, v := range data.Values {
		fs.values[k] = v
	}
	return fs, nil
}

// Path returns the backing file.
func (fs *FileStore) Path() string {
	return fs.path
}

// Get returns the value for key and whether it was present.
func (fs *FileStore) Get(key string) (string, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	v, ok := fs.values[key]
	return v, ok
}

// Set stores value under key and writes the file.
func (fs *FileStore) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.values[key] = value

	out, err := yaml.Marshal(persistedValues{Version: 1, Values: fs.values})
	if err != nil {
		return err
	}
	if dir := filepath.Dir(fs.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}
	if err := os.WriteFile(fs.path, out, 0o644); err != nil {
		return fmt.Errorf("write store %s: %w", fs.path, err)
	}
	return nil
}
