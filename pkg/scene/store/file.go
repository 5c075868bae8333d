package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/edawolf/city-lines-sub002/pkg/errors"
	"github.com/edawolf/city-lines-sub002/pkg/scene"
)

// FileStore is a file-based scene store for CLI applications.
// Scenes are stored as JSON documents in a single directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based scene store.
// If baseDir is empty, defaults to ~/.config/citylines/scenes/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "citylines", "scenes")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create scene dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) scenePath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

// Get retrieves a scene by name.
func (s *FileStore) Get(ctx context.Context, name string) (*scene.Scene, error) {
	if err := errors.ValidateSceneName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.scenePath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeSceneNotFound, "scene %q not found", name)
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read scene %q", name)
	}

	sc, err := scene.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	sc.Name = name
	return sc, nil
}

// Put stores a scene under the given name.
func (s *FileStore) Put(ctx context.Context, name string, sc *scene.Scene) error {
	if err := errors.ValidateSceneName(name); err != nil {
		return err
	}
	if err := sc.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sc.Name = name
	data, err := sc.Marshal()
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "marshal scene %q", name)
	}
	if err := os.WriteFile(s.scenePath(name), data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write scene %q", name)
	}
	return nil
}

// Delete removes a scene.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateSceneName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.scenePath(name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStorage, err, "remove scene %q", name)
	}
	return nil
}

// List returns all stored scene names in sorted order.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read scene dir")
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Close does nothing for file store.
func (s *FileStore) Close(ctx context.Context) error { return nil }

// Path returns the base directory for scene files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
