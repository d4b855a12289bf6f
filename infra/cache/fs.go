package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FSStore keeps one JSON file per key in a directory.
type FSStore struct {
	dir string
}

// NewFSStore creates the cache directory if needed.
func NewFSStore(dir string) (*FSStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("cache: dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create dir: %w", err)
	}
	return &FSStore{dir: dir}, nil
}

func (s *FSStore) path(key string) string {
	// Keys embed dates and command names; keep them filesystem-safe.
	key = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, key)
	return filepath.Join(s.dir, key+".json")
}

func (s *FSStore) Put(_ context.Context, key string, payload []byte) error {
	return os.WriteFile(s.path(key), payload, 0o644)
}

func (s *FSStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, ErrMiss
	}
	return data, err
}
