package storage

import (
	"os"
	"path/filepath"
	"sync"

	"kj-canvas-be/internal/pkg/logger"
)

// FileStore persists each key as one JSON document under a data directory.
// Durable only within that directory, like a single browser profile.
type FileStore struct {
	dir    string
	mu     sync.RWMutex
	logger logger.ILogger
}

func NewFileStore(dir string, log logger.ILogger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{
		dir:    dir,
		logger: log,
	}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Read(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("FileStore", "Failed to read record", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return nil, false
	}
	return data, true
}

func (s *FileStore) Write(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Write to a temp file first so a crash mid-write never corrupts the record.
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(key))
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
