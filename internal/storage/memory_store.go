package storage

import (
	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps records in process memory. Used by tests and as an
// ephemeral mode; entries never expire.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (s *MemoryStore) Read(key string) ([]byte, bool) {
	if x, found := s.cache.Get(key); found {
		return x.([]byte), true
	}
	return nil, false
}

func (s *MemoryStore) Write(key string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	s.cache.Set(key, buf, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.cache.Delete(key)
	return nil
}
