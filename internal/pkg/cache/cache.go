// Package cache wraps an in-memory TTL cache for hot read paths such as
// authorization lookups.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Service is an in-memory cache with per-entry TTL.
type Service struct {
	cache *gocache.Cache
}

// NewService creates a cache with the given default expiration and cleanup
// interval.
func NewService(defaultExpiration, cleanupInterval time.Duration) *Service {
	return &Service{cache: gocache.New(defaultExpiration, cleanupInterval)}
}

func (s *Service) Set(key string, value interface{}, duration time.Duration) {
	s.cache.Set(key, value, duration)
}

func (s *Service) Get(key string) (interface{}, bool) {
	return s.cache.Get(key)
}

func (s *Service) Delete(key string) {
	s.cache.Delete(key)
}

// GetOrSet returns the cached value for key, or loads and stores it.
// Loader errors are returned without populating the cache.
func (s *Service) GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error) {
	if val, found := s.Get(key); found {
		return val, nil
	}

	val, err := loader()
	if err != nil {
		return nil, err
	}

	s.Set(key, val, duration)
	return val, nil
}
