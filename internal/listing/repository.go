// Package listing exposes the read side of the catalog behind a repository
// interface, optionally decorated with an in-memory TTL cache.
package listing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"imovelhub/server/internal/models"
)

// Repository is the read-only query surface used by the list views
type Repository interface {
	FetchProperties(ctx context.Context) ([]models.Property, error)
	FetchDevelopments(ctx context.Context) ([]models.Development, error)
	FetchUnits(ctx context.Context, developmentID uint) ([]models.Unit, error)
}

const (
	PropertiesKey   = "properties"
	DevelopmentsKey = "developments"
)

// UnitsKey is the cache key of a development's unit list
func UnitsKey(developmentID uint) string {
	return fmt.Sprintf("units:%d", developmentID)
}

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

// CachedRepository memoizes query results per key for a fixed TTL
type CachedRepository struct {
	next   Repository
	ttl    time.Duration
	logger *logrus.Logger
	now    func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
	// generations counts invalidations per key; a fetch that raced with
	// one is returned but not stored
	generations map[string]uint64
}

// NewCachedRepository wraps next. A zero TTL disables caching.
func NewCachedRepository(next Repository, ttl time.Duration, logger *logrus.Logger) *CachedRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return &CachedRepository{
		next:    next,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		entries:     make(map[string]cacheEntry),
		generations: make(map[string]uint64),
	}
}

func (r *CachedRepository) FetchProperties(ctx context.Context) ([]models.Property, error) {
	return load(r, PropertiesKey, func() ([]models.Property, error) {
		return r.next.FetchProperties(ctx)
	})
}

func (r *CachedRepository) FetchDevelopments(ctx context.Context) ([]models.Development, error) {
	return load(r, DevelopmentsKey, func() ([]models.Development, error) {
		return r.next.FetchDevelopments(ctx)
	})
}

func (r *CachedRepository) FetchUnits(ctx context.Context, developmentID uint) ([]models.Unit, error) {
	return load(r, UnitsKey(developmentID), func() ([]models.Unit, error) {
		return r.next.FetchUnits(ctx, developmentID)
	})
}

// load returns a copy of the cached slice for key, or calls fetch and
// stores its result. Errors are never cached.
func load[T any](r *CachedRepository, key string, fetch func() ([]T, error)) ([]T, error) {
	var generation uint64
	if r.ttl > 0 {
		r.mu.RLock()
		entry, ok := r.entries[key]
		generation = r.generations[key]
		r.mu.RUnlock()

		if ok && r.now().Before(entry.expiresAt) {
			r.logger.WithField("key", key).Debug("Cache hit")
			return copySlice(entry.value.([]T)), nil
		}
	}

	result, err := fetch()
	if err != nil {
		return nil, err
	}

	if r.ttl > 0 {
		r.mu.Lock()
		if r.generations[key] == generation {
			r.entries[key] = cacheEntry{value: copySlice(result), expiresAt: r.now().Add(r.ttl)}
		} else {
			r.logger.WithField("key", key).Debug("Discarding result invalidated during fetch")
		}
		r.mu.Unlock()
	}
	return result, nil
}

func copySlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// Invalidate drops the given keys
func (r *CachedRepository) Invalidate(keys ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range keys {
		delete(r.entries, key)
		r.generations[key]++
	}
}

// InvalidateUnits drops a development's unit list together with the
// development list, whose sales mirror depends on it
func (r *CachedRepository) InvalidateUnits(developmentID uint) {
	r.Invalidate(UnitsKey(developmentID), DevelopmentsKey)
}

// Purge removes expired entries and returns how many were removed
func (r *CachedRepository) Purge() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for key, entry := range r.entries {
		if !now.Before(entry.expiresAt) {
			delete(r.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired or not
func (r *CachedRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
