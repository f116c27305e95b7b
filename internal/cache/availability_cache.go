package cache

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/greenharvest/marketplace/internal/metrics"
	"github.com/greenharvest/marketplace/internal/repository"
)

type AvailabilityRepository interface {
	GetAllInStock(ctx context.Context) ([]*repository.ProductAvailability, error)
}

// AvailabilityCache keeps in-stock availability entries in memory. Entries
// that go out of stock are evicted on Set. Reads and writes copy, so callers
// never share a record with the cache.
type AvailabilityCache struct {
	mu    sync.RWMutex
	cache map[string]*repository.ProductAvailability
	repo  AvailabilityRepository
}

func NewAvailabilityCache(repo AvailabilityRepository) *AvailabilityCache {
	return &AvailabilityCache{
		cache: make(map[string]*repository.ProductAvailability),
		repo:  repo,
	}
}

func (c *AvailabilityCache) LoadInitialData(ctx context.Context) error {
	entries, err := c.repo.GetAllInStock(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, av := range entries {
		avCopy := *av
		c.cache[av.ID] = &avCopy
	}
	metrics.AvailabilityCacheItems.Set(float64(len(c.cache)))
	zap.L().Info("availability cache warmed", zap.Int("entries", len(c.cache)))
	return nil
}

func (c *AvailabilityCache) Get(id string) (*repository.ProductAvailability, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	av, found := c.cache[id]
	if !found {
		return nil, false
	}
	avCopy := *av
	return &avCopy, true
}

func (c *AvailabilityCache) Set(av *repository.ProductAvailability) {
	if av.Status == "out_of_stock" {
		c.Delete(av.ID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	avCopy := *av
	c.cache[av.ID] = &avCopy
	metrics.AvailabilityCacheItems.Set(float64(len(c.cache)))
}

func (c *AvailabilityCache) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.cache[id]; found {
		delete(c.cache, id)
		metrics.AvailabilityCacheItems.Set(float64(len(c.cache)))
	}
}
