// Package cache implements a manager connector of cache and database
package cache

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"catalog/internal/interfaces"
	"catalog/internal/models"
)

// defaultWarmCount bounds warm-up for cache variants without a capacity.
const defaultWarmCount = 1000

// A Manager is a thread-safe connector of cache and database to work with
// stored products. The cache variants themselves are single-threaded, so the
// manager's mutex is the exclusive owner required by their contract: it wraps
// every cache call, reads included, because even Get mutates counters and
// recency.
type Manager struct {
	cache  interfaces.Cached[string, *models.Product]
	repo   interfaces.Repository
	logger *zerolog.Logger
	mu     sync.Mutex
}

// NewManager creates a new manager with specified cache, repo and logger
func NewManager(
	cache interfaces.Cached[string, *models.Product], repo interfaces.Repository, logger *zerolog.Logger,
) *Manager {
	if logger == nil {
		logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
		return &Manager{cache: cache, repo: repo, logger: &logger}
	}
	return &Manager{cache: cache, repo: repo, logger: logger}
}

// WarmCache loads the most recently updated products into the cache, at most
// the cache capacity of them when the variant has one
func (c *Manager) WarmCache(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.cache.Capacity()
	if !ok {
		n = defaultWarmCount
	}

	products, err := c.repo.GetNProducts(ctx, n)
	if err != nil {
		c.logger.Error().Stack().Err(err).Msg("failed to load products for cache warm-up")
		return err
	}
	for i := range products {
		c.cache.Set(products[i].SKU, &products[i])
	}

	return nil
}

// Set adds a product to the cache and database
func (c *Manager) Set(ctx context.Context, product *models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.repo.SaveProduct(ctx, product); err != nil {
		c.logger.Error().Stack().Err(err).Str("sku", product.SKU).Msg("failed to save product")
		return err
	}
	c.cache.Set(product.SKU, product)
	return nil
}

// Get returns a product from cache, if it's not there - from database,
// back-filling the cache on a repository hit
func (c *Manager) Get(ctx context.Context, sku string) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	product, ok := c.cache.Get(sku)
	if ok {
		return product, nil
	}

	product, err := c.repo.GetProduct(ctx, sku)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			c.logger.Error().Stack().Err(err).Str("sku", sku).Msg("failed to load product")
		}
		return nil, err
	}
	if product != nil {
		c.cache.Set(sku, product)
	}
	return product, nil
}

// DeleteCache removes a product from the cache only; the database row stays
func (c *Manager) DeleteCache(sku string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.cache.Remove(sku)
	return ok
}

// FlushCache cleans all cache, keeping the accounting counters
func (c *Manager) FlushCache() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Clear()
}

// ResetCache cleans all cache and releases storage grown past the configured
// pre-allocation, where the variant supports that
func (c *Manager) ResetCache() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Reset()
}

// SizeCache returns number of elements in cache
func (c *Manager) SizeCache() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cache.Size()
}

// Stats returns a snapshot of the cache accounting
func (c *Manager) Stats() interfaces.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := interfaces.CacheStats{Size: c.cache.Size()}
	stats.Hits, _ = c.cache.Hits()
	stats.Misses, _ = c.cache.Misses()
	if capacity, ok := c.cache.Capacity(); ok {
		stats.Capacity = capacity
	}
	return stats
}
