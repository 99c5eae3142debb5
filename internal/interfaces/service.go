package interfaces

import (
	"context"

	"catalog/internal/models"
)

// CacheStats is a snapshot of the cache accounting exposed over HTTP.
type CacheStats struct {
	Hits     uint64 `json:"hits"`
	Misses   uint64 `json:"misses"`
	Size     int    `json:"size"`
	Capacity int    `json:"capacity,omitempty"`
}

type ProductService interface {
	ProcessProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, sku string) (*models.Product, error)
	WarmCache(ctx context.Context) error
	CacheStats() CacheStats
}
