package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"catalog/internal/cache"
	"catalog/internal/interfaces"
	"catalog/internal/models"
)

// A ProductService implements the business logic for catalog lookups and updates
type ProductService struct {
	cacheManager   *cache.Manager
	logger         *zerolog.Logger
	circuitBreaker *gobreaker.CircuitBreaker
}

// NewProductService creates a new product service with the provided cache manager and logger
func NewProductService(cacheManager *cache.Manager, logger *zerolog.Logger) *ProductService {
	cb := gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        "product-service",
			MaxRequests: 3,
			Interval:    60 * time.Second,
			Timeout:     60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		},
	)

	return &ProductService{
		cacheManager:   cacheManager,
		logger:         logger,
		circuitBreaker: cb,
	}
}

// ProcessProduct handles incoming product updates from Kafka, validates them,
// and saves them to database/cache
func (s *ProductService) ProcessProduct(ctx context.Context, product *models.Product) error {
	start := time.Now()

	if product == nil {
		err := errors.New("product cannot be nil")
		s.logger.Error().Err(err).Msg("ProcessProduct: received nil product")
		return err
	}

	processCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.validateProduct(product); err != nil {
		s.logger.Error().
			Err(err).
			Str("sku", product.SKU).
			Dur("duration", time.Since(start)).
			Msg("ProcessProduct: product validation failed")
		return fmt.Errorf("product validation failed: %w", err)
	}

	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = time.Now()
	}

	_, err := s.circuitBreaker.Execute(
		func() (interface{}, error) {
			return nil, s.cacheManager.Set(processCtx, product)
		},
	)

	duration := time.Since(start)

	if err != nil {
		s.logger.Error().
			Err(err).
			Str("sku", product.SKU).
			Dur("duration", duration).
			Msg("ProcessProduct: product processing failed")
		return fmt.Errorf("failed to process product: %w", err)
	}

	return nil
}

// GetProduct retrieves a product by SKU, checking cache first, then database
func (s *ProductService) GetProduct(ctx context.Context, sku string) (*models.Product, error) {
	start := time.Now()

	if strings.TrimSpace(sku) == "" {
		err := errors.New("product SKU cannot be empty")
		s.logger.Error().Err(err).Msg("GetProduct: empty SKU provided")
		return nil, err
	}

	retrieveCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	result, err := s.circuitBreaker.Execute(
		func() (interface{}, error) {
			return s.cacheManager.Get(retrieveCtx, sku)
		},
	)

	duration := time.Since(start)

	if err != nil {
		s.logger.Error().
			Err(err).
			Str("sku", sku).
			Dur("duration", duration).
			Msg("GetProduct: failed to retrieve product")
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}

	product := result.(*models.Product)
	if product == nil {
		return nil, nil
	}

	return product, nil
}

// WarmCache loads recently updated products from database into cache on startup
func (s *ProductService) WarmCache(ctx context.Context) error {
	start := time.Now()

	warmCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	_, err := s.circuitBreaker.Execute(
		func() (interface{}, error) {
			return nil, s.cacheManager.WarmCache(warmCtx)
		},
	)

	duration := time.Since(start)

	if err != nil {
		s.logger.Error().
			Err(err).
			Dur("duration", duration).
			Msg("WarmCache: failed to warm cache")
		return fmt.Errorf("failed to warm cache: %w", err)
	}

	return nil
}

// CacheStats returns a snapshot of the cache hit/miss accounting
func (s *ProductService) CacheStats() interfaces.CacheStats {
	return s.cacheManager.Stats()
}

// validateProduct performs validation of product data
func (s *ProductService) validateProduct(product *models.Product) error {
	if err := product.Validate(); err != nil {
		s.logger.Error().
			Err(err).
			Str("sku", product.SKU).
			Msg("Product validation failed")
		return err
	}

	return nil
}
