package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"catalog/internal/cache"
	"catalog/internal/cache/lru_cache"
	"catalog/internal/cache/timed_cache"
	"catalog/internal/cache/unbound_cache"
	"catalog/internal/config"
	"catalog/internal/db"
	"catalog/internal/interfaces"
	"catalog/internal/kafka"
	"catalog/internal/models"
	"catalog/internal/server"
	"catalog/internal/service"
)

// newCache builds the cache variant selected by the configuration
func newCache(cfg *config.Config) (interfaces.Cached[string, *models.Product], error) {
	switch cfg.Cache.Policy {
	case config.PolicyLRU:
		return lru_cache.NewLRUCache[string, *models.Product](cfg.Cache.Capacity)
	case config.PolicyUnbound:
		if cfg.Cache.Capacity > 0 {
			return unbound_cache.NewUnboundCacheWithCapacity[string, *models.Product](cfg.Cache.Capacity), nil
		}
		return unbound_cache.NewUnboundCache[string, *models.Product](), nil
	case config.PolicyTimed:
		if cfg.Cache.Capacity > 0 {
			return timed_cache.NewTimedCacheWithCapacity[string, *models.Product](cfg.Cache.Lifespan, cfg.Cache.Capacity), nil
		}
		return timed_cache.NewTimedCache[string, *models.Product](cfg.Cache.Lifespan), nil
	default:
		return nil, fmt.Errorf("unknown cache policy: %q", cfg.Cache.Policy)
	}
}

func main() {
	cfg, err := config.LoadConfig("config/config.yml")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database, err := db.NewDBWithConfig(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize database")
	}

	repository := db.NewProductRepoWithDB(database)

	productCache, err := newCache(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize cache")
	}

	cacheLogger := logger.With().Str("component", "cache-manager").Logger()
	cacheManager := cache.NewManager(productCache, repository, &cacheLogger)

	serviceLogger := logger.With().Str("component", "product-service").Logger()
	productService := service.NewProductService(cacheManager, &serviceLogger)

	if err := productService.WarmCache(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to warm cache, continuing with empty cache")
	}

	serverLogger := logger.With().Str("component", "http-server").Logger()
	httpServer := server.New(cfg, productService, &serverLogger)

	kafkaLogger := logger.With().Str("component", "kafka-consumer").Logger()
	kafkaConsumer := kafka.NewConsumer(*cfg, productService, &kafkaLogger)

	var wg sync.WaitGroup
	errChan := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := httpServer.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		if err := kafkaConsumer.Start(ctx); err != nil {
			errChan <- fmt.Errorf("Kafka consumer error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		logger.Fatal().Err(err).Msg("Failed to start application")
	case sig := <-sigChan:
		logger.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	var stopWg sync.WaitGroup
	var stopErrors []error
	var mu sync.Mutex

	stopWg.Add(1)
	go func() {
		defer stopWg.Done()
		if err := kafkaConsumer.Stop(shutdownCtx); err != nil {
			mu.Lock()
			stopErrors = append(stopErrors, fmt.Errorf("failed to stop Kafka consumer: %w", err))
			mu.Unlock()
		}
	}()

	stopWg.Add(1)
	go func() {
		defer stopWg.Done()
		if err := httpServer.Stop(shutdownCtx); err != nil {
			mu.Lock()
			stopErrors = append(stopErrors, fmt.Errorf("failed to stop HTTP server: %w", err))
			mu.Unlock()
		}
	}()

	stopWg.Wait()

	database.Close()

	if len(stopErrors) > 0 {
		logger.Error().Int("error_count", len(stopErrors)).Msg("Some components failed to stop gracefully")
	}

	cancel()
}
