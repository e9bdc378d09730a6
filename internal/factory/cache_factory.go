package factory

import (
	"fmt"

	"github.com/mikey/inbox-cleanup-agent/internal/adapters/cache"
	"github.com/mikey/inbox-cleanup-agent/internal/config"
	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"go.uber.org/zap"
)

// CacheFactory creates analysis caches based on configuration
type CacheFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCacheFactory creates a new cache factory
func NewCacheFactory(cfg *config.Config, logger *zap.Logger) *CacheFactory {
	return &CacheFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateAnalysisCache creates an analysis cache. When caching is disabled a
// no-op cache is returned so callers need no enabled checks.
func (f *CacheFactory) CreateAnalysisCache() (core.AnalysisCache, error) {
	if !f.cfg.GetBool("cache.enabled") {
		return cache.NewNopCache(), nil
	}

	ttl, err := f.cfg.GetDuration("cache.ttl")
	if err != nil {
		return nil, fmt.Errorf("invalid cache TTL: %w", err)
	}
	cleanupFreq, err := f.cfg.GetDuration("cache.cleanup_frequency")
	if err != nil {
		return nil, fmt.Errorf("invalid cache cleanup frequency: %w", err)
	}

	return cache.NewMemoryCache(f.logger, ttl, cleanupFreq), nil
}
