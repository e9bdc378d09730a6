package cache

import (
	"context"
	"sync"
	"time"

	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"go.uber.org/zap"
)

type entry struct {
	analysis  *core.EmailAnalysis
	expiresAt time.Time
}

// MemoryCache is an in-memory implementation of the AnalysisCache interface.
// It keeps completed per-email analyses for a TTL so a re-run does not
// re-bill the LLM.
type MemoryCache struct {
	entries     map[string]*entry
	mu          sync.RWMutex
	logger      *zap.Logger
	ttl         time.Duration
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewMemoryCache creates a new in-memory analysis cache
func NewMemoryCache(logger *zap.Logger, ttl time.Duration, cleanupFreq time.Duration) *MemoryCache {
	cache := &MemoryCache{
		entries:     make(map[string]*entry),
		logger:      logger,
		ttl:         ttl,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	// Start background cleanup
	go cache.startCleanupTask()

	return cache
}

// Get retrieves a cached analysis for an email ID
func (c *MemoryCache) Get(emailID string) (*core.EmailAnalysis, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[emailID]
	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiresAt) {
		return nil, false
	}

	return e.analysis, true
}

// Set stores an analysis keyed by email ID
func (c *MemoryCache) Set(emailID string, analysis *core.EmailAnalysis) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[emailID] = &entry{
		analysis:  analysis,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Cleanup removes expired entries
func (c *MemoryCache) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	expiredCount := 0

	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			expiredCount++
		}
	}

	c.logger.Debug("Cleaned up expired cache entries", zap.Int("expired_count", expiredCount))
	return nil
}

// startCleanupTask starts a background task to clean up expired entries
func (c *MemoryCache) startCleanupTask() {
	ticker := time.NewTicker(c.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.Cleanup(context.Background()); err != nil {
				c.logger.Error("Failed to clean up cache", zap.Error(err))
			}
		case <-c.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task
func (c *MemoryCache) Stop() {
	close(c.stopCh)
}

// NopCache satisfies the AnalysisCache interface when caching is disabled
type NopCache struct{}

func NewNopCache() *NopCache { return &NopCache{} }

func (NopCache) Get(emailID string) (*core.EmailAnalysis, bool)   { return nil, false }
func (NopCache) Set(emailID string, analysis *core.EmailAnalysis) {}
func (NopCache) Stop()                                            {}
