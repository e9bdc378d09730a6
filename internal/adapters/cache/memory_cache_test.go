package cache

import (
	"testing"
	"time"

	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"go.uber.org/zap"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour, time.Hour)
	defer c.Stop()

	analysis := &core.EmailAnalysis{Decision: core.Decision{Action: core.ActionPreserve}}
	c.Set("e1", analysis)

	got, ok := c.Get("e1")
	if !ok || got != analysis {
		t.Errorf("Get = %v, %v", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("unexpected hit for a missing key")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), 10*time.Millisecond, time.Hour)
	defer c.Stop()

	c.Set("e1", &core.EmailAnalysis{})
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("e1"); ok {
		t.Error("entry should have expired")
	}
}

func TestNopCacheNeverHits(t *testing.T) {
	c := NewNopCache()
	c.Set("e1", &core.EmailAnalysis{})
	if _, ok := c.Get("e1"); ok {
		t.Error("nop cache must never return a hit")
	}
	c.Stop()
}
