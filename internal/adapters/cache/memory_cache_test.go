package cache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/scam-honeypot/internal/core"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	t.Cleanup(c.Stop)
	return c
}

func entryWithTTL(digest string, ttl time.Duration) *core.CacheEntry {
	return &core.CacheEntry{
		TextDigest:      digest,
		IsScam:          true,
		Confidence:      0.9,
		MLProbability:   0.8,
		HeuristicScore:  7,
		LegitimacyScore: 0,
		LastSeen:        time.Now(),
		ExpiresAt:       time.Now().Add(ttl),
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("Get on empty cache = %v, want ErrNotFound", err)
	}

	entry := entryWithTTL("digest-1", time.Hour)
	if err := c.Set(ctx, entry); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := c.Get(ctx, "digest-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.IsScam != entry.IsScam || got.Confidence != entry.Confidence ||
		got.HeuristicScore != entry.HeuristicScore {
		t.Errorf("Get returned %+v, want %+v", got, entry)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, entryWithTTL("stale", -time.Minute)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := c.Get(ctx, "stale"); err != ErrExpired {
		t.Fatalf("Get on expired entry = %v, want ErrExpired", err)
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, entryWithTTL("gone", time.Hour)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "gone"); err != ErrNotFound {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryCacheCleanup(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, entryWithTTL("fresh", time.Hour)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Set(ctx, entryWithTTL("stale", -time.Minute)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := c.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	if _, err := c.Get(ctx, "fresh"); err != nil {
		t.Errorf("fresh entry removed by cleanup: %v", err)
	}
	if _, err := c.Get(ctx, "stale"); err != ErrNotFound {
		t.Errorf("stale entry after cleanup = %v, want ErrNotFound", err)
	}
}
