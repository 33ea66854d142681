package session

import (
	"testing"
	"time"
)

func TestSummaryCacheGetSet(t *testing.T) {
	cache := NewSummaryCache(2)
	if cache == nil {
		t.Fatalf("expected cache instance")
	}

	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	cache.Set("key", "value", now.Add(time.Hour), now)

	summary, ok := cache.Get("key", now)
	if !ok {
		t.Fatalf("expected cached summary to be present")
	}

	if summary != "value" {
		t.Fatalf("unexpected summary: %q", summary)
	}
}

func TestSummaryCacheExpiresEntries(t *testing.T) {
	cache := NewSummaryCache(2)
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	cache.Set("key", "value", now.Add(time.Minute), now)

	if _, ok := cache.Get("key", now.Add(2*time.Minute)); ok {
		t.Fatalf("expected cache entry to expire")
	}

	if len(cache.entries) != 0 {
		t.Fatalf("expected expired cache entry to be removed")
	}
}

func TestSummaryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewSummaryCache(2)
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	expiresAt := now.Add(time.Hour)

	cache.Set("a", "summary-a", expiresAt, now)
	cache.Set("b", "summary-b", expiresAt, now)

	if _, ok := cache.Get("a", now); !ok {
		t.Fatalf("expected entry a to exist before eviction check")
	}

	cache.Set("c", "summary-c", expiresAt, now)

	if _, ok := cache.Get("a", now); !ok {
		t.Fatalf("expected entry a to remain after evicting least recently used")
	}

	if _, ok := cache.Get("b", now); ok {
		t.Fatalf("expected entry b to be evicted")
	}

	if _, ok := cache.Get("c", now); !ok {
		t.Fatalf("expected entry c to be cached")
	}
}

func TestSummaryCacheNilReceiverIsSafe(t *testing.T) {
	var cache *SummaryCache

	now := time.Now()
	cache.Set("key", "value", now.Add(time.Hour), now)

	if _, ok := cache.Get("key", now); ok {
		t.Fatalf("expected nil cache to miss")
	}
}

func TestCacheKeyIsStableAndCanonical(t *testing.T) {
	keyA := CacheKey(" summarize briefly ", " Example block text ")
	keyB := CacheKey("summarize briefly", "Example block text")

	if keyA == "" || keyB == "" {
		t.Fatalf("expected non-empty cache keys")
	}

	if keyA != keyB {
		t.Fatalf("expected canonicalized cache keys to match, got %q vs %q", keyA, keyB)
	}

	if key := CacheKey("summarize briefly", " "); key != "" {
		t.Fatalf("expected empty cache key when block is empty, got %q", key)
	}
}
