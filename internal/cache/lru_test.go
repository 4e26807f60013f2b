// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package cache

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestLRUCache_BasicOperations(t *testing.T) {
	ctx := context.Background()
	c := NewLRUCache(3, time.Minute)

	c.Set(ctx, "a", []byte("1"))
	c.Set(ctx, "b", []byte("2"))
	c.Set(ctx, "c", []byte("3"))

	for key, want := range map[string]string{"a": "1", "b": "2", "c": "3"} {
		got, found := c.Get(ctx, key)
		if !found {
			t.Errorf("expected to find key %q", key)
			continue
		}
		if string(got) != want {
			t.Errorf("Get(%q) = %q, want %q", key, got, want)
		}
	}

	if c.Len() != 3 {
		t.Errorf("expected len 3, got %d", c.Len())
	}
}

func TestLRUCache_Eviction(t *testing.T) {
	ctx := context.Background()
	c := NewLRUCache(3, time.Minute)

	c.Set(ctx, "a", []byte("a"))
	c.Set(ctx, "b", []byte("b"))
	c.Set(ctx, "c", []byte("c"))

	// Access 'a' to make it most recently used
	c.Get(ctx, "a")

	// 'b' is now least recently used
	c.Set(ctx, "d", []byte("d"))

	if _, found := c.Get(ctx, "b"); found {
		t.Error("expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, found := c.Get(ctx, key); !found {
			t.Errorf("expected %q to be present", key)
		}
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestLRUCache_TTLExpiration(t *testing.T) {
	ctx := context.Background()
	c := NewLRUCache(10, time.Minute)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set(ctx, "k", []byte("v"))
	if _, found := c.Get(ctx, "k"); !found {
		t.Fatal("expected fresh entry to be found")
	}

	now = now.Add(2 * time.Minute)
	if _, found := c.Get(ctx, "k"); found {
		t.Error("expected expired entry to be missing")
	}
	if c.Len() != 0 {
		t.Errorf("expected expired entry to be removed, len = %d", c.Len())
	}
}

func TestLRUCache_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	c := NewLRUCache(10, time.Minute)

	in := []byte("original")
	c.Set(ctx, "k", in)
	in[0] = 'X'

	got, _ := c.Get(ctx, "k")
	if !bytes.Equal(got, []byte("original")) {
		t.Errorf("stored value changed with caller buffer: %q", got)
	}

	got[0] = 'Y'
	again, _ := c.Get(ctx, "k")
	if !bytes.Equal(again, []byte("original")) {
		t.Errorf("stored value changed with returned buffer: %q", again)
	}
}

func TestLRUCache_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	c := NewLRUCache(10, time.Minute)

	c.Set(ctx, "a", []byte("1"))
	c.Set(ctx, "b", []byte("2"))

	c.Delete(ctx, "a")
	if _, found := c.Get(ctx, "a"); found {
		t.Error("expected 'a' to be deleted")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after Clear, len = %d", c.Len())
	}
	if _, found := c.Get(ctx, "b"); found {
		t.Error("expected 'b' to be cleared")
	}
}

func TestLRUCache_CleanupExpired(t *testing.T) {
	ctx := context.Background()
	c := NewLRUCache(10, time.Minute)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set(ctx, "old1", []byte("x"))
	c.Set(ctx, "old2", []byte("x"))
	now = now.Add(90 * time.Second)
	c.Set(ctx, "new", []byte("x"))

	if removed := c.CleanupExpired(); removed != 2 {
		t.Errorf("CleanupExpired() = %d, want 2", removed)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 remaining entry, got %d", c.Len())
	}
}

func TestLRUCache_Stats(t *testing.T) {
	ctx := context.Background()
	c := NewLRUCache(10, time.Minute)

	c.Set(ctx, "a", []byte("1"))
	c.Get(ctx, "a")
	c.Get(ctx, "a")
	c.Get(ctx, "missing")

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 1 || stats.Keys != 1 {
		t.Errorf("Stats() = %+v, want hits=2 misses=1 keys=1", stats)
	}
	if rate := stats.HitRate(); rate < 66.6 || rate > 66.7 {
		t.Errorf("HitRate() = %f, want ~66.67", rate)
	}
}

func TestLRUCache_Concurrent(t *testing.T) {
	ctx := context.Background()
	c := NewLRUCache(100, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%150)
				c.Set(ctx, key, []byte(key))
				c.Get(ctx, key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("cache exceeded capacity: %d", c.Len())
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default is lru", cfg: Config{}},
		{name: "explicit lru", cfg: Config{Backend: BackendLRU, Capacity: 5}},
		{name: "redis without url", cfg: Config{Backend: BackendRedis}, wantErr: true},
		{name: "unknown backend", cfg: Config{Backend: "memcached"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && c == nil {
				t.Fatal("New() returned nil cache without error")
			}
		})
	}
}

func TestKey(t *testing.T) {
	if got := Key("cf", "snap", "user1"); got != "cf:snap:user1" {
		t.Errorf("Key() = %q, want cf:snap:user1", got)
	}

	long := strings.Repeat("x", 200)
	got := Key("cf", long)
	if len(got) >= len(long) {
		t.Errorf("expected long part to be hashed, got %d bytes", len(got))
	}
	if got != Key("cf", long) {
		t.Error("Key() is not deterministic")
	}
}
