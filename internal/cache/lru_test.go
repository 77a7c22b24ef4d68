package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestLRUCacheEviction(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	if _, ok := c.Get("a"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("expected c=3, got %v ok=%v", v, ok)
	}
	if c.Size() != 2 {
		t.Errorf("expected size 2, got %d", c.Size())
	}
}

func TestLRUCacheTTL(t *testing.T) {
	c := NewLRUCache[string](10, 10*time.Millisecond)

	c.Set("k", "v")
	if _, ok := c.Get("k"); !ok {
		t.Fatal("fresh entry should be present")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("expired entry should be gone")
	}
	if n := c.CleanExpired(); n != 0 {
		t.Errorf("Get should have dropped the expired entry, sweep removed %d", n)
	}
}

func TestLRUCacheDeletePrefix(t *testing.T) {
	c := NewLRUCache[int](10, time.Minute)

	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("acct:7:page:%d", i), i)
	}
	c.Set("acct:8:page:0", 99)

	if n := c.DeletePrefix("acct:7:"); n != 3 {
		t.Fatalf("expected 3 entries dropped, got %d", n)
	}
	if _, ok := c.Get("acct:8:page:0"); !ok {
		t.Error("other account's entry must survive")
	}
	if c.Size() != 1 {
		t.Errorf("expected size 1, got %d", c.Size())
	}
}

func TestManagerCleanup(t *testing.T) {
	c := NewLRUCache[int](10, 5*time.Millisecond)
	c.Set("k", 1)

	m := NewManager()
	m.Register(c)
	m.StartCleanup(10 * time.Millisecond)
	defer m.Stop()

	deadline := time.After(500 * time.Millisecond)
	for c.Size() != 0 {
		select {
		case <-deadline:
			t.Fatal("cleanup sweep never removed the expired entry")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
