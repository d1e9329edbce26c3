package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestShardedSetGet(t *testing.T) {
	c := NewSharded[string](time.Minute)

	c.Set("a", "one")
	c.Set("b", "two")

	if v, ok := c.Get("a"); !ok || v != "one" {
		t.Errorf("Get(a) = %q, %t", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) returned a value")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) returned a value after Delete")
	}
}

func TestShardedExpiry(t *testing.T) {
	c := NewSharded[int](10 * time.Millisecond)
	c.Set("k", 1)

	if _, ok := c.Get("k"); !ok {
		t.Fatal("value expired immediately")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("value survived past its TTL")
	}
	if removed := c.Cleanup(); removed != 1 {
		t.Errorf("Cleanup removed %d, want 1", removed)
	}
}

func TestShardedZeroTTLNeverExpires(t *testing.T) {
	c := NewSharded[int](0)
	c.Set("k", 1)
	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get("k"); !ok {
		t.Error("value expired with zero TTL")
	}
}

func TestShardedConcurrentAccess(t *testing.T) {
	c := NewSharded[int](time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d-%d", n, j)
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() != 800 {
		t.Errorf("Len = %d, want 800", c.Len())
	}
}
