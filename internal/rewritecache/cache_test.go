package rewritecache

import "testing"

func TestCacheGetMissThenHit(t *testing.T) {
	c := New()

	if _, ok := c.Get("k"); ok {
		t.Fatal("Get on an empty cache returned ok=true")
	}

	c.Put("k", 42)
	v, ok := c.Get("k")
	if !ok {
		t.Fatal("Get after Put returned ok=false")
	}
	if v.(int) != 42 {
		t.Errorf("Get returned %v, want 42", v)
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats() = (%d, %d), want (1, 1)", hits, misses)
	}
}

func TestCacheLen(t *testing.T) {
	c := New()
	c.Put("a", 1)
	c.Put("b", 2)
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestCachePutOverwrites(t *testing.T) {
	c := New()
	c.Put("k", 1)
	c.Put("k", 2)
	v, _ := c.Get("k")
	if v.(int) != 2 {
		t.Errorf("Get after overwrite = %v, want 2", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after overwriting the same key", c.Len())
	}
}
