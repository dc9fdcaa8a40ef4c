package cache

import (
	"testing"
	"time"
)

func TestContentKey(t *testing.T) {
	a := ContentKey("/root/a.py")
	b := ContentKey("/root/b.py")

	if a == b {
		t.Error("distinct artifacts must yield distinct keys")
	}
	if a != ContentKey("/root/a.py") {
		t.Error("keys must be stable across calls")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("empty cache must miss")
	}

	if err := c.Set("k", []byte("content"), 0); err != nil {
		t.Fatal(err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "content" {
		t.Errorf("Get = %q, %v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); found {
		t.Error("deleted entry must miss")
	}
}

func TestDiskCache(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("content"), 0); err != nil {
		t.Fatal(err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "content" {
		t.Errorf("Get = %q, %v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); found {
		t.Error("deleted entry must miss")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("stale"), -time.Second); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expired entry must miss and be removed")
	}
}

func TestLayeredCache_Promotion(t *testing.T) {
	c := NewLayeredCache(time.Minute, t.TempDir(), time.Minute)

	// Seed the disk layer only; a Get must hit and promote to memory
	if err := c.disk.Set("k", []byte("content"), 0); err != nil {
		t.Fatal(err)
	}

	val, found := c.Get("k")
	if !found || string(val) != "content" {
		t.Fatalf("Get = %q, %v", val, found)
	}
	if _, found := c.memory.Get("k"); !found {
		t.Error("disk hit must be promoted to the memory layer")
	}
}

func TestLayeredCache_SetWritesBothLayers(t *testing.T) {
	c := NewLayeredCache(time.Minute, t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("content"), 0); err != nil {
		t.Fatal(err)
	}
	if _, found := c.memory.Get("k"); !found {
		t.Error("memory layer missing entry")
	}
	if _, found := c.disk.Get("k"); !found {
		t.Error("disk layer missing entry")
	}
}
