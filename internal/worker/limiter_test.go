package worker

import (
	"context"
	"testing"
)

func TestReadLimiter_AllowWithinBurst(t *testing.T) {
	limiter := NewReadLimiter(100, 5)

	for i := 0; i < 5; i++ {
		if !limiter.Allow("/mnt/share/a.py") {
			t.Fatalf("read %d within burst must be allowed", i)
		}
	}
	if limiter.Allow("/mnt/share/b.py") {
		t.Error("burst exhausted for the directory; read must be denied")
	}
}

func TestReadLimiter_PerDirectoryBuckets(t *testing.T) {
	limiter := NewReadLimiter(100, 1)

	if !limiter.Allow("/mnt/one/a.py") {
		t.Fatal("first read in /mnt/one must be allowed")
	}
	if !limiter.Allow("/mnt/two/a.py") {
		t.Error("directories must not share a bucket")
	}
}

func TestReadLimiter_SetDirRate(t *testing.T) {
	limiter := NewReadLimiter(100, 50)
	limiter.SetDirRate("/mnt/slow", 1, 1)

	if !limiter.Allow("/mnt/slow/a.py") {
		t.Fatal("first read must be allowed")
	}
	if limiter.Allow("/mnt/slow/b.py") {
		t.Error("custom burst of 1 must deny the second immediate read")
	}
}

func TestReadLimiter_WaitHonorsCancellation(t *testing.T) {
	limiter := NewReadLimiter(0.001, 1)
	if !limiter.Allow("/mnt/share/a.py") {
		t.Fatal("first read must be allowed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := limiter.Wait(ctx, "/mnt/share/b.py"); err == nil {
		t.Error("Wait on a cancelled context must fail")
	}
}
