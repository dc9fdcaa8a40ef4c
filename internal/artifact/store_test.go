package artifact

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/claimcheck/claimcheck/internal/model"
)

func testStore(t *testing.T, files map[string]string) *FSStore {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return NewFSStore(root, model.DefaultConfig())
}

func TestFSStore_Resolve(t *testing.T) {
	store := testStore(t, map[string]string{
		"pkg/parser.py": "def parse():\n    pass\n",
	})

	content, err := store.Resolve(context.Background(), "pkg/parser.py")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(content) != "def parse():\n    pass\n" {
		t.Errorf("unexpected content: %q", content)
	}
}

func TestFSStore_ResolveNotFound(t *testing.T) {
	store := testStore(t, nil)

	_, err := store.Resolve(context.Background(), "missing.py")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFSStore_CacheNeverServesStale(t *testing.T) {
	store := testStore(t, map[string]string{"a.py": "old content\n"})

	if _, err := store.Resolve(context.Background(), "a.py"); err != nil {
		t.Fatal(err)
	}

	// Rewrite on disk; verification must always see current content
	if err := os.WriteFile(filepath.Join(store.root, "a.py"), []byte("rewritten content\n"), 0644); err != nil {
		t.Fatal(err)
	}

	second, err := store.Resolve(context.Background(), "a.py")
	if err != nil {
		t.Fatal(err)
	}
	if string(second) != "rewritten content\n" {
		t.Errorf("Resolve returned %q, want current content %q", second, "rewritten content\n")
	}
}

func TestFSStore_DiskCacheInvalidatedOnChange(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.py"), []byte("old content\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := model.DefaultConfig()
	cfg.Cache.Dir = t.TempDir()

	// First store populates the persistent cache
	if _, err := NewFSStore(root, cfg).Resolve(context.Background(), "a.py"); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(root, "a.py"), []byte("rewritten content\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// A fresh store over the same cache dir must not serve the old bytes
	content, err := NewFSStore(root, cfg).Resolve(context.Background(), "a.py")
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "rewritten content\n" {
		t.Errorf("Resolve returned %q, want current content %q", content, "rewritten content\n")
	}
}

func TestFSStore_DeletedArtifactNotServedFromCache(t *testing.T) {
	store := testStore(t, map[string]string{"a.py": "content"})

	if _, err := store.Resolve(context.Background(), "a.py"); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(store.root, "a.py")); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Resolve(context.Background(), "a.py"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted artifact, got %v", err)
	}
}

func TestFSStore_ResolveNoCache(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.py"), []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}
	store := NewFSStore(root, cfg)

	if _, err := store.Resolve(context.Background(), "a.py"); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "a.py"), []byte("rewritten"), 0644); err != nil {
		t.Fatal(err)
	}

	second, err := store.Resolve(context.Background(), "a.py")
	if err != nil {
		t.Fatal(err)
	}
	if string(second) != "rewritten" {
		t.Errorf("uncached store must re-read, got %q", second)
	}
}

func TestFSStore_ResolveByteCap(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Load.MaxBytes = 8

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "big.py"), []byte("0123456789abcdef"), 0644); err != nil {
		t.Fatal(err)
	}
	store := NewFSStore(root, cfg)

	content, err := store.Resolve(context.Background(), "big.py")
	if err != nil {
		t.Fatal(err)
	}
	if len(content) != 8 {
		t.Errorf("expected content capped at 8 bytes, got %d", len(content))
	}
}

func TestFSStore_ResolveCancelled(t *testing.T) {
	store := testStore(t, map[string]string{"a.py": "x"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Resolve(ctx, "a.py"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestFSStore_List(t *testing.T) {
	store := testStore(t, map[string]string{
		"b.py":          "b",
		"pkg/a.py":      "a",
		".hidden":       "skip",
		".git/config":   "skip",
		"pkg/.cache.py": "skip",
	})

	artifacts, err := store.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"b.py", "pkg/a.py"}
	if len(artifacts) != len(want) {
		t.Fatalf("expected %v, got %v", want, artifacts)
	}
	for i := range want {
		if artifacts[i] != want[i] {
			t.Errorf("artifact %d = %q, want %q", i, artifacts[i], want[i])
		}
	}
}

func TestFSStore_ListMissingRoot(t *testing.T) {
	store := NewFSStore(filepath.Join(t.TempDir(), "nope"), model.DefaultConfig())
	if _, err := store.List(); err == nil {
		t.Fatal("expected error for missing root")
	}
}
