package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/claimcheck/claimcheck/internal/cache"
	"github.com/claimcheck/claimcheck/internal/model"
	"github.com/claimcheck/claimcheck/internal/worker"
)

// ErrNotFound signals that an artifact identifier resolves to nothing.
// Callers treat this as a first-class reportable outcome, not a failure
// of the run.
var ErrNotFound = errors.New("artifact not found")

// Store resolves artifact identifiers to their current content
type Store interface {
	// Resolve returns the artifact's current content. The store is
	// queried once per artifact per run.
	Resolve(ctx context.Context, artifact string) ([]byte, error)

	// List enumerates every known artifact identifier. This is the only
	// operation whose failure is fatal to a run.
	List() ([]string, error)
}

// FSStore resolves artifacts against a root directory. Content loads are
// the only timed-out step in the engine; checks downstream are bounded by
// construction.
type FSStore struct {
	root     string
	timeout  time.Duration
	maxBytes int64
	cache    cache.Cache
	limiter  *worker.ReadLimiter
}

// NewFSStore creates a store rooted at dir, configured from cfg
func NewFSStore(root string, cfg *model.Config) *FSStore {
	var contentCache cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			contentCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			contentCache = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
	}

	return &FSStore{
		root:     root,
		timeout:  cfg.Load.Timeout,
		maxBytes: cfg.Load.MaxBytes,
		cache:    contentCache,
		limiter:  worker.NewReadLimiter(cfg.RateLimiting.ReadsPerSecond, cfg.RateLimiting.BurstSize),
	}
}

// Resolve loads the artifact's current content, consulting the cache
// first. The cache key binds the path to the file's size and mtime, so
// an entry from a previous run can never shadow changed content.
// Absent files return ErrNotFound rather than an I/O error.
func (s *FSStore) Resolve(ctx context.Context, artifact string) ([]byte, error) {
	path := filepath.Join(s.root, filepath.FromSlash(artifact))

	var key string
	if s.cache != nil {
		info, err := os.Stat(path)
		switch {
		case err == nil && info.Mode().IsRegular():
			key = cache.ContentKey(fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano()))
			if content, found := s.cache.Get(key); found {
				return content, nil
			}
		case os.IsNotExist(err):
			return nil, ErrNotFound
		}
	}

	loadCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.limiter.Wait(loadCtx, path); err != nil {
		return nil, fmt.Errorf("read limiter: %w", err)
	}

	content, err := readCapped(loadCtx, path, s.maxBytes)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && key != "" {
		_ = s.cache.Set(key, content, 0)
	}

	return content, nil
}

// List walks the root and returns every regular file as a slash-separated
// identifier relative to the root, in stable order
func (s *FSStore) List() ([]string, error) {
	var artifacts []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != s.root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		artifacts = append(artifacts, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enumerate artifacts: %w", err)
	}

	sort.Strings(artifacts)
	return artifacts, nil
}

// readCapped reads a file under the byte cap, honoring ctx cancellation.
// The read itself runs in a goroutine so a hung mount cannot outlive the
// load timeout.
func readCapped(ctx context.Context, path string, maxBytes int64) ([]byte, error) {
	type readResult struct {
		data []byte
		err  error
	}

	ch := make(chan readResult, 1)
	go func() {
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				ch <- readResult{nil, ErrNotFound}
				return
			}
			ch <- readResult{nil, fmt.Errorf("open artifact: %w", err)}
			return
		}
		defer func() { _ = f.Close() }()

		reader := io.Reader(f)
		if maxBytes > 0 {
			reader = io.LimitReader(f, maxBytes)
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			ch <- readResult{nil, fmt.Errorf("read artifact: %w", err)}
			return
		}
		ch <- readResult{data, nil}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		return r.data, r.err
	}
}
