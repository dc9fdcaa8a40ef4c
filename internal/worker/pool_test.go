package worker

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/claimcheck/claimcheck/internal/model"
)

// countingAuditor records which artifacts it audited
type countingAuditor struct {
	mu      sync.Mutex
	audited []string
}

func (a *countingAuditor) AuditArtifact(_ context.Context, artifact string) *model.ArtifactReport {
	a.mu.Lock()
	a.audited = append(a.audited, artifact)
	a.mu.Unlock()
	return &model.ArtifactReport{Artifact: artifact}
}

// blockingAuditor holds every audit until released
type blockingAuditor struct {
	release chan struct{}
}

func (a *blockingAuditor) AuditArtifact(ctx context.Context, artifact string) *model.ArtifactReport {
	select {
	case <-a.release:
	case <-ctx.Done():
	}
	return &model.ArtifactReport{Artifact: artifact}
}

func TestPool_AuditsEveryArtifactOnce(t *testing.T) {
	auditor := &countingAuditor{}
	pool := NewPool(context.Background(), auditor, 4)
	pool.Start()

	artifacts := []string{"a.py", "b.py", "c.py", "d.py", "e.py", "f.py", "g.py", "h.py"}
	for _, id := range artifacts {
		pool.Submit(id)
	}
	reports := pool.Wait()

	if len(reports) != len(artifacts) {
		t.Fatalf("expected %d reports, got %d", len(artifacts), len(reports))
	}

	got := make([]string, len(reports))
	for i, report := range reports {
		got[i] = report.Artifact
	}
	sort.Strings(got)
	for i, id := range artifacts {
		if got[i] != id {
			t.Errorf("report %d = %q, want %q", i, got[i], id)
		}
	}

	if len(auditor.audited) != len(artifacts) {
		t.Errorf("expected each artifact audited exactly once, got %d audits", len(auditor.audited))
	}
}

// Submitting far more artifacts than the jobs and results buffers hold
// must not wedge: results are drained while submission is still going.
func TestPool_ManyMoreArtifactsThanWorkers(t *testing.T) {
	auditor := &countingAuditor{}
	pool := NewPool(context.Background(), auditor, 2)
	pool.Start()

	const n = 40
	for i := 0; i < n; i++ {
		pool.Submit(fmt.Sprintf("file-%02d.py", i))
	}
	reports := pool.Wait()

	if len(reports) != n {
		t.Fatalf("expected %d reports, got %d", n, len(reports))
	}
}

func TestPool_WaitIsJoinBarrier(t *testing.T) {
	auditor := &blockingAuditor{release: make(chan struct{})}
	pool := NewPool(context.Background(), auditor, 2)
	pool.Start()
	pool.Submit("a.py")
	pool.Submit("b.py")

	done := make(chan []*model.ArtifactReport)
	go func() { done <- pool.Wait() }()

	select {
	case <-done:
		t.Fatal("Wait returned before audits completed")
	default:
	}

	close(auditor.release)
	reports := <-done
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports after release, got %d", len(reports))
	}
}

func TestPool_ZeroWorkersClamped(t *testing.T) {
	auditor := &countingAuditor{}
	pool := NewPool(context.Background(), auditor, 0)
	pool.Start()
	pool.Submit("a.py")

	if reports := pool.Wait(); len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
}

func TestPool_ShutdownUnblocksWorkers(t *testing.T) {
	auditor := &blockingAuditor{release: make(chan struct{})}
	pool := NewPool(context.Background(), auditor, 2)
	pool.Start()
	pool.Submit("a.py")
	pool.Submit("b.py")

	// Shutdown cancels the pool context; blocked audits observe it and
	// return without the release
	pool.Shutdown()
}
