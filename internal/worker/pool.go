package worker

import (
	"context"
	"sync"

	"github.com/claimcheck/claimcheck/internal/model"
)

// Auditor produces a complete report for one artifact. Audits for
// distinct artifacts share no mutable state, so the pool runs them
// without locking.
type Auditor interface {
	AuditArtifact(ctx context.Context, artifact string) *model.ArtifactReport
}

// Pool fans per-artifact audits out over a fixed worker count.
// Wait is the join barrier: the aggregate report must only be computed
// from the slice it returns, never from in-flight work.
type Pool struct {
	auditor     Auditor
	workers     int
	jobs        chan string
	results     chan *model.ArtifactReport
	collected   []*model.ArtifactReport
	collectDone chan struct{}
	wg          sync.WaitGroup
	ctx         context.Context
	cancelFunc  context.CancelFunc
	closeOnce   sync.Once
}

// NewPool creates a worker pool bound to the given context
func NewPool(ctx context.Context, auditor Auditor, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	poolCtx, cancel := context.WithCancel(ctx)

	return &Pool{
		auditor:     auditor,
		workers:     workers,
		jobs:        make(chan string, workers*2),
		results:     make(chan *model.ArtifactReport, workers*2),
		collectDone: make(chan struct{}),
		ctx:         poolCtx,
		cancelFunc:  cancel,
	}
}

// Start starts the workers and the result collector. The collector
// drains results while the caller is still submitting, so a submission
// burst larger than the channel buffers can never wedge the pool.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	go func() {
		for report := range p.results {
			p.collected = append(p.collected, report)
		}
		close(p.collectDone)
	}()
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case artifact, ok := <-p.jobs:
			if !ok {
				return
			}
			report := p.auditor.AuditArtifact(p.ctx, artifact)
			select {
			case p.results <- report:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues one artifact for auditing
func (p *Pool) Submit(artifact string) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobs <- artifact:
	}
}

// Wait closes the queue, waits for all audits to finish, and returns the
// completed reports
func (p *Pool) Wait() []*model.ArtifactReport {
	close(p.jobs)
	p.wg.Wait()
	p.closeResults()
	<-p.collectDone

	return p.collected
}

// Shutdown cancels in-flight audits and waits for workers to exit
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
	<-p.collectDone
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
