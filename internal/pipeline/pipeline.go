package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/claimcheck/claimcheck/internal/artifact"
	"github.com/claimcheck/claimcheck/internal/classify"
	"github.com/claimcheck/claimcheck/internal/extract"
	"github.com/claimcheck/claimcheck/internal/model"
	"github.com/claimcheck/claimcheck/internal/verify"
	"github.com/claimcheck/claimcheck/internal/worker"
)

// Pipeline orchestrates the three stages in strict dependency order:
// claim extraction once up front, then verification and classification
// per artifact, then the aggregate reduction.
type Pipeline struct {
	config     *model.Config
	store      artifact.Store
	extractor  *extract.ClaimExtractor
	verifier   *verify.Verifier
	classifier *classify.Classifier
	renderer   *Renderer

	// extraction is computed once per run and shared read-only across
	// audit workers
	extraction *extract.Result
}

// NewPipeline creates a pipeline over the given artifact store
func NewPipeline(cfg *model.Config, store artifact.Store) *Pipeline {
	registry := verify.NewRegistry(cfg.Checks)
	return &Pipeline{
		config:     cfg,
		store:      store,
		extractor:  extract.NewClaimExtractor(cfg.Resolution),
		verifier:   verify.NewVerifier(store, registry),
		classifier: classify.NewClassifier(registry),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
	}
}

// RunResult contains the complete run output
type RunResult struct {
	Reports    []*model.ArtifactReport
	Aggregate  *model.AggregateReport
	Extraction *extract.Result
}

// Run executes the full pipeline over the given artifacts. Cancellation
// is all-or-nothing: a cancelled run returns an error and produces no
// aggregate, since the aggregate must reflect a complete artifact set.
func (p *Pipeline) Run(ctx context.Context, sourcesDir string, artifacts []string) (*RunResult, error) {
	docs, skipped, err := extract.ReadSources(sourcesDir)
	if err != nil {
		return nil, err
	}

	extraction := p.extractor.Extract(docs, artifacts)
	extraction.SkippedSources = skipped
	p.extraction = extraction

	pool := worker.NewPool(ctx, p, p.config.Concurrency.Workers)
	pool.Start()
	for _, id := range artifacts {
		pool.Submit(id)
	}
	reports := pool.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}
	if len(reports) != len(artifacts) {
		return nil, fmt.Errorf("incomplete run: %d of %d artifacts audited", len(reports), len(artifacts))
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Artifact < reports[j].Artifact })

	return &RunResult{
		Reports:    reports,
		Aggregate:  classify.Aggregate(reports, extraction.Dropped),
		Extraction: extraction,
	}, nil
}

// AuditArtifact verifies and classifies one artifact. It depends only on
// the shared read-only extraction and the artifact's own content, so the
// pool runs it without locking.
func (p *Pipeline) AuditArtifact(ctx context.Context, artifactID string) *model.ArtifactReport {
	claims := p.extraction.Claims[artifactID]
	if claims == nil {
		claims = model.NewClaimSet()
	}
	results := p.verifier.Verify(ctx, artifactID, claims)
	return p.classifier.Classify(artifactID, claims, results)
}

// Renderer returns the configured renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}
