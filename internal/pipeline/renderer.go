package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/claimcheck/claimcheck/internal/model"
)

// Renderer writes reports to disk and summaries to stdout. Output is a
// deterministic function of the run's inputs: no timestamps, stable
// ordering, so re-runs on unchanged inputs are byte-identical.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes any report as indented JSON
func (r *Renderer) RenderJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderAll writes one JSON document per artifact plus the aggregate,
// and Markdown alongside when enabled
func (r *Renderer) RenderAll(result *RunResult, outDir string, markdown bool) error {
	for _, report := range result.Reports {
		slug := slugify(report.Artifact)
		if err := r.RenderJSON(report, filepath.Join(outDir, slug+".json")); err != nil {
			return err
		}
		if markdown {
			if err := r.RenderArtifactMarkdown(report, filepath.Join(outDir, slug+".md")); err != nil {
				return err
			}
		}
	}
	if err := r.RenderJSON(result.Aggregate, filepath.Join(outDir, "aggregate.json")); err != nil {
		return err
	}
	if markdown {
		if err := r.RenderAggregateMarkdown(result.Aggregate, filepath.Join(outDir, "aggregate.md")); err != nil {
			return err
		}
	}
	return nil
}

// RenderArtifactMarkdown writes a human-readable artifact report
func (r *Renderer) RenderArtifactMarkdown(report *model.ArtifactReport, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Credibility Report: %s\n\n", report.Artifact)
	fmt.Fprintf(&b, "**Credibility score:** %.2f\n\n", report.Credibility)
	fmt.Fprintf(&b, "| Verified | Failed | Unable | Claims | Unfinished |\n")
	fmt.Fprintf(&b, "|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d |\n\n",
		report.Verified, report.Failed, report.Unable, report.ClaimCount, report.UnfinishedBusiness)

	if report.NotFound {
		fmt.Fprintf(&b, "**Artifact could not be located.**\n\n")
	}

	if len(report.Gaps) > 0 {
		fmt.Fprintf(&b, "## Gaps\n\n")
		for _, gap := range report.Gaps {
			fmt.Fprintf(&b, "- **%s** (`%s`): %s\n", gap.Category, gap.Reference, gap.Detail)
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "## Checks\n\n")
	for _, result := range report.Results {
		fmt.Fprintf(&b, "- `%s` — %s: %s\n", result.CheckName, result.Status, result.Evidence)
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "\n---\n_Generated by claimcheck. Scores measure independent verification, not truth._\n")
	}

	return r.writeFile(path, b.String())
}

// RenderAggregateMarkdown writes the run summary
func (r *Renderer) RenderAggregateMarkdown(aggregate *model.AggregateReport, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Claimcheck Aggregate Report\n\n")
	fmt.Fprintf(&b, "**Mean credibility:** %.2f\n\n", aggregate.MeanCredibility)

	fmt.Fprintf(&b, "| Artifact | Credibility | Gaps |\n|---|---|---|\n")
	for _, row := range aggregate.Artifacts {
		name := row.Artifact
		if row.NotFound {
			name += " (not found)"
		}
		fmt.Fprintf(&b, "| %s | %.2f | %d |\n", name, row.Credibility, row.Gaps)
	}
	fmt.Fprintf(&b, "\n## Gap totals\n\n")
	for _, category := range model.GapCategories {
		fmt.Fprintf(&b, "- %s: %d\n", category, aggregate.GapTotals[category])
	}
	fmt.Fprintf(&b, "\nArtifacts not found: %d\n", aggregate.NotFound)
	fmt.Fprintf(&b, "Claims dropped (unresolved target): %d\n", aggregate.DroppedClaims)

	if r.includeFooter {
		fmt.Fprintf(&b, "\n---\n_Generated by claimcheck. Scores measure independent verification, not truth._\n")
	}

	return r.writeFile(path, b.String())
}

// RenderSummary prints the run summary to stdout
func (r *Renderer) RenderSummary(aggregate *model.AggregateReport) {
	fmt.Printf("\nAudited %d artifact(s), mean credibility %.2f\n",
		len(aggregate.Artifacts), aggregate.MeanCredibility)
	for _, category := range model.GapCategories {
		if n := aggregate.GapTotals[category]; n > 0 {
			fmt.Printf("  %s: %d\n", category, n)
		}
	}
	if aggregate.NotFound > 0 {
		fmt.Printf("  not found: %d\n", aggregate.NotFound)
	}
	if aggregate.DroppedClaims > 0 {
		fmt.Printf("  dropped claims: %d\n", aggregate.DroppedClaims)
	}
}

func (r *Renderer) writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// slugify turns an artifact identifier into a report filename
func slugify(artifact string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s := replacer.Replace(artifact)
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
