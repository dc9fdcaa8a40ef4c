package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/claimcheck/claimcheck/internal/artifact"
	"github.com/claimcheck/claimcheck/internal/model"
	"github.com/claimcheck/claimcheck/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	sourcesDir   string
	artifactRoot string
	outputDir    string
	allArtifacts bool
	validateOnly bool
	withMarkdown bool
	noCache      bool
	noFooter     bool
	concurrency  int
	loadTimeout  time.Duration
	runTimeout   time.Duration
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [artifact...]",
	Short: "Verify claims against artifacts and report trust gaps",
	Long: `Run executes the three stages in order:
- Extract claims from upstream analysis documents
- Verify each artifact's actual content with the check registry
- Classify every discrepancy into a gap category and score credibility

Name artifacts explicitly (relative to the artifact root) or pass --all
to audit every known artifact. Exits non-zero if any artifact could not
be located.

Example:
  claimcheck run --sources ./analysis --artifact-root ./src --all
  claimcheck run --sources ./analysis --artifact-root ./src pkg/parser.py
  claimcheck run --sources ./analysis --artifact-root ./src --all --validate-only`,
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Input flags
	runCmd.Flags().StringVar(&sourcesDir, "sources", "", "directory of upstream claim-source documents (required)")
	runCmd.Flags().StringVar(&artifactRoot, "artifact-root", ".", "root directory artifacts resolve against")
	runCmd.Flags().BoolVar(&allArtifacts, "all", false, "audit every known artifact under the root")

	// Output flags
	runCmd.Flags().StringVar(&outputDir, "output-dir", "./claimcheck-reports", "output directory for reports")
	runCmd.Flags().BoolVar(&withMarkdown, "md", false, "write Markdown reports alongside JSON")
	runCmd.Flags().BoolVar(&validateOnly, "validate-only", false, "run extraction and verification but skip writing reports")
	runCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Execution flags
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact content cache")
	runCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent audit workers")
	runCmd.Flags().DurationVar(&loadTimeout, "load-timeout", 10*time.Second, "timeout for loading one artifact's content")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 10*time.Minute, "total timeout for the run")

	_ = runCmd.MarkFlagRequired("sources")
}

func runAudit(cmd *cobra.Command, args []string) error {
	if !allArtifacts && len(args) == 0 {
		return fmt.Errorf("name at least one artifact or pass --all")
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	// Build configuration from config file then flags
	cfg := loadConfig()
	applyFlagOverrides(cfg, cmd)
	cfg.Output.Verbose = cfg.Output.Verbose || verbose

	store := artifact.NewFSStore(artifactRoot, cfg)

	artifacts := args
	if allArtifacts {
		// Failing to enumerate the artifact set is the one fatal condition
		known, err := store.List()
		if err != nil {
			return fmt.Errorf("enumerate artifacts: %w", err)
		}
		artifacts = known
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Sources: %s\n", sourcesDir)
		fmt.Fprintf(os.Stderr, "Artifact root: %s\n", artifactRoot)
		fmt.Fprintf(os.Stderr, "Artifacts: %d\n", len(artifacts))
		fmt.Fprintf(os.Stderr, "Workers: %d\n", cfg.Concurrency.Workers)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg, store)

	result, err := p.Run(ctx, sourcesDir, artifacts)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if verbose {
		total := 0
		for _, set := range result.Extraction.Claims {
			total += set.Len()
		}
		fmt.Fprintf(os.Stderr, "✓ Extracted %d claims (%d dropped)\n", total, result.Extraction.Dropped)
		for _, skipped := range result.Extraction.SkippedSources {
			fmt.Fprintf(os.Stderr, "✗ Skipped unreadable source: %s\n", skipped)
		}
		fmt.Fprintf(os.Stderr, "✓ Audited %d artifacts\n", len(result.Reports))
	}

	if !validateOnly {
		if err := p.Renderer().RenderAll(result, outputDir, withMarkdown); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote reports to %s\n", outputDir)
		}
	}

	p.Renderer().RenderSummary(result.Aggregate)

	if n := result.Aggregate.NotFound; n > 0 {
		return fmt.Errorf("%d artifact(s) could not be located", n)
	}
	return nil
}

// applyFlagOverrides layers explicitly-set flags over the file config.
// Flag defaults must never clobber values the config file supplied.
func applyFlagOverrides(cfg *model.Config, cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("load-timeout") {
		cfg.Load.Timeout = loadTimeout
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency.Workers = concurrency
	}
	if flags.Changed("no-footer") {
		cfg.Output.IncludeFooter = !noFooter
	}
}

// loadConfig layers the config file over the defaults
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	if viper.ConfigFileUsed() != "" {
		if err := viper.Unmarshal(cfg); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "Warning: config file ignored: %v\n", err)
		}
	}
	return cfg
}
