package model

import "math"

// ArtifactReport aggregates claims, verification results, and classified
// gaps for one artifact. Reports are rebuilt from scratch each run and
// carry no timestamps: re-running on unchanged inputs must reproduce
// byte-identical output.
type ArtifactReport struct {
	Artifact string `json:"artifact"` // Artifact identifier

	Credibility float64 `json:"credibility"` // verified / (verified + failed), two decimals
	Verified    int     `json:"verified"`
	Failed      int     `json:"failed"`
	Unable      int     `json:"unable"`

	ClaimCount int  `json:"claim_count"`
	NotFound   bool `json:"not_found,omitempty"` // Artifact content could not be located

	Results []VerificationResult `json:"results"`
	Gaps    []Gap                `json:"gaps"`

	// UnfinishedBusiness counts everything still demanding attention:
	// classified gaps plus checks that could not reach a verdict.
	UnfinishedBusiness int `json:"unfinished_business"`
}

// SummaryRow is one artifact's line in the aggregate report
type SummaryRow struct {
	Artifact    string  `json:"artifact"`
	Credibility float64 `json:"credibility"`
	Gaps        int     `json:"gaps"`
	NotFound    bool    `json:"not_found,omitempty"`
}

// AggregateReport is the cross-artifact summary. It is a pure reduction
// over completed artifact reports and is only produced for a complete
// artifact set.
type AggregateReport struct {
	Artifacts       []SummaryRow        `json:"artifacts"`
	MeanCredibility float64             `json:"mean_credibility"`
	GapTotals       map[GapCategory]int `json:"gap_totals"`
	NotFound        int                 `json:"not_found"`
	DroppedClaims   int                 `json:"dropped_claims"` // Claims whose target never resolved
}

// Credibility computes the credibility score from check counts,
// rounded to two decimals. Defined as 0.0 when no check reached a
// VERIFIED or FAILED verdict.
func Credibility(verified, failed int) float64 {
	total := verified + failed
	if total == 0 {
		return 0.0
	}
	return math.Round(float64(verified)/float64(total)*100) / 100
}
