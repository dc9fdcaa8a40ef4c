package classify

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/claimcheck/claimcheck/internal/model"
	"github.com/claimcheck/claimcheck/internal/verify"
)

// Classifier cross-references one artifact's claims against its
// verification results and assigns every discrepancy to a gap category.
// Classification is a pure function of its inputs: the same claims and
// results always yield the same gap set.
type Classifier struct {
	registry *verify.Registry
}

// NewClassifier creates a new classifier over the check registry
func NewClassifier(registry *verify.Registry) *Classifier {
	return &Classifier{registry: registry}
}

// Classify produces the artifact report: gap list, check counts, and
// credibility score.
//
// Precedence: FAILED checks become CONTRADICTED gaps first; VERIFIED
// regression-prone checks backed by a claim become UNMONITORED; claims no
// check covers become UNVERIFIED; premature-victory pattern instances are
// carried through as PREMATURE_VICTORY. Each underlying fact produces
// exactly one gap: a claim consumed by a CONTRADICTED check is never
// re-reported as UNVERIFIED.
func (c *Classifier) Classify(artifactID string, claims model.ClaimSet, results []model.VerificationResult) *model.ArtifactReport {
	report := &model.ArtifactReport{
		Artifact:   artifactID,
		ClaimCount: claims.Len(),
		Results:    results,
	}

	for _, result := range results {
		switch result.Status {
		case model.StatusVerified:
			report.Verified++
		case model.StatusFailed:
			report.Failed++
		case model.StatusUnable:
			report.Unable++
		}
		if result.CheckName == model.CheckFileExists && result.Status == model.StatusFailed {
			report.NotFound = true
		}
	}

	var gaps []model.Gap

	// A defect found independently is reportable whether or not anything
	// claimed otherwise.
	for _, result := range results {
		if result.Status == model.StatusFailed {
			gaps = append(gaps, model.Gap{
				Category:  model.GapContradicted,
				Reference: checkReference(result),
				Detail:    result.Evidence,
			})
		}
	}

	// "Currently clean" is not "protected": a passing anti-pattern scan
	// backed by a claim still has nothing stopping reintroduction.
	for _, result := range results {
		if result.Status != model.StatusVerified || !c.registry.RegressionProne(result.CheckName) {
			continue
		}
		if c.hasMatchingClaim(result, claims) {
			gaps = append(gaps, model.Gap{
				Category:  model.GapUnmonitored,
				Reference: checkReference(result),
				Detail:    fmt.Sprintf("passes today with no automated guard: %s", result.Evidence),
			})
		}
	}

	for _, claim := range claims.All() {
		if gap, ok := c.classifyClaim(claim, results); ok {
			gaps = append(gaps, gap)
		}
	}

	report.Gaps = gaps
	report.Credibility = model.Credibility(report.Verified, report.Failed)
	report.UnfinishedBusiness = len(gaps) + report.Unable
	return report
}

// classifyClaim assigns at most one gap to a claim
func (c *Classifier) classifyClaim(claim model.Claim, results []model.VerificationResult) (model.Gap, bool) {
	// Premature-victory instances are carried through from the upstream
	// pattern detection, never re-derived here.
	if strings.HasPrefix(claim.Source, "pattern:premature_victory") {
		return model.Gap{
			Category:  model.GapPrematureVictory,
			Reference: claimReference(claim),
			Detail:    fmt.Sprintf("completion claimed without an evidence trail: %s", claim.Text),
		}, true
	}

	covered := false
	for _, result := range c.matchingResults(claim, results) {
		switch result.Status {
		case model.StatusFailed:
			// Already surfaced as CONTRADICTED; one gap per fact.
			return model.Gap{}, false
		case model.StatusVerified:
			// Independently confirmed; any UNMONITORED gap is already
			// attached to the check itself.
			covered = true
		}
	}
	if covered {
		return model.Gap{}, false
	}

	return model.Gap{
		Category:  model.GapUnverified,
		Reference: claimReference(claim),
		Detail:    fmt.Sprintf("no check covers this claim: %s", claim.Text),
	}, true
}

// matchingResults finds the results of checks related to a claim.
// Claim-bound results additionally require the claim's parameter to match
// the result subject.
func (c *Classifier) matchingResults(claim model.Claim, results []model.VerificationResult) []model.VerificationResult {
	related := c.registry.RelatedChecks(claim)
	if len(related) == 0 {
		return nil
	}

	var matched []model.VerificationResult
	for _, result := range results {
		for _, name := range related {
			if result.CheckName != name {
				continue
			}
			if result.Subject != "" {
				routine, ok := verify.RoutineName(claim.Text)
				if !ok || routine != result.Subject {
					continue
				}
			}
			matched = append(matched, result)
		}
	}
	return matched
}

// hasMatchingClaim reports whether any claim relates to a result's check
func (c *Classifier) hasMatchingClaim(result model.VerificationResult, claims model.ClaimSet) bool {
	for _, claim := range claims.All() {
		for _, name := range c.registry.RelatedChecks(claim) {
			if name == result.CheckName {
				return true
			}
		}
	}
	return false
}

// Aggregate reduces completed artifact reports into the run summary.
// It must only be called after every artifact-level audit has finished;
// a partial run produces no aggregate.
func Aggregate(reports []*model.ArtifactReport, droppedClaims int) *model.AggregateReport {
	sorted := make([]*model.ArtifactReport, len(reports))
	copy(sorted, reports)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Artifact < sorted[j].Artifact })

	aggregate := &model.AggregateReport{
		GapTotals:     make(map[model.GapCategory]int, len(model.GapCategories)),
		DroppedClaims: droppedClaims,
	}
	for _, category := range model.GapCategories {
		aggregate.GapTotals[category] = 0
	}

	var credibilitySum float64
	for _, report := range sorted {
		aggregate.Artifacts = append(aggregate.Artifacts, model.SummaryRow{
			Artifact:    report.Artifact,
			Credibility: report.Credibility,
			Gaps:        len(report.Gaps),
			NotFound:    report.NotFound,
		})
		credibilitySum += report.Credibility
		if report.NotFound {
			aggregate.NotFound++
		}
		for _, gap := range report.Gaps {
			aggregate.GapTotals[gap.Category]++
		}
	}

	if len(sorted) > 0 {
		aggregate.MeanCredibility = math.Round(credibilitySum/float64(len(sorted))*100) / 100
	}

	return aggregate
}

func checkReference(result model.VerificationResult) string {
	if result.Subject != "" {
		return fmt.Sprintf("check:%s:%s", result.CheckName, result.Subject)
	}
	return fmt.Sprintf("check:%s", result.CheckName)
}

func claimReference(claim model.Claim) string {
	text := claim.Text
	// Truncate on rune boundaries; references end up in JSON output
	if runes := []rune(text); len(runes) > 60 {
		text = string(runes[:60])
	}
	return fmt.Sprintf("claim:%s:%s", claim.Category, text)
}
