package verify

import (
	"context"

	"github.com/claimcheck/claimcheck/internal/artifact"
	"github.com/claimcheck/claimcheck/internal/model"
)

// Verifier runs the check registry against one artifact's current content
type Verifier struct {
	store    artifact.Store
	registry *Registry
}

// NewVerifier creates a new verifier
func NewVerifier(store artifact.Store, registry *Registry) *Verifier {
	return &Verifier{
		store:    store,
		registry: registry,
	}
}

// Registry exposes the check registry for classification
func (v *Verifier) Registry() *Registry {
	return v.registry
}

// Verify loads the artifact and runs every applicable check, returning an
// ordered result list. A missing artifact yields the single synthetic
// file_exists failure and no further checks.
func (v *Verifier) Verify(ctx context.Context, artifactID string, claims model.ClaimSet) []model.VerificationResult {
	content, err := v.store.Resolve(ctx, artifactID)
	if err != nil {
		return []model.VerificationResult{{
			CheckName: model.CheckFileExists,
			Status:    model.StatusFailed,
			Evidence:  "artifact not found",
		}}
	}

	src := NewSource(artifactID, content)

	var results []model.VerificationResult
	for _, check := range v.registry.Universal() {
		results = append(results, check.Run(src))
	}

	// Claim-bound checks run per claim; identical parameters from
	// multiple claims collapse to one result.
	seen := make(map[string]bool)
	for _, check := range v.registry.ClaimBound() {
		for _, claim := range claims[check.Category()] {
			result, ok := check.Run(src, claim)
			if !ok {
				continue
			}
			key := string(result.CheckName) + "\x00" + result.Subject
			if seen[key] {
				continue
			}
			seen[key] = true
			results = append(results, result)
		}
	}

	return results
}
