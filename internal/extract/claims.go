package extract

import (
	"path/filepath"
	"strings"

	"github.com/claimcheck/claimcheck/internal/extract/adapters"
	"github.com/claimcheck/claimcheck/internal/model"
)

// ClaimExtractor normalizes upstream documents into canonical claims and
// resolves each claim onto the artifacts it targets
type ClaimExtractor struct {
	registry   *adapters.Registry
	resolution model.ResolutionConfig
}

// NewClaimExtractor creates a new claim extractor
func NewClaimExtractor(resolution model.ResolutionConfig) *ClaimExtractor {
	return &ClaimExtractor{
		registry:   adapters.NewRegistry(),
		resolution: resolution,
	}
}

// Result is the extractor output: a claim set per known artifact, plus
// diagnostics. Every known artifact appears as a key even when nothing
// targeted it.
type Result struct {
	Claims         map[string]model.ClaimSet
	Dropped        int      // Claims whose target never resolved
	SkippedSources []string // Documents that could not be decoded
}

// Extract normalizes every document and resolves claims onto the known
// artifacts. A claim that resolves to nothing is dropped and counted; it
// must never silently attach to an unintended artifact.
func (e *ClaimExtractor) Extract(docs []Document, artifacts []string) *Result {
	result := &Result{
		Claims: make(map[string]model.ClaimSet, len(artifacts)),
	}
	for _, artifact := range artifacts {
		result.Claims[artifact] = model.NewClaimSet()
	}

	for _, doc := range docs {
		for _, claim := range e.registry.Normalize(doc.Root, sourceName(doc.Path)) {
			targets := e.resolve(claim, artifacts)
			if len(targets) == 0 {
				result.Dropped++
				continue
			}
			for _, target := range targets {
				result.Claims[target].Add(claim)
			}
		}
	}

	return result
}

// resolve maps one claim onto the artifacts it applies to.
// Confidence-type claims carry no target field and go through text
// overlap; everything else resolves through membership groups, wildcard
// phrases, then direct identifier matching. Ambiguous ties attach to all
// matches: over-inclusion beats silent loss.
func (e *ClaimExtractor) resolve(claim model.Claim, artifacts []string) []string {
	switch claim.Category {
	case model.CategoryConfidence, model.CategoryIdeaConfidence:
		return e.resolveByOverlap(claim, artifacts)
	}

	target := strings.ToLower(strings.TrimSpace(claim.Target))
	haystack := target
	if haystack == "" {
		haystack = strings.ToLower(claim.Text)
	}

	// Group phrases are checked before wildcards so that "every artifact
	// that calls X" resolves to the group, not the whole set
	for _, group := range e.resolution.Groups {
		for _, phrase := range group.Phrases {
			if strings.Contains(haystack, strings.ToLower(phrase)) {
				return intersect(group.Artifacts, artifacts)
			}
		}
	}

	for _, phrase := range e.resolution.WildcardPhrases {
		if strings.Contains(haystack, strings.ToLower(phrase)) {
			return artifacts
		}
	}

	if target == "" {
		return nil
	}

	var matched []string
	for _, artifact := range artifacts {
		if matchesArtifact(target, artifact) {
			matched = append(matched, artifact)
		}
	}
	return matched
}

// resolveByOverlap attaches a targetless claim to every artifact whose
// base name appears in the claim text
func (e *ClaimExtractor) resolveByOverlap(claim model.Claim, artifacts []string) []string {
	text := strings.ToLower(claim.Text)
	var matched []string
	for _, artifact := range artifacts {
		base := strings.ToLower(baseName(artifact))
		if len(base) < 2 {
			continue
		}
		if strings.Contains(text, strings.ToLower(artifact)) || containsToken(text, base) {
			matched = append(matched, artifact)
		}
	}
	return matched
}

// matchesArtifact reports whether a claim target resolves to an artifact:
// exact match against the full identifier or its base name, the target
// phrase mentioning either, or a path-like target appearing inside the
// identifier.
func matchesArtifact(target, artifact string) bool {
	full := strings.ToLower(artifact)
	base := strings.ToLower(baseName(artifact))

	if target == full || target == base {
		return true
	}
	if strings.Contains(target, full) {
		return true
	}
	if len(base) >= 2 && containsToken(target, base) {
		return true
	}
	if strings.ContainsAny(target, "/.") && strings.Contains(full, target) {
		return true
	}
	return false
}

// baseName strips directories and the extension from an identifier
func baseName(artifact string) string {
	base := filepath.Base(artifact)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// containsToken reports whether s contains word as a whole token.
// Substring matching alone would let short base names match everything.
func containsToken(s, word string) bool {
	for _, token := range tokenize(s) {
		if token == word {
			return true
		}
	}
	return false
}

// tokenize splits on everything except letters, digits, and underscores
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			return false
		case r >= '0' && r <= '9':
			return false
		case r == '_':
			return false
		}
		return true
	})
}

// intersect keeps group members that are actually known artifacts
func intersect(members, artifacts []string) []string {
	var out []string
	for _, artifact := range artifacts {
		for _, member := range members {
			if matchesArtifact(strings.ToLower(member), artifact) {
				out = append(out, artifact)
				break
			}
		}
	}
	return out
}

// sourceName reduces a document path to a stable producer label
func sourceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
