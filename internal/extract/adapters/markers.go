package adapters

import (
	"strings"

	"github.com/claimcheck/claimcheck/internal/model"
)

// MarkersAdapter normalizes marker/annotation-style records: flat lists of
// tagged observations under a "markers", "annotations", or "observations"
// key. This is the most common upstream shape and also the least
// consistent one across producers.
type MarkersAdapter struct {
	categoryHints map[model.ClaimCategory][]string
}

// NewMarkersAdapter creates a new markers adapter
func NewMarkersAdapter() *MarkersAdapter {
	return &MarkersAdapter{
		categoryHints: map[model.ClaimCategory][]string{
			model.CategoryResolution:        {"resolution", "resolved", "fix", "fixed", "repair"},
			model.CategoryUnresolvedIssue:   {"unresolved", "issue", "open", "todo", "known_problem"},
			model.CategoryConfidence:        {"confidence", "certainty"},
			model.CategoryBehavioralPattern: {"pattern", "behavior", "behaviour"},
			model.CategoryRuleEstablishment: {"rule", "convention", "policy"},
			model.CategoryIdeaConfidence:    {"idea"},
		},
	}
}

// Name returns the adapter name
func (a *MarkersAdapter) Name() string {
	return "markers"
}

// CanHandle checks for a marker-style record list
func (a *MarkersAdapter) CanHandle(root any) bool {
	m, ok := asMap(root)
	if !ok {
		return false
	}
	return listField(m, "markers", "annotations", "observations") != nil
}

// Extract emits one claim per recognizable marker record. Records with
// categories no hint matches are dropped rather than guessed at.
func (a *MarkersAdapter) Extract(root any, source string) []model.Claim {
	m, _ := asMap(root)
	records := listField(m, "markers", "annotations", "observations")

	var claims []model.Claim
	for _, rec := range records {
		record, ok := asMap(rec)
		if !ok {
			continue
		}

		category, ok := a.classify(stringField(record, "category", "type", "kind", "tag"))
		if !ok {
			continue
		}

		text := stringField(record, "text", "claim", "content", "note", "description")
		if text == "" {
			continue
		}

		claim := model.Claim{
			Source:   source,
			Text:     text,
			Category: category,
			Evidence: stringField(record, "evidence", "quote", "support"),
			Locator:  intField(record, "message_index", "event_index", "index", "position"),
		}

		targets := targetsField(record, "target", "targets", "file", "files", "artifact", "artifacts", "path")
		if len(targets) == 0 {
			claims = append(claims, claim)
			continue
		}
		for _, target := range targets {
			c := claim
			c.Target = target
			claims = append(claims, c)
		}
	}

	return claims
}

// classifyOrder tests unresolved_issue and idea_confidence before their
// substrings ("resolved", "confidence") can shadow them
var classifyOrder = []model.ClaimCategory{
	model.CategoryUnresolvedIssue,
	model.CategoryIdeaConfidence,
	model.CategoryResolution,
	model.CategoryConfidence,
	model.CategoryBehavioralPattern,
	model.CategoryRuleEstablishment,
}

// classify maps a producer's free-form category label onto the canonical
// claim categories
func (a *MarkersAdapter) classify(label string) (model.ClaimCategory, bool) {
	lower := strings.ToLower(label)
	if lower == "" {
		return "", false
	}
	for _, category := range classifyOrder {
		for _, hint := range a.categoryHints[category] {
			if strings.Contains(lower, hint) {
				return category, true
			}
		}
	}
	return "", false
}
