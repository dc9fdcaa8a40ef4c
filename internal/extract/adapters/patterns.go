package adapters

import (
	"github.com/claimcheck/claimcheck/internal/model"
)

// PatternsAdapter normalizes behavioral pattern registries: named
// patterns (premature_victory among them) with lists of instances.
// The pattern name is carried in the claim source so the classifier can
// recognize premature-victory instances without re-deriving them.
type PatternsAdapter struct{}

// NewPatternsAdapter creates a new patterns adapter
func NewPatternsAdapter() *PatternsAdapter {
	return &PatternsAdapter{}
}

// Name returns the adapter name
func (a *PatternsAdapter) Name() string {
	return "patterns"
}

// CanHandle checks for a pattern registry
func (a *PatternsAdapter) CanHandle(root any) bool {
	m, ok := asMap(root)
	if !ok {
		return false
	}
	return listField(m, "patterns") != nil
}

// Extract emits one behavioral-pattern claim per pattern instance.
// Instances appear both as bare strings and as objects across producers.
func (a *PatternsAdapter) Extract(root any, source string) []model.Claim {
	m, _ := asMap(root)

	var claims []model.Claim
	for _, p := range listField(m, "patterns") {
		pattern, ok := asMap(p)
		if !ok {
			continue
		}
		name := stringField(pattern, "name", "pattern", "id")
		if name == "" {
			continue
		}

		instances := listField(pattern, "instances", "occurrences", "hits")
		for _, inst := range instances {
			claim := model.Claim{
				Source:   "pattern:" + name,
				Category: model.CategoryBehavioralPattern,
				Locator:  -1,
			}
			switch instance := inst.(type) {
			case string:
				claim.Text = instance
			case map[string]any:
				claim.Text = stringField(instance, "text", "claim", "description")
				claim.Evidence = stringField(instance, "evidence", "quote")
				claim.Locator = intField(instance, "message_index", "index")
				targets := targetsField(instance, "target", "targets", "file", "files")
				if len(targets) > 0 {
					claim.Target = targets[0]
					claim.Text = nonEmpty(claim.Text, name)
					claims = append(claims, claim)
					for _, target := range targets[1:] {
						c := claim
						c.Target = target
						claims = append(claims, c)
					}
					continue
				}
			default:
				continue
			}
			claim.Text = nonEmpty(claim.Text, name)
			claims = append(claims, claim)
		}
	}
	return claims
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
