package adapters

import (
	"testing"

	"github.com/claimcheck/claimcheck/internal/model"
)

func TestMarkersAdapter_TargetVariance(t *testing.T) {
	adapter := NewMarkersAdapter()

	tests := []struct {
		name    string
		record  map[string]any
		targets []string
	}{
		{
			name: "string target",
			record: map[string]any{
				"category": "resolution",
				"text":     "fixed the parser",
				"target":   "parser.py",
			},
			targets: []string{"parser.py"},
		},
		{
			name: "list target",
			record: map[string]any{
				"type":  "fix",
				"text":  "fixed error handling",
				"files": []any{"a.py", "b.py"},
			},
			targets: []string{"a.py", "b.py"},
		},
		{
			name: "object target",
			record: map[string]any{
				"kind":   "resolved",
				"text":   "fixed truncation",
				"target": map[string]any{"file": "c.py"},
			},
			targets: []string{"c.py"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := map[string]any{"markers": []any{tt.record}}
			if !adapter.CanHandle(root) {
				t.Fatal("expected adapter to handle markers document")
			}
			claims := adapter.Extract(root, "test")
			if len(claims) != len(tt.targets) {
				t.Fatalf("expected %d claims, got %d", len(tt.targets), len(claims))
			}
			for i, claim := range claims {
				if claim.Target != tt.targets[i] {
					t.Errorf("claim %d: expected target %q, got %q", i, tt.targets[i], claim.Target)
				}
				if claim.Category != model.CategoryResolution {
					t.Errorf("claim %d: expected resolution category, got %s", i, claim.Category)
				}
			}
		})
	}
}

func TestMarkersAdapter_UnknownCategoryDropped(t *testing.T) {
	adapter := NewMarkersAdapter()

	root := map[string]any{
		"annotations": []any{
			map[string]any{"category": "weather", "text": "it rained"},
			map[string]any{"category": "unresolved issue", "text": "cache still races", "target": "cache.py"},
			map[string]any{"text": "no category at all"},
			"not even a map",
		},
	}

	claims := adapter.Extract(root, "test")
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}
	if claims[0].Category != model.CategoryUnresolvedIssue {
		t.Errorf("expected unresolved_issue, got %s", claims[0].Category)
	}
}

func TestMarkersAdapter_LocatorAndEvidence(t *testing.T) {
	adapter := NewMarkersAdapter()

	root := map[string]any{
		"markers": []any{
			map[string]any{
				"category":      "rule",
				"text":          "always validate inputs",
				"evidence":      "agreed in review",
				"message_index": float64(7),
			},
		},
	}

	claims := adapter.Extract(root, "session-04")
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}
	if claims[0].Locator != 7 {
		t.Errorf("expected locator 7, got %d", claims[0].Locator)
	}
	if claims[0].Evidence != "agreed in review" {
		t.Errorf("unexpected evidence: %q", claims[0].Evidence)
	}
	if claims[0].Source != "session-04" {
		t.Errorf("unexpected source: %q", claims[0].Source)
	}
}

func TestGraphAdapter_ConfidenceNodes(t *testing.T) {
	adapter := NewGraphAdapter()

	root := map[string]any{
		"graph": map[string]any{
			"nodes": []any{
				map[string]any{"label": "parser handles unicode", "confidence": 0.9},
				map[string]any{"label": "rewrite the cache", "confidence": "high", "kind": "idea"},
				map[string]any{"label": "no confidence here"},
			},
		},
	}

	if !adapter.CanHandle(root) {
		t.Fatal("expected adapter to handle graph document")
	}

	claims := adapter.Extract(root, "test")
	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(claims))
	}
	if claims[0].Category != model.CategoryConfidence {
		t.Errorf("expected confidence category, got %s", claims[0].Category)
	}
	if claims[1].Category != model.CategoryIdeaConfidence {
		t.Errorf("expected idea_confidence category, got %s", claims[1].Category)
	}
	if claims[0].Evidence != "confidence=0.9" {
		t.Errorf("unexpected evidence: %q", claims[0].Evidence)
	}
}

func TestPatternsAdapter_Instances(t *testing.T) {
	adapter := NewPatternsAdapter()

	root := map[string]any{
		"patterns": []any{
			map[string]any{
				"name": "premature_victory",
				"instances": []any{
					"all tests now pass",
					map[string]any{"text": "everything is fixed", "message_index": float64(12)},
				},
			},
			map[string]any{
				"name":      "scope_creep",
				"instances": []any{map[string]any{"text": "also rewrote the config", "target": "config.py"}},
			},
		},
	}

	claims := adapter.Extract(root, "test")
	if len(claims) != 3 {
		t.Fatalf("expected 3 claims, got %d", len(claims))
	}
	for _, claim := range claims {
		if claim.Category != model.CategoryBehavioralPattern {
			t.Errorf("expected behavioral_pattern, got %s", claim.Category)
		}
	}
	if claims[0].Source != "pattern:premature_victory" {
		t.Errorf("unexpected source: %q", claims[0].Source)
	}
	if claims[1].Locator != 12 {
		t.Errorf("expected locator 12, got %d", claims[1].Locator)
	}
	if claims[2].Target != "config.py" {
		t.Errorf("expected target config.py, got %q", claims[2].Target)
	}
}

func TestRegistry_NormalizeMixedDocument(t *testing.T) {
	registry := NewRegistry()

	root := map[string]any{
		"markers":  []any{map[string]any{"category": "resolution", "text": "fixed it", "target": "x.py"}},
		"patterns": []any{map[string]any{"name": "premature_victory", "instances": []any{"done!"}}},
	}

	claims := registry.Normalize(root, "mixed")
	if len(claims) != 2 {
		t.Fatalf("expected 2 claims from mixed document, got %d", len(claims))
	}
}

func TestRegistry_UnknownShapeYieldsNothing(t *testing.T) {
	registry := NewRegistry()

	for _, root := range []any{
		map[string]any{"totally": "unrelated"},
		[]any{"a", "b"},
		"just a string",
		nil,
	} {
		if claims := registry.Normalize(root, "test"); len(claims) != 0 {
			t.Errorf("expected no claims for shape %T, got %d", root, len(claims))
		}
	}
}
