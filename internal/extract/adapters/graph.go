package adapters

import (
	"fmt"

	"github.com/claimcheck/claimcheck/internal/model"
)

// GraphAdapter normalizes confidence-labeled graph nodes. Graph-shaped
// producers attach confidence values to labeled nodes rather than naming
// target artifacts; the extractor resolves these by text overlap later.
type GraphAdapter struct{}

// NewGraphAdapter creates a new graph adapter
func NewGraphAdapter() *GraphAdapter {
	return &GraphAdapter{}
}

// Name returns the adapter name
func (a *GraphAdapter) Name() string {
	return "graph"
}

// CanHandle checks for a node list, either top-level or under "graph"
func (a *GraphAdapter) CanHandle(root any) bool {
	return a.nodes(root) != nil
}

// Extract emits a confidence claim per confidence-labeled node
func (a *GraphAdapter) Extract(root any, source string) []model.Claim {
	var claims []model.Claim
	for _, n := range a.nodes(root) {
		node, ok := asMap(n)
		if !ok {
			continue
		}

		confidence := stringField(node, "confidence", "certainty", "score")
		if confidence == "" {
			continue
		}

		text := stringField(node, "label", "text", "title", "statement")
		if text == "" {
			continue
		}

		category := model.CategoryConfidence
		if kind := stringField(node, "kind", "node_type"); kind == "idea" {
			category = model.CategoryIdeaConfidence
		}

		claims = append(claims, model.Claim{
			Source:   source,
			Text:     text,
			Category: category,
			Evidence: fmt.Sprintf("confidence=%s", confidence),
			Locator:  intField(node, "message_index", "index"),
		})
	}
	return claims
}

// nodes locates the node list across the shapes producers use
func (a *GraphAdapter) nodes(root any) []any {
	m, ok := asMap(root)
	if !ok {
		return nil
	}
	if graph, ok := asMap(m["graph"]); ok {
		if nodes := listField(graph, "nodes"); nodes != nil {
			return nodes
		}
	}
	return listField(m, "nodes")
}
