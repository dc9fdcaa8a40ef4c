package adapters

import (
	"fmt"
	"strings"

	"github.com/claimcheck/claimcheck/internal/model"
)

// Adapter normalizes one producer-specific document shape into canonical
// claims. Adapters must tolerate key absence, type variance, and unknown
// extra fields; a shape no adapter recognizes yields zero claims.
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// CanHandle checks if this adapter recognizes the document shape
	CanHandle(root any) bool

	// Extract emits canonical claims from the document
	Extract(root any, source string) []model.Claim
}

// Registry manages shape adapters
type Registry struct {
	adapters []Adapter
}

// NewRegistry creates a registry with the built-in adapters
func NewRegistry() *Registry {
	registry := &Registry{}
	registry.Register(NewMarkersAdapter())
	registry.Register(NewGraphAdapter())
	registry.Register(NewPatternsAdapter())
	return registry
}

// Register registers a new adapter
func (r *Registry) Register(adapter Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// Normalize runs every adapter that recognizes the document and collects
// the canonical claims. A document may carry several record kinds at once
// (markers plus a pattern registry, say), so all matching adapters run.
func (r *Registry) Normalize(root any, source string) []model.Claim {
	var claims []model.Claim
	for _, adapter := range r.adapters {
		if adapter.CanHandle(root) {
			claims = append(claims, adapter.Extract(root, source)...)
		}
	}
	return claims
}

// asMap returns the value as a string-keyed map, if it is one
func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// asList returns the value as a list, if it is one
func asList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// stringField returns the first present key rendered as a string.
// Numbers and booleans are stringified; absent keys fall back to "".
func stringField(m map[string]any, keys ...string) string {
	for _, key := range keys {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			return strings.TrimSpace(val)
		case float64, int, int64, bool:
			return fmt.Sprintf("%v", val)
		}
	}
	return ""
}

// intField returns the first present key as an int, or -1 when absent
func intField(m map[string]any, keys ...string) int {
	for _, key := range keys {
		switch val := m[key].(type) {
		case float64:
			return int(val)
		case int:
			return val
		case int64:
			return int(val)
		}
	}
	return -1
}

// listField returns the first present key that holds a list
func listField(m map[string]any, keys ...string) []any {
	for _, key := range keys {
		if l, ok := asList(m[key]); ok {
			return l
		}
	}
	return nil
}

// targetsField collects target identifiers, tolerating the three shapes
// seen across producers: a plain string, a list of strings, or an object
// with a file/path/artifact key.
func targetsField(m map[string]any, keys ...string) []string {
	var targets []string
	for _, key := range keys {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			if s := strings.TrimSpace(val); s != "" {
				targets = append(targets, s)
			}
		case []any:
			for _, item := range val {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					targets = append(targets, strings.TrimSpace(s))
				}
			}
		case map[string]any:
			if s := stringField(val, "file", "path", "artifact", "name"); s != "" {
				targets = append(targets, s)
			}
		}
		if len(targets) > 0 {
			return targets
		}
	}
	return targets
}
