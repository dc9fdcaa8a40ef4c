package model

// Claim represents an assertion about one artifact, produced by an
// upstream analysis stage and normalized into this canonical shape
type Claim struct {
	Source   string        `json:"source"`             // Which upstream producer generated it (e.g., "markers", "pattern:premature_victory")
	Text     string        `json:"text"`               // The literal assertion
	Category ClaimCategory `json:"category"`           // Claim classification
	Target   string        `json:"target,omitempty"`   // Artifact identifier or identifier pattern, as written upstream
	Evidence string        `json:"evidence,omitempty"` // Supporting text carried from upstream
	Locator  int           `json:"locator,omitempty"`  // Position reference in the upstream stream (message/event index)
}

// ClaimCategory categorizes the nature of the claim
type ClaimCategory string

const (
	CategoryResolution        ClaimCategory = "resolution"         // Something was claimed fixed/resolved
	CategoryUnresolvedIssue   ClaimCategory = "unresolved_issue"   // A known problem left open
	CategoryConfidence        ClaimCategory = "confidence"         // A confidence statement with no explicit target
	CategoryBehavioralPattern ClaimCategory = "behavioral_pattern" // A session-wide behavioral pattern instance
	CategoryRuleEstablishment ClaimCategory = "rule_establishment" // A rule or convention declared upstream
	CategoryIdeaConfidence    ClaimCategory = "idea_confidence"    // Confidence attached to an idea/graph node
)

// Categories lists every claim category in stable report order
var Categories = []ClaimCategory{
	CategoryResolution,
	CategoryUnresolvedIssue,
	CategoryConfidence,
	CategoryBehavioralPattern,
	CategoryRuleEstablishment,
	CategoryIdeaConfidence,
}

// ClaimSet groups one artifact's claims into typed buckets
type ClaimSet map[ClaimCategory][]Claim

// NewClaimSet creates an empty claim set
func NewClaimSet() ClaimSet {
	return make(ClaimSet)
}

// Add appends a claim to its category bucket
func (s ClaimSet) Add(c Claim) {
	s[c.Category] = append(s[c.Category], c)
}

// All returns every claim in the set in stable category order
func (s ClaimSet) All() []Claim {
	var out []Claim
	for _, cat := range Categories {
		out = append(out, s[cat]...)
	}
	return out
}

// Len returns the total number of claims across all buckets
func (s ClaimSet) Len() int {
	n := 0
	for _, claims := range s {
		n += len(claims)
	}
	return n
}
