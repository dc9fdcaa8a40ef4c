package model

// GapCategory captures the type of trust gap detected by the classifier
type GapCategory string

const (
	// GapContradicted means an independent check found the opposite of the claimed state
	GapContradicted GapCategory = "CONTRADICTED"
	// GapUnverified means a claim exists but no check covers it
	GapUnverified GapCategory = "UNVERIFIED"
	// GapUnmonitored means a check passes today but nothing prevents regression
	GapUnmonitored GapCategory = "UNMONITORED"
	// GapPrematureVictory means a completion claim has no supporting evidence trail
	GapPrematureVictory GapCategory = "PREMATURE_VICTORY"
)

// GapCategories lists every gap category in stable report order
var GapCategories = []GapCategory{
	GapContradicted,
	GapUnverified,
	GapUnmonitored,
	GapPrematureVictory,
}

// Gap is a classified discrepancy between claimed and verified state.
// Gaps are derived, never stored independently of their source claim or
// check; recomputing from the same inputs yields the same gap set.
type Gap struct {
	Category  GapCategory `json:"category"`
	Reference string      `json:"reference"` // "check:<name>" or "claim:<category>:<text prefix>"
	Detail    string      `json:"detail"`
}
