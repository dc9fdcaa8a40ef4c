package verify

import (
	"regexp"
	"strings"

	"github.com/claimcheck/claimcheck/internal/model"
)

// UniversalCheck runs against every artifact regardless of claims
type UniversalCheck interface {
	Name() model.CheckName
	// RegressionProne marks checks whose passing state has no automated
	// guard: the anti-pattern could be reintroduced silently
	RegressionProne() bool
	Run(src *Source) model.VerificationResult
}

// ClaimBoundCheck runs only when a claim of its category is present and
// carries a usable parameter
type ClaimBoundCheck interface {
	Name() model.CheckName
	Category() model.ClaimCategory
	// Run returns false when the claim carries no parameter this check
	// can use; the claim then falls through to UNVERIFIED classification
	Run(src *Source, claim model.Claim) (model.VerificationResult, bool)
}

// Registry is the typed check registry. Every check is reachable by
// construction and every claim category has a defined (possibly empty)
// check binding; there is no dispatch over free-form names.
type Registry struct {
	universal  []UniversalCheck
	claimBound []ClaimBoundCheck
	bindings   map[model.ClaimCategory][]model.CheckName
}

// NewRegistry builds the registry from check configuration
func NewRegistry(cfg model.ChecksConfig) *Registry {
	r := &Registry{
		universal: []UniversalCheck{
			&bareHandlerCheck{},
			&hardcodedTruncationCheck{},
			&duplicateDefinitionCheck{singular: cfg.SingularRoutines},
			&disallowedBackendCheck{sanctioned: cfg.SanctionedBackend, disallowed: cfg.DisallowedBackends},
			&unguardedAccessCheck{variables: cfg.ResponseVariables},
		},
		claimBound: []ClaimBoundCheck{
			&routineExistsCheck{},
		},
	}

	// Every claim category gets an explicit binding, empty where no
	// check applies, so an unmapped category is a construction bug
	// rather than a silent runtime fallthrough.
	r.bindings = map[model.ClaimCategory][]model.CheckName{
		model.CategoryResolution:        {model.CheckBareHandler, model.CheckHardcodedTruncation, model.CheckDuplicateDefinition, model.CheckDisallowedBackend, model.CheckUnguardedAccess, model.CheckRoutineExists},
		model.CategoryUnresolvedIssue:   {model.CheckBareHandler, model.CheckHardcodedTruncation, model.CheckDuplicateDefinition, model.CheckDisallowedBackend, model.CheckUnguardedAccess},
		model.CategoryConfidence:        {},
		model.CategoryBehavioralPattern: {},
		model.CategoryRuleEstablishment: {},
		model.CategoryIdeaConfidence:    {},
	}

	return r
}

// Universal returns the universal checks in registration order
func (r *Registry) Universal() []UniversalCheck {
	return r.universal
}

// ClaimBound returns the claim-bound checks in registration order
func (r *Registry) ClaimBound() []ClaimBoundCheck {
	return r.claimBound
}

// RegressionProne reports whether a check's passing state is unguarded
func (r *Registry) RegressionProne(name model.CheckName) bool {
	for _, check := range r.universal {
		if check.Name() == name {
			return check.RegressionProne()
		}
	}
	return false
}

// RelatedChecks maps one claim onto the checks able to confirm or refute
// it: the category binding narrowed by keyword heuristics on the claim
// text. A claim whose text matches no check is related to nothing and
// classifies as UNVERIFIED.
func (r *Registry) RelatedChecks(claim model.Claim) []model.CheckName {
	bound, ok := r.bindings[claim.Category]
	if !ok || len(bound) == 0 {
		return nil
	}

	lower := strings.ToLower(claim.Text)
	var related []model.CheckName
	for _, name := range bound {
		if name == model.CheckRoutineExists {
			if _, ok := RoutineName(claim.Text); ok {
				related = append(related, name)
			}
			continue
		}
		for _, hint := range checkHints[name] {
			if strings.Contains(lower, hint) {
				related = append(related, name)
				break
			}
		}
	}
	return related
}

// checkHints are the keyword heuristics tying claim text to checks
var checkHints = map[model.CheckName][]string{
	model.CheckBareHandler:         {"except", "exception", "catch", "error handling", "error handler"},
	model.CheckHardcodedTruncation: {"truncat", "limit", "cap ", "capped", "first 50", "slice"},
	model.CheckDuplicateDefinition: {"duplicate", "defined twice", "redefin"},
	model.CheckDisallowedBackend:   {"backend"},
	model.CheckUnguardedAccess:     {"unguarded", "keyerror", "missing key", "guard", "response access"},
}

var routinePatterns = []*regexp.Regexp{
	regexp.MustCompile("`([A-Za-z_][A-Za-z0-9_]*)`"),
	regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\s*\(\)`),
	regexp.MustCompile(`(?i)\b(?:function|routine|method|def)\s+([A-Za-z_][A-Za-z0-9_]*)`),
}

// RoutineName extracts the routine a claim names, if any: a backticked
// identifier, a call-style "name()" mention, or "function/routine/method
// <name>" phrasing.
func RoutineName(text string) (string, bool) {
	for _, pattern := range routinePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return "", false
}
