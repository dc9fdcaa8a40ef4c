package verify

import (
	"fmt"
	"regexp"

	"github.com/claimcheck/claimcheck/internal/model"
)

// routineExistsCheck confirms that a routine named by a resolution claim
// is actually defined. It only runs when a claim names one, keeping the
// check set proportional to what was claimed.
type routineExistsCheck struct{}

func (c *routineExistsCheck) Name() model.CheckName         { return model.CheckRoutineExists }
func (c *routineExistsCheck) Category() model.ClaimCategory { return model.CategoryResolution }

func (c *routineExistsCheck) Run(src *Source, claim model.Claim) (model.VerificationResult, bool) {
	routine, ok := RoutineName(claim.Text)
	if !ok {
		return model.VerificationResult{}, false
	}

	if src.Malformed {
		result := unableResult(c.Name(), src)
		result.Subject = routine
		return result, true
	}

	pattern := regexp.MustCompile(`^\s*(?:def|class)\s+` + regexp.QuoteMeta(routine) + `\b`)
	for _, line := range src.CodeLines() {
		if pattern.MatchString(line.Code) {
			return model.VerificationResult{
				CheckName: c.Name(),
				Status:    model.StatusVerified,
				Evidence:  fmt.Sprintf("routine %q defined at line %d", routine, line.Num),
				Subject:   routine,
			}, true
		}
	}

	return model.VerificationResult{
		CheckName: c.Name(),
		Status:    model.StatusFailed,
		Evidence:  fmt.Sprintf("routine %q not found across %d scanned lines", routine, len(src.Lines)),
		Subject:   routine,
	}, true
}
