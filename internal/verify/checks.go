package verify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/claimcheck/claimcheck/internal/model"
)

// unableResult is the shared UNABLE_TO_VERIFY outcome for malformed content
func unableResult(name model.CheckName, src *Source) model.VerificationResult {
	return model.VerificationResult{
		CheckName: name,
		Status:    model.StatusUnable,
		Evidence:  fmt.Sprintf("cannot scan %s: %s", src.Artifact, src.Reason),
	}
}

// cleanResult is the shared VERIFIED outcome when a scan finds nothing
func cleanResult(name model.CheckName, src *Source, what string) model.VerificationResult {
	return model.VerificationResult{
		CheckName: name,
		Status:    model.StatusVerified,
		Evidence:  fmt.Sprintf("no %s across %d scanned lines", what, len(src.Lines)),
	}
}

// failedResult builds a FAILED outcome citing every hit
func failedResult(name model.CheckName, hits []string) model.VerificationResult {
	return model.VerificationResult{
		CheckName: name,
		Status:    model.StatusFailed,
		Evidence:  strings.Join(hits, "; "),
		Count:     len(hits),
	}
}

// bareHandlerCheck flags catch-all error handlers that swallow every
// failure type
type bareHandlerCheck struct{}

var bareHandlerPattern = regexp.MustCompile(`^\s*except\s*(BaseException\s*)?:\s*$`)

func (c *bareHandlerCheck) Name() model.CheckName { return model.CheckBareHandler }
func (c *bareHandlerCheck) RegressionProne() bool { return true }

func (c *bareHandlerCheck) Run(src *Source) model.VerificationResult {
	if src.Malformed {
		return unableResult(c.Name(), src)
	}

	var hits []string
	for _, line := range src.CodeLines() {
		if bareHandlerPattern.MatchString(line.Code) {
			hits = append(hits, fmt.Sprintf("catch-all handler at line %d: %q", line.Num, strings.TrimSpace(line.Code)))
		}
	}
	if len(hits) > 0 {
		return failedResult(c.Name(), hits)
	}
	return cleanResult(c.Name(), src, "catch-all error handlers")
}

// hardcodedTruncationCheck flags fixed slice limits on otherwise-unbounded
// collections. Display-only lines are excluded: a preview cap in console
// output is not a defect.
type hardcodedTruncationCheck struct{}

var truncationPattern = regexp.MustCompile(`\[\s*:\s*(\d+)\s*\]`)

func (c *hardcodedTruncationCheck) Name() model.CheckName { return model.CheckHardcodedTruncation }
func (c *hardcodedTruncationCheck) RegressionProne() bool { return true }

func (c *hardcodedTruncationCheck) Run(src *Source) model.VerificationResult {
	if src.Malformed {
		return unableResult(c.Name(), src)
	}

	var hits []string
	for _, line := range src.CodeLines() {
		if line.Display {
			continue
		}
		for _, m := range truncationPattern.FindAllStringSubmatch(line.Code, -1) {
			hits = append(hits, fmt.Sprintf("truncation limit [:%s] at line %d", m[1], line.Num))
		}
	}
	if len(hits) > 0 {
		return failedResult(c.Name(), hits)
	}
	return cleanResult(c.Name(), src, "hard-coded truncation limits")
}

// duplicateDefinitionCheck flags routines defined more than once.
// When configured with singular routine names only those are considered;
// otherwise any repeated definition is flagged.
type duplicateDefinitionCheck struct {
	singular []string
}

var definitionPattern = regexp.MustCompile(`^\s*def\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)

func (c *duplicateDefinitionCheck) Name() model.CheckName { return model.CheckDuplicateDefinition }
func (c *duplicateDefinitionCheck) RegressionProne() bool { return true }

func (c *duplicateDefinitionCheck) Run(src *Source) model.VerificationResult {
	if src.Malformed {
		return unableResult(c.Name(), src)
	}

	watched := make(map[string]bool, len(c.singular))
	for _, name := range c.singular {
		watched[name] = true
	}

	lines := make(map[string][]int)
	var order []string
	for _, line := range src.CodeLines() {
		m := definitionPattern.FindStringSubmatch(line.Code)
		if m == nil {
			continue
		}
		name := m[1]
		if len(watched) > 0 && !watched[name] {
			continue
		}
		if _, seen := lines[name]; !seen {
			order = append(order, name)
		}
		lines[name] = append(lines[name], line.Num)
	}

	var hits []string
	for _, name := range order {
		if nums := lines[name]; len(nums) > 1 {
			hits = append(hits, fmt.Sprintf("routine %q defined %d times (lines %s)", name, len(nums), joinInts(nums)))
		}
	}
	if len(hits) > 0 {
		return failedResult(c.Name(), hits)
	}
	return cleanResult(c.Name(), src, "duplicate routine definitions")
}

// disallowedBackendCheck flags use of processing backends other than the
// sanctioned one
type disallowedBackendCheck struct {
	sanctioned string
	disallowed []string
}

func (c *disallowedBackendCheck) Name() model.CheckName { return model.CheckDisallowedBackend }
func (c *disallowedBackendCheck) RegressionProne() bool { return true }

func (c *disallowedBackendCheck) Run(src *Source) model.VerificationResult {
	if src.Malformed {
		return unableResult(c.Name(), src)
	}
	if len(c.disallowed) == 0 {
		return model.VerificationResult{
			CheckName: c.Name(),
			Status:    model.StatusVerified,
			Evidence:  fmt.Sprintf("no alternative backends configured; %d lines scanned", len(src.Lines)),
		}
	}

	var hits []string
	for _, line := range src.CodeLines() {
		lower := strings.ToLower(line.Code)
		for _, backend := range c.disallowed {
			if containsWord(lower, strings.ToLower(backend)) {
				hits = append(hits, fmt.Sprintf("disallowed backend %q at line %d", backend, line.Num))
			}
		}
	}
	if len(hits) > 0 {
		return failedResult(c.Name(), hits)
	}
	what := "disallowed backends"
	if c.sanctioned != "" {
		what = fmt.Sprintf("backends other than %q", c.sanctioned)
	}
	return cleanResult(c.Name(), src, what)
}

// unguardedAccessCheck flags direct indexing into response structures
// that may be absent. A guard must involve the checked variable itself:
// a .get call on it, or a membership test against it rather than against
// an element indexed out of it. Iterating `response["items"]` is still an
// unguarded access.
type unguardedAccessCheck struct {
	variables []string
}

func (c *unguardedAccessCheck) Name() model.CheckName { return model.CheckUnguardedAccess }
func (c *unguardedAccessCheck) RegressionProne() bool { return true }

func (c *unguardedAccessCheck) Run(src *Source) model.VerificationResult {
	if src.Malformed {
		return unableResult(c.Name(), src)
	}

	type varPatterns struct {
		access *regexp.Regexp
		guard  *regexp.Regexp
	}
	patterns := make([]varPatterns, 0, len(c.variables))
	for _, v := range c.variables {
		q := regexp.QuoteMeta(v)
		patterns = append(patterns, varPatterns{
			access: regexp.MustCompile(`\b` + q + `\s*\[`),
			// "in <var>[" is indexing, not a membership test on <var>
			guard: regexp.MustCompile(`\b` + q + `\s*\.get\(|\bin\s+` + q + `\b(?:\s*$|\s*[^\s\[])`),
		})
	}

	var hits []string
	for _, line := range src.CodeLines() {
		for i, p := range patterns {
			if !p.access.MatchString(line.Code) {
				continue
			}
			if p.guard.MatchString(line.Code) {
				continue
			}
			hits = append(hits, fmt.Sprintf("unguarded access to %q at line %d", c.variables[i], line.Num))
		}
	}
	if len(hits) > 0 {
		return failedResult(c.Name(), hits)
	}
	return cleanResult(c.Name(), src, "unguarded response access")
}

func containsWord(s, word string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		if (start == 0 || !isWordRune(s[start-1])) && (end == len(s) || !isWordRune(s[end])) {
			return true
		}
		idx = start + 1
	}
}

func isWordRune(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}
