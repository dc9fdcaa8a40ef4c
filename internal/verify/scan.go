package verify

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// Source is one artifact's content prepared for scanning. Checks are pure
// functions of a Source; two runs over unchanged content must produce
// byte-identical results.
type Source struct {
	Artifact  string
	Lines     []Line
	Malformed bool
	Reason    string // set when Malformed
}

// Line is one scanned line with the contexts checks must exclude
// precomputed: comment-stripped code, display-only lines, and
// provably-dead lines.
type Line struct {
	Num     int    // 1-based
	Text    string // raw line
	Code    string // comment-stripped
	Display bool   // feeds console/preview output only
	Dead    bool   // inside a provably-unreachable block
}

// NewSource prepares artifact content for the check registry.
// Binary or invalid-UTF-8 content is marked malformed; checks then
// return UNABLE_TO_VERIFY rather than guessing.
func NewSource(artifact string, content []byte) *Source {
	src := &Source{Artifact: artifact}

	if !utf8.Valid(content) {
		src.Malformed = true
		src.Reason = "content is not valid UTF-8"
		return src
	}
	if bytes.IndexByte(content, 0) >= 0 {
		src.Malformed = true
		src.Reason = "content contains binary data"
		return src
	}

	raw := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")

	deadIndent := -1 // indentation of the open dead block, -1 when none
	for i, text := range raw {
		code := stripComment(text)
		trimmed := strings.TrimSpace(code)
		indent := indentWidth(text)

		dead := false
		if deadIndent >= 0 {
			if trimmed == "" || indent > deadIndent {
				dead = true
			} else {
				deadIndent = -1
			}
		}
		if !dead && isDeadOpener(trimmed) {
			deadIndent = indent
		}

		src.Lines = append(src.Lines, Line{
			Num:     i + 1,
			Text:    text,
			Code:    code,
			Display: isDisplayLine(code),
			Dead:    dead,
		})
	}

	return src
}

// CodeLines returns the lines checks should scan: comment-stripped,
// excluding dead blocks
func (s *Source) CodeLines() []Line {
	var out []Line
	for _, line := range s.Lines {
		if line.Dead || strings.TrimSpace(line.Code) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// stripComment cuts a trailing # comment, respecting string literals
func stripComment(line string) string {
	var quote rune
	escaped := false
	for i, r := range line {
		if escaped {
			escaped = false
			continue
		}
		switch {
		case r == '\\':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '#':
			return line[:i]
		}
	}
	return line
}

// isDisplayLine reports whether a line only feeds console/preview output.
// A truncation limit inside a print call is preview formatting, not a
// defect.
func isDisplayLine(code string) bool {
	lower := strings.ToLower(strings.TrimSpace(code))
	for _, prefix := range []string{"print(", "print ", "pprint(", "console."} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	for _, fragment := range []string{"logger.", "logging.", "log.debug(", "log.info(", "log.warning(", "log.error("} {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

// isDeadOpener recognizes a conditional that can never run
func isDeadOpener(trimmed string) bool {
	lower := strings.ToLower(trimmed)
	return strings.HasPrefix(lower, "if false:") ||
		strings.HasPrefix(lower, "if 0:") ||
		strings.HasPrefix(lower, "if false :") ||
		strings.HasPrefix(lower, "while false:") ||
		strings.HasPrefix(lower, "while 0:")
}

// indentWidth measures leading whitespace, tabs counting as four columns
func indentWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}
