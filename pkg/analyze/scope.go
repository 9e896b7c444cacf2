package analyze

import (
	"regexp"
	"strings"
)

// Block opener patterns. The leading [^.\w$] keeps .catch() promise
// chains from being mistaken for try/catch handlers.
var (
	CatchOpenerRe = regexp.MustCompile(`(^|[^.\w$])catch\b`)

	FunctionOpenerRe = regexp.MustCompile(
		`(\bfunction\b|=>\s*\{|^\s*(async\s+)?[A-Za-z_$][\w$]*\s*\([^)]*\)\s*\{)`)
)

// ScopeTracker answers "does this line lie inside a block opened
// above it" by a bounded backward scan plus running brace balance.
// It is a deliberate heuristic, not a scope resolver: deeply nested
// blocks and brace-free single-statement blocks can misfire, and that
// is an accepted limitation.
type ScopeTracker struct {
	bound int // Maximum lines scanned backward for an opener
}

// NewScopeTracker creates a tracker with the given backward bound
func NewScopeTracker(bound int) *ScopeTracker {
	if bound < 1 {
		bound = 15
	}
	return &ScopeTracker{bound: bound}
}

// IsWithinBlock reports whether lines[lineIdx] lies inside a block
// whose opener matches the pattern. lineIdx is 0-based.
func (t *ScopeTracker) IsWithinBlock(lineIdx int, lines []string, opener *regexp.Regexp) bool {
	if lineIdx < 0 || lineIdx >= len(lines) {
		return false
	}

	start := lineIdx - t.bound
	if start < 0 {
		start = 0
	}

	for k := lineIdx - 1; k >= start; k-- {
		loc := opener.FindStringIndex(lines[k])
		if loc == nil {
			continue
		}

		// Count the opener line only from the keyword onward, so a
		// leading } (closing the previous block, as in `} catch (e) {`)
		// does not cancel the block's own opening brace.
		openerTail := lines[k][loc[0]:]

		if !strings.Contains(openerTail, "{") {
			// Opener without a brace: either the brace is on the next
			// line or this is a single-statement block. Trust
			// indentation only when the opener directly precedes us.
			if prevNonBlank(lines, lineIdx) == k && indentWidth(lines[lineIdx]) > indentWidth(lines[k]) {
				return true
			}
			continue
		}

		// Re-scan forward from the opener, summing braces per line.
		// Inside iff an opening brace was seen on or after the opener
		// line and the balance is still positive on arrival.
		sawOpen := false
		balance := 0
		for i := k; i < lineIdx; i++ {
			text := lines[i]
			if i == k {
				text = openerTail
			}
			opens := strings.Count(text, "{")
			closes := strings.Count(text, "}")
			if opens > 0 {
				sawOpen = true
			}
			balance += opens - closes
		}
		if sawOpen && balance > 0 {
			return true
		}
		// This block closed before our line; an enclosing opener may
		// still exist further back.
	}

	return false
}

// InCatchBlock reports whether the line lies inside a catch handler
func (t *ScopeTracker) InCatchBlock(lineIdx int, lines []string) bool {
	return t.IsWithinBlock(lineIdx, lines, CatchOpenerRe)
}

// InFunctionBody reports whether the line lies inside a function or
// arrow-function body.
func (t *ScopeTracker) InFunctionBody(lineIdx int, lines []string) bool {
	return t.IsWithinBlock(lineIdx, lines, FunctionOpenerRe)
}

// prevNonBlank returns the index of the nearest non-blank line above
// lineIdx, or -1.
func prevNonBlank(lines []string, lineIdx int) int {
	for i := lineIdx - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			return i
		}
	}
	return -1
}

// indentWidth measures leading whitespace with tabs counted as one
func indentWidth(line string) int {
	n := 0
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			break
		}
		n++
	}
	return n
}
