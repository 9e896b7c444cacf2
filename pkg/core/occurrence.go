package core

import (
	"fmt"
	"path/filepath"
)

// Occurrence represents a single debug-print call site found in a file
type Occurrence struct {
	// Location
	File   string // Absolute or relative file path
	Line   int    // Line number (1-based)
	Column int    // Byte offset of the call token within the line (0-based)

	// The matched call token (e.g. "console.log") and the full line
	Token   string
	RawText string // Original line text, not trimmed

	// Context flags
	Commented      bool // Line is a // or single-line /* */ comment containing the call
	InErrorHandler bool // Lies within a backward-scanned catch-style block

	// Raw functional signals, computed independently
	ReturnValue bool
	Ternary     bool
	Chain       bool
	ArrowBody   bool
	Expression  bool

	// Functional is the combined "removal would change behavior" verdict
	Functional bool

	// Sensitivity of the call's argument text
	Risk        Risk
	RiskMatches []string // Names of the matched sensitive patterns

	// Window holds surrounding lines for human review only.
	// WindowStart is the 1-based line number of Window[0].
	Window      []string
	WindowStart int
}

// NewOccurrence creates an occurrence with required fields
func NewOccurrence(file string, line, column int, token, rawText string) *Occurrence {
	return &Occurrence{
		File:    file,
		Line:    line,
		Column:  column,
		Token:   token,
		RawText: rawText,
	}
}

// WithRisk sets the sensitivity rating and matched pattern names
func (o *Occurrence) WithRisk(risk Risk, matches []string) *Occurrence {
	o.Risk = risk
	o.RiskMatches = matches
	return o
}

// WithWindow attaches the surrounding lines; start is the 1-based
// line number of the first window line.
func (o *Occurrence) WithWindow(lines []string, start int) *Occurrence {
	o.Window = lines
	o.WindowStart = start
	return o
}

// Location returns a formatted location string (file:line:col)
func (o *Occurrence) Location() string {
	if o.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", o.File, o.Line, o.Column+1)
	}
	return fmt.Sprintf("%s:%d", o.File, o.Line)
}

// RelativeFile returns the file path relative to the given root
func (o *Occurrence) RelativeFile(root string) string {
	rel, err := filepath.Rel(root, o.File)
	if err != nil {
		return o.File
	}
	return rel
}

// Context returns a short description of the occurrence's classification
func (o *Occurrence) Context() string {
	switch {
	case o.Commented:
		return "commented-out"
	case o.Functional:
		return "functional"
	case o.InErrorHandler:
		return "error-handler"
	default:
		return "plain"
	}
}

// String returns a human-readable representation
func (o *Occurrence) String() string {
	return fmt.Sprintf("%s: %s [%s, risk=%s]", o.Location(), o.Token, o.Context(), o.Risk)
}

// OccurrenceList is a slice of occurrences with helper methods
type OccurrenceList []*Occurrence

// ByRisk returns occurrences filtered by minimum risk
func (ol OccurrenceList) ByRisk(min Risk) OccurrenceList {
	result := make(OccurrenceList, 0, len(ol))
	for _, o := range ol {
		if o.Risk.IsAtLeast(min) {
			result = append(result, o)
		}
	}
	return result
}

// ByFile groups occurrences by file path
func (ol OccurrenceList) ByFile() map[string]OccurrenceList {
	byFile := make(map[string]OccurrenceList)
	for _, o := range ol {
		byFile[o.File] = append(byFile[o.File], o)
	}
	return byFile
}

// CountByRisk returns a map of risk level to count
func (ol OccurrenceList) CountByRisk() map[Risk]int {
	counts := make(map[Risk]int)
	for _, o := range ol {
		counts[o.Risk]++
	}
	return counts
}

// HasHighRisk returns true if there's at least one high-risk occurrence
func (ol OccurrenceList) HasHighRisk() bool {
	for _, o := range ol {
		if o.Risk == RiskHigh {
			return true
		}
	}
	return false
}
