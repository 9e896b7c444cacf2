package policy

import (
	"fmt"
	"regexp"

	"github.com/logsweep/logsweep/pkg/analyze"
	"github.com/logsweep/logsweep/pkg/core"
)

// Literal normalization for fingerprints. Equality must depend on
// structural shape and flags only, never on literal argument values.
var (
	stringLitRe = regexp.MustCompile(`("([^"\\]|\\.)*"|'([^'\\]|\\.)*'|` + "`[^`]*`" + `)`)
	numberLitRe = regexp.MustCompile(`\b\d[\d_.]*\b`)
	spaceRunRe  = regexp.MustCompile(`\s+`)
)

// SkipSet remembers structural fingerprints the user chose to skip,
// scoped to one file's interactive session.
type SkipSet struct {
	patterns map[string]struct{}
}

// NewSkipSet creates an empty skip set
func NewSkipSet() *SkipSet {
	return &SkipSet{patterns: make(map[string]struct{})}
}

// Add records a fingerprint
func (s *SkipSet) Add(fp string) {
	s.patterns[fp] = struct{}{}
}

// Matches reports whether a fingerprint was recorded
func (s *SkipSet) Matches(fp string) bool {
	_, ok := s.patterns[fp]
	return ok
}

// Len returns the number of recorded fingerprints
func (s *SkipSet) Len() int {
	return len(s.patterns)
}

// Clear drops all recorded fingerprints
func (s *SkipSet) Clear() {
	s.patterns = make(map[string]struct{})
}

// Fingerprint derives the structural fingerprint of an occurrence:
// the boolean context flags plus the call's argument shape with
// string and number literals replaced by placeholders.
func Fingerprint(m *analyze.Matcher, occ *core.Occurrence) string {
	shape := ""
	if call, ok := m.FindCall(occ.RawText); ok {
		shape = NormalizeArgs(call.Args(occ.RawText))
	}
	return fmt.Sprintf("tok=%s|c=%t|e=%t|f=%t|args=%s",
		occ.Token, occ.Commented, occ.InErrorHandler, occ.Functional, shape)
}

// NormalizeArgs replaces literal values with placeholders and
// collapses whitespace, keeping only the structural shape.
func NormalizeArgs(args string) string {
	s := stringLitRe.ReplaceAllString(args, `"~"`)
	s = numberLitRe.ReplaceAllString(s, "0")
	return spaceRunRe.ReplaceAllString(s, " ")
}
