package analyze

import (
	"github.com/logsweep/logsweep/pkg/core"
)

// Classifier combines the matchers, the scope tracker, and the
// sensitivity detector into one structured verdict per call site.
type Classifier struct {
	matcher *Matcher
	tracker *ScopeTracker
	window  int
}

// NewClassifier creates a classifier from configuration
func NewClassifier(cfg *core.Config) *Classifier {
	return &Classifier{
		matcher: NewMatcher(cfg.CallTokens),
		tracker: NewScopeTracker(cfg.Settings.ScopeScanBound),
		window:  cfg.Settings.Window,
	}
}

// Matcher exposes the underlying token matcher
func (c *Classifier) Matcher() *Matcher {
	return c.matcher
}

// Classify inspects one line (0-based index into lines) and returns
// the classified occurrence, or false when the line has no call.
//
// Flag precedence: commented is computed first and bypasses all
// structural analysis. The independent structural flags are each
// computed on their own, then folded into Functional. Sensitivity is
// independent of everything else.
func (c *Classifier) Classify(file string, lineIdx int, lines []string) (*core.Occurrence, bool) {
	if lineIdx < 0 || lineIdx >= len(lines) {
		return nil, false
	}
	call, ok := c.matcher.FindCall(lines[lineIdx])
	if !ok {
		return nil, false
	}
	return c.classifyCall(file, lineIdx, lines, call), true
}

// classifyCall builds the occurrence for one located call
func (c *Classifier) classifyCall(file string, lineIdx int, lines []string, call *Call) *core.Occurrence {
	line := lines[lineIdx]
	occ := core.NewOccurrence(file, lineIdx+1, call.Index, call.Token, line)

	occ.Commented = IsCommented(line, call)
	if !occ.Commented {
		occ.InErrorHandler = c.tracker.InCatchBlock(lineIdx, lines)

		occ.ReturnValue = IsReturnValue(line, call)
		occ.Ternary = IsTernaryBranch(line, call)
		occ.Chain = IsMethodChain(line, call)
		occ.ArrowBody = IsArrowBody(line, call)
		occ.Expression = IsExpression(line, call)

		// Arrow bodies count: removing the sole body expression of an
		// arrow function leaves broken syntax behind.
		occ.Functional = occ.ReturnValue || occ.Ternary || occ.Chain ||
			occ.Expression || occ.ArrowBody
	}

	risk, matches := DetectSensitivity(call.Args(line))
	occ.WithRisk(risk, matches)

	if c.window > 0 {
		start := lineIdx - c.window
		if start < 0 {
			start = 0
		}
		end := lineIdx + c.window
		if end > len(lines)-1 {
			end = len(lines) - 1
		}
		window := make([]string, end-start+1)
		copy(window, lines[start:end+1])
		occ.WithWindow(window, start+1)
	}

	return occ
}

// AnalyzeFile scans every line of the file and returns all classified
// occurrences in line-then-column order. A line carrying several
// calls (e.g. both ternary branches) yields one occurrence per call.
func (c *Classifier) AnalyzeFile(ctx *core.FileContext) core.OccurrenceList {
	var occurrences core.OccurrenceList
	for i := range ctx.Lines {
		for _, call := range c.matcher.FindCalls(ctx.Lines[i]) {
			occurrences = append(occurrences, c.classifyCall(ctx.RelPath, i, ctx.Lines, call))
		}
	}
	return occurrences
}
