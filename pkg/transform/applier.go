package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/logsweep/logsweep/pkg/core"
)

// LineEdit is one accepted per-line change, kept for preview display
type LineEdit struct {
	Line    int    // 1-based line number in the original file
	Old     string // Original line text
	New     string // Replacement text; meaningless when Removed
	Removed bool
}

// ApplyResult is the outcome of applying one file's decision set
type ApplyResult struct {
	Content  string     // New file content (original when unchanged or reverted)
	Modified bool       // Content differs from the original
	Reverted bool       // Whole-file integrity check failed; edits discarded
	Applied  int        // Number of decisions that produced an edit
	Edits    []LineEdit // Accepted edits in ascending line order
	Warnings []string   // Per-decision validation warnings
}

// Applier applies a file's decision set in a safe order: decisions
// are processed from the highest line number down so that excising a
// line never renumbers lines still pending, replacements land before
// deletions, and a whole-file delimiter check guards the result.
type Applier struct {
	transformer *Transformer
}

// NewApplier creates an applier around the given transformer
func NewApplier(t *Transformer) *Applier {
	return &Applier{transformer: t}
}

// Apply runs every decision against the original text. A decision
// that fails validation is skipped with a warning; a whole-file
// balance mismatch discards the entire edit set.
func (a *Applier) Apply(original string, decisions []core.Decision) ApplyResult {
	result := ApplyResult{Content: original}
	if len(decisions) == 0 {
		return result
	}

	lines := strings.Split(original, "\n")

	sorted := make([]core.Decision, len(decisions))
	copy(sorted, decisions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Occurrence.Line > sorted[j].Occurrence.Line
	})

	replacements := make(map[int]string) // 0-based line index -> new text
	removals := make(map[int]bool)

	for _, d := range sorted {
		lineIdx := d.Occurrence.Line - 1
		if lineIdx < 0 || lineIdx >= len(lines) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("line %d out of range, decision skipped", d.Occurrence.Line))
			continue
		}
		if removals[lineIdx] {
			continue
		}

		action := d.Action.Resolve()
		if action == core.ActionKeep {
			continue
		}

		line := lines[lineIdx]
		if cur, ok := replacements[lineIdx]; ok {
			line = cur
		}

		// Multi-line comment removal needs the surrounding lines.
		if action == core.ActionRemoveComment && a.opensUnclosedComment(line) {
			if !a.applySpan(lines, lineIdx, replacements, removals, &result) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("line %d: multi-line comment removal failed, line kept", d.Occurrence.Line))
			} else {
				result.Applied++
			}
			continue
		}

		res, err := a.transformer.Apply(line, action)
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("line %d: %v, line kept", d.Occurrence.Line, err))
			continue
		}

		if res.Removed {
			removals[lineIdx] = true
			result.Applied++
			continue
		}

		if res.Text == line {
			continue // Identity outcome, e.g. delete refused on an embedded call
		}

		warning, err := Validate(line, res.Text)
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("line %d: %v, line kept", d.Occurrence.Line, err))
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("line %d: %s", d.Occurrence.Line, warning))
		}

		replacements[lineIdx] = res.Text
		result.Applied++
	}

	if len(replacements) == 0 && len(removals) == 0 {
		return result
	}

	for idx, text := range replacements {
		result.Edits = append(result.Edits, LineEdit{Line: idx + 1, Old: lines[idx], New: text})
	}
	for idx := range removals {
		result.Edits = append(result.Edits, LineEdit{Line: idx + 1, Old: lines[idx], Removed: true})
	}
	sort.Slice(result.Edits, func(i, j int) bool {
		return result.Edits[i].Line < result.Edits[j].Line
	})

	// Replacements first, then deletions from the bottom up.
	edited := make([]string, len(lines))
	copy(edited, lines)
	for idx, text := range replacements {
		edited[idx] = text
	}

	removeIdx := make([]int, 0, len(removals))
	for idx := range removals {
		removeIdx = append(removeIdx, idx)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(removeIdx)))
	for _, idx := range removeIdx {
		edited = append(edited[:idx], edited[idx+1:]...)
	}

	// Whole-file post-check: net delimiter balance must be unchanged.
	if LineBalance(lines) != LineBalance(edited) {
		result.Reverted = true
		result.Applied = 0
		result.Edits = nil
		result.Warnings = append(result.Warnings,
			"file delimiter balance changed, all edits discarded")
		return result
	}

	result.Content = strings.Join(edited, "\n")
	result.Modified = result.Content != original
	return result
}

// applySpan folds a multi-line comment removal into the pending edits
func (a *Applier) applySpan(lines []string, openIdx int, replacements map[int]string, removals map[int]bool, result *ApplyResult) bool {
	edits, err := a.transformer.RemoveMultiLineComment(lines, openIdx)
	if err != nil {
		return false
	}
	for _, e := range edits {
		if e.Removed {
			removals[e.Line] = true
		} else {
			replacements[e.Line] = e.Text
		}
	}
	return true
}

// opensUnclosedComment reports whether the line opens a /* block that
// does not close on the same line. A /* sitting inside a // comment
// that already contains the call is commentary text, not an opener:
// routing it into the multi-line path would excise live code up to
// the next unrelated */.
func (a *Applier) opensUnclosedComment(line string) bool {
	open := strings.Index(line, "/*")
	if open < 0 || strings.Contains(line[open:], "*/") {
		return false
	}
	if idx := lineCommentIndex(line, a.transformer); idx >= 0 && idx < open {
		return false
	}
	return true
}
