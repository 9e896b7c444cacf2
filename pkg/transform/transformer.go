// Package transform turns per-occurrence decisions into safe line
// edits. Every non-identity edit is validated against delimiter
// balance before the applier accepts it.
package transform

import (
	"fmt"
	"strings"

	"github.com/logsweep/logsweep/pkg/analyze"
	"github.com/logsweep/logsweep/pkg/core"
)

// Transformer applies a chosen action to a single line of source text
type Transformer struct {
	matcher *analyze.Matcher
}

// NewTransformer creates a transformer using the given token matcher
func NewTransformer(m *analyze.Matcher) *Transformer {
	return &Transformer{matcher: m}
}

// Apply produces the new line text for an action, or a removal
// signal. Unknown actions fail with an error; the caller treats the
// occurrence as keep.
func (t *Transformer) Apply(line string, action core.Action) (core.TransformResult, error) {
	switch action.Resolve() {
	case core.ActionKeep:
		return core.TransformResult{Text: line}, nil
	case core.ActionDelete:
		return t.deleteLine(line), nil
	case core.ActionConvertError:
		return t.convertCall(line, "error")
	case core.ActionConvertInfo:
		return t.convertCall(line, "info")
	case core.ActionRemoveComment:
		return t.removeComment(line)
	default:
		return core.TransformResult{Text: line}, fmt.Errorf("unknown action: %v", action)
	}
}

// deleteLine removes the line only when the call is the whole
// statement. Deleting an embedded call would corrupt the expression
// around it, so anything else comes back unchanged.
func (t *Transformer) deleteLine(line string) core.TransformResult {
	call, ok := t.matcher.FindCall(line)
	if !ok || !analyze.IsStandalone(line, call) {
		return core.TransformResult{Text: line}
	}
	return core.TransformResult{Removed: true}
}

// convertCall substitutes the call-name token only, e.g. console.log
// to console.error, leaving every other character intact.
func (t *Transformer) convertCall(line, level string) (core.TransformResult, error) {
	call, ok := t.matcher.FindCall(line)
	if !ok {
		return core.TransformResult{Text: line}, fmt.Errorf("no call token found in line")
	}

	newTok := convertToken(call.Token, level)
	text := line[:call.Index] + newTok + line[call.Index+len(call.Token):]
	return core.TransformResult{Text: text}, nil
}

// convertToken rewrites the final segment of a dotted call name.
// Tokens without a dot (e.g. a bare debug()) are mapped onto console.
func convertToken(token, level string) string {
	if dot := strings.LastIndex(token, "."); dot >= 0 {
		return token[:dot+1] + level
	}
	return "console." + level
}

// Validate checks that a transform did not alter delimiter balance.
// A changed trailing semicolon is reported as a warning, not an error.
func Validate(original, transformed string) (string, error) {
	pairs := []struct {
		open, close byte
		name        string
	}{
		{'(', ')', "parenthesis"},
		{'{', '}', "brace"},
		{'[', ']', "bracket"},
	}

	for _, p := range pairs {
		if strings.Count(original, string(p.open)) != strings.Count(transformed, string(p.open)) ||
			strings.Count(original, string(p.close)) != strings.Count(transformed, string(p.close)) {
			return "", fmt.Errorf("%s balance changed by transform", p.name)
		}
	}

	origSemi := strings.HasSuffix(strings.TrimSpace(original), ";")
	newSemi := strings.HasSuffix(strings.TrimSpace(transformed), ";")
	if origSemi != newSemi {
		return "trailing semicolon changed", nil
	}

	return "", nil
}

// LineBalance returns the net open-minus-close count per delimiter
// pair for a block of text. Raw counting: delimiters inside strings
// and comments are counted too, which stays sound as a difference
// test because both sides are counted the same way.
func LineBalance(lines []string) [3]int {
	var b [3]int
	for _, line := range lines {
		b[0] += strings.Count(line, "(") - strings.Count(line, ")")
		b[1] += strings.Count(line, "{") - strings.Count(line, "}")
		b[2] += strings.Count(line, "[") - strings.Count(line, "]")
	}
	return b
}
