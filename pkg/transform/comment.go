package transform

import (
	"fmt"
	"strings"

	"github.com/logsweep/logsweep/pkg/core"
)

// removeComment strips the comment containing the call from a single
// line. Three sub-cases:
//
//	(a) the whole line is a // comment  -> remove the line
//	(b) code precedes a // comment      -> keep the code, trimmed
//	(c) a single-line /* ... */ comment -> remove exactly that span
func (t *Transformer) removeComment(line string) (core.TransformResult, error) {
	trimmed := strings.TrimSpace(line)

	if idx := lineCommentIndex(line, t); idx >= 0 {
		if strings.HasPrefix(trimmed, "//") {
			return core.TransformResult{Removed: true}, nil
		}
		code := strings.TrimRight(line[:idx], " \t")
		if strings.TrimSpace(code) == "" {
			return core.TransformResult{Removed: true}, nil
		}
		return core.TransformResult{Text: code}, nil
	}

	if open := strings.Index(line, "/*"); open >= 0 {
		closer := strings.Index(line[open:], "*/")
		if closer < 0 {
			return core.TransformResult{Text: line},
				fmt.Errorf("comment does not close on this line; use RemoveMultiLineComment")
		}
		end := open + closer + 2
		inside := line[open:end]
		if !t.containsToken(inside) {
			return core.TransformResult{Text: line}, fmt.Errorf("no call token inside comment span")
		}
		remainder := strings.TrimRight(line[:open], " \t") + line[end:]
		if strings.TrimSpace(remainder) == "" {
			return core.TransformResult{Removed: true}, nil
		}
		return core.TransformResult{Text: strings.TrimRight(remainder, " \t")}, nil
	}

	return core.TransformResult{Text: line}, fmt.Errorf("no comment containing the call found")
}

// lineCommentIndex finds the // that introduces a comment containing
// a call token. A // inside a string literal (e.g. a URL) is not a
// comment opener, so the scan tracks quote state.
func lineCommentIndex(line string, t *Transformer) int {
	var quote byte
	for i := 0; i+1 < len(line); i++ {
		ch := line[i]
		if quote != 0 {
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"', '`':
			quote = ch
		case '/':
			if line[i+1] == '/' {
				if t.containsToken(line[i:]) {
					return i
				}
				return -1
			}
		}
	}
	return -1
}

func (t *Transformer) containsToken(s string) bool {
	_, ok := t.matcher.FindCall(s)
	return ok
}

// SpanEdit is one per-line edit produced by multi-line comment removal
type SpanEdit struct {
	Line    int    // 0-based line index
	Text    string // Replacement text; meaningless when Removed
	Removed bool
}

// RemoveMultiLineComment removes a /* ... */ block that spans several
// lines, keeping any code before the opener and after the closer. The
// forward scan for */ is unbounded: block comments may be arbitrarily
// long.
func (t *Transformer) RemoveMultiLineComment(lines []string, openIdx int) ([]SpanEdit, error) {
	if openIdx < 0 || openIdx >= len(lines) {
		return nil, fmt.Errorf("line %d out of range", openIdx)
	}

	open := strings.Index(lines[openIdx], "/*")
	if open < 0 {
		return nil, fmt.Errorf("no comment opener on line %d", openIdx+1)
	}
	if strings.Contains(lines[openIdx][open:], "*/") {
		return nil, fmt.Errorf("comment closes on the opening line; use the single-line path")
	}

	closeIdx := -1
	closeCol := -1
	for i := openIdx + 1; i < len(lines); i++ {
		if col := strings.Index(lines[i], "*/"); col >= 0 {
			closeIdx = i
			closeCol = col + 2
			break
		}
	}
	if closeIdx < 0 {
		return nil, fmt.Errorf("comment opened on line %d never closes", openIdx+1)
	}

	var edits []SpanEdit

	before := strings.TrimRight(lines[openIdx][:open], " \t")
	if strings.TrimSpace(before) == "" {
		edits = append(edits, SpanEdit{Line: openIdx, Removed: true})
	} else {
		edits = append(edits, SpanEdit{Line: openIdx, Text: before})
	}

	for i := openIdx + 1; i < closeIdx; i++ {
		edits = append(edits, SpanEdit{Line: i, Removed: true})
	}

	after := lines[closeIdx][closeCol:]
	if strings.TrimSpace(after) == "" {
		edits = append(edits, SpanEdit{Line: closeIdx, Removed: true})
	} else {
		edits = append(edits, SpanEdit{Line: closeIdx, Text: strings.TrimRight(after, " \t")})
	}

	return edits, nil
}
