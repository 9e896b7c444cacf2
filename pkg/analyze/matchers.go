// Package analyze implements the line-oriented classification engine:
// pattern matchers, the bounded scope tracker, sensitivity detection,
// and the classifier that combines them into occurrences.
//
// Nothing in this package builds an AST. All analysis is regex and
// delimiter counting over a bounded window of lines, which trades
// completeness for simplicity.
package analyze

import (
	"regexp"
	"sort"
	"strings"
)

// Patterns shared by the predicates. Each predicate answers one narrow
// question about a single line; precedence between them is decided by
// the classifier, not here.
var (
	// ident = or obj.field =, but not ==, !=, <=, >=, =>
	assignTargetRe = regexp.MustCompile(`[A-Za-z0-9_$\)\]]\s*=\s*$`)
	compoundOpRe   = regexp.MustCompile(`([=!<>+\-*/%&|^]=|=>)\s*$`)

	logicalOpRe = regexp.MustCompile(`(&&|\|\|)\s*$`)
	arrowTailRe = regexp.MustCompile(`=>\s*$`)

	// Operators directly before or after the call expression
	binaryOpBeforeRe = regexp.MustCompile(`([+\-*/%]|[<>]=?|[!=]==?)\s*$`)
	binaryOpAfterRe  = regexp.MustCompile(`^\s*([+\-*/%]|[<>]=?|[!=]==?|&&|\|\||\?\?)`)

	chainAfterRe  = regexp.MustCompile(`^\s*\.\s*[A-Za-z_$]`)
	chainBeforeRe = regexp.MustCompile(`[A-Za-z0-9_$\)\]]\s*\.\s*$`)

	// Callback hosts whose argument positions make removal unsafe
	callbackHostRe = regexp.MustCompile(`\.\s*(then|catch|finally|map|filter|forEach|reduce)\s*\(`)

	returnPrefixRe = regexp.MustCompile(`^return[\s(]`)
)

// Call locates one debug-print call token on a line
type Call struct {
	Token string // The matched call token, e.g. "console.log"
	Index int    // Byte offset of the token within the line

	// Argument span between the outermost parentheses of the call.
	// ArgStart/ArgEnd are offsets of the characters just inside the
	// parens; both are -1 when the call has no parens on this line or
	// the parens never close (multi-line argument lists).
	ArgStart int
	ArgEnd   int
	Balanced bool
}

// Matcher finds configured call tokens in lines of source text
type Matcher struct {
	tokens []string
}

// NewMatcher creates a matcher for the given call tokens
func NewMatcher(tokens []string) *Matcher {
	return &Matcher{tokens: tokens}
}

// Tokens returns the configured call tokens
func (m *Matcher) Tokens() []string {
	return m.tokens
}

// FindCall returns the first call-token occurrence on the line.
// Token matches inside larger identifiers are rejected.
func (m *Matcher) FindCall(line string) (*Call, bool) {
	calls := m.FindCalls(line)
	if len(calls) == 0 {
		return nil, false
	}
	return calls[0], true
}

// FindCalls returns every call-token occurrence on the line in
// left-to-right order. A ternary can carry a call in each branch.
func (m *Matcher) FindCalls(line string) []*Call {
	var calls []*Call
	for _, tok := range m.tokens {
		from := 0
		for {
			idx := strings.Index(line[from:], tok)
			if idx < 0 {
				break
			}
			idx += from
			if boundaryBefore(line, idx) && boundaryAfter(line, idx+len(tok)) {
				c := &Call{Token: tok, Index: idx, ArgStart: -1, ArgEnd: -1}
				c.locateArgs(line)
				calls = append(calls, c)
				from = idx + len(tok)
			} else {
				from = idx + 1
			}
		}
	}
	sort.Slice(calls, func(i, j int) bool { return calls[i].Index < calls[j].Index })
	return calls
}

func boundaryBefore(line string, idx int) bool {
	if idx == 0 {
		return true
	}
	return !isIdentChar(line[idx-1]) && line[idx-1] != '.'
}

func boundaryAfter(line string, end int) bool {
	if end >= len(line) {
		return true
	}
	return !isIdentChar(line[end]) && line[end] != '.'
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// locateArgs finds the call's outermost paren span on this line
func (c *Call) locateArgs(line string) {
	i := c.Index + len(c.Token)
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	if i >= len(line) || line[i] != '(' {
		return // Bare reference, e.g. p.then(console.log)
	}

	depth := 0
	for j := i; j < len(line); j++ {
		switch line[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				c.ArgStart = i + 1
				c.ArgEnd = j
				c.Balanced = true
				return
			}
		}
	}
	// Parens never close on this line: arguments span multiple lines.
	c.ArgStart = i + 1
	c.ArgEnd = -1
}

// Args returns the call's argument text, or "" when the span is not
// cleanly balanced on this line.
func (c *Call) Args(line string) string {
	if !c.Balanced || c.ArgStart < 0 || c.ArgEnd < 0 || c.ArgEnd > len(line) {
		return ""
	}
	return line[c.ArgStart:c.ArgEnd]
}

// prefix is the line text before the call token
func (c *Call) prefix(line string) string {
	if c.Index > len(line) {
		return line
	}
	return line[:c.Index]
}

// suffix is the line text after the call's closing paren. When the
// argument span is unknown the suffix is unknown too and "" is
// returned, which biases every suffix-based predicate toward false.
func (c *Call) suffix(line string) string {
	if !c.Balanced || c.ArgEnd < 0 || c.ArgEnd+1 > len(line) {
		return ""
	}
	return line[c.ArgEnd+1:]
}

// IsCommented reports whether the line is a comment containing the
// call: either a // comment, or a /* ... */ closed on the same line.
func IsCommented(line string, c *Call) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "//") {
		return strings.Contains(trimmed[2:], c.Token)
	}
	if strings.HasPrefix(trimmed, "/*") {
		end := strings.Index(trimmed, "*/")
		return end >= 0 && strings.Contains(trimmed[:end], c.Token)
	}
	return false
}

// IsStandalone reports whether the call is the entire statement on its
// line: trimmed text starts with the token, ends with ; or ), and the
// call is not chained into surrounding code.
func IsStandalone(line string, c *Call) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, c.Token) {
		return false
	}
	rest := strings.TrimLeft(trimmed[len(c.Token):], " \t")
	if !strings.HasPrefix(rest, "(") {
		return false
	}
	if !strings.HasSuffix(trimmed, ";") && !strings.HasSuffix(trimmed, ")") {
		return false
	}
	if IsMethodChain(line, c) {
		return false
	}
	// Trailing content after the call's closing paren other than a
	// lone semicolon means the call is embedded in a larger statement.
	tail := strings.TrimSpace(c.suffix(line))
	if c.Balanced && tail != "" && tail != ";" {
		return false
	}
	return true
}

// IsReturnValue reports whether the call appears in a return statement
func IsReturnValue(line string, c *Call) bool {
	trimmed := strings.TrimSpace(line)
	return returnPrefixRe.MatchString(trimmed) && strings.Contains(trimmed, c.Token)
}

// IsTernaryBranch reports whether the call sits in a branch of a
// conditional expression. The ? and : are looked for outside the
// call's own argument span; nested ternaries resolve to the nearest
// operators.
func IsTernaryBranch(line string, c *Call) bool {
	prefix := c.prefix(line)
	suffix := c.suffix(line)

	qBefore := strings.LastIndex(prefix, "?")
	cBefore := strings.LastIndex(prefix, ":")

	// True branch: cond ? call(...) : other
	if qBefore >= 0 && qBefore > cBefore && strings.Contains(suffix, ":") {
		return true
	}
	// False branch: cond ? other : call(...)
	if cBefore >= 0 && qBefore >= 0 && cBefore > qBefore {
		return true
	}
	// Nested variant with unknown suffix: a ? preceding the call is
	// only trusted when a : follows somewhere on the raw line.
	if !c.Balanced && qBefore >= 0 && strings.LastIndex(line, ":") > qBefore {
		return true
	}
	return false
}

// IsMethodChain reports whether the call is a segment of a method
// chain or an argument to a chained callback host.
func IsMethodChain(line string, c *Call) bool {
	prefix := c.prefix(line)
	suffix := c.suffix(line)

	if chainBeforeRe.MatchString(prefix) {
		return true
	}
	if chainAfterRe.MatchString(suffix) {
		return true
	}
	if loc := callbackHostRe.FindStringIndex(prefix); loc != nil {
		return true
	}
	return false
}

// IsArrowBody reports whether the call is the direct body of an arrow
// function, e.g. (x) => call(x) or x => call(x).
func IsArrowBody(line string, c *Call) bool {
	return arrowTailRe.MatchString(c.prefix(line))
}

// IsExpression reports whether the call is used as a sub-expression:
// an assignment source, an argument to another call, or an operand of
// a logical/arithmetic/comparison operator.
func IsExpression(line string, c *Call) bool {
	prefix := c.prefix(line)
	suffix := c.suffix(line)

	if assignTargetRe.MatchString(prefix) && !compoundOpRe.MatchString(prefix) {
		return true
	}
	if logicalOpRe.MatchString(prefix) {
		return true
	}
	if binaryOpBeforeRe.MatchString(prefix) && !arrowTailRe.MatchString(prefix) {
		return true
	}
	if binaryOpAfterRe.MatchString(suffix) {
		return true
	}
	// Inside another call's argument list: an unclosed ( before the token
	if parenDepth(prefix) > 0 {
		return true
	}
	return false
}

// parenDepth is the raw open-minus-close paren count of s
func parenDepth(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
	}
	return depth
}
