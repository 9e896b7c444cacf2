package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher() *Matcher {
	return NewMatcher([]string{"console.log"})
}

func TestFindCall(t *testing.T) {
	m := newTestMatcher()

	tests := []struct {
		name     string
		line     string
		found    bool
		index    int
		balanced bool
	}{
		{"simple call", "console.log('x');", true, 0, true},
		{"indented call", "    console.log('x');", true, 4, true},
		{"no call", "const x = 5;", false, 0, false},
		{"larger identifier", "myconsole.log('x');", false, 0, false},
		{"property access", "console.logger.warn('x');", false, 0, false},
		{"unclosed args", "console.log('a',", true, 0, false},
		{"bare reference", "p.then(console.log);", true, 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, ok := m.FindCall(tt.line)
			assert.Equal(t, tt.found, ok)
			if !tt.found {
				return
			}
			assert.Equal(t, tt.index, call.Index)
			assert.Equal(t, tt.balanced, call.Balanced)
		})
	}
}

func TestFindCallsMultiple(t *testing.T) {
	m := newTestMatcher()

	calls := m.FindCalls("const msg = cond ? console.log('a') : console.log('b');")
	require.Len(t, calls, 2)
	assert.Less(t, calls[0].Index, calls[1].Index)
}

func TestCallArgs(t *testing.T) {
	m := newTestMatcher()

	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{"simple", "console.log('hello');", "'hello'"},
		{"nested parens", "console.log(fn(a), b);", "fn(a), b"},
		{"unclosed", "console.log('a',", ""},
		{"empty", "console.log();", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, ok := m.FindCall(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.expected, call.Args(tt.line))
		})
	}
}

func TestIsStandalone(t *testing.T) {
	m := newTestMatcher()

	tests := []struct {
		name     string
		line     string
		expected bool
	}{
		{"plain statement", "console.log('x');", true},
		{"indented statement", "    console.log('x');", true},
		{"no semicolon", "console.log('x')", true},
		{"assignment source", `const r = console.log("x") || y;`, false},
		{"return value", "return console.log('x');", false},
		{"chained result", "console.log('x').then(f);", false},
		{"argument position", "wrap(console.log('x'));", false},
		{"trailing code", "console.log('x'); cleanup();", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, ok := m.FindCall(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.expected, IsStandalone(tt.line, call))
		})
	}
}

func TestIsTernaryBranch(t *testing.T) {
	m := newTestMatcher()

	tests := []struct {
		name     string
		line     string
		expected bool
	}{
		{"true branch", "const m = cond ? console.log('a') : fallback;", true},
		{"false branch", "const m = cond ? fallback : console.log('b');", true},
		{"no ternary", "console.log('a');", false},
		{"question in args only", "console.log('what?');", false},
		{"object literal colon", "track({event: console.log('x')});", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, ok := m.FindCall(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.expected, IsTernaryBranch(tt.line, call))
		})
	}
}

func TestIsMethodChain(t *testing.T) {
	m := newTestMatcher()

	tests := []struct {
		name     string
		line     string
		expected bool
	}{
		{"chained after", "console.log('x').then(done);", true},
		{"then argument", "fetchData().then(x => console.log(x));", true},
		{"forEach callback", "items.forEach(item => console.log(item));", true},
		{"plain call", "console.log('x');", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, ok := m.FindCall(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.expected, IsMethodChain(tt.line, call))
		})
	}
}

func TestIsArrowBody(t *testing.T) {
	m := newTestMatcher()

	tests := []struct {
		name     string
		line     string
		expected bool
	}{
		{"parenthesized params", "const f = (x) => console.log(x);", true},
		{"bare param", "const f = x => console.log(x);", true},
		{"callback argument", "items.map(x => console.log(x));", true},
		{"block body", "const f = (x) => { console.log(x); };", false},
		{"plain call", "console.log('x');", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, ok := m.FindCall(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.expected, IsArrowBody(tt.line, call))
		})
	}
}

func TestIsExpression(t *testing.T) {
	m := newTestMatcher()

	tests := []struct {
		name     string
		line     string
		expected bool
	}{
		{"assignment source", "const r = console.log('x');", true},
		{"logical or", "ready || console.log('not ready');", true},
		{"logical and tail", `const r = console.log("x") || y;`, true},
		{"function argument", "report(console.log('x'));", true},
		{"comparison operand", "if (x === console.log(y)) {", true},
		{"plain statement", "console.log('x');", false},
		{"arrow body alone", "const f = (x) => console.log(x);", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, ok := m.FindCall(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.expected, IsExpression(tt.line, call))
		})
	}
}

func TestIsReturnValue(t *testing.T) {
	m := newTestMatcher()

	call, ok := m.FindCall("return console.log('x');")
	require.True(t, ok)
	assert.True(t, IsReturnValue("return console.log('x');", call))

	call, ok = m.FindCall("  console.log('x');")
	require.True(t, ok)
	assert.False(t, IsReturnValue("  console.log('x');", call))
}

func TestIsCommented(t *testing.T) {
	m := newTestMatcher()

	tests := []struct {
		name     string
		line     string
		expected bool
	}{
		{"line comment", "// console.log('x');", true},
		{"indented line comment", "    // console.log('x');", true},
		{"block comment closed", "/* console.log('x') */", true},
		{"code before comment", "doWork(); // console.log('x');", false},
		{"block comment unclosed", "/* console.log('x')", false},
		{"live call", "console.log('x');", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, ok := m.FindCall(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.expected, IsCommented(tt.line, call))
		})
	}
}
