package analyze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInCatchBlock(t *testing.T) {
	tracker := NewScopeTracker(15)

	tests := []struct {
		name     string
		source   string
		lineIdx  int
		expected bool
	}{
		{
			name: "inside catch",
			source: `try {
  risky();
} catch (e) {
  console.log('oops');
}`,
			lineIdx:  3,
			expected: true,
		},
		{
			name: "after catch closed",
			source: `try {
} catch (e) {
  handle(e);
}
console.log('done');`,
			lineIdx:  4,
			expected: false,
		},
		{
			name: "no catch anywhere",
			source: `function f() {
  console.log('x');
}`,
			lineIdx:  1,
			expected: false,
		},
		{
			name: "promise catch is not a handler",
			source: `fetchData().catch(logError);
console.log('x');`,
			lineIdx:  1,
			expected: false,
		},
		{
			name: "nested block inside catch",
			source: `} catch (err) {
  if (verbose) {
    console.log(err);
  }
}`,
			lineIdx:  2,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := strings.Split(tt.source, "\n")
			assert.Equal(t, tt.expected, tracker.InCatchBlock(tt.lineIdx, lines))
		})
	}
}

func TestInCatchBlockIndentationFallback(t *testing.T) {
	tracker := NewScopeTracker(15)

	// Opener without a brace on its own line: indentation decides,
	// and only when the opener directly precedes the target.
	lines := []string{
		"} catch (err)",
		"    console.log(err);",
	}
	assert.True(t, tracker.InCatchBlock(1, lines))

	lines = []string{
		"} catch (err)",
		"console.log(err);", // Same indentation: not inside
	}
	assert.False(t, tracker.InCatchBlock(1, lines))
}

func TestScopeScanBound(t *testing.T) {
	tracker := NewScopeTracker(3)

	// The catch opener sits beyond the backward bound
	lines := []string{
		"} catch (e) {",
		"  a();",
		"  b();",
		"  c();",
		"  d();",
		"  console.log('far');",
	}
	assert.False(t, tracker.InCatchBlock(5, lines))

	// A wider bound finds it
	assert.True(t, NewScopeTracker(15).InCatchBlock(5, lines))
}

func TestInFunctionBody(t *testing.T) {
	tracker := NewScopeTracker(15)

	tests := []struct {
		name     string
		source   string
		lineIdx  int
		expected bool
	}{
		{
			name: "function declaration",
			source: `function load() {
  console.log('loading');
}`,
			lineIdx:  1,
			expected: true,
		},
		{
			name: "arrow with block body",
			source: `const f = () => {
  console.log('x');
};`,
			lineIdx:  1,
			expected: true,
		},
		{
			name: "top level",
			source: `const a = 1;
console.log(a);`,
			lineIdx:  1,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := strings.Split(tt.source, "\n")
			assert.Equal(t, tt.expected, tracker.InFunctionBody(tt.lineIdx, lines))
		})
	}
}

func TestIndentWidth(t *testing.T) {
	assert.Equal(t, 0, indentWidth("code"))
	assert.Equal(t, 4, indentWidth("    code"))
	assert.Equal(t, 1, indentWidth("\tcode"))
	assert.Equal(t, 0, indentWidth(""))
}
