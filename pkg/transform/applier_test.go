package transform

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logsweep/logsweep/pkg/core"
)

func newTestApplier() *Applier {
	return NewApplier(newTestTransformer())
}

func decisionAt(line int, text string, action core.Action) core.Decision {
	return core.Decision{
		Occurrence: &core.Occurrence{File: "app.js", Line: line, RawText: text},
		Action:     action,
	}
}

func TestApplyMixedDecisions(t *testing.T) {
	original := strings.Join([]string{
		"function run() {",
		"  console.log('starting');",
		"  try {",
		"    risky();",
		"  } catch (e) {",
		"    console.log('failed', e);",
		"  }",
		"  // console.log('old note');",
		"  return console.log('done') || 1;",
		"}",
	}, "\n")

	decisions := []core.Decision{
		decisionAt(2, "  console.log('starting');", core.ActionDelete),
		decisionAt(6, "    console.log('failed', e);", core.ActionConvertError),
		decisionAt(8, "  // console.log('old note');", core.ActionRemoveComment),
		decisionAt(9, "  return console.log('done') || 1;", core.ActionKeep),
	}

	result := newTestApplier().Apply(original, decisions)

	require.False(t, result.Reverted)
	assert.True(t, result.Modified)
	assert.Equal(t, 3, result.Applied)
	assert.Empty(t, result.Warnings)

	// Edits carry the pending changes in ascending line order
	require.Len(t, result.Edits, 3)
	assert.Equal(t, 2, result.Edits[0].Line)
	assert.True(t, result.Edits[0].Removed)
	assert.Equal(t, 6, result.Edits[1].Line)
	assert.Equal(t, "    console.error('failed', e);", result.Edits[1].New)
	assert.Equal(t, 8, result.Edits[2].Line)
	assert.True(t, result.Edits[2].Removed)

	expected := strings.Join([]string{
		"function run() {",
		"  try {",
		"    risky();",
		"  } catch (e) {",
		"    console.error('failed', e);",
		"  }",
		"  return console.log('done') || 1;",
		"}",
	}, "\n")
	if diff := cmp.Diff(expected, result.Content); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyDescendingOrderKeepsLineNumbersValid(t *testing.T) {
	original := strings.Join([]string{
		"console.log('a');",
		"console.log('b');",
		"console.log('c');",
	}, "\n")

	// Given in ascending order; the applier must still excise all three
	decisions := []core.Decision{
		decisionAt(1, "console.log('a');", core.ActionDelete),
		decisionAt(2, "console.log('b');", core.ActionDelete),
		decisionAt(3, "console.log('c');", core.ActionDelete),
	}

	result := newTestApplier().Apply(original, decisions)
	require.False(t, result.Reverted)
	assert.Equal(t, 3, result.Applied)
	assert.Equal(t, "", result.Content)
}

func TestApplyEmbeddedDeleteIsRefused(t *testing.T) {
	original := "const r = console.log('x');"

	result := newTestApplier().Apply(original, []core.Decision{
		decisionAt(1, original, core.ActionDelete),
	})

	assert.False(t, result.Modified)
	assert.Equal(t, original, result.Content)
	assert.Equal(t, 0, result.Applied)
}

func TestApplyMultiLineCommentSpan(t *testing.T) {
	original := strings.Join([]string{
		"a();",
		"/* console.log('one');",
		"   console.log('two'); */",
		"b();",
	}, "\n")

	result := newTestApplier().Apply(original, []core.Decision{
		decisionAt(2, "/* console.log('one');", core.ActionRemoveComment),
	})

	require.False(t, result.Reverted)
	assert.True(t, result.Modified)
	assert.Equal(t, "a();\nb();", result.Content)
}

func TestApplyCommentWithStrayBlockOpener(t *testing.T) {
	// A /* inside the // comment text must not be treated as a block
	// opener; the multi-line path would swallow the code below it.
	original := strings.Join([]string{
		"// console.log debug note /*",
		"let a = 1;",
		"doWork(); /* real comment */",
	}, "\n")

	result := newTestApplier().Apply(original, []core.Decision{
		decisionAt(1, "// console.log debug note /*", core.ActionRemoveComment),
	})

	require.False(t, result.Reverted)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, "let a = 1;\ndoWork(); /* real comment */", result.Content)
}

func TestApplyRevertsOnBalanceChange(t *testing.T) {
	// Delimiters are counted raw, comments included, so removing a
	// comment that carries an unmatched brace trips the whole-file
	// check and discards the edit set.
	original := strings.Join([]string{
		"a();",
		"// console.log('x'); {",
		"b();",
	}, "\n")

	result := newTestApplier().Apply(original, []core.Decision{
		decisionAt(2, "// console.log('x'); {", core.ActionRemoveComment),
	})

	assert.True(t, result.Reverted)
	assert.False(t, result.Modified)
	assert.Equal(t, 0, result.Applied)
	assert.Empty(t, result.Edits)
	assert.Equal(t, original, result.Content)
	assert.NotEmpty(t, result.Warnings)
}

func TestApplyOutOfRangeDecision(t *testing.T) {
	result := newTestApplier().Apply("console.log('x');", []core.Decision{
		decisionAt(99, "console.log('x');", core.ActionDelete),
	})

	assert.False(t, result.Modified)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "out of range")
}

func TestApplyNoDecisions(t *testing.T) {
	original := "console.log('x');"
	result := newTestApplier().Apply(original, nil)

	assert.False(t, result.Modified)
	assert.Equal(t, original, result.Content)
}
