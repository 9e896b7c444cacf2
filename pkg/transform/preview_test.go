package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreviewEdits(t *testing.T) {
	edits := []LineEdit{
		{Line: 2, Old: "  console.log('x');", Removed: true},
		{Line: 6, Old: "    console.log('failed', e);", New: "    console.error('failed', e);"},
	}

	text := PreviewEdits("src/app.js", edits)

	assert.Contains(t, text, "src/app.js:2")
	assert.Contains(t, text, "- console.log('x');")
	assert.Contains(t, text, "+ (line removed)")
	assert.Contains(t, text, "src/app.js:6")
	assert.Contains(t, text, "- console.log('failed', e);")
	assert.Contains(t, text, "+ console.error('failed', e);")
}

func TestPreviewEditsEmpty(t *testing.T) {
	assert.Equal(t, "", PreviewEdits("src/app.js", nil))
}
