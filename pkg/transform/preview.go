package transform

import (
	"fmt"
	"strings"
)

// PreviewEdits formats one file's pending edits for display in
// dry-run mode, old line against new line.
func PreviewEdits(file string, edits []LineEdit) string {
	if len(edits) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, e := range edits {
		sb.WriteString(fmt.Sprintf("  %s:%d\n", file, e.Line))
		sb.WriteString(fmt.Sprintf("    - %s\n", strings.TrimSpace(e.Old)))
		if e.Removed {
			sb.WriteString("    + (line removed)\n")
		} else {
			sb.WriteString(fmt.Sprintf("    + %s\n", strings.TrimSpace(e.New)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
