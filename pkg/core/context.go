package core

import (
	"path/filepath"
	"strings"
)

// FileContext contains all information about a file being processed
type FileContext struct {
	// Path information
	Path        string // Absolute path
	RelPath     string // Relative to project root
	ProjectRoot string // Project root directory

	// File content
	Content []byte   // Raw file content
	Lines   []string // Lines for positional access

	// Configuration
	Config *Config
}

// NewFileContext creates a new file context
func NewFileContext(path, projectRoot string, content []byte, cfg *Config) *FileContext {
	relPath, _ := filepath.Rel(projectRoot, path)

	return &FileContext{
		Path:        path,
		RelPath:     relPath,
		ProjectRoot: projectRoot,
		Content:     content,
		Lines:       strings.Split(string(content), "\n"),
		Config:      cfg,
	}
}

// IsScriptFile returns true for JS/TS source files
func (ctx *FileContext) IsScriptFile() bool {
	switch strings.ToLower(filepath.Ext(ctx.Path)) {
	case ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs":
		return true
	}
	return false
}

// IsTestFile returns true if this appears to be a test file
func (ctx *FileContext) IsTestFile() bool {
	name := filepath.Base(ctx.Path)

	if strings.Contains(name, ".test.") || strings.Contains(name, ".spec.") {
		return true
	}

	if strings.Contains(ctx.Path, "/test/") ||
		strings.Contains(ctx.Path, "/tests/") ||
		strings.Contains(ctx.Path, "/__tests__/") {
		return true
	}

	return false
}

// GetLine returns a specific line (1-based index)
func (ctx *FileContext) GetLine(lineNum int) string {
	if lineNum < 1 || lineNum > len(ctx.Lines) {
		return ""
	}
	return ctx.Lines[lineNum-1]
}

// GetLines returns a range of lines (1-based, inclusive)
func (ctx *FileContext) GetLines(startLine, endLine int) []string {
	if startLine < 1 {
		startLine = 1
	}
	if endLine > len(ctx.Lines) {
		endLine = len(ctx.Lines)
	}
	if startLine > endLine {
		return nil
	}
	return ctx.Lines[startLine-1 : endLine]
}

// GetContext returns lines around a specific line for review display
func (ctx *FileContext) GetContext(lineNum, contextLines int) []string {
	return ctx.GetLines(lineNum-contextLines, lineNum+contextLines)
}

// Extension returns the file extension
func (ctx *FileContext) Extension() string {
	return filepath.Ext(ctx.Path)
}

// BaseName returns the base name of the file
func (ctx *FileContext) BaseName() string {
	return filepath.Base(ctx.Path)
}
