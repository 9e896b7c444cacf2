package core

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// Walker traverses script files in a project
type Walker struct {
	projectRoot string
	config      *Config

	// Worker pool
	workers    int
	fileQueue  chan string
	resultChan chan *FileContext
	errorChan  chan error
	wg         sync.WaitGroup

	// Statistics
	stats WalkerStats
	mu    sync.Mutex
}

// WalkerStats contains statistics about the walk
type WalkerStats struct {
	TotalFiles   int
	ReadFiles    int
	SkippedFiles int
	ErrorFiles   int
}

// NewWalker creates a new file walker
func NewWalker(projectRoot string, config *Config) *Walker {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}

	return &Walker{
		projectRoot: projectRoot,
		config:      config,
		workers:     workers,
		fileQueue:   make(chan string, 100),
		resultChan:  make(chan *FileContext, 100),
		errorChan:   make(chan error, 100),
	}
}

// WithWorkers sets the number of worker goroutines
func (w *Walker) WithWorkers(n int) *Walker {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Stats returns walk statistics
func (w *Walker) Stats() WalkerStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// Walk traverses all files and returns FileContexts through a channel
func (w *Walker) Walk() (<-chan *FileContext, <-chan error) {
	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.worker()
	}

	go func() {
		err := filepath.Walk(w.projectRoot, w.visitFile)
		if err != nil {
			w.errorChan <- err
		}
		close(w.fileQueue)
	}()

	go func() {
		w.wg.Wait()
		close(w.resultChan)
		close(w.errorChan)
	}()

	return w.resultChan, w.errorChan
}

// WalkSync walks files synchronously and returns all contexts
func (w *Walker) WalkSync() ([]*FileContext, []error) {
	var contexts []*FileContext
	var errors []error

	results, errChan := w.Walk()

	done := make(chan struct{})
	go func() {
		for err := range errChan {
			errors = append(errors, err)
		}
		close(done)
	}()

	for ctx := range results {
		contexts = append(contexts, ctx)
	}

	<-done

	return contexts, errors
}

// visitFile is called for each file during walk
func (w *Walker) visitFile(path string, info os.FileInfo, err error) error {
	if err != nil {
		return nil // Skip files with errors
	}

	if info.IsDir() {
		if w.shouldSkipDir(info.Name()) {
			return filepath.SkipDir
		}
		return nil
	}

	if !isScriptPath(path) {
		return nil
	}

	relPath, _ := filepath.Rel(w.projectRoot, path)
	if w.config.ShouldExclude(relPath) {
		w.mu.Lock()
		w.stats.SkippedFiles++
		w.mu.Unlock()
		return nil
	}

	w.mu.Lock()
	w.stats.TotalFiles++
	w.mu.Unlock()

	w.fileQueue <- path

	return nil
}

// worker reads files from the queue
func (w *Walker) worker() {
	defer w.wg.Done()

	for path := range w.fileQueue {
		content, err := os.ReadFile(path)
		if err != nil {
			w.mu.Lock()
			w.stats.ErrorFiles++
			w.mu.Unlock()
			w.errorChan <- err
			continue
		}

		w.mu.Lock()
		w.stats.ReadFiles++
		w.mu.Unlock()
		w.resultChan <- NewFileContext(path, w.projectRoot, content, w.config)
	}
}

// shouldSkipDir returns true if directory should be skipped entirely
func (w *Walker) shouldSkipDir(name string) bool {
	skipDirs := []string{
		".git",
		".svn",
		".hg",
		"node_modules",
		"vendor",
		".next",
		"out",
		"dist",
		"build",
		"coverage",
		".idea",
		".vscode",
	}

	for _, skip := range skipDirs {
		if name == skip {
			return true
		}
	}

	return false
}

// isScriptPath returns true for file extensions logsweep processes
func isScriptPath(path string) bool {
	switch filepath.Ext(path) {
	case ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs":
		return true
	}
	return false
}
