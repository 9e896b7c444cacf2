package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/logsweep/logsweep/pkg/analyze"
	"github.com/logsweep/logsweep/pkg/core"
)

// Watcher re-scans script files as they change and reports new
// occurrences. Report-only: watch mode never writes.
type Watcher struct {
	cfg         *core.Config
	projectRoot string
	classifier  *analyze.Classifier
	log         *zap.SugaredLogger

	// OnFile is invoked for every (re)scanned file with occurrences
	OnFile func(ctx *core.FileContext, occurrences core.OccurrenceList)
}

// NewWatcher creates a watcher over the project root
func NewWatcher(projectRoot string, cfg *core.Config, logger *zap.SugaredLogger) *Watcher {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Watcher{
		cfg:         cfg,
		projectRoot: projectRoot,
		classifier:  analyze.NewClassifier(cfg),
		log:         logger,
	}
}

// Run watches until the context is cancelled
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := w.addDirs(watcher, w.projectRoot); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(watcher, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Debugw("watch error", "err", err)
		}
	}
}

// addDirs registers a directory tree, skipping ignored directories
func (w *Watcher) addDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		name := info.Name()
		if name != "." && strings.HasPrefix(name, ".") || name == "node_modules" || name == "dist" || name == "build" {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			w.log.Debugw("watch add failed", "path", path, "err", err)
		}
		return nil
	})
}

func (w *Watcher) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return
	}

	// New directories join the watch set
	if info.IsDir() {
		if event.Op&fsnotify.Create != 0 {
			_ = w.addDirs(watcher, event.Name)
		}
		return
	}

	if !isScriptName(event.Name) {
		return
	}

	relPath, _ := filepath.Rel(w.projectRoot, event.Name)
	if w.cfg.ShouldExclude(relPath) {
		return
	}

	content, err := os.ReadFile(event.Name)
	if err != nil {
		w.log.Debugw("read failed", "path", event.Name, "err", err)
		return
	}

	fileCtx := core.NewFileContext(event.Name, w.projectRoot, content, w.cfg)
	occurrences := w.classifier.AnalyzeFile(fileCtx)
	w.log.Debugw("rescanned", "path", relPath, "occurrences", len(occurrences))

	if w.OnFile != nil && len(occurrences) > 0 {
		w.OnFile(fileCtx, occurrences)
	}
}

func isScriptName(path string) bool {
	switch filepath.Ext(path) {
	case ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs":
		return true
	}
	return false
}
