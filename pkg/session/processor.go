// Package session orchestrates one run: sequential per-file
// processing through the classifier, the decision policy, and the
// edit applier, with backups taken before any write.
package session

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/logsweep/logsweep/pkg/analyze"
	"github.com/logsweep/logsweep/pkg/backup"
	"github.com/logsweep/logsweep/pkg/core"
	"github.com/logsweep/logsweep/pkg/policy"
	"github.com/logsweep/logsweep/pkg/transform"
)

const filePermissions = 0644

// FileResult reports the outcome of processing one file
type FileResult struct {
	Path        string
	Occurrences core.OccurrenceList
	Modified    bool
	Reverted    bool
	Applied     int
	NewContent  string
	Edits       []transform.LineEdit
	Warnings    []string
}

// Processor runs the per-file pipeline. Files are processed strictly
// one at a time: a file is fully read, classified, decided upon,
// transformed, and written before the next file begins.
type Processor struct {
	cfg         *core.Config
	classifier  *analyze.Classifier
	transformer *transform.Transformer
	applier     *transform.Applier
	policy      policy.Policy
	backups     *backup.Manager
	stats       *core.RunStats
	log         *zap.SugaredLogger
	dryRun      bool
}

// NewProcessor creates a processor with the given decision policy
func NewProcessor(cfg *core.Config, pol policy.Policy, logger *zap.SugaredLogger) *Processor {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	classifier := analyze.NewClassifier(cfg)
	transformer := transform.NewTransformer(classifier.Matcher())
	return &Processor{
		cfg:         cfg,
		classifier:  classifier,
		transformer: transformer,
		applier:     transform.NewApplier(transformer),
		policy:      pol,
		stats:       core.NewRunStats(),
		log:         logger,
	}
}

// WithBackups attaches a backup manager; nil disables backups
func (p *Processor) WithBackups(m *backup.Manager) *Processor {
	p.backups = m
	return p
}

// WithDryRun suppresses all file writes
func (p *Processor) WithDryRun(v bool) *Processor {
	p.dryRun = v
	return p
}

// Stats returns the run-wide counters
func (p *Processor) Stats() *core.RunStats {
	return p.stats
}

// AnalyzeFile classifies a file without deciding or transforming
func (p *Processor) AnalyzeFile(ctx *core.FileContext) core.OccurrenceList {
	occurrences := p.classifier.AnalyzeFile(ctx)
	p.stats.FilesScanned++
	for _, occ := range occurrences {
		p.stats.RecordOccurrence(occ)
	}
	return occurrences
}

// ProcessFile runs the full pipeline for one file
func (p *Processor) ProcessFile(ctx *core.FileContext) (*FileResult, error) {
	p.policy.Reset()

	occurrences := p.AnalyzeFile(ctx)
	result := &FileResult{Path: ctx.Path, Occurrences: occurrences}
	if len(occurrences) == 0 {
		result.NewContent = string(ctx.Content)
		return result, nil
	}

	p.log.Debugw("processing file", "path", ctx.RelPath, "occurrences", len(occurrences))

	quitter, _ := p.policy.(policy.Quitter)

	decisions := make([]core.Decision, 0, len(occurrences))
	for _, occ := range occurrences {
		// After a quit the remaining occurrences stay untouched and
		// uncounted: nobody decided anything about them.
		if quitter != nil && quitter.Quit() {
			decisions = append(decisions, core.Decision{Occurrence: occ, Action: core.ActionKeep})
			continue
		}
		action := p.policy.Decide(occ)
		p.stats.RecordAction(action)
		decisions = append(decisions, core.Decision{Occurrence: occ, Action: action})
	}

	applied := p.applier.Apply(string(ctx.Content), decisions)
	result.NewContent = applied.Content
	result.Modified = applied.Modified
	result.Reverted = applied.Reverted
	result.Applied = applied.Applied
	result.Edits = applied.Edits
	result.Warnings = applied.Warnings
	p.stats.Warnings += len(applied.Warnings)

	if applied.Reverted {
		p.stats.FilesReverted++
		p.log.Debugw("file reverted", "path", ctx.RelPath)
		return result, nil
	}

	if !applied.Modified {
		return result, nil
	}

	p.stats.FilesModified++

	if p.dryRun {
		return result, nil
	}

	if p.backups != nil {
		if err := p.backups.Snapshot(ctx.Path, ctx.Content); err != nil {
			return result, fmt.Errorf("backup %s: %w", ctx.RelPath, err)
		}
	}

	if err := os.WriteFile(ctx.Path, []byte(applied.Content), filePermissions); err != nil {
		return result, fmt.Errorf("write %s: %w", ctx.RelPath, err)
	}

	p.log.Debugw("file rewritten", "path", ctx.RelPath, "edits", applied.Applied)
	return result, nil
}

// Run processes every file in order and collects the results. A
// failing file is reported and skipped; it never aborts the batch.
func (p *Processor) Run(contexts []*core.FileContext) ([]*FileResult, []error) {
	var results []*FileResult
	var errs []error
	for _, ctx := range contexts {
		result, err := p.ProcessFile(ctx)
		if err != nil {
			errs = append(errs, err)
		}
		if result != nil {
			results = append(results, result)
		}
	}
	return results, errs
}
