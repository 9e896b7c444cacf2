package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/logsweep/logsweep/pkg/analyze"
	"github.com/logsweep/logsweep/pkg/core"
)

const outputLineWidth = 60

// Stats carries run-level figures for the report header
type Stats struct {
	FilesScanned int
	FilesSkipped int
	Duration     float64
}

// ConsoleOutput writes scan reports and run summaries with colors
type ConsoleOutput struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

// NewConsoleOutput creates a new console output
func NewConsoleOutput() *ConsoleOutput {
	return &ConsoleOutput{
		writer: os.Stdout,
	}
}

// WithWriter sets a custom writer
func (c *ConsoleOutput) WithWriter(w io.Writer) *ConsoleOutput {
	c.writer = w
	return c
}

// WithVerbose enables verbose output
func (c *ConsoleOutput) WithVerbose(v bool) *ConsoleOutput {
	c.verbose = v
	return c
}

// WithNoColor disables colors
func (c *ConsoleOutput) WithNoColor(v bool) *ConsoleOutput {
	c.noColor = v
	if v {
		color.NoColor = true
	}
	return c
}

// WriteScan reports every occurrence found, grouped by file
func (c *ConsoleOutput) WriteScan(occurrences core.OccurrenceList, stats Stats) error {
	if len(occurrences) == 0 {
		green := color.New(color.FgGreen, color.Bold)
		fmt.Fprintln(c.writer)
		green.Fprintln(c.writer, "No debug prints found!")
		fmt.Fprintf(c.writer, "Files scanned: %d\n", stats.FilesScanned)
		fmt.Fprintln(c.writer)
		return nil
	}

	fmt.Fprintln(c.writer)
	fmt.Fprintln(c.writer, "LOGSWEEP SCAN RESULTS")
	fmt.Fprintln(c.writer, strings.Repeat("=", outputLineWidth))
	fmt.Fprintf(c.writer, "Files scanned: %d\n", stats.FilesScanned)
	if stats.FilesSkipped > 0 {
		fmt.Fprintf(c.writer, "Files skipped: %d\n", stats.FilesSkipped)
	}
	fmt.Fprintln(c.writer)

	byFile := occurrences.ByFile()
	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)

	cyan := color.New(color.FgCyan, color.Bold)
	for _, file := range files {
		fileOccs := byFile[file]
		sort.Slice(fileOccs, func(i, j int) bool {
			return fileOccs[i].Line < fileOccs[j].Line
		})

		cyan.Fprintf(c.writer, "%s\n", file)
		for _, occ := range fileOccs {
			c.printOccurrence(occ)
		}
		fmt.Fprintln(c.writer)
	}

	c.printScanSummary(occurrences)
	return nil
}

func (c *ConsoleOutput) printOccurrence(occ *core.Occurrence) {
	riskLabel := ""
	if occ.Risk > core.RiskNone {
		riskLabel = fmt.Sprintf(" [%s: %s]", occ.Risk.Label(), strings.Join(occ.RiskMatches, ", "))
	}

	fmt.Fprintf(c.writer, "  %4d: ", occ.Line)
	riskColor(occ.Risk).Fprintf(c.writer, "%s", strings.TrimSpace(analyze.MaskSecrets(occ.RawText)))
	fmt.Fprintf(c.writer, "  (%s)%s\n", occ.Context(), riskLabel)

	if c.verbose && len(occ.Window) > 0 {
		for i, line := range occ.Window {
			lineNum := occ.WindowStart + i
			if lineNum == occ.Line {
				continue
			}
			fmt.Fprintf(c.writer, "        %4d | %s\n", lineNum, line)
		}
	}
}

func (c *ConsoleOutput) printScanSummary(occurrences core.OccurrenceList) {
	fmt.Fprintln(c.writer, strings.Repeat("-", outputLineWidth))
	fmt.Fprintf(c.writer, "Total occurrences: %d\n", len(occurrences))

	counts := occurrences.CountByRisk()
	for _, risk := range []core.Risk{core.RiskHigh, core.RiskMedium, core.RiskLow} {
		if counts[risk] == 0 {
			continue
		}
		riskColor(risk).Fprintf(c.writer, "  %s: %d\n", risk.Label(), counts[risk])
	}
	fmt.Fprintln(c.writer)
}

// WriteSummary reports the outcome of a clean run
func (c *ConsoleOutput) WriteSummary(stats *core.RunStats, dryRun bool) error {
	fmt.Fprintln(c.writer)
	fmt.Fprintln(c.writer, "LOGSWEEP RUN SUMMARY")
	fmt.Fprintln(c.writer, strings.Repeat("=", outputLineWidth))
	fmt.Fprintf(c.writer, "Files scanned:    %d\n", stats.FilesScanned)
	fmt.Fprintf(c.writer, "Files modified:   %d\n", stats.FilesModified)
	if stats.FilesReverted > 0 {
		color.New(color.FgYellow).Fprintf(c.writer, "Files reverted:   %d (integrity check failed)\n", stats.FilesReverted)
	}
	fmt.Fprintf(c.writer, "Occurrences:      %d\n", stats.Found)
	fmt.Fprintf(c.writer, "  deleted:        %d\n", stats.Deleted)
	fmt.Fprintf(c.writer, "  kept:           %d\n", stats.Kept)
	fmt.Fprintf(c.writer, "  to info:        %d\n", stats.ConvertedInfo)
	fmt.Fprintf(c.writer, "  to error:       %d\n", stats.ConvertedError)
	fmt.Fprintf(c.writer, "  comments gone:  %d\n", stats.CommentsRemoved)
	if stats.Skipped > 0 {
		fmt.Fprintf(c.writer, "  skipped:        %d\n", stats.Skipped)
	}

	for _, risk := range []core.Risk{core.RiskHigh, core.RiskMedium, core.RiskLow} {
		if n := stats.SensitiveByRisk[risk]; n > 0 {
			riskColor(risk).Fprintf(c.writer, "Sensitive (%s):  %d\n", strings.ToLower(risk.Label()), n)
		}
	}

	if stats.Warnings > 0 && c.verbose {
		color.New(color.FgYellow).Fprintf(c.writer, "Warnings:         %d\n", stats.Warnings)
	}

	if dryRun && stats.Changed() > 0 {
		fmt.Fprintln(c.writer)
		fmt.Fprintln(c.writer, "Dry run: no files were written. Re-run with --apply to make changes.")
	}
	fmt.Fprintln(c.writer)
	return nil
}

func riskColor(r core.Risk) *color.Color {
	switch r {
	case core.RiskHigh:
		return color.New(color.FgRed, color.Bold)
	case core.RiskMedium:
		return color.New(color.FgYellow)
	case core.RiskLow:
		return color.New(color.FgBlue)
	default:
		return color.New(color.FgWhite)
	}
}
