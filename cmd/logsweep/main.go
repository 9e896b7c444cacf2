package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/logsweep/logsweep/pkg/analyze"
	"github.com/logsweep/logsweep/pkg/backup"
	"github.com/logsweep/logsweep/pkg/core"
	"github.com/logsweep/logsweep/pkg/output"
	"github.com/logsweep/logsweep/pkg/policy"
	"github.com/logsweep/logsweep/pkg/prompt"
	"github.com/logsweep/logsweep/pkg/session"
	"github.com/logsweep/logsweep/pkg/transform"
)

var version = "dev"

const defaultFilePermissions = 0644

// CLI flags
var (
	flagVerbose bool
	flagDebug   bool
	flagNoColor bool
	// Clean command flags
	flagApply        bool
	flagInteractive  bool
	flagNoBackup     bool
	flagBackupDir    string
	flagMaxRisk      string
	flagConvertCatch bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "logsweep",
	Short: "Logsweep - debug-print scrubber for JS/TS trees",
	Long: `Logsweep finds debug-print calls (console.log and friends), classifies
each call site by its surrounding context, and deletes, converts, or
keeps each one - automatically or interactively - with per-run backups.`,
	Version: version,
}

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Find and classify debug prints without changing anything",
	RunE:  runScan,
}

var cleanCmd = &cobra.Command{
	Use:   "clean [paths...]",
	Short: "Remove or convert debug prints",
	Long: `Remove or convert debug prints in the specified paths (or the current
directory if none given).

By default runs in dry-run mode to show what would change.
Use --apply to actually rewrite files. A backup of every rewritten
file is stored under the backup directory unless --no-backup is set.`,
	RunE: runClean,
}

var restoreCmd = &cobra.Command{
	Use:   "restore [run-id]",
	Short: "Restore files from a backup run (latest if omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRestore,
}

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch for changes and report new debug prints",
	RunE:  runWatch,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize .logsweep.yaml configuration",
	RunE:  runInit,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	RunE:  runConfigValidate,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Show detailed output")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	cleanCmd.Flags().BoolVar(&flagApply, "apply", false, "Write changes (default is dry-run)")
	cleanCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Confirm each occurrence interactively")
	cleanCmd.Flags().BoolVar(&flagNoBackup, "no-backup", false, "Skip per-file backups")
	cleanCmd.Flags().StringVar(&flagBackupDir, "backup-dir", "", "Backup directory (overrides config)")
	cleanCmd.Flags().StringVar(&flagMaxRisk, "max-risk", "", "Keep occurrences at or above this risk (none, low, medium, high)")
	cleanCmd.Flags().BoolVar(&flagConvertCatch, "convert-catch", true, "Convert catch-block prints to error level")

	restoreCmd.Flags().StringVar(&flagBackupDir, "backup-dir", "", "Backup directory (overrides config)")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
}

func newLogger() *zap.SugaredLogger {
	if !flagDebug {
		return zap.NewNop().Sugar()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

func getProjectRoot(args []string) (string, error) {
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	projectRoot := paths[0]
	if projectRoot == "." {
		var err error
		projectRoot, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
	}
	return projectRoot, nil
}

func loadConfig(projectRoot string, cmd *cobra.Command) (*core.Config, error) {
	cfg, err := core.LoadConfigWithDefaults(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if flagMaxRisk != "" {
		cfg.Settings.MinRiskKeep = flagMaxRisk
	}
	if flagInteractive {
		cfg.Settings.Mode = "interactive"
	}
	if flagBackupDir != "" {
		cfg.Backup.Dir = flagBackupDir
	}
	if flagNoBackup {
		disabled := false
		cfg.Backup.Enabled = &disabled
	}
	if cmd != nil && cmd.Flags().Changed("convert-catch") {
		cfg.Settings.ConvertCatch = &flagConvertCatch
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func walkFiles(projectRoot string, cfg *core.Config) ([]*core.FileContext, core.WalkerStats) {
	walker := core.NewWalker(projectRoot, cfg)
	contexts, errors := walker.WalkSync()

	for _, err := range errors {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if flagVerbose {
		fmt.Printf("Found %d files to analyze\n", walker.Stats().TotalFiles)
	}

	return contexts, walker.Stats()
}

func runScan(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	projectRoot, err := getProjectRoot(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(projectRoot, nil)
	if err != nil {
		return err
	}

	contexts, walkStats := walkFiles(projectRoot, cfg)

	processor := session.NewProcessor(cfg, policy.NewAutoPolicy(cfg), newLogger())
	var all core.OccurrenceList
	for _, ctx := range contexts {
		all = append(all, processor.AnalyzeFile(ctx)...)
	}

	out := output.NewConsoleOutput().
		WithWriter(os.Stdout).
		WithVerbose(flagVerbose).
		WithNoColor(flagNoColor)

	stats := output.Stats{
		FilesScanned: len(contexts),
		FilesSkipped: walkStats.SkippedFiles,
		Duration:     time.Since(startTime).Seconds(),
	}
	if err := out.WriteScan(all, stats); err != nil {
		return fmt.Errorf("output error: %w", err)
	}

	if all.HasHighRisk() {
		os.Exit(1)
	}
	return nil
}

func runClean(cmd *cobra.Command, args []string) error {
	projectRoot, err := getProjectRoot(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(projectRoot, cmd)
	if err != nil {
		return err
	}

	dryRun := !flagApply
	if !dryRun {
		if hasChanges, err := hasUncommittedChanges(projectRoot); err == nil && hasChanges {
			fmt.Println("Note: you have uncommitted changes. Backups will be taken per file.")
		}
	}

	processor := session.NewProcessor(cfg, buildPolicy(cfg), newLogger()).WithDryRun(dryRun)

	var backups *backup.Manager
	if !dryRun && cfg.BackupEnabled() {
		backups = backup.NewManager(projectRoot, cfg.Backup.Dir)
		processor.WithBackups(backups)
	}

	contexts, _ := walkFiles(projectRoot, cfg)

	results, errs := processor.Run(contexts)
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if flagVerbose || dryRun {
		printFileResults(results, dryRun)
	}

	out := output.NewConsoleOutput().
		WithWriter(os.Stdout).
		WithVerbose(flagVerbose).
		WithNoColor(flagNoColor)
	if err := out.WriteSummary(processor.Stats(), dryRun); err != nil {
		return fmt.Errorf("output error: %w", err)
	}

	if backups != nil && backups.Count() > 0 {
		fmt.Printf("Backups stored under %s/%s\n", cfg.Backup.Dir, backups.RunID())
		fmt.Printf("Run `logsweep restore %s` to roll back.\n", backups.RunID())
	}

	return nil
}

func buildPolicy(cfg *core.Config) policy.Policy {
	if cfg.Settings.Mode != "interactive" {
		return policy.NewAutoPolicy(cfg)
	}

	prompter := prompt.NewTerminalPrompter().WithNoColor(flagNoColor)
	matcher := analyze.NewMatcher(cfg.CallTokens)
	return policy.NewInteractivePolicy(prompter, matcher)
}

func printFileResults(results []*session.FileResult, dryRun bool) {
	for _, r := range results {
		if r.Applied == 0 && !r.Reverted {
			continue
		}
		if r.Reverted {
			fmt.Printf("  %s: integrity check failed, file left unchanged\n", r.Path)
			continue
		}
		verb := "edits"
		if dryRun {
			verb = "pending edits"
		}
		fmt.Printf("  %s: %d %s\n", r.Path, r.Applied, verb)
		if dryRun {
			fmt.Print(transform.PreviewEdits(r.Path, r.Edits))
		}
		if flagVerbose {
			for _, w := range r.Warnings {
				fmt.Printf("    warning: %s\n", w)
			}
		}
	}
}

func hasUncommittedChanges(projectRoot string) (bool, error) {
	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = projectRoot
	out, err := cmd.Output()
	if err != nil {
		// Not a git repo or git not available - skip check
		return false, nil
	}
	return len(strings.TrimSpace(string(out))) > 0, nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	projectRoot, err := getProjectRoot(nil)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(projectRoot, nil)
	if err != nil {
		return err
	}

	runID := ""
	if len(args) > 0 {
		runID = args[0]
	} else {
		runID, err = backup.LatestRun(projectRoot, cfg.Backup.Dir)
		if err != nil {
			return err
		}
	}

	restored, err := backup.Restore(projectRoot, cfg.Backup.Dir, runID)
	if err != nil {
		return fmt.Errorf("restore failed after %d files: %w", restored, err)
	}

	fmt.Printf("Restored %d files from run %s\n", restored, runID)
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	projectRoot, err := getProjectRoot(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(projectRoot, nil)
	if err != nil {
		return err
	}

	out := output.NewConsoleOutput().
		WithWriter(os.Stdout).
		WithVerbose(flagVerbose).
		WithNoColor(flagNoColor)

	watcher := session.NewWatcher(projectRoot, cfg, newLogger())
	watcher.OnFile = func(fileCtx *core.FileContext, occurrences core.OccurrenceList) {
		_ = out.WriteScan(occurrences, output.Stats{FilesScanned: 1})
	}

	fmt.Printf("Watching %s for debug prints (Ctrl-C to stop)...\n", projectRoot)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := watcher.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	configContent := `# Logsweep configuration

version: 1

call_tokens:
  - console.log

settings:
  exclude:
    - node_modules/**
    - dist/**
    - build/**
    - "**/*.min.js"
  mode: auto
  min_risk_keep: high
  window: 3
  scope_scan_bound: 15
  convert_catch: true

backup:
  enabled: true
  dir: .logsweep-backups
`

	filename := ".logsweep.yaml"
	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("%s already exists", filename)
	}

	if err := os.WriteFile(filename, []byte(configContent), defaultFilePermissions); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("Created %s\n", filename)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	cfg, err := core.LoadConfigWithDefaults(cwd)
	if err != nil {
		return err
	}

	fmt.Println("Effective configuration:")
	fmt.Println()
	fmt.Printf("Call tokens: %s\n", strings.Join(cfg.CallTokens, ", "))
	fmt.Printf("Mode: %s\n", cfg.Settings.Mode)
	fmt.Printf("Keep at risk: %s\n", cfg.Settings.MinRiskKeep)
	fmt.Printf("Window: %d\n", cfg.Settings.Window)
	fmt.Printf("Scope scan bound: %d\n", cfg.Settings.ScopeScanBound)
	fmt.Printf("Convert catch prints: %t\n", cfg.ConvertCatchEnabled())
	fmt.Printf("Backups: %t (%s)\n", cfg.BackupEnabled(), cfg.Backup.Dir)
	fmt.Println()
	fmt.Println("Excluded patterns:")
	for _, p := range cfg.Settings.Exclude {
		fmt.Printf("  - %s\n", p)
	}

	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configPath, err := core.FindConfig(cwd)
	if err != nil {
		return err
	}

	if configPath == "" {
		fmt.Println("No configuration file found")
		return nil
	}

	cfg, err := core.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := core.MergeConfigs(core.DefaultConfig(), cfg).Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Printf("Configuration valid: %s\n", configPath)
	return nil
}
