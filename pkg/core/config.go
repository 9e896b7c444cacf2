package core

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default heuristic bounds. The scope scan bound is deliberately small:
// the tracker is a cheap approximation, not a scope resolver.
const (
	DefaultWindow         = 3
	DefaultScopeScanBound = 15
)

// Config represents the logsweep configuration
type Config struct {
	Version    int            `yaml:"version"`
	CallTokens []string       `yaml:"call_tokens"`
	Settings   SettingsConfig `yaml:"settings"`
	Backup     BackupConfig   `yaml:"backup"`
}

// SettingsConfig contains global settings
type SettingsConfig struct {
	Exclude        []string `yaml:"exclude"`
	Mode           string   `yaml:"mode"` // auto or interactive
	MinRiskKeep    string   `yaml:"min_risk_keep"`
	Window         int      `yaml:"window"`
	ScopeScanBound int      `yaml:"scope_scan_bound"`
	ConvertCatch   *bool    `yaml:"convert_catch,omitempty"`
}

// BackupConfig controls per-run backups
type BackupConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Dir     string `yaml:"dir"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:    1,
		CallTokens: []string{"console.log"},
		Settings: SettingsConfig{
			Exclude: []string{
				"node_modules/**",
				"dist/**",
				"build/**",
				"**/*.min.js",
			},
			Mode:           "auto",
			MinRiskKeep:    "high",
			Window:         DefaultWindow,
			ScopeScanBound: DefaultScopeScanBound,
		},
		Backup: BackupConfig{
			Dir: ".logsweep-backups",
		},
	}
}

// LoadConfig loads configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// FindConfig searches for .logsweep.yaml in the directory and its parents
func FindConfig(startDir string) (string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".logsweep.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		configPath = filepath.Join(dir, "logsweep.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return "", nil
		}
		dir = parent
	}
}

// LoadConfigWithDefaults loads config and merges with defaults
func LoadConfigWithDefaults(projectRoot string) (*Config, error) {
	cfg := DefaultConfig()

	configPath, err := FindConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	if configPath != "" {
		projectCfg, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = MergeConfigs(cfg, projectCfg)
	}

	return cfg, nil
}

// MergeConfigs merges two configs, with override taking precedence
func MergeConfigs(base, override *Config) *Config {
	result := &Config{
		Version:    base.Version,
		CallTokens: base.CallTokens,
		Settings:   base.Settings,
		Backup:     base.Backup,
	}

	if override.Version != 0 {
		result.Version = override.Version
	}
	if len(override.CallTokens) > 0 {
		result.CallTokens = override.CallTokens
	}
	if len(override.Settings.Exclude) > 0 {
		result.Settings.Exclude = override.Settings.Exclude
	}
	if override.Settings.Mode != "" {
		result.Settings.Mode = override.Settings.Mode
	}
	if override.Settings.MinRiskKeep != "" {
		result.Settings.MinRiskKeep = override.Settings.MinRiskKeep
	}
	if override.Settings.Window > 0 {
		result.Settings.Window = override.Settings.Window
	}
	if override.Settings.ScopeScanBound > 0 {
		result.Settings.ScopeScanBound = override.Settings.ScopeScanBound
	}
	if override.Settings.ConvertCatch != nil {
		result.Settings.ConvertCatch = override.Settings.ConvertCatch
	}
	if override.Backup.Enabled != nil {
		result.Backup.Enabled = override.Backup.Enabled
	}
	if override.Backup.Dir != "" {
		result.Backup.Dir = override.Backup.Dir
	}

	return result
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if len(c.CallTokens) == 0 {
		return fmt.Errorf("call_tokens must not be empty")
	}
	if c.Settings.Mode != "auto" && c.Settings.Mode != "interactive" {
		return fmt.Errorf("settings.mode must be auto or interactive, got %q", c.Settings.Mode)
	}
	if _, err := ParseRisk(c.Settings.MinRiskKeep); err != nil {
		return fmt.Errorf("settings.min_risk_keep: %w", err)
	}
	if c.Settings.Window < 0 {
		return fmt.Errorf("settings.window must not be negative")
	}
	if c.Settings.ScopeScanBound < 1 {
		return fmt.Errorf("settings.scope_scan_bound must be at least 1")
	}
	return nil
}

// GetMinRiskKeep returns the risk level at or above which auto mode keeps
func (c *Config) GetMinRiskKeep() Risk {
	risk, err := ParseRisk(c.Settings.MinRiskKeep)
	if err != nil {
		return RiskHigh
	}
	return risk
}

// ConvertCatchEnabled reports whether catch-block calls are converted
func (c *Config) ConvertCatchEnabled() bool {
	if c.Settings.ConvertCatch == nil {
		return true
	}
	return *c.Settings.ConvertCatch
}

// BackupEnabled reports whether per-file backups are taken
func (c *Config) BackupEnabled() bool {
	if c.Backup.Enabled == nil {
		return true
	}
	return *c.Backup.Enabled
}

// ShouldExclude checks if a path should be excluded based on glob patterns
func (c *Config) ShouldExclude(path string) bool {
	for _, pattern := range c.Settings.Exclude {
		matched, err := filepath.Match(pattern, path)
		if err == nil && matched {
			return true
		}
		// Also try matching against the base name
		matched, err = filepath.Match(pattern, filepath.Base(path))
		if err == nil && matched {
			return true
		}
	}
	return false
}
