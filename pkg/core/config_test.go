package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, []string{"console.log"}, cfg.CallTokens)
	assert.Equal(t, "auto", cfg.Settings.Mode)
	assert.Equal(t, RiskHigh, cfg.GetMinRiskKeep())
	assert.True(t, cfg.ConvertCatchEnabled())
	assert.True(t, cfg.BackupEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".logsweep.yaml")

	content := `version: 1
call_tokens:
  - console.log
  - logger.debug
settings:
  mode: interactive
  min_risk_keep: medium
  convert_catch: false
backup:
  dir: .backups
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, []string{"console.log", "logger.debug"}, cfg.CallTokens)
	assert.Equal(t, "interactive", cfg.Settings.Mode)
	assert.False(t, *cfg.Settings.ConvertCatch)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `settings:
  min_risk_keep: medium
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".logsweep.yaml"), []byte(content), 0644))

	cfg, err := LoadConfigWithDefaults(dir)
	require.NoError(t, err)

	// Overridden value
	assert.Equal(t, RiskMedium, cfg.GetMinRiskKeep())
	// Defaults survive
	assert.Equal(t, []string{"console.log"}, cfg.CallTokens)
	assert.Equal(t, "auto", cfg.Settings.Mode)
	assert.Equal(t, DefaultScopeScanBound, cfg.Settings.ScopeScanBound)
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".logsweep.yaml"), []byte("version: 1\n"), 0644))

	found, err := FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".logsweep.yaml"), found)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty call tokens", func(c *Config) { c.CallTokens = nil }},
		{"bad mode", func(c *Config) { c.Settings.Mode = "yolo" }},
		{"bad risk", func(c *Config) { c.Settings.MinRiskKeep = "critical" }},
		{"negative window", func(c *Config) { c.Settings.Window = -1 }},
		{"zero scan bound", func(c *Config) { c.Settings.ScopeScanBound = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestShouldExclude(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.Exclude = []string{"vendor/*", "*.min.js"}

	assert.True(t, cfg.ShouldExclude("vendor/lib.js"))
	assert.True(t, cfg.ShouldExclude("dist/app.min.js"))
	assert.False(t, cfg.ShouldExclude("src/app.js"))
}
