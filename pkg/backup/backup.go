// Package backup manages per-run file backups and the restore path.
// Each run gets its own directory named by a fresh run ID, with a
// YAML manifest mapping stored copies back to their original paths.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	manifestName    = "manifest.yaml"
	dirPermissions  = 0755
	filePermissions = 0644
)

// Entry maps one backed-up file to its stored copy
type Entry struct {
	Original string `yaml:"original"` // Path relative to project root
	Stored   string `yaml:"stored"`   // File name within the run directory
}

// Manifest describes one backup run
type Manifest struct {
	RunID     string    `yaml:"run_id"`
	CreatedAt time.Time `yaml:"created_at"`
	Files     []Entry   `yaml:"files"`
}

// Manager takes per-file snapshots before the codemod writes
type Manager struct {
	projectRoot string
	runDir      string
	manifest    Manifest
}

// NewManager creates a manager for one run. The run directory is
// created lazily on the first snapshot.
func NewManager(projectRoot, backupDir string) *Manager {
	runID := uuid.NewString()
	return &Manager{
		projectRoot: projectRoot,
		runDir:      filepath.Join(projectRoot, backupDir, runID),
		manifest: Manifest{
			RunID:     runID,
			CreatedAt: time.Now().UTC(),
		},
	}
}

// RunID returns this run's identifier
func (m *Manager) RunID() string {
	return m.manifest.RunID
}

// Count returns the number of files backed up so far
func (m *Manager) Count() int {
	return len(m.manifest.Files)
}

// Snapshot stores a copy of the file's original content. Called by
// the orchestrator before the file is rewritten.
func (m *Manager) Snapshot(path string, content []byte) error {
	if err := os.MkdirAll(m.runDir, dirPermissions); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	rel, err := filepath.Rel(m.projectRoot, path)
	if err != nil {
		rel = path
	}

	stored := fmt.Sprintf("%03d_%s", len(m.manifest.Files)+1, filepath.Base(path))
	if err := os.WriteFile(filepath.Join(m.runDir, stored), content, filePermissions); err != nil {
		return fmt.Errorf("write backup copy: %w", err)
	}

	m.manifest.Files = append(m.manifest.Files, Entry{Original: rel, Stored: stored})
	return m.writeManifest()
}

func (m *Manager) writeManifest() error {
	data, err := yaml.Marshal(&m.manifest)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.runDir, manifestName), data, filePermissions); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// LoadManifest reads the manifest of a given run
func LoadManifest(projectRoot, backupDir, runID string) (*Manifest, error) {
	path := filepath.Join(projectRoot, backupDir, runID, manifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest for run %s: %w", runID, err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest for run %s: %w", runID, err)
	}
	return &manifest, nil
}

// LatestRun returns the most recent run ID under the backup dir
func LatestRun(projectRoot, backupDir string) (string, error) {
	root := filepath.Join(projectRoot, backupDir)
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("read backup dir: %w", err)
	}

	var latestID string
	var latestTime time.Time
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		manifest, err := LoadManifest(projectRoot, backupDir, e.Name())
		if err != nil {
			continue
		}
		if latestID == "" || manifest.CreatedAt.After(latestTime) {
			latestID = e.Name()
			latestTime = manifest.CreatedAt
		}
	}

	if latestID == "" {
		return "", fmt.Errorf("no backup runs found in %s", root)
	}
	return latestID, nil
}

// Restore copies every file of a run back to its original location
// and returns the number of files restored.
func Restore(projectRoot, backupDir, runID string) (int, error) {
	manifest, err := LoadManifest(projectRoot, backupDir, runID)
	if err != nil {
		return 0, err
	}

	runDir := filepath.Join(projectRoot, backupDir, runID)
	restored := 0
	for _, entry := range manifest.Files {
		content, err := os.ReadFile(filepath.Join(runDir, entry.Stored))
		if err != nil {
			return restored, fmt.Errorf("read backup copy %s: %w", entry.Stored, err)
		}
		target := filepath.Join(projectRoot, entry.Original)
		if err := os.WriteFile(target, content, filePermissions); err != nil {
			return restored, fmt.Errorf("restore %s: %w", entry.Original, err)
		}
		restored++
	}

	return restored, nil
}
