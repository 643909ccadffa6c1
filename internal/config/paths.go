package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Paths centralizes every file location the pipeline touches. All stages
// resolve files through this type so the raw/processed layout is defined in
// exactly one place.
type Paths struct {
	BaseDir      string
	DataDir      string
	RawDir       string
	ProcessedDir string
	LogsDir      string
	WebDir       string
}

var (
	pathsInstance *Paths
	pathsOnce     sync.Once
	pathsErr      error
)

// GetPaths returns the singleton Paths, rooted at DRAFTPULSE_BASE_DIR or the
// current working directory.
func GetPaths() (*Paths, error) {
	pathsOnce.Do(func() {
		pathsInstance, pathsErr = resolvePaths()
	})
	return pathsInstance, pathsErr
}

// NewPaths builds a Paths rooted at baseDir. Used directly by tests and by
// commands that take an explicit output directory.
func NewPaths(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	return &Paths{
		BaseDir:      baseDir,
		DataDir:      dataDir,
		RawDir:       filepath.Join(dataDir, "raw"),
		ProcessedDir: filepath.Join(dataDir, "processed"),
		LogsDir:      filepath.Join(baseDir, "logs"),
		WebDir:       filepath.Join(baseDir, "web"),
	}
}

func resolvePaths() (*Paths, error) {
	baseDir := os.Getenv("DRAFTPULSE_BASE_DIR")
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		baseDir = wd
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}
	return NewPaths(abs), nil
}

// EnsureDirectories creates every directory the pipeline writes to.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, p.RawDir, p.ProcessedDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// RawDraftCSV returns the cached draft CSV path for a draft year.
func (p *Paths) RawDraftCSV(year int) string {
	return filepath.Join(p.RawDir, fmt.Sprintf("draft_%d.csv", year))
}

// RawAllProCSV returns the cached All-Pro CSV path for a season.
func (p *Paths) RawAllProCSV(year int) string {
	return filepath.Join(p.RawDir, fmt.Sprintf("allpro_%d.csv", year))
}

// DraftCleanedCSV returns the cleaned draft dataset path.
func (p *Paths) DraftCleanedCSV() string {
	return filepath.Join(p.ProcessedDir, "draft_cleaned.csv")
}

// AllProCleanedCSV returns the cleaned All-Pro dataset path.
func (p *Paths) AllProCleanedCSV() string {
	return filepath.Join(p.ProcessedDir, "allpro_cleaned.csv")
}

// MergedCSV returns the merged cohort dataset path.
func (p *Paths) MergedCSV() string {
	return filepath.Join(p.ProcessedDir, "merged_dataset.csv")
}

// HitRateByRoundCSV returns the per-round aggregate path.
func (p *Paths) HitRateByRoundCSV() string {
	return filepath.Join(p.ProcessedDir, "hit_rate_by_round.csv")
}

// HitRateByPositionCSV returns the per-position aggregate path.
func (p *Paths) HitRateByPositionCSV() string {
	return filepath.Join(p.ProcessedDir, "hit_rate_by_position.csv")
}

// GetLogPath returns the path for a named log file.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
