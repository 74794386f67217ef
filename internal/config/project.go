package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/rshade/planetprint/internal/logging"
)

// ErrNoProject is returned by FindProject when no project directory exists
// between the start directory and the filesystem root.
var ErrNoProject = errors.New("no .planetprint project directory found")

// resolvedProjectDir holds the resolved project directory path for use
// by other config functions during the lifetime of a CLI invocation.
var (
	resolvedProjectDir   string       //nolint:gochecknoglobals // Set once at startup, read by config loaders
	resolvedProjectDirMu sync.RWMutex //nolint:gochecknoglobals // Protects resolvedProjectDir
)

// SetResolvedProjectDir stores the resolved project directory for use by other config functions.
func SetResolvedProjectDir(dir string) {
	resolvedProjectDirMu.Lock()
	defer resolvedProjectDirMu.Unlock()
	resolvedProjectDir = dir
}

// GetResolvedProjectDir returns the stored resolved project directory.
func GetResolvedProjectDir() string {
	resolvedProjectDirMu.RLock()
	defer resolvedProjectDirMu.RUnlock()
	return resolvedProjectDir
}

// ResolveProjectDir determines the project-local .planetprint directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. PLANETPRINT_PROJECT_DIR env var
//  3. FindProject(startDir) walk-up
//
// Returns the absolute path to $PROJECT/.planetprint/ or an empty string if
// no project was found. The directory is never created.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	if startDir == "" {
		return ""
	}
	projectRoot, err := FindProject(startDir)
	if err != nil {
		if !errors.Is(err, ErrNoProject) {
			logger := logging.FromContext(ctx)
			logger.Warn().
				Str("component", "config").
				Err(err).
				Str("start_dir", startDir).
				Msg("unexpected error during project discovery")
		}
		return ""
	}

	return toAbsProjectDir(ctx, projectRoot)
}

// FindProject walks up from dir to the first directory holding a
// .planetprint/config.yaml and returns that directory. The user config
// directory itself never counts as a project.
func FindProject(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	userDir, _ := GetConfigDir()

	for {
		candidate := filepath.Join(current, dirName)
		if candidate != userDir {
			if _, statErr := os.Stat(filepath.Join(candidate, configFileName)); statErr == nil {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNoProject
		}
		current = parent
	}
}

// NewWithProjectDir creates a Config by loading global config then
// shallow-merging project-local config on top. If projectDir is empty,
// behaves identically to New().
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	return ApplyProjectOverlay(ctx, New(), projectDir)
}

// ApplyProjectOverlay merges projectDir/config.yaml onto a copy of cfg and
// re-applies the environment, which keeps precedence over project files.
// A missing or broken overlay leaves cfg as it is.
func ApplyProjectOverlay(ctx context.Context, cfg *Config, projectDir string) *Config {
	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return cfg
	}

	merged := *cfg
	if err := ShallowMergeYAML(&merged, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global settings")
		return cfg
	}
	merged.ApplyEnvOverrides()
	return &merged
}

// toAbsProjectDir converts dir to an absolute path and appends
// ".planetprint" unless it already ends with it.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == dirName {
		return abs
	}

	return filepath.Join(abs, dirName)
}
