package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/planetprint/internal/config"
)

// errConfigExists is returned when init would overwrite a config file.
var errConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// NewConfigInitCmd creates the config init command. Inside a project
// (without --global) it creates a project-local .planetprint/ directory
// with config.yaml and .gitignore. Otherwise it creates the user config.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

With --project-dir or PLANETPRINT_PROJECT_DIR, creates project-local
configuration at $PROJECT/.planetprint/config.yaml with a .gitignore that
keeps questionnaire answers out of version control. Use --global to write
the user configuration even inside a project.`,
		Example: `  # Create project-local configuration
  planetprint config init --project-dir .

  # Create user configuration
  planetprint config init --global

  # Create configuration, overwriting existing
  planetprint config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectDir := config.GetResolvedProjectDir()

			if projectDir != "" && !global {
				return initProjectConfig(cmd, projectDir, force)
			}

			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "write the user configuration even inside a project")

	return cmd
}

// checkOverwrite refuses to replace an existing file unless force is set.
func checkOverwrite(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return errConfigExists
	case os.IsNotExist(err):
		return nil
	default:
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}
}

// initProjectConfig creates project-local config at projectDir/config.yaml with .gitignore.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	configPath := filepath.Join(projectDir, "config.yaml")
	if err := checkOverwrite(configPath, force); err != nil {
		return err
	}

	if err := os.MkdirAll(projectDir, 0o750); err != nil {
		return fmt.Errorf("failed to create project config directory: %w", err)
	}

	cfg := config.Default()
	cfg.SetConfigPath(configPath)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	// Never overwrites an existing .gitignore.
	created, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	if created {
		cmd.Printf("Created .gitignore to keep questionnaire answers out of version control\n")
	}

	return nil
}

// initGlobalConfig creates the user config at $PLANETPRINT_HOME/config.yaml.
func initGlobalConfig(cmd *cobra.Command, force bool) error {
	path, err := config.DefaultConfigPath()
	if err != nil {
		return err
	}
	if err = checkOverwrite(path, force); err != nil {
		return err
	}
	if err = config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := config.Default()
	cfg.SetConfigPath(path)
	if err = cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", cfg.ConfigPath())

	return nil
}
