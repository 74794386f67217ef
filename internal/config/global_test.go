package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/planetprint/internal/config"
	"github.com/rshade/planetprint/internal/logging"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "table", cfg.Output.DefaultFormat)
	assert.Equal(t, 1, cfg.Output.Precision)
	assert.Equal(t, "france", cfg.Output.Region)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.TTL)
	assert.InDelta(t, 57.0, cfg.GreenOps.GridIntensityGPerKWh, 1e-9)
	assert.False(t, cfg.Demo.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestGlobalConfig(t *testing.T) {
	isolateHome(t)
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)

	cfg := config.GetGlobalConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
	assert.Same(t, cfg, config.GetGlobalConfig())

	custom := config.Default()
	custom.Output.DefaultFormat = "json"
	custom.Output.Precision = 3
	custom.Output.Region = "world"
	custom.Logging.Level = "debug"
	custom.Logging.File = "/tmp/planetprint-test.log"
	config.SetGlobalConfig(custom)

	assert.Same(t, custom, config.GetGlobalConfig())
	assert.Equal(t, "json", config.GetDefaultOutputFormat())
	assert.Equal(t, 3, config.GetOutputPrecision())
	assert.Equal(t, "world", config.GetRegion())
	assert.Equal(t, "/tmp/planetprint-test.log", config.GetLogFile())
	assert.Equal(t, custom.Logging, config.GetLoggingConfig())

	config.ResetGlobalConfigForTest()
	assert.NotSame(t, custom, config.GetGlobalConfig())
}

func TestGetConfigDir(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv("PLANETPRINT_HOME", "/custom/home")
		dir, err := config.GetConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/custom/home", dir)

		path, err := config.DefaultConfigPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/custom/home", "config.yaml"), path)
	})

	t.Run("user home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("PLANETPRINT_HOME", "")
		t.Setenv("HOME", home)
		t.Setenv("USERPROFILE", home)

		dir, err := config.GetConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".planetprint"), dir)
	})
}

func TestEnsureConfigDir(t *testing.T) {
	home := isolateHome(t)

	require.NoError(t, config.EnsureConfigDir())

	stat, err := os.Stat(filepath.Join(home, ".planetprint"))
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}

func TestEnsureLogDir(t *testing.T) {
	isolateHome(t)
	t.Cleanup(config.ResetGlobalConfigForTest)

	logFile := filepath.Join(t.TempDir(), "logs", "nested", "planetprint.log")
	cfg := config.Default()
	cfg.Logging.File = logFile
	config.SetGlobalConfig(cfg)

	require.NoError(t, config.EnsureLogDir())
	_, err := os.Stat(filepath.Dir(logFile))
	require.NoError(t, err)

	config.SetGlobalConfig(config.Default())
	require.NoError(t, config.EnsureLogDir())
}

func TestLoadAndSave(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")

	cfg := config.Default()
	cfg.SetConfigPath(path)
	cfg.Server.CORS = true
	cfg.Server.AllowedOrigins = []string{"http://localhost:5173"}
	cfg.Sessions.TTL = 45 * time.Minute
	require.NoError(t, cfg.Save())

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, loaded.ConfigPath())
	assert.True(t, loaded.Server.CORS)
	assert.Equal(t, []string{"http://localhost:5173"}, loaded.Server.AllowedOrigins)
	assert.Equal(t, 45*time.Minute, loaded.Sessions.TTL)
	assert.Equal(t, cfg.Output, loaded.Output)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	isolateHome(t)
	path := writeOverlay(t, "server:\n  addr: 127.0.0.1:9999\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, config.DefaultShutdownTimeout, cfg.Server.ShutdownTimeout)
	assert.Equal(t, config.DefaultFormat, cfg.Output.DefaultFormat)
}

func TestLoad_Errors(t *testing.T) {
	isolateHome(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.Load(writeOverlay(t, "outputs:\n  default_format: json\n"))
	require.Error(t, err, "unknown keys are rejected")

	_, err = config.Load(writeOverlay(t, "sessions:\n  ttl: forever\n"))
	require.Error(t, err)
}

func TestSave_RequiresPath(t *testing.T) {
	require.Error(t, config.Default().Save())
}

func TestNew_BrokenUserFileFallsBack(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".planetprint")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("output: [\n"), 0o600))

	cfg := config.New()
	assert.Equal(t, config.DefaultFormat, cfg.Output.DefaultFormat)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.ConfigPath())
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("PLANETPRINT_LOG_LEVEL", "debug")
	t.Setenv("PLANETPRINT_LOG_FORMAT", "json")
	t.Setenv("PLANETPRINT_OUTPUT_FORMAT", "yaml")
	t.Setenv("PLANETPRINT_REGION", "europe")
	t.Setenv("PLANETPRINT_SERVER_ADDR", ":1234")
	t.Setenv("PLANETPRINT_SERVER_CORS", "true")
	t.Setenv("PLANETPRINT_SESSIONS_MAX", "12")
	t.Setenv("PLANETPRINT_SESSIONS_TTL", "2h")
	t.Setenv("PLANETPRINT_GRID_INTENSITY", "420.5")
	t.Setenv("PLANETPRINT_DEMO", "1")

	cfg := config.Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "yaml", cfg.Output.DefaultFormat)
	assert.Equal(t, "europe", cfg.Output.Region)
	assert.Equal(t, ":1234", cfg.Server.Addr)
	assert.True(t, cfg.Server.CORS)
	assert.Equal(t, 12, cfg.Sessions.Max)
	assert.Equal(t, 2*time.Hour, cfg.Sessions.TTL)
	assert.InDelta(t, 420.5, cfg.GreenOps.GridIntensityGPerKWh, 1e-9)
	assert.True(t, cfg.Demo.Enabled)
}

func TestApplyEnvOverrides_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("PLANETPRINT_SESSIONS_MAX", "lots")
	t.Setenv("PLANETPRINT_SESSIONS_TTL", "soon")
	t.Setenv("PLANETPRINT_GRID_INTENSITY", "high")
	t.Setenv("PLANETPRINT_DEMO", "maybe")

	cfg := config.Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, config.DefaultSessionsMax, cfg.Sessions.Max)
	assert.Equal(t, config.DefaultSessionsTTL, cfg.Sessions.TTL)
	assert.False(t, cfg.Demo.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "bad format", mutate: func(c *config.Config) { c.Output.DefaultFormat = "xml" }, wantErr: "output.default_format"},
		{name: "bad precision", mutate: func(c *config.Config) { c.Output.Precision = 9 }, wantErr: "output.precision"},
		{name: "bad region", mutate: func(c *config.Config) { c.Output.Region = "mars" }, wantErr: "output.region"},
		{name: "bad level", mutate: func(c *config.Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "bad log format", mutate: func(c *config.Config) { c.Logging.Format = "text" }, wantErr: "logging.format"},
		{name: "empty addr", mutate: func(c *config.Config) { c.Server.Addr = "" }, wantErr: "server.addr"},
		{name: "zero timeout", mutate: func(c *config.Config) { c.Server.ShutdownTimeout = 0 }, wantErr: "server.shutdown_timeout"},
		{name: "zero ttl", mutate: func(c *config.Config) { c.Sessions.TTL = 0 }, wantErr: "sessions.ttl"},
		{name: "zero sessions", mutate: func(c *config.Config) { c.Sessions.Max = 0 }, wantErr: "sessions.max"},
		{name: "negative grid", mutate: func(c *config.Config) { c.GreenOps.GridIntensityGPerKWh = -1 }, wantErr: "greenops"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestToLoggingConfig(t *testing.T) {
	console := config.LoggingConfig{Level: "warn", Format: "console"}.ToLoggingConfig()
	assert.Equal(t, logging.Config{Level: "warn", Format: "console", Output: logging.OutputStderr}, console)

	file := config.LoggingConfig{Level: "debug", Format: "json", File: "/var/log/pp.log"}.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, file.Output)
	assert.Equal(t, "/var/log/pp.log", file.File)
}

func TestGreenOpsOptions(t *testing.T) {
	opts := config.GreenOpsConfig{GridIntensityGPerKWh: 300}.Options()
	assert.InDelta(t, 300.0, opts.GridIntensity, 1e-9)
}
