package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/planetprint/internal/config"
)

// writeProjectConfig creates dir/.planetprint/config.yaml with content.
func writeProjectConfig(t *testing.T, dir, content string) string {
	t.Helper()
	projectDir := filepath.Join(dir, ".planetprint")
	require.NoError(t, os.MkdirAll(projectDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"), []byte(content), 0o600))
	return projectDir
}

// isolateHome points the user config directory at an empty temp dir.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("PLANETPRINT_HOME", filepath.Join(home, ".planetprint"))
	t.Setenv("PLANETPRINT_PROJECT_DIR", "")
	return home
}

func TestResolveProjectDir_FlagOverride(t *testing.T) {
	isolateHome(t)
	flagDir := t.TempDir()

	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")

	assert.Equal(t, filepath.Join(flagDir, ".planetprint"), got)
	assert.True(t, filepath.IsAbs(got), "returned path must be absolute")
}

func TestResolveProjectDir_FlagOverridesEnv(t *testing.T) {
	isolateHome(t)
	envDir := t.TempDir()
	flagDir := t.TempDir()
	t.Setenv("PLANETPRINT_PROJECT_DIR", envDir)

	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")

	assert.Equal(t, filepath.Join(flagDir, ".planetprint"), got)
}

func TestResolveProjectDir_EnvVarOverride(t *testing.T) {
	isolateHome(t)
	envDir := t.TempDir()
	t.Setenv("PLANETPRINT_PROJECT_DIR", envDir)

	got := config.ResolveProjectDir(context.Background(), "", "/does/not/matter")

	assert.Equal(t, filepath.Join(envDir, ".planetprint"), got)
}

func TestResolveProjectDir_SuffixNotDoubled(t *testing.T) {
	isolateHome(t)

	got := config.ResolveProjectDir(context.Background(), "/my/project/.planetprint", "")
	assert.Equal(t, "/my/project/.planetprint", got)

	t.Setenv("PLANETPRINT_PROJECT_DIR", "/other/project/.planetprint")
	got = config.ResolveProjectDir(context.Background(), "", "")
	assert.Equal(t, "/other/project/.planetprint", got)
}

func TestResolveProjectDir_WalkUp(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	writeProjectConfig(t, root, "output:\n  default_format: json\n")

	subDir := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	got := config.ResolveProjectDir(context.Background(), "", subDir)

	assert.Equal(t, filepath.Join(root, ".planetprint"), got)
}

func TestResolveProjectDir_NearestProjectWins(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	dirA := filepath.Join(root, "a")
	dirB := filepath.Join(dirA, "b")
	dirC := filepath.Join(dirB, "c")
	require.NoError(t, os.MkdirAll(dirC, 0o755))
	writeProjectConfig(t, dirA, "")
	writeProjectConfig(t, dirB, "")

	got := config.ResolveProjectDir(context.Background(), "", dirC)

	assert.Equal(t, filepath.Join(dirB, ".planetprint"), got)
}

func TestResolveProjectDir_NoProject(t *testing.T) {
	isolateHome(t)

	assert.Empty(t, config.ResolveProjectDir(context.Background(), "", t.TempDir()))
	assert.Empty(t, config.ResolveProjectDir(context.Background(), "", ""))
}

func TestFindProject_SkipsUserConfigDir(t *testing.T) {
	home := isolateHome(t)
	writeProjectConfig(t, home, "")

	_, err := config.FindProject(filepath.Join(home, ".planetprint"))
	require.ErrorIs(t, err, config.ErrNoProject)
}

func TestSetResolvedProjectDir_RoundTrip(t *testing.T) {
	orig := config.GetResolvedProjectDir()
	t.Cleanup(func() { config.SetResolvedProjectDir(orig) })

	config.SetResolvedProjectDir("/some/project/.planetprint")
	assert.Equal(t, "/some/project/.planetprint", config.GetResolvedProjectDir())

	config.SetResolvedProjectDir("")
	assert.Empty(t, config.GetResolvedProjectDir())
}

func TestNewWithProjectDir(t *testing.T) {
	t.Run("empty project dir", func(t *testing.T) {
		isolateHome(t)
		cfg := config.NewWithProjectDir(context.Background(), "")
		assert.Equal(t, config.DefaultFormat, cfg.Output.DefaultFormat)
	})

	t.Run("overlay applied", func(t *testing.T) {
		isolateHome(t)
		projectDir := writeProjectConfig(t, t.TempDir(), "output:\n  default_format: yaml\n  precision: 2\n")

		cfg := config.NewWithProjectDir(context.Background(), projectDir)

		assert.Equal(t, "yaml", cfg.Output.DefaultFormat)
		assert.Equal(t, 2, cfg.Output.Precision)
		assert.Equal(t, config.DefaultAddr, cfg.Server.Addr)
	})

	t.Run("global file then project overlay", func(t *testing.T) {
		home := isolateHome(t)
		global := config.Default()
		global.Server.Addr = ":7000"
		global.SetConfigPath(filepath.Join(home, ".planetprint", "config.yaml"))
		require.NoError(t, global.Save())

		projectDir := writeProjectConfig(t, t.TempDir(), "demo:\n  enabled: true\n  seed: 3\n")
		cfg := config.NewWithProjectDir(context.Background(), projectDir)

		assert.Equal(t, ":7000", cfg.Server.Addr)
		assert.True(t, cfg.Demo.Enabled)
		assert.Equal(t, uint64(3), cfg.Demo.Seed)
	})

	t.Run("env beats project overlay", func(t *testing.T) {
		isolateHome(t)
		t.Setenv("PLANETPRINT_OUTPUT_FORMAT", "json")
		projectDir := writeProjectConfig(t, t.TempDir(), "output:\n  default_format: yaml\n")

		cfg := config.NewWithProjectDir(context.Background(), projectDir)
		assert.Equal(t, "json", cfg.Output.DefaultFormat)
	})

	t.Run("corrupted overlay ignored", func(t *testing.T) {
		isolateHome(t)
		projectDir := writeProjectConfig(t, t.TempDir(), "output: [broken\n")

		cfg := config.NewWithProjectDir(context.Background(), projectDir)
		assert.Equal(t, config.DefaultFormat, cfg.Output.DefaultFormat)
	})

	t.Run("missing overlay file", func(t *testing.T) {
		isolateHome(t)
		cfg := config.NewWithProjectDir(context.Background(), filepath.Join(t.TempDir(), ".planetprint"))
		assert.Equal(t, config.DefaultFormat, cfg.Output.DefaultFormat)
	})
}

func BenchmarkResolveProjectDir_DeepTree(b *testing.B) {
	root := b.TempDir()
	b.Setenv("PLANETPRINT_PROJECT_DIR", "")
	b.Setenv("PLANETPRINT_HOME", filepath.Join(root, "home"))
	require.NoError(b, os.MkdirAll(filepath.Join(root, ".planetprint"), 0o755))
	require.NoError(b, os.WriteFile(filepath.Join(root, ".planetprint", "config.yaml"), nil, 0o600))

	deep := root
	for i := range 20 {
		deep = filepath.Join(deep, "d"+string(rune('a'+i)))
	}
	require.NoError(b, os.MkdirAll(deep, 0o755))
	ctx := context.Background()

	for b.Loop() {
		_ = config.ResolveProjectDir(ctx, "", deep)
	}
}
