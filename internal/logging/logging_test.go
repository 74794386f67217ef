package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_LevelAndFormat(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantLevel zerolog.Level
	}{
		{"debug", "debug", zerolog.DebugLevel},
		{"upper case", "WARN", zerolog.WarnLevel},
		{"empty defaults to info", "", zerolog.InfoLevel},
		{"garbage defaults to info", "loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := build(Config{Level: tt.level, Format: FormatJSON}, &bytes.Buffer{})
			assert.Equal(t, tt.wantLevel, l.GetLevel())
		})
	}
}

func TestBuild_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := ComponentLogger(build(Config{Level: "info", Format: FormatJSON}, &buf), "scorer")
	l.Info().Float64("total", 10).Msg("scored")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "scorer", entry["component"])
	assert.Equal(t, "scored", entry["message"])
	assert.InDelta(t, 10.0, entry["total"], 1e-9)
}

func TestTraceHook(t *testing.T) {
	var buf bytes.Buffer
	l := build(Config{Format: FormatJSON}, &buf)

	ctx := ContextWithTraceID(context.Background(), "01TRACE")
	l.Info().Ctx(ctx).Msg("with trace")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "01TRACE", entry[TraceIDField])
}

func TestTraceIDs(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))

	id := GetOrGenerateTraceID(ctx)
	_, err := ulid.Parse(id)
	require.NoError(t, err)

	ctx = ContextWithTraceID(ctx, id)
	assert.Equal(t, id, TraceIDFromContext(ctx))
	assert.Equal(t, id, GetOrGenerateTraceID(ctx))
}

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	var buf bytes.Buffer
	l := build(Config{Format: FormatJSON}, &buf)
	ctx := l.WithContext(context.Background())
	FromContext(ctx).Info().Msg("from ctx")
	assert.Contains(t, buf.String(), "from ctx")
}

func TestNewLoggerWithPath(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "planetprint.log")
		res := NewLoggerWithPath(Config{Level: "info", Format: FormatJSON, Output: OutputFile, File: path})
		require.True(t, res.UsingFile)
		assert.False(t, res.FallbackUsed)

		res.Logger.Info().Msg("to file")
		require.NoError(t, res.Close())
		require.NoError(t, res.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "to file")
	})

	t.Run("fallback", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "not-a-dir")
		require.NoError(t, os.WriteFile(blocker, nil, 0o600))

		res := NewLoggerWithPath(Config{Output: OutputFile, File: filepath.Join(blocker, "x.log")})
		assert.False(t, res.UsingFile)
		assert.True(t, res.FallbackUsed)
		assert.NotEmpty(t, res.FallbackReason)
		assert.NoError(t, res.Close())
	})

	t.Run("stderr", func(t *testing.T) {
		res := NewLoggerWithPath(Config{Output: OutputStderr})
		assert.False(t, res.UsingFile)
		assert.False(t, res.FallbackUsed)
	})
}

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	PrintLogPathMessage(&buf, "/tmp/p.log")
	PrintFallbackWarning(&buf, "denied")
	assert.Contains(t, buf.String(), "/tmp/p.log")
	assert.Contains(t, buf.String(), "denied")
}
