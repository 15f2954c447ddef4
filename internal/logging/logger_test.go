package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "debug", Format: FormatJSON}, &buf)

	logger.Debug().Str("character_id", "1").Msg("fetch started")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "1", entry["character_id"])
	assert.Equal(t, "fetch started", entry["message"])
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantLvl zerolog.Level
	}{
		{name: "explicit warn", level: "warn", wantLvl: zerolog.WarnLevel},
		{name: "upper case", level: "ERROR", wantLvl: zerolog.ErrorLevel},
		{name: "empty defaults to info", level: "", wantLvl: zerolog.InfoLevel},
		{name: "garbage defaults to info", level: "loud", wantLvl: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(Config{Level: tt.level, Format: FormatJSON}, &bytes.Buffer{})
			assert.Equal(t, tt.wantLvl, logger.GetLevel())
		})
	}
}

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "holocron.log")

	result := NewLoggerWithPath(Config{Level: "info", Output: OutputFile, File: path})
	t.Cleanup(func() { _ = result.Close() })

	assert.True(t, result.UsingFile)
	assert.False(t, result.FallbackUsed)
	assert.Equal(t, path, result.FilePath)
	assert.FileExists(t, path)
}

func TestNewLoggerWithPath_FileFallback(t *testing.T) {
	result := NewLoggerWithPath(Config{Level: "info", Output: OutputFile})

	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)
	assert.NoError(t, result.Close())
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(Config{Level: "info", Format: FormatJSON}, &buf)

	logger := ComponentLogger(base, "loader")
	logger.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "loader", entry["component"])
}

func TestTraceIDs(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))

	generated := GetOrGenerateTraceID(ctx)
	assert.Len(t, generated, 26)

	ctx = ContextWithTraceID(ctx, "trace-123")
	assert.Equal(t, "trace-123", GetOrGenerateTraceID(ctx))
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		id := NewID()
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestFromContext(t *testing.T) {
	t.Run("no logger attached is safe", func(t *testing.T) {
		logger := FromContext(context.Background())
		require.NotNil(t, logger)
		logger.Info().Msg("discarded")
	})

	t.Run("attached logger carries trace id", func(t *testing.T) {
		var buf bytes.Buffer
		base := NewLogger(Config{Level: "info", Format: FormatJSON}, &buf)
		ctx := base.WithContext(context.Background())
		ctx = ContextWithTraceID(ctx, "trace-abc")

		FromContext(ctx).Info().Msg("with trace")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "trace-abc", entry["trace_id"])
	})
}
