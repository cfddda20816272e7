package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" info ", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"loud", zerolog.FatalLevel},
		{"", zerolog.FatalLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in, zerolog.FatalLevel))
		})
	}
}

func TestConfigFromValues(t *testing.T) {
	cfg := configFromValues("debug", "json")
	assert.Equal(t, zerolog.DebugLevel, cfg.Level)
	assert.Equal(t, "json", cfg.Format)

	cfg = configFromValues("nope", "xml")
	assert.Equal(t, DefaultConfig().Level, cfg.Level)
	assert.Equal(t, "console", cfg.Format)
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("DOCKYARD_LOG_LEVEL", "warn")
	t.Setenv("DOCKYARD_LOG_FORMAT", "json")

	logger := NewFromEnv()

	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = "json"
	logger := NewWithWriter(cfg, &buf)

	logger.Debug().Msg("hidden")
	logger.Info().Str("dock", "tools").Msg("pinned")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "pinned", line["message"])
	assert.Equal(t, "tools", line["dock"])
	assert.Contains(t, line, "time")
}

func TestContextHelpers(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = "json"
	ctx := WithContext(context.Background(), NewWithWriter(cfg, &buf))

	ctx = WithComponent(ctx, "factory")
	ctx = WithDockableID(ctx, "solution-explorer")
	ctx = WithWorkspace(ctx, "default")
	ctx = With(ctx, map[string]any{"revision": 3})
	FromContext(ctx).Info().Msg("edit")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "factory", line["component"])
	assert.Equal(t, "solution-explorer", line["dockable_id"])
	assert.Equal(t, "default", line["workspace"])
	assert.EqualValues(t, 3, line["revision"])
}

func TestFromContext_WithoutLoggerIsDisabled(t *testing.T) {
	logger := FromContext(context.Background())

	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
