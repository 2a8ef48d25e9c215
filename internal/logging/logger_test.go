package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"info":    zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for input, want := range tests {
		assert.Equal(t, want, ParseLevel(input), "input %q", input)
	}
}

func TestNewWithWriter_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: zerolog.WarnLevel, Format: "json"}, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Str("url", "https://a.com").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"url":"https://a.com"`)
	assert.Contains(t, out, `"message":"shown"`)
}

func TestContextHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: zerolog.DebugLevel, Format: "json"}, &buf)

	ctx := WithContext(context.Background(), logger)
	ctx = WithComponent(ctx, "tracker")
	ctx = WithURL(ctx, "https://a.com/1")
	FromContext(ctx).Debug().Msg("hello")

	out := buf.String()
	assert.Contains(t, out, `"component":"tracker"`)
	assert.Contains(t, out, `"url":"https://a.com/1"`)
}

func TestFromContext_WithoutLoggerIsDisabled(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestNewWithFile(t *testing.T) {
	dir := t.TempDir()

	logger, cleanup, err := NewWithFile(
		Config{Level: zerolog.InfoLevel, Format: "json"},
		FileConfig{Enabled: true, LogDir: filepath.Join(dir, "logs")},
	)
	require.NoError(t, err)
	logger.Info().Msg("to file")
	cleanup()

	data, err := os.ReadFile(filepath.Join(dir, "logs", logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNewWithFile_NoOutputsIsNop(t *testing.T) {
	logger, cleanup, err := NewWithFile(DefaultConfig(), FileConfig{})
	require.NoError(t, err)
	require.NotNil(t, cleanup)
	cleanup()
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestNewWithFile_RequiresDir(t *testing.T) {
	_, cleanup, err := NewWithFile(DefaultConfig(), FileConfig{Enabled: true})
	require.Error(t, err)
	require.NotNil(t, cleanup)
}

func TestTruncateURL(t *testing.T) {
	assert.Equal(t, "https://a.com", TruncateURL("https://a.com", 60))
	assert.Equal(t, "https:/...", TruncateURL("https://a.com/long/path", 10))
	assert.Equal(t, "ht", TruncateURL("https://a.com", 2))
	assert.Equal(t, "héé...", TruncateURL("héééééééé", 6))
}
