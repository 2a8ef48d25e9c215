package eventlog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ctxtree/internal/domain/entity"
	"github.com/bnema/ctxtree/internal/infrastructure/eventlog"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    eventlog.Format
		wantErr bool
	}{
		{"events.jsonl", eventlog.FormatJSONL, false},
		{"events.NDJSON", eventlog.FormatJSONL, false},
		{"events.json", eventlog.FormatJSON, false},
		{"a/b/events.yaml", eventlog.FormatYAML, false},
		{"events.yml", eventlog.FormatYAML, false},
		{"events.txt", "", true},
		{"events", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := eventlog.FormatFromPath(tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, eventlog.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRead_JSONLines(t *testing.T) {
	input := `{"kind":"navigate","url":"https://a.com","title":"A"}

# comment
{"kind":"navigate","from":"https://a.com","url":"https://a.com/x"}
{"kind":"tracking","enabled":false}
`
	events, err := eventlog.Read(strings.NewReader(input), eventlog.FormatJSONL)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, entity.NavigationEventNavigate, events[0].Kind)
	assert.Equal(t, "A", events[0].Title)
	assert.Equal(t, "https://a.com", events[1].From)
	require.NotNil(t, events[2].Enabled)
	assert.False(t, *events[2].Enabled)
}

func TestRead_JSONLines_Errors(t *testing.T) {
	_, err := eventlog.Read(strings.NewReader("{\"kind\":\"navigate\",\"url\":\"x\"}\n{not json}\n"), eventlog.FormatJSONL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = eventlog.Read(strings.NewReader(`{"kind":"teleport","url":"x"}`), eventlog.FormatJSONL)
	require.ErrorIs(t, err, eventlog.ErrUnknownEventKind)
}

func TestRead_JSONArray(t *testing.T) {
	input := `[{"kind":"navigate","url":"https://a.com"},{"kind":"clear"}]`
	events, err := eventlog.Read(strings.NewReader(input), eventlog.FormatJSON)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, entity.NavigationEventClear, events[1].Kind)

	events, err = eventlog.Read(strings.NewReader(""), eventlog.FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRead_YAML(t *testing.T) {
	input := `kind: navigate
url: https://a.com
title: A
---
- kind: navigate
  from: https://a.com
  url: https://a.com/docs
  favicon_url: https://a.com/favicon.ico
- kind: title
  url: https://a.com/docs
  title: Docs
---
kind: tracking
enabled: true
at: 2025-01-02T03:04:05Z
`
	events, err := eventlog.Read(strings.NewReader(input), eventlog.FormatYAML)
	require.NoError(t, err)
	require.Len(t, events, 4)

	assert.Equal(t, "https://a.com/favicon.ico", events[1].FaviconURL)
	assert.Equal(t, entity.NavigationEventTitle, events[2].Kind)
	assert.Equal(t, 2025, events[3].At.Year())
}

func TestRead_YAML_Errors(t *testing.T) {
	_, err := eventlog.Read(strings.NewReader("just a string\n"), eventlog.FormatYAML)
	require.Error(t, err)

	_, err = eventlog.Read(strings.NewReader("kind: warp\n"), eventlog.FormatYAML)
	require.ErrorIs(t, err, eventlog.ErrUnknownEventKind)
}

func TestRead_UnknownFormat(t *testing.T) {
	_, err := eventlog.Read(strings.NewReader(""), eventlog.Format("xml"))
	require.ErrorIs(t, err, eventlog.ErrUnknownFormat)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.yml")
	require.NoError(t, os.WriteFile(path, []byte("- kind: navigate\n  url: https://a.com\n"), 0o644))

	events, err := eventlog.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, events, 1)

	_, err = eventlog.ReadFile(filepath.Join(dir, "missing.jsonl"))
	require.Error(t, err)
}

func TestSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"kind":"navigate","url":"https://a.com"}]`), 0o644))

	src, err := eventlog.NewSource(path)
	require.NoError(t, err)
	assert.Equal(t, path, src.Path())

	events, err := src.Events(testContext())
	require.NoError(t, err)
	assert.Len(t, events, 1)

	err = src.Follow(testContext(), nil)
	require.Error(t, err)
}
