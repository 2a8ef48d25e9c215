package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	replayFlat, replayJSON, replayFollow = false, false, false
	pickFormat, pickCopy = "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config-dir", dir))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		app = nil
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func writeEvents(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleEvents = `{"kind":"navigate","url":"https://a.com/","title":"A"}
{"kind":"navigate","from":"https://a.com","url":"https://a.com/docs","title":"Docs"}
{"kind":"navigate","from":"https://a.com/docs","url":"https://b.com","title":"B"}
`

func TestReplayCommand_Tree(t *testing.T) {
	events := writeEvents(t, "events.jsonl", sampleEvents)

	out, err := execute(t, t.TempDir(), "replay", events)
	require.NoError(t, err)
	assert.Contains(t, out, "https://a.com")
	assert.Contains(t, out, "└── ")
	assert.Contains(t, out, "https://a.com/docs")
	assert.Contains(t, out, "3 pages  2 roots  depth 1")
}

func TestReplayCommand_RejectsUnknownKind(t *testing.T) {
	events := writeEvents(t, "events.jsonl", sampleEvents+`{"kind":"bogus","url":"https://c.com"}`+"\n")

	_, err := execute(t, t.TempDir(), "replay", events)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event kind")
}

func TestReplayCommand_JSON(t *testing.T) {
	events := writeEvents(t, "events.yaml", `- kind: navigate
  url: https://a.com
- kind: navigate
  from: https://a.com
  url: https://a.com/x
- kind: title
  url: https://nowhere.com
- kind: delete
`)

	out, err := execute(t, t.TempDir(), "replay", "--json", events)
	require.NoError(t, err)

	var report replayReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Roots, 1)
	require.Len(t, report.Roots[0].Children, 1)
	assert.Equal(t, 2, report.Stats.Nodes)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 2, report.Applied["navigate"])
}

func TestReplayCommand_FollowNeedsJSONLines(t *testing.T) {
	events := writeEvents(t, "events.yaml", "- kind: clear\n")

	_, err := execute(t, t.TempDir(), "replay", "--follow", events)
	require.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "config", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "tracking_enabled")

	out, err = execute(t, dir, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[context]")
	assert.Contains(t, out, "selection_format")
	assert.Contains(t, out, "markdown")

	out, err = execute(t, dir, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "config.toml"))
}

func TestTrackingCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "tracking")
	require.NoError(t, err)
	assert.Contains(t, out, "is on")

	out, err = execute(t, dir, "tracking", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "is off")

	out, err = execute(t, dir, "tracking")
	require.NoError(t, err)
	assert.Contains(t, out, "is off", "the switch is persisted")

	_, err = execute(t, dir, "tracking", "maybe")
	require.Error(t, err)
}

func TestAboutCommand(t *testing.T) {
	out, err := execute(t, t.TempDir(), "about")
	require.NoError(t, err)
	assert.Contains(t, out, "ctxtree")
	assert.Contains(t, out, "dev")
}
