package eventlog_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bnema/ctxtree/internal/domain/entity"
	"github.com/bnema/ctxtree/internal/infrastructure/eventlog"
	"github.com/bnema/ctxtree/internal/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testContext() context.Context {
	logger := logging.NewWithWriter(logging.Config{Level: logging.ParseLevel("debug"), Format: "json"}, io.Discard)
	return logging.WithContext(context.Background(), logger)
}

type collector struct {
	mu     sync.Mutex
	events []entity.NavigationEvent
}

func (c *collector) handle(_ context.Context, event entity.NavigationEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *collector) urls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	urls := make([]string, 0, len(c.events))
	for _, e := range c.events {
		urls = append(urls, e.URL)
	}
	return urls
}

func appendLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(line)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestFollow_TailsAppendedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"kind":"navigate","url":"https://a.com"}`+"\n"), 0o644))

	ctx, cancel := context.WithCancel(testContext())
	c := &collector{}
	done := make(chan error, 1)
	go func() { done <- eventlog.Follow(ctx, path, c.handle) }()

	require.Eventually(t, func() bool { return len(c.urls()) == 1 }, 2*time.Second, 10*time.Millisecond)

	appendLine(t, path, `{"kind":"navigate","from":"https://a.com","url":"https://a.com/x"}`+"\n")
	appendLine(t, path, "garbage\n")
	appendLine(t, path, `{"kind":"navigate","url":"https://b.`)
	appendLine(t, path, `com"}`+"\n")

	require.Eventually(t, func() bool { return len(c.urls()) == 3 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"https://a.com", "https://a.com/x", "https://b.com"}, c.urls())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("follow did not stop after cancel")
	}
}

func TestFollow_HandlerErrorStops(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"kind":"clear"}`+"\n"), 0o644))

	stop := errors.New("stop")
	err := eventlog.Follow(testContext(), path, func(context.Context, entity.NavigationEvent) error {
		return stop
	})
	require.ErrorIs(t, err, stop)
}

func TestFollow_FileMovedAway(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.jsonl")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	c := &collector{}
	done := make(chan error, 1)
	go func() { done <- eventlog.Follow(testContext(), path, c.handle) }()

	// Give the watcher time to register before moving the file away.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.Rename(path, path+".old"))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("follow did not stop after removal")
	}
}

func TestFollow_MissingFile(t *testing.T) {
	err := eventlog.Follow(testContext(), filepath.Join(t.TempDir(), "nope.jsonl"), nil)
	require.Error(t, err)
}
