package eventlog

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/bnema/ctxtree/internal/application/port"
	"github.com/bnema/ctxtree/internal/logging"
)

// Follow delivers every event already in the JSON-lines file at path, then
// tails lines appended to it until ctx is done or the file goes away.
// Undecodable lines are logged and skipped. A handler error stops the follow.
func Follow(ctx context.Context, path string, fn port.NavigationEventHandler) error {
	ctx = logging.WithComponent(ctx, "eventlog")
	log := logging.FromContext(ctx)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open event file: %w", err)
	}
	defer f.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch before the first drain so no append slips between the two.
	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	t := &tailer{file: f, reader: bufio.NewReader(f), fn: fn}
	if err := t.drain(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			switch {
			case ev.Has(fsnotify.Write):
				if err := t.drain(ctx); err != nil {
					return err
				}
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				log.Info().Str("path", path).Msg("eventlog: file removed, stopping follow")
				return nil
			case ev.Has(fsnotify.Chmod):
				// Unlinking an open file only reports an attribute change.
				if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
					log.Info().Str("path", path).Msg("eventlog: file removed, stopping follow")
					return nil
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
}

// headSize is how much of the file start is remembered to spot rewrites.
const headSize = 256

type tailer struct {
	file    *os.File
	reader  *bufio.Reader
	fn      port.NavigationEventHandler
	offset  int64
	pending []byte
	// skipping is set while the rest of an oversized line is discarded.
	skipping bool
	lineNo   int
	head     []byte
}

// drain consumes every complete line currently in the file.
// A trailing line without newline is kept until the rest of it arrives,
// unless it outgrows maxLineSize, in which case it is logged and dropped.
func (t *tailer) drain(ctx context.Context) error {
	if err := t.rewindIfRewritten(ctx); err != nil {
		return err
	}

	for {
		chunk, err := t.reader.ReadBytes('\n')
		t.offset += int64(len(chunk))
		t.remember(chunk)
		complete := err == nil

		switch {
		case t.skipping:
			if complete {
				t.skipping = false
				t.lineNo++
			}
		case len(t.pending)+len(chunk) > maxLineSize:
			logging.FromContext(ctx).Warn().
				Int("line", t.lineNo+1).
				Int("limit", maxLineSize).
				Msg("eventlog: dropping oversized line")
			t.pending = nil
			if complete {
				t.lineNo++
			} else {
				t.skipping = true
			}
		default:
			t.pending = append(t.pending, chunk...)
			if complete {
				line := t.pending
				t.pending = nil
				t.lineNo++
				if err := t.deliver(ctx, line); err != nil {
					return err
				}
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read event file: %w", err)
		}
	}
}

func (t *tailer) deliver(ctx context.Context, line []byte) error {
	event, ok, err := ParseLine(line)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Int("line", t.lineNo).Msg("eventlog: skipping line")
		return nil
	}
	if !ok {
		return nil
	}
	return t.fn(ctx, event)
}

func (t *tailer) remember(chunk []byte) {
	if room := headSize - len(t.head); room > 0 {
		t.head = append(t.head, chunk[:min(room, len(chunk))]...)
	}
}

// rewindIfRewritten starts over when the file shrank below the read offset or
// its first bytes changed since they were read. A rewrite that keeps the
// same leading bytes and length is indistinguishable from an append.
func (t *tailer) rewindIfRewritten(ctx context.Context) error {
	info, err := t.file.Stat()
	if err != nil {
		return fmt.Errorf("stat event file: %w", err)
	}

	rewritten := info.Size() < t.offset
	if !rewritten && len(t.head) > 0 {
		current := make([]byte, len(t.head))
		n, err := t.file.ReadAt(current, 0)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read event file head: %w", err)
		}
		rewritten = !bytes.Equal(current[:n], t.head)
	}
	if !rewritten {
		return nil
	}

	logging.FromContext(ctx).Info().Int64("size", info.Size()).Msg("eventlog: file rewritten, rereading")
	if _, err := t.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind event file: %w", err)
	}
	t.reader.Reset(t.file)
	t.offset = 0
	t.pending = nil
	t.skipping = false
	t.lineNo = 0
	t.head = t.head[:0]
	return nil
}
