package aicontext

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/bnema/ctxtree/internal/application/port"
	"github.com/bnema/ctxtree/internal/domain/entity"
	"github.com/bnema/ctxtree/internal/logging"
)

// Writer is a port.ContextSink that writes rendered selections to an io.Writer.
type Writer struct {
	mu       sync.Mutex
	out      io.Writer
	format   Format
	maxTitle int
}

var _ port.ContextSink = (*Writer)(nil)

// NewWriter creates a Writer.
func NewWriter(out io.Writer, format Format, maxTitle int) *Writer {
	return &Writer{out: out, format: format, maxTitle: maxTitle}
}

// SendContext renders the selection and writes it out.
func (w *Writer) SendContext(ctx context.Context, selection *entity.ContextSelection) error {
	data, err := Render(selection, w.format, w.maxTitle)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.out.Write(data); err != nil {
		return fmt.Errorf("write selection: %w", err)
	}

	logging.FromContext(ctx).Debug().
		Str("selection_id", selection.ID).
		Str("format", string(w.format)).
		Int("bytes", len(data)).
		Msg("aicontext: selection written")
	return nil
}

// ClipboardSink is a port.ContextSink that copies rendered selections.
type ClipboardSink struct {
	clipboard port.Clipboard
	format    Format
	maxTitle  int
}

var _ port.ContextSink = (*ClipboardSink)(nil)

// NewClipboardSink creates a ClipboardSink.
func NewClipboardSink(clipboard port.Clipboard, format Format, maxTitle int) *ClipboardSink {
	return &ClipboardSink{clipboard: clipboard, format: format, maxTitle: maxTitle}
}

// SendContext renders the selection and writes it to the clipboard.
func (s *ClipboardSink) SendContext(ctx context.Context, selection *entity.ContextSelection) error {
	data, err := Render(selection, s.format, s.maxTitle)
	if err != nil {
		return err
	}
	if err := s.clipboard.WriteText(ctx, string(data)); err != nil {
		return fmt.Errorf("copy selection: %w", err)
	}
	return nil
}

// MultiSink fans a selection out to several sinks and stops at the first error.
type MultiSink []port.ContextSink

// SendContext implements port.ContextSink.
func (m MultiSink) SendContext(ctx context.Context, selection *entity.ContextSelection) error {
	for _, sink := range m {
		if err := sink.SendContext(ctx, selection); err != nil {
			return err
		}
	}
	return nil
}
