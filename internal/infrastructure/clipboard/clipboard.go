// Package clipboard provides a system clipboard adapter.
package clipboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/bnema/ctxtree/internal/application/port"
	"github.com/bnema/ctxtree/internal/logging"
)

// ErrUnsupported is returned when no clipboard backend is installed.
var ErrUnsupported = errors.New("no clipboard backend available (install wl-clipboard, xclip or xsel)")

// Adapter implements port.Clipboard.
type Adapter struct {
	write func(string) error
	read  func() (string, error)
}

// New creates a clipboard adapter backed by the system clipboard.
func New() port.Clipboard {
	return newAdapter(clipboard.WriteAll, clipboard.ReadAll)
}

func newAdapter(write func(string) error, read func() (string, error)) *Adapter {
	return &Adapter{write: write, read: read}
}

// WriteText copies text to the clipboard.
func (a *Adapter) WriteText(ctx context.Context, text string) error {
	log := logging.FromContext(ctx)

	if clipboard.Unsupported {
		log.Error().Err(ErrUnsupported).Msg("clipboard write failed")
		return ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := a.write(text); err != nil {
		log.Error().Err(err).Msg("clipboard write failed")
		return fmt.Errorf("clipboard write: %w", err)
	}

	log.Debug().Int("len", len(text)).Msg("clipboard write success")
	return nil
}

// ReadText reads text from the clipboard.
func (a *Adapter) ReadText(ctx context.Context) (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := a.read()
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("clipboard read failed")
		return "", fmt.Errorf("clipboard read: %w", err)
	}
	return text, nil
}
