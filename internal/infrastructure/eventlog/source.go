package eventlog

import (
	"context"
	"fmt"

	"github.com/bnema/ctxtree/internal/application/port"
	"github.com/bnema/ctxtree/internal/domain/entity"
)

// Source implements port.NavigationSource over an event file.
type Source struct {
	path   string
	format Format
}

var _ port.NavigationSource = (*Source)(nil)

// NewSource creates a source for path, picking the format from its extension.
func NewSource(path string) (*Source, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return &Source{path: path, format: format}, nil
}

// Path returns the event file path.
func (s *Source) Path() string {
	return s.path
}

// Events reads the whole file.
func (s *Source) Events(ctx context.Context) ([]entity.NavigationEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(s.path)
}

// Follow tails the file. Only JSON-lines files can be followed.
func (s *Source) Follow(ctx context.Context, fn port.NavigationEventHandler) error {
	if s.format != FormatJSONL {
		return fmt.Errorf("follow needs a JSON-lines file, got %s", s.format)
	}
	return Follow(ctx, s.path, fn)
}
