// Package usecase contains application business logic.
package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/ctxtree/internal/application/port"
	"github.com/bnema/ctxtree/internal/domain/url"
	"github.com/bnema/ctxtree/internal/logging"
)

// CopyURLUseCase copies tracked page URLs to the system clipboard.
type CopyURLUseCase struct {
	tracker   *TrackContextUseCase
	clipboard port.Clipboard
}

// NewCopyURLUseCase creates a new CopyURLUseCase.
func NewCopyURLUseCase(tracker *TrackContextUseCase, clipboard port.Clipboard) *CopyURLUseCase {
	return &CopyURLUseCase{
		tracker:   tracker,
		clipboard: clipboard,
	}
}

// Copy copies the given URL to the clipboard.
// Only pages present in the tree can be copied.
func (uc *CopyURLUseCase) Copy(ctx context.Context, rawURL string) error {
	log := logging.FromContext(ctx)

	if rawURL == "" {
		log.Debug().Msg("copy URL: empty URL")
		return fmt.Errorf("empty URL")
	}

	if uc.clipboard == nil {
		log.Warn().Msg("copy URL: clipboard is nil")
		return fmt.Errorf("clipboard not available")
	}

	key := url.Normalize(rawURL)
	log = logging.FromContext(logging.WithURL(ctx, key))
	if uc.tracker != nil && !uc.tracker.Has(key) {
		return fmt.Errorf("copy URL: %s is not tracked", key)
	}

	if err := uc.clipboard.WriteText(ctx, key); err != nil {
		log.Error().Err(err).Msg("copy URL: clipboard write failed")
		return fmt.Errorf("clipboard write failed: %w", err)
	}

	log.Debug().Msg("URL copied to clipboard")
	return nil
}
