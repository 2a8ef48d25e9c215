package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// NavigationEventKind identifies what a recorded coordinator event does.
type NavigationEventKind string

const (
	// NavigationEventNavigate records a page transition.
	NavigationEventNavigate NavigationEventKind = "navigate"
	// NavigationEventTitle records a late-arriving page title.
	NavigationEventTitle NavigationEventKind = "title"
	// NavigationEventDelete records a user-initiated removal.
	NavigationEventDelete NavigationEventKind = "delete"
	// NavigationEventClear discards the whole forest.
	NavigationEventClear NavigationEventKind = "clear"
	// NavigationEventTracking flips the context mode switch.
	NavigationEventTracking NavigationEventKind = "tracking"
)

// ErrInvalidNavigationEvent is returned when an event is missing required fields.
var ErrInvalidNavigationEvent = errors.New("invalid navigation event")

// NavigationEvent is one event emitted by the tab/navigation coordinator.
type NavigationEvent struct {
	Kind       NavigationEventKind `json:"kind" yaml:"kind"`
	From       string              `json:"from,omitempty" yaml:"from,omitempty"`
	URL        string              `json:"url,omitempty" yaml:"url,omitempty"`
	Title      string              `json:"title,omitempty" yaml:"title,omitempty"`
	FaviconURL string              `json:"favicon_url,omitempty" yaml:"favicon_url,omitempty"`
	Enabled    *bool               `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	At         time.Time           `json:"at,omitempty" yaml:"at,omitempty"`
}

// Validate checks that the event carries the fields its kind needs.
func (e *NavigationEvent) Validate() error {
	if e == nil {
		return ErrInvalidNavigationEvent
	}
	switch e.Kind {
	case NavigationEventNavigate, NavigationEventTitle, NavigationEventDelete:
		if strings.TrimSpace(e.URL) == "" {
			return fmt.Errorf("%w: %s event without url", ErrInvalidNavigationEvent, e.Kind)
		}
	case NavigationEventTracking:
		if e.Enabled == nil {
			return fmt.Errorf("%w: tracking event without enabled flag", ErrInvalidNavigationEvent)
		}
	case NavigationEventClear:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidNavigationEvent, e.Kind)
	}
	return nil
}
