// Package eventlog reads navigation events recorded from the tab coordinator.
package eventlog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bnema/ctxtree/internal/domain/entity"
)

// Format identifies an event file encoding.
type Format string

const (
	// FormatJSONL is one JSON event object per line.
	FormatJSONL Format = "jsonl"
	// FormatJSON is a single JSON array of events.
	FormatJSON Format = "json"
	// FormatYAML is one or more YAML documents, each an event or a list of events.
	FormatYAML Format = "yaml"
)

const maxLineSize = 1 << 20

var (
	// ErrUnknownFormat is returned for files whose extension is not recognized.
	ErrUnknownFormat = errors.New("unknown event file format")
	// ErrUnknownEventKind is returned when an event names a kind the engine does not handle.
	ErrUnknownEventKind = errors.New("unknown event kind")
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// ReadFile reads every event from path.
func ReadFile(path string) ([]entity.NavigationEvent, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open event file: %w", err)
	}
	defer f.Close()

	return Read(f, format)
}

// Read decodes every event from r.
func Read(r io.Reader, format Format) ([]entity.NavigationEvent, error) {
	var (
		events []entity.NavigationEvent
		err    error
	)
	switch format {
	case FormatJSONL:
		events, err = readJSONLines(r)
	case FormatJSON:
		events, err = readJSONArray(r)
	case FormatYAML:
		events, err = readYAML(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}

	for i := range events {
		if err := checkKind(events[i].Kind); err != nil {
			return nil, fmt.Errorf("event %d: %w", i+1, err)
		}
	}
	return events, nil
}

// ParseLine decodes a single JSON-lines record.
// Returns ok=false for blank lines and comments.
func ParseLine(line []byte) (event entity.NavigationEvent, ok bool, err error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 || line[0] == '#' {
		return event, false, nil
	}
	if err := json.Unmarshal(line, &event); err != nil {
		return event, false, fmt.Errorf("decode event: %w", err)
	}
	if err := checkKind(event.Kind); err != nil {
		return event, false, err
	}
	return event, true, nil
}

func readJSONLines(r io.Reader) ([]entity.NavigationEvent, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var events []entity.NavigationEvent
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		event, ok, err := ParseLine(scanner.Bytes())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if ok {
			events = append(events, event)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return events, nil
}

func readJSONArray(r io.Reader) ([]entity.NavigationEvent, error) {
	var events []entity.NavigationEvent
	if err := json.NewDecoder(r).Decode(&events); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

func readYAML(r io.Reader) ([]entity.NavigationEvent, error) {
	dec := yaml.NewDecoder(r)

	var events []entity.NavigationEvent
	for doc := 1; ; doc++ {
		var node yaml.Node
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				return events, nil
			}
			return nil, fmt.Errorf("document %d: %w", doc, err)
		}
		if len(node.Content) == 0 {
			continue
		}

		body := node.Content[0]
		switch body.Kind {
		case yaml.SequenceNode:
			var batch []entity.NavigationEvent
			if err := body.Decode(&batch); err != nil {
				return nil, fmt.Errorf("document %d: %w", doc, err)
			}
			events = append(events, batch...)
		case yaml.MappingNode:
			var event entity.NavigationEvent
			if err := body.Decode(&event); err != nil {
				return nil, fmt.Errorf("document %d: %w", doc, err)
			}
			events = append(events, event)
		default:
			return nil, fmt.Errorf("document %d: expected event or list of events", doc)
		}
	}
}

func checkKind(kind entity.NavigationEventKind) error {
	switch kind {
	case entity.NavigationEventNavigate,
		entity.NavigationEventTitle,
		entity.NavigationEventDelete,
		entity.NavigationEventClear,
		entity.NavigationEventTracking:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEventKind, kind)
	}
}
