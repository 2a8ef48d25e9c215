// Package aicontext renders picked browsing context for the AI chat.
package aicontext

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bnema/ctxtree/internal/domain/entity"
)

// Format is an output encoding for a selection.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat accepts "markdown", "md" or "json", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md", "":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown selection format %q", s)
	}
}

// Render encodes a selection. Titles longer than maxTitle runes are cut when
// maxTitle is positive.
func Render(selection *entity.ContextSelection, format Format, maxTitle int) ([]byte, error) {
	if selection == nil {
		return nil, fmt.Errorf("nil selection")
	}

	switch format {
	case FormatJSON:
		out := *selection
		out.Items = make([]entity.ContextSelectionItem, len(selection.Items))
		for i, item := range selection.Items {
			item.Title = truncateTitle(item.Title, maxTitle)
			out.Items[i] = item
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode selection: %w", err)
		}
		return append(data, '\n'), nil
	case FormatMarkdown, "":
		return renderMarkdown(selection, maxTitle), nil
	default:
		return nil, fmt.Errorf("unknown selection format %q", format)
	}
}

func renderMarkdown(selection *entity.ContextSelection, maxTitle int) []byte {
	var b strings.Builder
	b.WriteString("## Browsing context\n\n")
	for _, item := range selection.Items {
		title := item.Title
		if strings.TrimSpace(title) == "" {
			title = item.URL
		}
		title = escapeMarkdown(truncateTitle(title, maxTitle))

		b.WriteString(strings.Repeat("  ", item.Depth))
		fmt.Fprintf(&b, "- [%s](%s)\n", title, item.URL)
	}
	return []byte(b.String())
}

var markdownEscaper = strings.NewReplacer(`[`, `\[`, `]`, `\]`, "\n", " ")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func truncateTitle(title string, maxLen int) string {
	if maxLen <= 0 {
		return title
	}
	runes := []rune(title)
	if len(runes) <= maxLen {
		return title
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
