package logging

// TruncateURL shortens a URL for log output, keeping the start and an ellipsis.
func TruncateURL(url string, maxLen int) string {
	runes := []rune(url)
	if len(runes) <= maxLen {
		return url
	}

	const ellipsis = "..."
	if maxLen <= len(ellipsis) {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}
