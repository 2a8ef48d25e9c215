package usecase

import (
	"strconv"
	"time"
)

const (
	hoursPerDay = 24
	daysPerWeek = 7
)

// GetRelativeTime returns a human-readable relative time string.
func GetRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return formatDuration(int(diff.Minutes()), "m")
	case diff < hoursPerDay*time.Hour:
		return formatDuration(int(diff.Hours()), "h")
	case diff < daysPerWeek*hoursPerDay*time.Hour:
		return formatDuration(int(diff.Hours()/hoursPerDay), "d")
	default:
		return formatDuration(int(diff.Hours()/hoursPerDay/daysPerWeek), "w")
	}
}

func formatDuration(n int, unit string) string {
	return strconv.Itoa(n) + unit + " ago"
}
