package app

import (
	"fmt"
	"strings"
	"time"

	"sheetchat/internal/types"
)

// FormatFileSize renders bytes as B, KB or MB with one decimal.
func FormatFileSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
}

// FormatTimestamp renders a backend timestamp in local time, or the raw text
// when it does not parse.
func FormatTimestamp(raw string) string {
	ts, ok := types.ParseTimestamp(raw)
	if !ok {
		return strings.TrimSpace(raw)
	}
	return ts.Local().Format("2006-01-02 15:04")
}

func FormatFileTime(at types.FileTime) string {
	if at.Time.IsZero() {
		if at.Raw == "" {
			return "-"
		}
		return at.Raw
	}
	return at.Time.Local().Format("2006-01-02 15:04")
}

func formatClock(raw string) string {
	ts, ok := types.ParseTimestamp(raw)
	if !ok {
		return ""
	}
	return ts.Local().Format(time.Kitchen)
}
