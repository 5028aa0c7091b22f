package uiutil

import (
	"fmt"
	"strings"
	"time"
)

const FriendlyDateTimeLayout = "Jan 2, 2006 3:04 PM"

// Translator is the subset of i18n.Translator used for relative times.
type Translator interface {
	T(key string, args ...any) string
}

// FriendlyRelativeTime describes how long before now t occurred, using the
// time.* catalog keys. Future times read as "just now"; anything older than a week
// falls back to the absolute date.
func FriendlyRelativeTime(tr Translator, t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return tr.T("time.just_now")
	case diff < time.Hour:
		return tr.T("time.minutes_ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return tr.T("time.hours_ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return tr.T("time.days_ago", int(diff.Hours()/24))
	default:
		return FormatFriendlyDateTime(t)
	}
}

// FormatFriendlyDateTime returns a consistent local timestamp.
func FormatFriendlyDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(FriendlyDateTimeLayout)
}

// FormatBytes renders a size with binary units, e.g. 1.5 MB.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	s := fmt.Sprintf("%.1f", float64(n)/float64(div))
	s = strings.TrimSuffix(s, ".0")
	return s + " " + string("KMGTPE"[exp]) + "B"
}

// TruncateWithEllipsis shortens text to limit runes, appending an ellipsis when cut.
func TruncateWithEllipsis(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
