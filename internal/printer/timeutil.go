package printer

import (
	"fmt"
	"time"

	"github.com/slok/cpm/internal/model"
)

// TimeAgo returns a human-readable relative time string in UTC.
// Examples: "5 seconds ago (UTC)", "2 minutes ago (UTC)", "3 hours ago (UTC)".
func TimeAgo(t time.Time) string {
	return timeAgo(t, time.Now())
}

func timeAgo(t, now time.Time) string {
	diff := now.UTC().Sub(t.UTC())

	switch {
	case diff < 0:
		return "in the future (UTC)"
	case diff < time.Minute:
		return plural(int(diff.Seconds()), "second") + " ago (UTC)"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute") + " ago (UTC)"
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour") + " ago (UTC)"
	default:
		return plural(int(diff.Hours()/24), "day") + " ago (UTC)"
	}
}

// FormatTimestamp returns a formatted timestamp string in UTC.
// Format: "2006-01-02 15:04:05 UTC".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}

// FormatDue returns how far a due date is from the day of now.
// Examples: "today", "in 3 days", "2 days overdue", "-" for a missing date.
func FormatDue(due model.Date, now time.Time) string {
	if due.IsZero() {
		return "-"
	}

	today := model.NewDate(now.Year(), now.Month(), now.Day())
	days := int(due.Sub(today.Time).Hours() / 24)
	switch {
	case days == 0:
		return "today"
	case days > 0:
		return "in " + plural(days, "day")
	default:
		return plural(-days, "day") + " overdue"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
