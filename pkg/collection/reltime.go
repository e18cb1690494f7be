package collection

import (
	"fmt"
	"time"
)

// FormatRelative renders the elapsed time between target and now as a
// human label. Negative or sub-minute durations collapse to "Just now";
// larger durations bucket into minutes, hours, days, weeks (of 7 days),
// months (of 30 days) and years (of 365 days, minimum 1).
func FormatRelative(target, now time.Time) string {
	diff := now.Sub(target)
	if diff < 0 {
		return "Just now"
	}

	minutes := int(diff / time.Minute)
	if minutes < 1 {
		return "Just now"
	}
	if minutes < 60 {
		return pluralize(minutes, "minute")
	}

	hours := minutes / 60
	if hours < 24 {
		return pluralize(hours, "hour")
	}

	days := hours / 24
	if days < 7 {
		return pluralize(days, "day")
	}

	weeks := days / 7
	if weeks < 5 {
		return pluralize(weeks, "week")
	}

	months := days / 30
	if months < 12 {
		return pluralize(months, "month")
	}

	years := days / 365
	if years < 1 {
		years = 1
	}
	return pluralize(years, "year")
}

func pluralize(value int, unit string) string {
	if value == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", value, unit)
}
