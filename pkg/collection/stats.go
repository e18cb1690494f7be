package collection

import (
	"time"

	"github.com/inkpad/inkpad/pkg/core"
)

// NoActivityLabel is the sentinel shown when the note set is empty or no
// note carries a usable timestamp.
const NoActivityLabel = "No activity yet"

// exactLayout renders the absolute form of the latest activity.
const exactLayout = "Jan 2, 2006, 3:04 PM"

// Stats is the derived summary of a note set.
type Stats struct {
	Total             int        `json:"total"`
	ThisWeek          int        `json:"thisWeek"`
	LastActivityLabel string     `json:"lastActivityLabel"`
	LastActivityExact string     `json:"lastActivityExact,omitempty"`
	LastActivity      *time.Time `json:"lastActivity,omitempty"`
}

// DeriveStats computes the summary for a note set. ThisWeek counts notes
// created within the trailing 7x24h window ending at now, not the
// calendar week. now is injected so derivation stays deterministic.
func DeriveStats(notes []core.Note, now time.Time) Stats {
	stats := Stats{
		Total:             len(notes),
		LastActivityLabel: NoActivityLabel,
	}
	if len(notes) == 0 {
		return stats
	}

	weekAgo := now.Add(-7 * 24 * time.Hour)
	var latest time.Time
	var haveLatest bool

	for _, n := range notes {
		if created, ok := core.ParseTime(n.CreatedAt); ok && !created.Before(weekAgo) {
			stats.ThisWeek++
		}
		if recent, ok := n.LatestActivity(); ok {
			if !haveLatest || recent.After(latest) {
				latest = recent
				haveLatest = true
			}
		}
	}

	if haveLatest {
		stats.LastActivity = &latest
		stats.LastActivityLabel = FormatRelative(latest, now)
		stats.LastActivityExact = latest.Format(exactLayout)
	}
	return stats
}
