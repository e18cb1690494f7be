// Package collection derives presentation-ready ordering and statistics
// from a note set. It is pure: no clock reads, no network, no storage.
// Derived values are recomputed from the current set on every change and
// never drift independently of it.
package collection

import (
	"sort"
	"time"

	"github.com/inkpad/inkpad/pkg/core"
)

// activityOrZero is the sort key: the note's latest activity, with the
// zero time standing in for missing or unparseable timestamps so that
// malformed server data sorts oldest instead of breaking the view.
func activityOrZero(n core.Note) time.Time {
	t, ok := n.LatestActivity()
	if !ok {
		return time.Time{}
	}
	return t
}

// DeriveOrder returns the notes sorted by latest activity, most recent
// first. The sort is stable and does not mutate the input slice.
func DeriveOrder(notes []core.Note) []core.Note {
	ordered := make([]core.Note, len(notes))
	copy(ordered, notes)

	sort.SliceStable(ordered, func(i, j int) bool {
		return activityOrZero(ordered[i]).After(activityOrZero(ordered[j]))
	})
	return ordered
}
