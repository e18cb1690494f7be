package inkpad_test

import (
	"fmt"
	"time"

	"github.com/inkpad/inkpad"
	"github.com/inkpad/inkpad/pkg/collection"
)

// Example_stats demonstrates deriving collection statistics from a set
// of notes against a fixed clock.
func Example_stats() {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	notes := []inkpad.Note{
		{ID: 1, Title: "Groceries", CreatedAt: "2025-06-14T09:30:00"},
		{ID: 2, Title: "Trip ideas", CreatedAt: "2025-05-01T08:00:00", UpdatedAt: "2025-06-15T10:00:00"},
		{ID: 3, Title: "Archive", CreatedAt: "2024-01-02T15:04:05"},
	}

	stats := collection.DeriveStats(notes, now)
	fmt.Printf("Total: %d\n", stats.Total)
	fmt.Printf("This week: %d\n", stats.ThisWeek)
	fmt.Printf("Last activity: %s (%s)\n", stats.LastActivityLabel, stats.LastActivityExact)
	// Output:
	// Total: 3
	// This week: 1
	// Last activity: 2 hours ago (Jun 15, 2025, 10:00 AM)
}

// Example_relativeTime demonstrates the human-readable age buckets used
// across the CLI and the dashboard stats.
func Example_relativeTime() {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	for _, target := range []time.Time{
		now.Add(-30 * time.Second),
		now.Add(-45 * time.Minute),
		now.Add(-26 * time.Hour),
		now.AddDate(0, 0, -10),
		now.AddDate(0, -2, 0),
	} {
		fmt.Println(collection.FormatRelative(target, now))
	}
	// Output:
	// Just now
	// 45 minutes ago
	// 1 day ago
	// 1 week ago
	// 2 months ago
}
