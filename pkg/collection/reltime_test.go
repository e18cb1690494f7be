package collection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelative_Buckets(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"zero", 0, "Just now"},
		{"under a minute", 45 * time.Second, "Just now"},
		{"ninety seconds", 90 * time.Second, "1 minute ago"},
		{"many minutes", 35 * time.Minute, "35 minutes ago"},
		{"two hours", 7200 * time.Second, "2 hours ago"},
		{"almost a day", 23 * time.Hour, "23 hours ago"},
		{"one day", 26 * time.Hour, "1 day ago"},
		{"six days", 6 * 24 * time.Hour, "6 days ago"},
		{"ten days", 10 * 24 * time.Hour, "1 week ago"},
		{"four weeks", 29 * 24 * time.Hour, "4 weeks ago"},
		{"five weeks", 35 * 24 * time.Hour, "1 month ago"},
		{"eleven months", 340 * 24 * time.Hour, "11 months ago"},
		{"four hundred days", 400 * 24 * time.Hour, "1 year ago"},
		{"two years", 800 * 24 * time.Hour, "2 years ago"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatRelative(now.Add(-tc.elapsed), now))
		})
	}
}

func TestFormatRelative_FutureTimestampIsJustNow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// Server clock skew can put a timestamp ahead of us; never error.
	assert.Equal(t, "Just now", FormatRelative(now.Add(10*time.Minute), now))
}
