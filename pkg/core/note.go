package core

import (
	"strings"
	"time"
)

// Note is the central entity of the domain.
// Identity and timestamps are server-assigned; the client never mints them.
// Timestamps are kept as the raw wire strings so a malformed value from the
// server degrades to "missing" instead of failing the whole decode.
type Note struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	Owner     *Owner `json:"user,omitempty"`
}

// Owner is the server-side summary of the note's owning user.
type Owner struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Draft is the client-authored part of a note, sent on create and update.
type Draft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// timeLayouts are tried in order by ParseTime. The note service emits
// zone-less LocalDateTime strings; RFC3339 is accepted for good measure.
var timeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
}

// ParseTime parses a server timestamp string. The boolean is false for
// empty or unparseable values; callers treat those as "missing" rather
// than erroring.
func ParseTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LatestActivity returns the later of the note's created and updated
// timestamps. The boolean is false when neither parses.
func (n Note) LatestActivity() (time.Time, bool) {
	created, cok := ParseTime(n.CreatedAt)
	updated, uok := ParseTime(n.UpdatedAt)
	switch {
	case cok && uok:
		if updated.After(created) {
			return updated, true
		}
		return created, true
	case uok:
		return updated, true
	case cok:
		return created, true
	default:
		return time.Time{}, false
	}
}
