package domain

import "time"

// Activity log defaults.
const (
	DefaultActivityStatus = "success"
	DefaultActivityLimit  = 50
	MaxActivityLimit      = 200
)

// Activity is an entry in the append-only activity log.
type Activity struct {
	ID          string
	Action      string
	Category    string
	Title       string
	Description string
	Metadata    map[string]any
	SessionID   string
	Status      string
	Timestamp   time.Time
}

// NewActivityParams holds the fields accepted when logging an activity.
// A zero Timestamp means now. An empty Status means DefaultActivityStatus.
type NewActivityParams struct {
	Action      string
	Category    string
	Title       string
	Description string
	Metadata    map[string]any
	SessionID   string
	Status      string
	Timestamp   time.Time
}

// ActivityFilter narrows an activity listing. Empty fields do not filter.
type ActivityFilter struct {
	Category string
	Action   string
	Status   string

	// Since keeps entries at or after this instant when non-nil.
	Since *time.Time

	Limit int
}

// ParseActivityLimit converts a raw limit parameter into a listing limit.
// Blank or unparseable input yields the default; numbers are clamped to
// [1, MaxActivityLimit].
func ParseActivityLimit(raw string) int {
	n, ok := ParseLeadingInt(raw)
	if !ok {
		return DefaultActivityLimit
	}
	return ClampActivityLimit(n)
}

// ClampActivityLimit bounds a numeric limit to [1, MaxActivityLimit].
func ClampActivityLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxActivityLimit {
		return MaxActivityLimit
	}
	return limit
}
