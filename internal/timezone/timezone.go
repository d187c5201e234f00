// Package timezone handles display timezone resolution and event time
// formatting. Stored instants are always UTC; a timezone only changes how
// they are rendered, never which events a query selects.
package timezone

import (
	"fmt"
	"time"

	"github.com/tokinote/tokinote/internal/scherr"
)

// Parse resolves an IANA timezone identifier (e.g. "Asia/Tokyo").
// An empty name falls back to the host's local zone.
func Parse(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	if name == "UTC" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, scherr.InvalidTimezone(name, err)
	}
	return loc, nil
}

// IsValid checks whether name resolves to a known timezone.
func IsValid(name string) bool {
	_, err := Parse(name)
	return err == nil
}

// FormatEventRange formats a stored event's time span for display.
// Rules:
//   - All-day, single day: "2006-01-02 (all-day)"
//   - All-day, multi day:  "2006-01-02 -> 2006-01-02 (all-day)"
//   - Timed:               "2006-01-02 15:04 -> 2006-01-02 15:04 MST"
//
// All-day bounds are calendar dates with no zone attached, so they render
// in UTC regardless of loc. The stored all-day end is exclusive; display
// shows the inclusive final day.
func FormatEventRange(startTs, endTs int64, allDay bool, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	if allDay {
		start := time.Unix(startTs, 0).UTC()
		last := time.Unix(endTs, 0).UTC().AddDate(0, 0, -1)
		if last.Before(start) {
			last = start
		}
		if start.Format("2006-01-02") == last.Format("2006-01-02") {
			return fmt.Sprintf("%s (all-day)", start.Format("2006-01-02"))
		}
		return fmt.Sprintf("%s -> %s (all-day)", start.Format("2006-01-02"), last.Format("2006-01-02"))
	}
	start := time.Unix(startTs, 0).In(loc)
	end := time.Unix(endTs, 0).In(loc)
	return fmt.Sprintf("%s -> %s", start.Format("2006-01-02 15:04"), end.Format("2006-01-02 15:04 MST"))
}
