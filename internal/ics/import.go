package ics

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/tokinote/tokinote/internal/scherr"
	"github.com/tokinote/tokinote/store"
)

// Report summarizes one import run.
type Report struct {
	Imported int
	Skipped  int
	Failed   int
}

// Import parses an iCalendar document and inserts its VEVENTs, skipping
// those whose UID is already stored. A malformed VEVENT is logged and
// counted as failed without aborting the rest of the batch; storage
// failures abort, since continuing could drop data silently.
func Import(ctx context.Context, st *store.Store, r io.Reader, logger *slog.Logger) (Report, error) {
	var report Report

	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return report, scherr.Parse("failed to parse iCalendar input", err)
	}

	for _, ve := range cal.Events() {
		candidate, err := eventFromVEvent(ve)
		if err != nil {
			report.Failed++
			logger.Warn("skipping malformed VEVENT", slog.String("error", err.Error()))
			continue
		}
		existing, err := st.GetEventByUID(ctx, *candidate.UID)
		if err != nil {
			return report, err
		}
		if existing != nil {
			report.Skipped++
			continue
		}
		if _, err := st.CreateEvent(ctx, candidate); err != nil {
			return report, err
		}
		report.Imported++
	}

	return report, nil
}

// eventFromVEvent converts one VEVENT into a candidate event, applying the
// inverse of the export mapping.
func eventFromVEvent(ve *ical.VEvent) (*store.Event, error) {
	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil || dtStart.Value == "" {
		return nil, scherr.Parse("VEVENT has no DTSTART", nil)
	}
	start, allDay, err := parseDateTimeProperty(dtStart)
	if err != nil {
		return nil, err
	}

	end, err := parseEnd(ve, allDay, start)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, scherr.Parse("DTEND is before DTSTART", nil)
	}

	title := "Imported event"
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil && p.Value != "" {
		title = unescapeText(p.Value)
	}
	note := ""
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		note = unescapeText(p.Value)
	}
	var tags []string
	if p := ve.GetProperty(ical.ComponentPropertyCategories); p != nil {
		tags = splitCategories(p.Value)
	}

	uid := deriveUID(ve, dtStart.Value, title)

	return &store.Event{
		UID:     &uid,
		Title:   title,
		StartTs: start.Unix(),
		EndTs:   end.Unix(),
		AllDay:  allDay,
		Note:    note,
		Tags:    tags,
	}, nil
}

// deriveUID returns the VEVENT's UID, or a deterministic UUID from its
// summary and start when the source omitted one. Determinism keeps a
// re-import of the same file idempotent even without UIDs.
func deriveUID(ve *ical.VEvent, rawStart, title string) string {
	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil && p.Value != "" {
		return p.Value
	}
	seed := "tokinote:" + title + ":" + rawStart
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed)).String()
}

func parseEnd(ve *ical.VEvent, allDay bool, start time.Time) (time.Time, error) {
	dtEnd := ve.GetProperty(ical.ComponentPropertyDtEnd)
	if dtEnd == nil || dtEnd.Value == "" {
		if allDay {
			return start.AddDate(0, 0, 1), nil
		}
		return start.Add(time.Hour), nil
	}
	end, _, err := parseDateTimeProperty(dtEnd)
	return end, err
}

// parseDateTimeProperty parses DTSTART/DTEND values in their three forms:
// date (VALUE=DATE or bare YYYYMMDD), UTC date-time (...Z), and local
// date-time with an optional TZID parameter. Naked local times are read
// as UTC.
func parseDateTimeProperty(prop *ical.IANAProperty) (time.Time, bool, error) {
	value := strings.TrimSpace(prop.Value)

	if isDateValue(prop) {
		t, err := time.Parse(dateLayout, value)
		if err != nil {
			return time.Time{}, false, scherr.Parse("invalid date value "+value, err)
		}
		return t, true, nil
	}

	if stripped, ok := strings.CutSuffix(value, "Z"); ok {
		t, err := time.Parse(localDateTimeLayout, stripped)
		if err != nil {
			return time.Time{}, false, scherr.Parse("invalid date-time value "+value, err)
		}
		return t, false, nil
	}

	loc := time.UTC
	if tzids, ok := prop.ICalParameters[string(ical.ParameterTzid)]; ok && len(tzids) > 0 {
		resolved, err := time.LoadLocation(tzids[0])
		if err != nil {
			return time.Time{}, false, scherr.InvalidTimezone(tzids[0], err)
		}
		loc = resolved
	}
	t, err := time.ParseInLocation(localDateTimeLayout, value, loc)
	if err != nil {
		return time.Time{}, false, scherr.Parse("invalid date-time value "+value, err)
	}
	return t.UTC(), false, nil
}

// isDateValue reports whether a property carries a date-only value,
// either via VALUE=DATE or by shape.
func isDateValue(prop *ical.IANAProperty) bool {
	if vs, ok := prop.ICalParameters[string(ical.ParameterValue)]; ok && len(vs) > 0 {
		if strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(prop.Value, "T")
}

// splitCategories splits a CATEGORIES value on unescaped commas and
// unescapes each entry.
func splitCategories(value string) []string {
	var parts []string
	var current strings.Builder
	escaped := false
	for _, r := range value {
		switch {
		case escaped:
			current.WriteRune('\\')
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ',':
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	parts = append(parts, current.String())

	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(unescapeText(part))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
