// Package ics projects stored events to and from the iCalendar format.
package ics

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/tokinote/tokinote/store"
)

const (
	productID = "-//tokinote//tokinote//EN"

	dateLayout          = "20060102"
	localDateTimeLayout = "20060102T150405"
	utcDateTimeLayout   = "20060102T150405Z"
)

// EventUID returns the stable UID for an event. Imported events keep their
// foreign UID; locally created events derive one from the row id, since
// titles may repeat but ids never do.
func EventUID(event *store.Event) string {
	if event.UID != nil && *event.UID != "" {
		return *event.UID
	}
	return fmt.Sprintf("event-%d@tokinote", event.ID)
}

// RenderCalendar serializes events as a VCALENDAR document.
//
// All-day events emit VALUE=DATE bounds. Timed events emit UTC date-times,
// or TZID-qualified local date-times when tzName names an explicit zone
// (loc must be the resolved location for tzName).
func RenderCalendar(events []*store.Event, loc *time.Location, tzName string, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, event := range events {
		ve := cal.AddEvent(EventUID(event))
		ve.SetDtStampTime(now.UTC())
		ve.SetProperty(ical.ComponentPropertySummary, escapeText(event.Title))
		if event.Note != "" {
			ve.SetProperty(ical.ComponentPropertyDescription, escapeText(event.Note))
		}
		if len(event.Tags) > 0 {
			escaped := make([]string, 0, len(event.Tags))
			for _, tag := range event.Tags {
				escaped = append(escaped, escapeText(tag))
			}
			ve.SetProperty(ical.ComponentPropertyCategories, strings.Join(escaped, ","))
		}

		switch {
		case event.AllDay:
			setDateProperty(ve, ical.ComponentPropertyDtStart, event.StartTime())
			setDateProperty(ve, ical.ComponentPropertyDtEnd, event.EndTime())
		case tzName != "":
			setZonedProperty(ve, ical.ComponentPropertyDtStart, event.StartTime().In(loc), tzName)
			setZonedProperty(ve, ical.ComponentPropertyDtEnd, event.EndTime().In(loc), tzName)
		default:
			ve.SetProperty(ical.ComponentPropertyDtStart, event.StartTime().Format(utcDateTimeLayout))
			ve.SetProperty(ical.ComponentPropertyDtEnd, event.EndTime().Format(utcDateTimeLayout))
		}
	}

	return cal.Serialize()
}

func setDateProperty(ve *ical.VEvent, prop ical.ComponentProperty, t time.Time) {
	ve.SetProperty(prop, t.UTC().Format(dateLayout),
		&ical.KeyValues{Key: string(ical.ParameterValue), Value: []string{"DATE"}})
}

func setZonedProperty(ve *ical.VEvent, prop ical.ComponentProperty, t time.Time, tzName string) {
	ve.SetProperty(prop, t.Format(localDateTimeLayout),
		&ical.KeyValues{Key: string(ical.ParameterTzid), Value: []string{tzName}})
}

// escapeText applies iCalendar content-line escaping (RFC 5545 3.3.11):
// backslash, semicolon, comma and newline.
func escapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case ';':
			b.WriteString(`\;`)
		case ',':
			b.WriteString(`\,`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			// bare CR has no escaped form; fold CRLF into \n
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// unescapeText reverses escapeText.
func unescapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if !escaped {
			if r == '\\' {
				escaped = true
				continue
			}
			b.WriteRune(r)
			continue
		}
		switch r {
		case 'n', 'N':
			b.WriteRune('\n')
		default:
			b.WriteRune(r)
		}
		escaped = false
	}
	return b.String()
}
