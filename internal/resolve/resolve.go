// Package resolve turns the heterogeneous date/time/duration inputs accepted
// on the command line into canonical UTC instants. All-day events resolve to
// date boundaries anchored at 00:00 UTC with an exclusive end; timed events
// resolve to zoned instants normalized to UTC.
package resolve

import (
	"strconv"
	"strings"
	"time"

	"github.com/tokinote/tokinote/internal/scherr"
)

// DefaultEventDuration is applied to timed events created without an
// explicit end or duration.
const DefaultEventDuration = 30 * time.Minute

// Input carries the raw timing flags of one add or move invocation.
// The flags are mutually constrained; Resolve validates the combination
// so that no ill-formed pairing survives past this package.
type Input struct {
	Start    string // RFC3339 instant, or YYYY-MM-DD date
	Date     string // YYYY-MM-DD or a relative token (today, +2d, 明日, ...)
	Time     string // HH:MM or HH:MM:SS, combined with Date
	End      string // RFC3339 instant (timed) or YYYY-MM-DD date (all-day)
	Duration string // Go duration syntax (30m, 1h30m); ignored when End is set
	AllDay   bool
}

// Empty reports whether no timing flag was supplied at all.
func (in Input) Empty() bool {
	return in.Start == "" && in.Date == "" && in.Time == "" && in.End == "" && in.Duration == ""
}

// Timing is the canonical (start, end, allDay) triple. Start and End are
// always UTC. For all-day events both are midnights and End is exclusive
// (the midnight after the final day).
type Timing struct {
	Start  time.Time
	End    time.Time
	AllDay bool
}

// Resolver resolves timing input against an injected reference instant and
// zone, so relative tokens and naive date/time input are deterministic
// under test.
type Resolver struct {
	Now      time.Time
	Location *time.Location
}

func (r *Resolver) loc() *time.Location {
	if r.Location == nil {
		return time.Local
	}
	return r.Location
}

// Resolve validates and resolves one timing input.
func (r *Resolver) Resolve(in Input) (Timing, error) {
	if in.AllDay {
		return r.resolveAllDay(in)
	}
	return r.resolveTimed(in)
}

func (r *Resolver) resolveAllDay(in Input) (Timing, error) {
	if in.Time != "" {
		return Timing{}, scherr.InvalidTimeInput("--time cannot be combined with --all-day")
	}
	if in.Duration != "" {
		return Timing{}, scherr.InvalidTimeInput("--duration cannot be combined with --all-day")
	}
	raw := in.Start
	if raw == "" {
		raw = in.Date
	}
	if raw == "" {
		return Timing{}, scherr.InvalidTimeInput("provide --start (date) or --date for all-day events")
	}
	if strings.Contains(raw, "T") {
		return Timing{}, scherr.InvalidTimeInput("all-day start must be a date without a time component, got %q", raw)
	}
	start, err := r.ParseDate(raw)
	if err != nil {
		return Timing{}, err
	}

	end := start.AddDate(0, 0, 1)
	if in.End != "" {
		if strings.Contains(in.End, "T") {
			return Timing{}, scherr.InvalidTimeInput("all-day end must be a date without a time component, got %q", in.End)
		}
		last, err := r.ParseDate(in.End)
		if err != nil {
			return Timing{}, err
		}
		if last.Before(start) {
			return Timing{}, scherr.InvalidTimeInput("end date %s is before start date %s",
				last.Format("2006-01-02"), start.Format("2006-01-02"))
		}
		end = last.AddDate(0, 0, 1)
	}

	return Timing{Start: start, End: end, AllDay: true}, nil
}

func (r *Resolver) resolveTimed(in Input) (Timing, error) {
	var start time.Time
	switch {
	case in.Start != "":
		instant, err := r.parseInstant(in.Start)
		if err != nil {
			return Timing{}, err
		}
		start = instant
	case in.Date != "" || in.Time != "":
		if in.Time == "" {
			return Timing{}, scherr.InvalidTimeInput("provide --time together with --date for timed events")
		}
		date := r.todayDate()
		if in.Date != "" {
			parsed, err := r.ParseDate(in.Date)
			if err != nil {
				return Timing{}, err
			}
			date = parsed
		}
		clock, err := parseTimeOfDay(in.Time)
		if err != nil {
			return Timing{}, err
		}
		start = combine(date, clock, r.loc())
	default:
		return Timing{}, scherr.InvalidTimeInput("provide --start or --date/--time to define a start instant")
	}

	end, err := r.resolveTimedEnd(in, start)
	if err != nil {
		return Timing{}, err
	}
	if end.Before(start) {
		return Timing{}, scherr.InvalidTimeInput("end %s is before start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return Timing{Start: start, End: end}, nil
}

// resolveTimedEnd derives the end instant. --end always wins over --duration.
func (r *Resolver) resolveTimedEnd(in Input, start time.Time) (time.Time, error) {
	if in.End != "" {
		return r.parseInstant(in.End)
	}
	if in.Duration != "" {
		d, err := time.ParseDuration(in.Duration)
		if err != nil {
			return time.Time{}, scherr.InvalidTimeInput("invalid duration %q", in.Duration)
		}
		if d <= 0 {
			return time.Time{}, scherr.InvalidTimeInput("duration must be positive, got %q", in.Duration)
		}
		return start.Add(d), nil
	}
	return start.Add(DefaultEventDuration), nil
}

// Retime re-resolves the timing of an existing event, keeping its span
// for any component the input does not override.
func (r *Resolver) Retime(in Input, current Timing) (Timing, error) {
	if in.Empty() {
		return Timing{}, scherr.InvalidTimeInput("provide --start, --date/--time, --end or --duration to adjust an event")
	}
	if current.AllDay {
		span := current.End.Sub(current.Start)
		if span <= 0 {
			span = 24 * time.Hour
		}
		if in.Time != "" || in.Duration != "" {
			return Timing{}, scherr.InvalidTimeInput("all-day events accept only date inputs")
		}
		start := current.Start
		if raw := firstNonEmpty(in.Start, in.Date); raw != "" {
			parsed, err := r.ParseDate(raw)
			if err != nil {
				return Timing{}, err
			}
			start = parsed
		}
		end := start.Add(span)
		if in.End != "" {
			last, err := r.ParseDate(in.End)
			if err != nil {
				return Timing{}, err
			}
			if last.Before(start) {
				return Timing{}, scherr.InvalidTimeInput("end date %s is before start date %s",
					last.Format("2006-01-02"), start.Format("2006-01-02"))
			}
			end = last.AddDate(0, 0, 1)
		}
		return Timing{Start: start, End: end, AllDay: true}, nil
	}

	span := current.End.Sub(current.Start)
	if span <= 0 {
		span = time.Minute
	}
	var start time.Time
	switch {
	case in.Start != "":
		instant, err := r.parseInstant(in.Start)
		if err != nil {
			return Timing{}, err
		}
		start = instant
	case in.Date != "" || in.Time != "":
		existing := current.Start.In(r.loc())
		date := time.Date(existing.Year(), existing.Month(), existing.Day(), 0, 0, 0, 0, time.UTC)
		clock := time.Date(0, 1, 1, existing.Hour(), existing.Minute(), existing.Second(), 0, time.UTC)
		if in.Date != "" {
			parsed, err := r.ParseDate(in.Date)
			if err != nil {
				return Timing{}, err
			}
			date = parsed
		}
		if in.Time != "" {
			parsed, err := parseTimeOfDay(in.Time)
			if err != nil {
				return Timing{}, err
			}
			clock = parsed
		}
		start = combine(date, clock, r.loc())
	default:
		start = current.Start
	}

	end := start.Add(span)
	if in.End != "" || in.Duration != "" {
		derived, err := r.resolveTimedEnd(in, start)
		if err != nil {
			return Timing{}, err
		}
		end = derived
	}
	if end.Before(start) {
		return Timing{}, scherr.InvalidTimeInput("end %s is before start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return Timing{Start: start, End: end}, nil
}

// DayWindow returns the UTC [00:00, 24:00) window for a day filter.
// The boundary is always computed in UTC; the display timezone has no
// influence on which events fall inside.
func (r *Resolver) DayWindow(day string) (time.Time, time.Time, error) {
	date, err := r.ParseDate(day)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return date, date.AddDate(0, 0, 1), nil
}

// ParseDate parses an absolute YYYY-MM-DD date or a relative token into a
// UTC midnight. Relative tokens resolve against Now in the resolver zone.
func (r *Resolver) ParseDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", trimmed); err == nil {
		return t, nil
	}
	if days, ok := relativeDays(trimmed); ok {
		return r.todayDate().AddDate(0, 0, days), nil
	}
	return time.Time{}, scherr.InvalidTimeInput("expected YYYY-MM-DD date or relative token, got %q", raw)
}

// todayDate is the current calendar date in the resolver zone, as UTC midnight.
func (r *Resolver) todayDate() time.Time {
	now := r.Now.In(r.loc())
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// parseInstant parses an RFC3339 instant, or a bare date as midnight in the
// resolver zone, into UTC.
func (r *Resolver) parseInstant(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation("2006-01-02", trimmed, r.loc()); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, scherr.InvalidTimeInput("expected RFC3339 instant or YYYY-MM-DD date, got %q", raw)
}

// relativeDays maps a relative-date token to a day offset.
// Recognized: today/tomorrow/yesterday, +Nd/-Nd, "in N day(s)", and the
// Japanese 今日/明日/昨日/N日後/N日前.
func relativeDays(token string) (int, bool) {
	switch token {
	case "今日":
		return 0, true
	case "明日":
		return 1, true
	case "昨日":
		return -1, true
	}
	if n, ok := cutSuffixInt(token, "日後"); ok {
		return n, true
	}
	if n, ok := cutSuffixInt(token, "日前"); ok {
		return -n, true
	}

	lower := strings.ToLower(token)
	switch lower {
	case "today":
		return 0, true
	case "tomorrow":
		return 1, true
	case "yesterday":
		return -1, true
	}
	if rest, ok := strings.CutPrefix(lower, "in "); ok {
		rest = strings.TrimSpace(rest)
		for _, suffix := range []string{" days", " day"} {
			if n, ok := cutSuffixInt(rest, suffix); ok {
				return n, true
			}
		}
		return 0, false
	}
	if len(lower) >= 2 && (lower[0] == '+' || lower[0] == '-') {
		digits := strings.TrimSuffix(lower[1:], "d")
		n, err := strconv.Atoi(digits)
		if err != nil || digits == "" {
			return 0, false
		}
		if lower[0] == '-' {
			return -n, true
		}
		return n, true
	}
	return 0, false
}

func cutSuffixInt(s, suffix string) (int, bool) {
	rest, ok := strings.CutSuffix(s, suffix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseTimeOfDay parses HH:MM or HH:MM:SS into a clock-of-day carrier.
func parseTimeOfDay(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, scherr.InvalidTimeInput("expected HH:MM or HH:MM:SS time of day, got %q", raw)
}

// combine anchors a calendar date and wall-clock time in loc and converts
// to UTC. Going through time.Date keeps DST transition days correct.
func combine(date, clock time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, loc).UTC()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
