package resolve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokinote/tokinote/internal/scherr"
)

func newTestResolver() *Resolver {
	return &Resolver{
		Now:      time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
		Location: time.UTC,
	}
}

func TestParseDateRelativeTokens(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		token string
		want  string
	}{
		{"2025-08-10", "2025-08-10"},
		{"today", "2025-05-01"},
		{"Tomorrow", "2025-05-02"},
		{"yesterday", "2025-04-30"},
		{"+2d", "2025-05-03"},
		{"-3d", "2025-04-28"},
		{"in 2 days", "2025-05-03"},
		{"in 1 day", "2025-05-02"},
		{"今日", "2025-05-01"},
		{"明日", "2025-05-02"},
		{"昨日", "2025-04-30"},
		{"2日後", "2025-05-03"},
		{"2日前", "2025-04-29"},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := r.ParseDate(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}
}

func TestParseDateUnknownTokenFails(t *testing.T) {
	r := newTestResolver()
	for _, token := range []string{"someday", "+d", "in two days", "05/01/2025"} {
		_, err := r.ParseDate(token)
		require.Error(t, err, token)
		assert.Equal(t, scherr.CodeInvalidTimeInput, scherr.CodeOf(err))
	}
}

func TestResolveTimedExplicitStart(t *testing.T) {
	r := newTestResolver()

	timing, err := r.Resolve(Input{Start: "2025-06-01T09:00:00+09:00"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), timing.Start)
	assert.Equal(t, DefaultEventDuration, timing.End.Sub(timing.Start))
	assert.False(t, timing.AllDay)
}

func TestResolveTimedDateAndTime(t *testing.T) {
	r := newTestResolver()

	timing, err := r.Resolve(Input{Date: "tomorrow", Time: "09:30"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 2, 9, 30, 0, 0, time.UTC), timing.Start)
}

func TestResolveTimedDateAndTimeInZone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	r := &Resolver{Now: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC), Location: loc}

	timing, err := r.Resolve(Input{Date: "2025-05-02", Time: "09:00"})
	require.NoError(t, err)
	// 09:00 JST is 00:00 UTC.
	assert.Equal(t, time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), timing.Start)
}

func TestResolveTimedEndOverridesDuration(t *testing.T) {
	r := newTestResolver()

	timing, err := r.Resolve(Input{
		Start:    "2025-06-01T09:00:00Z",
		End:      "2025-06-01T11:00:00Z",
		Duration: "15m",
	})
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, timing.End.Sub(timing.Start))
}

func TestResolveTimedDuration(t *testing.T) {
	r := newTestResolver()

	timing, err := r.Resolve(Input{Start: "2025-06-01T09:00:00Z", Duration: "1h30m"})
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, timing.End.Sub(timing.Start))
}

func TestResolveTimedEndBeforeStartFails(t *testing.T) {
	r := newTestResolver()

	_, err := r.Resolve(Input{
		Start: "2025-06-01T09:00:00Z",
		End:   "2025-06-01T08:00:00Z",
	})
	require.Error(t, err)
	assert.Equal(t, scherr.CodeInvalidTimeInput, scherr.CodeOf(err))
}

func TestResolveTimedRequiresStartInput(t *testing.T) {
	r := newTestResolver()

	_, err := r.Resolve(Input{Duration: "30m"})
	require.Error(t, err)
	assert.Equal(t, scherr.CodeInvalidTimeInput, scherr.CodeOf(err))

	_, err = r.Resolve(Input{Date: "today"})
	require.Error(t, err)
	assert.Equal(t, scherr.CodeInvalidTimeInput, scherr.CodeOf(err))
}

func TestResolveAllDayRange(t *testing.T) {
	r := newTestResolver()

	timing, err := r.Resolve(Input{Start: "2025-08-10", End: "2025-08-15", AllDay: true})
	require.NoError(t, err)
	assert.True(t, timing.AllDay)
	assert.Equal(t, time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC), timing.Start)
	// Stored end is exclusive: midnight after the final day.
	assert.Equal(t, time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC), timing.End)
}

func TestResolveAllDaySingleDayDefault(t *testing.T) {
	r := newTestResolver()

	timing, err := r.Resolve(Input{Date: "today", AllDay: true})
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, timing.End.Sub(timing.Start))
}

func TestResolveAllDayRejectsTimeInputs(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name string
		in   Input
	}{
		{"duration", Input{Start: "2025-08-10", Duration: "2h", AllDay: true}},
		{"time of day", Input{Date: "2025-08-10", Time: "09:00", AllDay: true}},
		{"instant start", Input{Start: "2025-08-10T09:00:00Z", AllDay: true}},
		{"instant end", Input{Start: "2025-08-10", End: "2025-08-11T09:00:00Z", AllDay: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.in)
			require.Error(t, err)
			assert.Equal(t, scherr.CodeInvalidTimeInput, scherr.CodeOf(err))
		})
	}
}

func TestResolveAllDayEndBeforeStartFails(t *testing.T) {
	r := newTestResolver()

	_, err := r.Resolve(Input{Start: "2025-08-15", End: "2025-08-10", AllDay: true})
	require.Error(t, err)
	assert.Equal(t, scherr.CodeInvalidTimeInput, scherr.CodeOf(err))
}

func TestDayWindowIsUTC(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	// Resolver zone must not shift the window boundary.
	r := &Resolver{Now: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC), Location: loc}

	start, end, err := r.DayWindow("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), end)
}

func TestRetimeKeepsSpan(t *testing.T) {
	r := newTestResolver()
	current := Timing{
		Start: time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 5, 10, 10, 30, 0, 0, time.UTC),
	}

	moved, err := r.Retime(Input{Date: "2025-05-12"}, current)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 12, 9, 0, 0, 0, time.UTC), moved.Start)
	assert.Equal(t, 90*time.Minute, moved.End.Sub(moved.Start))
}

func TestRetimeTimeOnly(t *testing.T) {
	r := newTestResolver()
	current := Timing{
		Start: time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 5, 10, 10, 0, 0, 0, time.UTC),
	}

	moved, err := r.Retime(Input{Time: "14:00"}, current)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC), moved.Start)
	assert.Equal(t, time.Hour, moved.End.Sub(moved.Start))
}

func TestRetimeAllDayKeepsSpan(t *testing.T) {
	r := newTestResolver()
	current := Timing{
		Start:  time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2025, 8, 13, 0, 0, 0, 0, time.UTC),
		AllDay: true,
	}

	moved, err := r.Retime(Input{Date: "2025-09-01"}, current)
	require.NoError(t, err)
	assert.True(t, moved.AllDay)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), moved.Start)
	assert.Equal(t, time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC), moved.End)
}

func TestRetimeRequiresInput(t *testing.T) {
	r := newTestResolver()

	_, err := r.Retime(Input{}, Timing{})
	require.Error(t, err)
	assert.Equal(t, scherr.CodeInvalidTimeInput, scherr.CodeOf(err))
}
