package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokinote/tokinote/internal/scherr"
)

func TestParse(t *testing.T) {
	loc, err := Parse("Europe/Paris")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", loc.String())

	loc, err = Parse("")
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	_, err = Parse("Not/AZone")
	require.Error(t, err)
	assert.Equal(t, scherr.CodeInvalidTimezone, scherr.CodeOf(err))
}

func TestFormatEventRangeTimed(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	got := FormatEventRange(start.Unix(), end.Unix(), false, time.UTC)
	assert.Equal(t, "2025-06-01 09:00 -> 2025-06-01 10:00 UTC", got)

	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	got = FormatEventRange(start.Unix(), end.Unix(), false, paris)
	assert.Equal(t, "2025-06-01 11:00 -> 2025-06-01 12:00 CEST", got)
}

func TestFormatEventRangeAllDay(t *testing.T) {
	start := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)

	single := FormatEventRange(start.Unix(), start.AddDate(0, 0, 1).Unix(), true, time.UTC)
	assert.Equal(t, "2025-08-10 (all-day)", single)

	// Exclusive end 2025-08-16 renders the inclusive final day 2025-08-15.
	multi := FormatEventRange(start.Unix(), time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC).Unix(), true, time.UTC)
	assert.Equal(t, "2025-08-10 -> 2025-08-15 (all-day)", multi)

	// All-day dates ignore the display zone entirely.
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, single, FormatEventRange(start.Unix(), start.AddDate(0, 0, 1).Unix(), true, tokyo))
}
