package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokinote/tokinote/store"
)

var fixedNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func TestItemGUID(t *testing.T) {
	assert.Equal(t, "tokinote-event-42", ItemGUID(&store.Event{ID: 42}))

	uid := "imported-9@example.com"
	assert.Equal(t, uid, ItemGUID(&store.Event{ID: 42, UID: &uid}))
}

func TestRenderRSSChannelDefaults(t *testing.T) {
	out, err := RenderRSS(nil, Channel{}, time.UTC, fixedNow)
	require.NoError(t, err)
	assert.Contains(t, out, "<rss")
	assert.Contains(t, out, "<title>tokinote events</title>")
	assert.Contains(t, out, "<description>Scheduled events</description>")
}

func TestRenderRSSItem(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	event := &store.Event{
		ID:      1,
		Title:   "Standup",
		Note:    "bring coffee",
		Tags:    []string{"team", "work"},
		StartTs: start.Unix(),
		EndTs:   start.Add(30 * time.Minute).Unix(),
	}

	out, err := RenderRSS([]*store.Event{event}, Channel{
		Title:       "My schedule",
		Link:        "https://example.com/schedule",
		Description: "Upcoming",
	}, time.UTC, fixedNow)
	require.NoError(t, err)

	assert.Contains(t, out, "<title>My schedule</title>")
	assert.Contains(t, out, "<title>Standup</title>")
	assert.Contains(t, out, "tokinote-event-1")
	assert.Contains(t, out, "2025-06-01 09:00 -&gt; 2025-06-01 09:30 UTC")
	assert.Contains(t, out, "bring coffee")
	assert.Contains(t, out, "tags: team, work")
}

func TestRenderRSSAllDayIgnoresDisplayZone(t *testing.T) {
	event := &store.Event{
		ID:      2,
		Title:   "Offsite",
		StartTs: time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC).Unix(),
		EndTs:   time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC).Unix(),
		AllDay:  true,
	}

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	out, err := RenderRSS([]*store.Event{event}, Channel{}, tokyo, fixedNow)
	require.NoError(t, err)

	// Exclusive end 2025-08-16 renders the inclusive final day.
	assert.Contains(t, out, "2025-08-10 -&gt; 2025-08-15 (all-day)")
}

func TestRenderRSSIsDeterministic(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	events := []*store.Event{
		{ID: 1, Title: "One", StartTs: start.Unix(), EndTs: start.Add(time.Hour).Unix()},
		{ID: 2, Title: "Two", StartTs: start.Add(2 * time.Hour).Unix(), EndTs: start.Add(3 * time.Hour).Unix()},
	}

	first, err := RenderRSS(events, Channel{Link: "https://example.com"}, time.UTC, fixedNow)
	require.NoError(t, err)
	second, err := RenderRSS(events, Channel{Link: "https://example.com"}, time.UTC, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
