// Package feed projects stored events into an RSS 2.0 feed.
package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"

	"github.com/tokinote/tokinote/internal/timezone"
	"github.com/tokinote/tokinote/store"
)

// Channel carries the feed-level metadata supplied by the caller.
type Channel struct {
	Title       string
	Link        string
	Description string
}

// ItemGUID returns the aggregator-stable guid for an event. It derives
// from the event id (or imported UID), never the title, so repeated titles
// stay distinguishable and re-exports deduplicate cleanly.
func ItemGUID(event *store.Event) string {
	if event.UID != nil && *event.UID != "" {
		return *event.UID
	}
	return fmt.Sprintf("tokinote-event-%d", event.ID)
}

// RenderRSS serializes events as an RSS 2.0 document. Publish dates render
// the event start in loc; now stamps the channel.
func RenderRSS(events []*store.Event, ch Channel, loc *time.Location, now time.Time) (string, error) {
	if ch.Title == "" {
		ch.Title = "tokinote events"
	}
	if ch.Description == "" {
		ch.Description = "Scheduled events"
	}

	f := &feeds.Feed{
		Title:       ch.Title,
		Link:        &feeds.Link{Href: ch.Link},
		Description: ch.Description,
		Created:     now,
	}

	for _, event := range events {
		f.Items = append(f.Items, &feeds.Item{
			Id:          ItemGUID(event),
			Title:       event.Title,
			Link:        &feeds.Link{Href: ch.Link},
			Description: itemDescription(event, loc),
			Created:     event.StartTime().In(loc),
		})
	}

	return f.ToRss()
}

func itemDescription(event *store.Event, loc *time.Location) string {
	parts := []string{timezone.FormatEventRange(event.StartTs, event.EndTs, event.AllDay, loc)}
	if event.Note != "" {
		parts = append(parts, event.Note)
	}
	if len(event.Tags) > 0 {
		parts = append(parts, "tags: "+strings.Join(event.Tags, ", "))
	}
	return strings.Join(parts, "\n")
}
