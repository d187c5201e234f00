package store

import (
	"context"
	"time"

	"github.com/tokinote/tokinote/internal/tagset"
)

// Event is the object representing a stored schedule entry.
//
// StartTs and EndTs are UTC unix seconds. For all-day events both are
// midnights and EndTs is exclusive (the midnight after the final day).
type Event struct {
	ID      int64
	UID     *string
	Title   string
	StartTs int64
	EndTs   int64
	AllDay  bool
	Note    string
	Tags    []string
}

// StartTime returns the start instant in UTC.
func (e *Event) StartTime() time.Time {
	return time.Unix(e.StartTs, 0).UTC()
}

// EndTime returns the end instant in UTC.
func (e *Event) EndTime() time.Time {
	return time.Unix(e.EndTs, 0).UTC()
}

// Duration returns the event span.
func (e *Event) Duration() time.Duration {
	return e.EndTime().Sub(e.StartTime())
}

// FindEvent is the find condition for events.
type FindEvent struct {
	ID    *int64
	UID   *string
	Title *string

	// Day window filter (UTC unix seconds). An event matches when its
	// start instant falls inside [WindowStartTs, WindowEndTs).
	WindowStartTs *int64
	WindowEndTs   *int64

	Limit *int
}

// UpdateEventTiming is the update request for re-timing an event.
type UpdateEventTiming struct {
	ID      int64
	StartTs int64
	EndTs   int64
	AllDay  bool
}

// DeleteEvent is the delete request for an event.
type DeleteEvent struct {
	ID int64
}

// CreateEvent persists a new event with its tags in one transaction.
// Tags are normalized (trimmed, lowercased, deduplicated) at write time.
func (s *Store) CreateEvent(ctx context.Context, create *Event) (*Event, error) {
	create.Tags = tagset.Normalize(create.Tags)
	return s.driver.CreateEvent(ctx, create)
}

// ListEvents lists events matching the find condition, ordered by start
// instant ascending with id as the tie-breaker.
func (s *Store) ListEvents(ctx context.Context, find *FindEvent) ([]*Event, error) {
	return s.driver.ListEvents(ctx, find)
}

// GetEvent gets a single event, or nil when none matches.
func (s *Store) GetEvent(ctx context.Context, find *FindEvent) (*Event, error) {
	list, err := s.driver.ListEvents(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// GetEventByUID gets an event by its iCalendar UID, or nil when absent.
func (s *Store) GetEventByUID(ctx context.Context, uid string) (*Event, error) {
	return s.GetEvent(ctx, &FindEvent{UID: &uid})
}

// UpdateEventTiming rewrites the timing columns of an existing event.
func (s *Store) UpdateEventTiming(ctx context.Context, update *UpdateEventTiming) error {
	return s.driver.UpdateEventTiming(ctx, update)
}

// DeleteEvent deletes an event and, via cascade, its tag rows.
func (s *Store) DeleteEvent(ctx context.Context, delete *DeleteEvent) error {
	return s.driver.DeleteEvent(ctx, delete)
}
