package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tokinote/tokinote/internal/scherr"
	"github.com/tokinote/tokinote/store"
)

// CreateEvent inserts the event row and its tag rows atomically. If any
// tag insert fails the whole transaction rolls back, so a partial tag set
// can never be observed.
func (d *DB) CreateEvent(ctx context.Context, create *store.Event) (*store.Event, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, scherr.Storage("failed to begin transaction", err)
	}
	defer tx.Rollback()

	fields := []string{"title", "start_ts", "end_ts", "all_day", "note", "uid"}
	values := []any{create.Title, create.StartTs, create.EndTs, create.AllDay, create.Note, create.UID}

	stmt := `INSERT INTO events (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(values)) + `)
		RETURNING id`
	if err := tx.QueryRowContext(ctx, stmt, values...).Scan(&create.ID); err != nil {
		return nil, scherr.Storage("failed to create event", err)
	}

	for _, tag := range create.Tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO event_tags (event_id, tag) VALUES (?, ?)`,
			create.ID, tag,
		); err != nil {
			return nil, scherr.Storage("failed to create event tag", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, scherr.Storage("failed to commit event", err)
	}
	return create, nil
}

func (d *DB) ListEvents(ctx context.Context, find *store.FindEvent) ([]*store.Event, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "events.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "events.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Title; v != nil {
		where, args = append(where, "events.title = "+placeholder(len(args)+1)), append(args, *v)
	}
	// The day filter selects on the start instant only: an event belongs to
	// the day its UTC start falls in, regardless of how far it runs.
	if v := find.WindowStartTs; v != nil {
		where, args = append(where, "events.start_ts >= "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.WindowEndTs; v != nil {
		where, args = append(where, "events.start_ts < "+placeholder(len(args)+1)), append(args, *v)
	}

	// Ordering is part of the contract: start ascending, id as tie-breaker
	// so equal timestamps list deterministically.
	query := `
		SELECT id, title, start_ts, end_ts, all_day, note, uid
		FROM events
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY events.start_ts ASC, events.id ASC`
	if find.Limit != nil {
		query += " LIMIT " + placeholder(len(args)+1)
		args = append(args, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, scherr.Storage("failed to query events", err)
	}
	defer rows.Close()

	list := make([]*store.Event, 0)
	for rows.Next() {
		var event store.Event
		var uid sql.NullString
		if err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.StartTs,
			&event.EndTs,
			&event.AllDay,
			&event.Note,
			&uid,
		); err != nil {
			return nil, scherr.Storage("failed to scan event", err)
		}
		if uid.Valid {
			event.UID = &uid.String
		}
		list = append(list, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, scherr.Storage("failed to iterate events", err)
	}

	for _, event := range list {
		tags, err := d.listEventTags(ctx, event.ID)
		if err != nil {
			return nil, err
		}
		event.Tags = tags
	}
	return list, nil
}

func (d *DB) listEventTags(ctx context.Context, eventID int64) ([]string, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT tag FROM event_tags WHERE event_id = ? ORDER BY tag`, eventID)
	if err != nil {
		return nil, scherr.Storage("failed to query event tags", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, scherr.Storage("failed to scan event tag", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, scherr.Storage("failed to iterate event tags", err)
	}
	return tags, nil
}

func (d *DB) UpdateEventTiming(ctx context.Context, update *store.UpdateEventTiming) error {
	result, err := d.db.ExecContext(ctx,
		`UPDATE events SET start_ts = ?, end_ts = ?, all_day = ? WHERE id = ?`,
		update.StartTs, update.EndTs, update.AllDay, update.ID,
	)
	if err != nil {
		return scherr.Storage("failed to update event timing", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return scherr.NotFound("no event found with id %d", update.ID)
	}
	return nil
}

func (d *DB) DeleteEvent(ctx context.Context, delete *store.DeleteEvent) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, delete.ID)
	if err != nil {
		return scherr.Storage("failed to delete event", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return scherr.NotFound("no event found with id %d", delete.ID)
	}
	return nil
}
