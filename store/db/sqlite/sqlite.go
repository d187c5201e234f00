package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/tokinote/tokinote/internal/profile"
	"github.com/tokinote/tokinote/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a SQLite database driver for the profile DSN.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}
	if profile.DSN == "" {
		return nil, errors.New("database DSN is required")
	}

	// busy_timeout guards against transient locks from a previous
	// invocation still flushing; foreign_keys enables tag cascade deletes.
	dsn := profile.DSN + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)"
	sqliteDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", profile.DSN)
	}

	return &DB{db: sqliteDB, profile: profile}, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Migrate creates the schema idempotently. It never drops or rewrites
// existing rows, so it is safe on every startup.
func (d *DB) Migrate(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		start_ts INTEGER NOT NULL,
		end_ts INTEGER NOT NULL,
		all_day INTEGER NOT NULL DEFAULT 0,
		note TEXT NOT NULL DEFAULT '',
		uid TEXT
	);
	CREATE TABLE IF NOT EXISTS event_tags (
		event_id INTEGER NOT NULL,
		tag TEXT NOT NULL,
		UNIQUE (event_id, tag),
		FOREIGN KEY (event_id) REFERENCES events (id) ON DELETE CASCADE
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_events_uid ON events (uid) WHERE uid IS NOT NULL;
	CREATE INDEX IF NOT EXISTS idx_events_start_ts ON events (start_ts);
	`
	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}
	return nil
}
