package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that a store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// Migrate creates the schema idempotently. Calling it against an
	// existing database must not clobber stored rows.
	Migrate(ctx context.Context) error

	// Event model related methods.
	CreateEvent(ctx context.Context, create *Event) (*Event, error)
	ListEvents(ctx context.Context, find *FindEvent) ([]*Event, error)
	UpdateEventTiming(ctx context.Context, update *UpdateEventTiming) error
	DeleteEvent(ctx context.Context, delete *DeleteEvent) error
}
