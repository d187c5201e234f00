package db

import (
	"github.com/pkg/errors"

	"github.com/tokinote/tokinote/internal/profile"
	"github.com/tokinote/tokinote/store"
	"github.com/tokinote/tokinote/store/db/sqlite"
)

// NewDBDriver creates a new db driver based on profile.
// SQLite is the only supported engine; the store is a single-user local
// database and the caller is responsible for avoiding concurrent writers.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	default:
		return nil, errors.Errorf("unknown db driver %q: only 'sqlite' is supported", profile.Driver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
