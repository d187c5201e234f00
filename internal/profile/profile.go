// Package profile resolves the runtime configuration of one invocation:
// database location, default output paths, and the import source. Values
// come from the optional TOML config file first and are overridden by
// command-line flags.
package profile

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const appName = "tokinote"

// Profile is the resolved configuration for one command run.
type Profile struct {
	// DSN is the SQLite database file path.
	DSN string
	// Driver is the database driver. Only "sqlite" is supported.
	Driver string
	// RSSOutput is the default output path for the rss command.
	RSSOutput string
	// ICalOutput is the default output path for the ical command.
	ICalOutput string
	// ImportSource is the default .ics path for the import command.
	ImportSource string
	// Version is the binary version.
	Version string
}

// Load reads the optional config file from the XDG config directory.
// A missing file is not an error; every key has a sensible zero value.
//
// Recognized keys:
//
//	[database] path = "..."
//	[rss]      output = "..."
//	[ical]     output = "..."
//	[import]   source = "..."
func Load(version string) (*Profile, error) {
	p := &Profile{Driver: "sqlite", Version: version}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, appName))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	p.DSN = v.GetString("database.path")
	p.RSSOutput = v.GetString("rss.output")
	p.ICalOutput = v.GetString("ical.output")
	p.ImportSource = v.GetString("import.source")
	return p, nil
}

// Validate fills in the default database location and makes sure its parent
// directory exists. Safe to call after flag overrides have been applied.
func (p *Profile) Validate() error {
	if p.Driver == "" {
		p.Driver = "sqlite"
	}
	if p.DSN == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return err
		}
		p.DSN = filepath.Join(dir, appName+".db")
	}
	if parent := filepath.Dir(p.DSN); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return errors.Wrapf(err, "unable to create data folder %s", parent)
		}
	}
	return nil
}

// defaultDataDir resolves the XDG data directory for this application.
func defaultDataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "unable to resolve home directory")
	}
	return filepath.Join(home, ".local", "share", appName), nil
}
