// Package cli wires the command surface: flag parsing, profile loading,
// store lifecycle, and the per-command pipelines.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tokinote/tokinote/internal/profile"
	"github.com/tokinote/tokinote/internal/resolve"
	"github.com/tokinote/tokinote/store"
	"github.com/tokinote/tokinote/store/db"
)

// CLI holds the shared state of one invocation.
type CLI struct {
	profile *profile.Profile
	store   *store.Store
	now     func() time.Time
	out     io.Writer
	logger  *slog.Logger

	databasePath string
}

// Execute runs the root command and returns its error, if any.
func Execute(version string) error {
	c := &CLI{
		now:    time.Now,
		out:    os.Stdout,
		logger: slog.Default(),
	}
	return c.newRootCommand(version).Execute()
}

func (c *CLI) newRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "tokinote",
		Short:         "Personal scheduling CLI backed by SQLite",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&c.databasePath, "database", "", "path to the SQLite database file")

	root.AddCommand(
		c.newAddCommand(),
		c.newListCommand(),
		c.newDeleteCommand(),
		c.newMoveCommand(),
		c.newRSSCommand(),
		c.newICalCommand(),
		c.newImportCommand(),
	)
	return root
}

// runWithStore resolves the profile, opens the database for the duration of
// one command, and guarantees release on every exit path.
func (c *CLI) runWithStore(cmd *cobra.Command, fn func(ctx context.Context) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	p, err := profile.Load(cmd.Root().Version)
	if err != nil {
		return err
	}
	if c.databasePath != "" {
		p.DSN = c.databasePath
	}
	if err := p.Validate(); err != nil {
		return err
	}

	driver, err := db.NewDBDriver(p)
	if err != nil {
		return err
	}
	c.profile = p
	c.store = store.New(driver, p)
	defer c.store.Close()

	if err := driver.Migrate(ctx); err != nil {
		return err
	}
	return fn(ctx)
}

// newResolver builds a time resolver anchored at the current instant in
// the host zone. Tests construct their own with a fixed Now.
func (c *CLI) newResolver() *resolve.Resolver {
	return &resolve.Resolver{Now: c.now(), Location: time.Local}
}

// findForDay builds the find condition for an optional --day filter.
// The window is always the day's [00:00, 24:00) span in UTC.
func (c *CLI) findForDay(day string) (*store.FindEvent, error) {
	find := &store.FindEvent{}
	if day == "" {
		return find, nil
	}
	windowStart, windowEnd, err := c.newResolver().DayWindow(day)
	if err != nil {
		return nil, err
	}
	startTs, endTs := windowStart.Unix(), windowEnd.Unix()
	find.WindowStartTs = &startTs
	find.WindowEndTs = &endTs
	return find, nil
}

// writeOutput writes content to path, or to standard output when path is
// empty.
func (c *CLI) writeOutput(path, content string) error {
	if path == "" {
		_, err := io.WriteString(c.out, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(c.out, "Wrote %s\n", path)
	return nil
}
