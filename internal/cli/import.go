package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tokinote/tokinote/internal/ics"
	"github.com/tokinote/tokinote/internal/scherr"
)

func (c *CLI) newImportCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import events from an iCalendar file, deduplicating by UID",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runWithStore(cmd, func(ctx context.Context) error {
				if path == "" {
					path = c.profile.ImportSource
				}
				if path == "" {
					return errors.New("provide --path or set import.source in the config file")
				}

				f, err := os.Open(path)
				if err != nil {
					return errors.Wrapf(err, "failed to open %s", path)
				}
				defer f.Close()

				report, err := ics.Import(ctx, c.store, f, c.logger)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "Imported %d event(s), skipped %d, failed %d\n",
					report.Imported, report.Skipped, report.Failed)
				if report.Failed > 0 {
					return scherr.Parse(fmt.Sprintf("%d event(s) failed to import", report.Failed), nil)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "path to the .ics file to import")

	return cmd
}
