package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tokinote/tokinote/internal/resolve"
	"github.com/tokinote/tokinote/store"
)

func (c *CLI) newAddCommand() *cobra.Command {
	var (
		title  string
		note   string
		tags   []string
		timing resolve.Input
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a schedule entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runWithStore(cmd, func(ctx context.Context) error {
				resolved, err := c.newResolver().Resolve(timing)
				if err != nil {
					return err
				}
				event, err := c.store.CreateEvent(ctx, &store.Event{
					Title:   title,
					StartTs: resolved.Start.Unix(),
					EndTs:   resolved.End.Unix(),
					AllDay:  resolved.AllDay,
					Note:    note,
					Tags:    tags,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "Stored event #%d\n", event.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "event title")
	cmd.Flags().StringVar(&timing.Start, "start", "", "start instant in RFC3339, or YYYY-MM-DD with --all-day")
	cmd.Flags().StringVar(&timing.Date, "date", "", "start date: YYYY-MM-DD or a relative token (today, tomorrow, +2d)")
	cmd.Flags().StringVar(&timing.Time, "time", "", "start time of day (HH:MM), combined with --date")
	cmd.Flags().StringVar(&timing.End, "end", "", "end instant in RFC3339, or date with --all-day")
	cmd.Flags().StringVar(&timing.Duration, "duration", "", "duration like 30m, 2h, 1h30m; ignored when --end is given")
	cmd.Flags().BoolVar(&timing.AllDay, "all-day", false, "store as all-day entry (start/end treated as dates)")
	cmd.Flags().StringVar(&note, "note", "", "optional note or description")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "repeatable tag values (e.g. --tag work --tag urgent)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}
