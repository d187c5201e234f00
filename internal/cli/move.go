package cli

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tokinote/tokinote/internal/resolve"
	"github.com/tokinote/tokinote/internal/scherr"
	"github.com/tokinote/tokinote/internal/timezone"
	"github.com/tokinote/tokinote/store"
)

func (c *CLI) newMoveCommand() *cobra.Command {
	var (
		id     int64
		title  string
		timing resolve.Input
	)

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Re-time an existing entry, keeping its span unless overridden",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runWithStore(cmd, func(ctx context.Context) error {
				event, err := c.resolveMoveTarget(ctx, id, title)
				if err != nil {
					return err
				}

				current := resolve.Timing{
					Start:  event.StartTime(),
					End:    event.EndTime(),
					AllDay: event.AllDay,
				}
				resolved, err := c.newResolver().Retime(timing, current)
				if err != nil {
					return err
				}

				if err := c.store.UpdateEventTiming(ctx, &store.UpdateEventTiming{
					ID:      event.ID,
					StartTs: resolved.Start.Unix(),
					EndTs:   resolved.End.Unix(),
					AllDay:  resolved.AllDay,
				}); err != nil {
					return err
				}

				fmt.Fprintf(c.out, "Moved event #%d to %s\n", event.ID,
					timezone.FormatEventRange(resolved.Start.Unix(), resolved.End.Unix(), resolved.AllDay, nil))
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "event id")
	cmd.Flags().StringVar(&title, "title", "", "exact event title; must match a single event")
	cmd.Flags().StringVar(&timing.Start, "start", "", "new start instant in RFC3339, or date for all-day entries")
	cmd.Flags().StringVar(&timing.Date, "date", "", "new start date: YYYY-MM-DD or a relative token")
	cmd.Flags().StringVar(&timing.Time, "time", "", "new start time of day (HH:MM)")
	cmd.Flags().StringVar(&timing.End, "end", "", "new end instant or date")
	cmd.Flags().StringVar(&timing.Duration, "duration", "", "new duration like 30m, 2h")

	return cmd
}

func (c *CLI) resolveMoveTarget(ctx context.Context, id int64, title string) (*store.Event, error) {
	if id != 0 {
		event, err := c.store.GetEvent(ctx, &store.FindEvent{ID: &id})
		if err != nil {
			return nil, err
		}
		if event == nil {
			return nil, scherr.NotFound("no event found with id %d", id)
		}
		return event, nil
	}
	if title != "" {
		return c.resolveByTitle(ctx, title)
	}
	return nil, errors.New("provide --id or --title")
}
