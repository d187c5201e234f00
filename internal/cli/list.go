package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tokinote/tokinote/internal/timezone"
)

func (c *CLI) newListCommand() *cobra.Command {
	var (
		day string
		tz  string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored schedule entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runWithStore(cmd, func(ctx context.Context) error {
				loc, err := timezone.Parse(tz)
				if err != nil {
					return err
				}
				find, err := c.findForDay(day)
				if err != nil {
					return err
				}
				events, err := c.store.ListEvents(ctx, find)
				if err != nil {
					return err
				}

				if len(events) == 0 {
					fmt.Fprintln(c.out, "No events found")
					return nil
				}
				for _, event := range events {
					fmt.Fprintf(c.out, "#%d %s\n", event.ID, event.Title)
					fmt.Fprintf(c.out, "  %s\n", timezone.FormatEventRange(event.StartTs, event.EndTs, event.AllDay, loc))
					if len(event.Tags) > 0 {
						fmt.Fprintf(c.out, "  tags: %s\n", strings.Join(event.Tags, ", "))
					}
					if event.Note != "" {
						fmt.Fprintf(c.out, "  note: %s\n", event.Note)
					}
					fmt.Fprintln(c.out)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "filter by a specific day (UTC window), e.g. 2025-06-01 or today")
	cmd.Flags().StringVar(&tz, "tz", "", "timezone for display, e.g. Europe/Paris; defaults to the local zone")

	return cmd
}
