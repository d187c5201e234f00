package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/tokinote/tokinote/internal/feed"
	"github.com/tokinote/tokinote/internal/ics"
	"github.com/tokinote/tokinote/internal/timezone"
)

func (c *CLI) newRSSCommand() *cobra.Command {
	var (
		channel feed.Channel
		day     string
		tz      string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "rss",
		Short: "Emit events as an RSS feed",
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
				xml, err := feed.RenderRSS(events, channel, loc, c.now())
				if err != nil {
					return err
				}
				if output == "" {
					output = c.profile.RSSOutput
				}
				return c.writeOutput(output, xml+"\n")
			})
		},
	}

	cmd.Flags().StringVar(&channel.Title, "title", "", "channel title")
	cmd.Flags().StringVar(&channel.Link, "link", "", "channel link")
	cmd.Flags().StringVar(&channel.Description, "description", "", "channel description")
	cmd.Flags().StringVar(&day, "day", "", "optional day filter (UTC window)")
	cmd.Flags().StringVar(&tz, "tz", "", "timezone used for rendered times")
	cmd.Flags().StringVar(&output, "output", "", "write RSS XML to this file instead of stdout")

	return cmd
}

func (c *CLI) newICalCommand() *cobra.Command {
	var (
		day    string
		tz     string
		output string
	)

	cmd := &cobra.Command{
		Use:   "ical",
		Short: "Emit an iCalendar (.ics) feed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runWithStore(cmd, func(ctx context.Context) error {
				loc := time.UTC
				if tz != "" {
					resolved, err := timezone.Parse(tz)
					if err != nil {
						return err
					}
					loc = resolved
				}
				find, err := c.findForDay(day)
				if err != nil {
					return err
				}
				events, err := c.store.ListEvents(ctx, find)
				if err != nil {
					return err
				}
				content := ics.RenderCalendar(events, loc, tz, c.now())
				if output == "" {
					output = c.profile.ICalOutput
				}
				return c.writeOutput(output, content)
			})
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "optional day filter (UTC window)")
	cmd.Flags().StringVar(&tz, "tz", "", "TZID applied to timed events; UTC form when omitted")
	cmd.Flags().StringVar(&output, "output", "", "write ICS to this file instead of stdout")

	return cmd
}
