package cli

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tokinote/tokinote/internal/scherr"
	"github.com/tokinote/tokinote/store"
)

func (c *CLI) newDeleteCommand() *cobra.Command {
	var (
		id    int64
		title string
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a schedule entry by id or exact title",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (id == 0) == (title == "") {
				return errors.New("provide exactly one of --id or --title")
			}
			return c.runWithStore(cmd, func(ctx context.Context) error {
				if id != 0 {
					if err := c.store.DeleteEvent(ctx, &store.DeleteEvent{ID: id}); err != nil {
						return err
					}
					fmt.Fprintf(c.out, "Deleted event #%d\n", id)
					return nil
				}

				target, err := c.resolveByTitle(ctx, title)
				if err != nil {
					return err
				}
				if err := c.store.DeleteEvent(ctx, &store.DeleteEvent{ID: target.ID}); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "Deleted event #%d titled %q\n", target.ID, title)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "event id")
	cmd.Flags().StringVar(&title, "title", "", "exact event title; must match a single event")

	return cmd
}

// resolveByTitle finds the single event with the given title. Zero matches
// is NotFound; more than one is AmbiguousTarget and nothing is touched.
func (c *CLI) resolveByTitle(ctx context.Context, title string) (*store.Event, error) {
	matches, err := c.store.ListEvents(ctx, &store.FindEvent{Title: &title})
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, scherr.NotFound("no events found titled %q", title)
	case 1:
		return matches[0], nil
	default:
		return nil, scherr.AmbiguousTarget("%d events titled %q; use --id to disambiguate", len(matches), title)
	}
}
