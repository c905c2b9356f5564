package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/matheuscp10/unisports-match-play/internal/app"
	"github.com/matheuscp10/unisports-match-play/internal/sports"
	"github.com/matheuscp10/unisports-match-play/pkg/iojson"
)

type BookingsCmd struct {
	flags *Flags
	app   *app.App

	// flags
	jsonOutput bool
}

// NewBookingsCmd creates a new bookings command
func NewBookingsCmd(flags *Flags, app *app.App) *BookingsCmd {
	return &BookingsCmd{flags: flags, app: app}
}

// Register adds the bookings command to the application
func (cmd *BookingsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "bookings",
		Usage: "List and cancel field bookings and matches",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List bookings",
				UsageText: "unisports bookings ls [--json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON lines",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runList,
			},
			{
				Name:      "cancel",
				Usage:     "Cancel a booking and print the notice it raised",
				UsageText: "unisports bookings cancel <id> [--json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output the notice as JSON",
						Destination: &cmd.jsonOutput,
					},
				},
				ShellComplete: BookingIDCompleter(cmd.app),
				Action:        cmd.runCancel,
			},
		},
	})

	return app
}

func (cmd *BookingsCmd) runList(_ context.Context, c *cli.Command) error {
	out := c.Root().Writer
	items := cmd.app.Bookings.List()

	if cmd.jsonOutput {
		lw := iojson.NewLineWriter(out)
		for _, b := range items {
			if err := lw.Write(b); err != nil {
				return fmt.Errorf("encode booking: %w", err)
			}
		}
		return nil
	}

	if len(items) == 0 {
		fmt.Fprintf(os.Stderr, "No bookings found\n")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tKIND\tNAME\tSPORT\tWHEN\tLOCATION\tSTATUS")
	for _, b := range items {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", b.ID, b.Kind, b.Name, b.Sport, b.When, b.Location, b.Status)
	}
	return w.Flush()
}

func (cmd *BookingsCmd) runCancel(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one booking id")
	}
	id, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return fmt.Errorf("invalid booking id %q", c.Args().First())
	}

	fmt.Fprintf(os.Stderr, "Cancelling booking %d...\n", id)

	n, err := cmd.app.Bookings.Cancel(ctx, id)
	if err != nil {
		if errors.Is(err, sports.ErrBookingNotFound) {
			return cli.Exit(fmt.Sprintf("booking %d not found", id), 1)
		}
		return fmt.Errorf("cancel booking: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.NewLineWriter(out).Write(n)
	}

	_, err = fmt.Fprintf(out, "%s %s\n  %s\n", n.Category.Icon(), n.Title, n.Body)
	return err
}
