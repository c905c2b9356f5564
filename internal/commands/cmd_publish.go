package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/matheuscp10/unisports-match-play/internal/app"
	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
	"github.com/matheuscp10/unisports-match-play/pkg/iojson"
)

type PublishCmd struct {
	flags *Flags
	app   *app.App

	// flags
	reader     iojson.FileReader[[]notify.Draft]
	jsonOutput bool
}

// NewPublishCmd creates a new publish command
func NewPublishCmd(flags *Flags, app *app.App) *PublishCmd {
	return &PublishCmd{flags: flags, app: app}
}

// Register adds the publish command to the application
func (cmd *PublishCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "publish",
		Usage:     "Publish notices from JSON and print the resulting list",
		UsageText: "unisports publish [-f drafts.json] [--json]",
		Description: `Reads a JSON array of drafts and publishes each one into the store, on top of
the sample notices when seeding is enabled. Invalid drafts are reported and
skipped. The final list is printed newest first.

Example input:

  [{"category": "match", "title": "Match Confirmed", "body": "Saturday 10:00", "shareable": true}]`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output notices as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *PublishCmd) run(_ context.Context, c *cli.Command) error {
	drafts, err := cmd.reader.Read()
	if err != nil {
		return fmt.Errorf("read drafts: %w", err)
	}

	failed := 0
	for i, d := range drafts {
		if _, err := cmd.app.Store.Publish(d); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "draft %d: %v\n", i, err)
		}
	}

	out := c.Root().Writer
	snapshot := cmd.app.Store.Snapshot()

	if cmd.jsonOutput {
		lw := iojson.NewLineWriter(out)
		for _, n := range snapshot {
			if err := lw.Write(n); err != nil {
				return fmt.Errorf("encode notice: %w", err)
			}
		}
	} else {
		now := cmd.app.Store.Now()
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tCATEGORY\tTITLE\tAGE\tFLAGS")
		for _, n := range snapshot {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				shortID(n.ID), n.Category, n.Title, notify.RelativeTime(now, n.CreatedAt), noticeFlags(n))
		}
		_ = w.Flush()
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d drafts rejected", failed, len(drafts)), 1)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func noticeFlags(n notify.Notice) string {
	flags := ""
	if !n.Read {
		flags += "unread "
	}
	if n.Transient {
		flags += "transient "
	}
	if n.Shareable {
		flags += "shareable "
	}
	if flags == "" {
		return "-"
	}
	return flags[:len(flags)-1]
}
