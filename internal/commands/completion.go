package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/matheuscp10/unisports-match-play/internal/app"
)

// BookingIDCompleter returns a ShellCompleteFunc that suggests the ids of
// bookings that can still be cancelled, with their names as descriptions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func BookingIDCompleter(a *app.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		w := cmd.Root().Writer
		for _, b := range a.Bookings.List() {
			if a.Bookings.Cancelling(b.ID) {
				continue
			}
			_, _ = fmt.Fprintf(w, "%d:%s\n", b.ID, b.Name)
		}
	}
}
