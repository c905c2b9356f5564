package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/matheuscp10/unisports-match-play/internal/announce"
	"github.com/matheuscp10/unisports-match-play/internal/app"
	"github.com/matheuscp10/unisports-match-play/internal/core/config"
	"github.com/matheuscp10/unisports-match-play/internal/metrics"
	"github.com/matheuscp10/unisports-match-play/internal/sports"
	"github.com/matheuscp10/unisports-match-play/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *app.App

	// flags
	simulate         bool
	simulateInterval time.Duration
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *app.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "simulate",
			Usage:       "publish a scripted stream of match, booking and payment events",
			Sources:     cli.EnvVars("UNISPORTS_SIMULATE"),
			Destination: &cmd.simulate,
		},
		&cli.DurationFlag{
			Name:        "simulate-interval",
			Usage:       "pause between simulated events",
			Value:       sports.DefaultSimulatorInterval,
			Destination: &cmd.simulateInterval,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the notification center needs a terminal; use 'unisports demo' for plain output")
	}

	cfg := cmd.app.Config
	for _, w := range cfg.Warnings() {
		log.Warn().Str("category", w.Category).Str("item", w.Item).Msg(w.Message)
	}

	announcer, err := announce.New(cmd.app.Store, cfg.Announcements)
	if err != nil {
		return fmt.Errorf("announcements: %w", err)
	}

	model := tui.New(tui.Options{
		Store:     cmd.app.Store,
		Sharer:    cmd.app.Sharer,
		MaxToasts: cfg.TUI.MaxToasts,
		Mute:      cfg.TUI.Mute,
	})
	defer model.Close()

	g, gctx := errgroup.WithContext(ctx)
	workCtx, stop := context.WithCancel(gctx)
	defer stop()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(workCtx))

	g.Go(func() error {
		defer stop()

		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("run tui: %w", err)
		}
		return nil
	})

	if cmd.flags.ConfigPath != "" {
		g.Go(func() error {
			err := config.Watch(workCtx, cmd.flags.ConfigPath, func(next *config.Config) {
				p.Send(tui.SettingsMsg{
					Theme:     next.TUI.Theme,
					MaxToasts: next.TUI.MaxToasts,
					Mute:      next.TUI.Mute,
				})
			})
			if err != nil {
				log.Debug().Err(err).Msg("config hot reload disabled")
			}
			return nil
		})
	}

	if announcer.Len() > 0 {
		g.Go(func() error { return announcer.Run(workCtx) })
	}

	if cfg.Metrics.Enabled {
		srv := metrics.NewServer(cfg.Metrics.Addr, cmd.app.Metrics.Registry())
		g.Go(func() error { return srv.Run(workCtx) })
	}

	if cmd.simulate {
		sim := sports.NewSimulator(cmd.app.Producers, cmd.simulateInterval)
		g.Go(func() error { return sim.Run(workCtx) })
	}

	return g.Wait()
}
