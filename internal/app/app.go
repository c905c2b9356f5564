// Package app assembles the notification engine and the services that feed
// and consume it.
package app

import (
	"fmt"

	"github.com/matheuscp10/unisports-match-play/internal/core/config"
	"github.com/matheuscp10/unisports-match-play/internal/core/logging"
	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
	"github.com/matheuscp10/unisports-match-play/internal/metrics"
	"github.com/matheuscp10/unisports-match-play/internal/share"
	"github.com/matheuscp10/unisports-match-play/internal/sports"
)

// App is the central entry point for all unisports operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Config    *config.Config
	Store     *notify.Store
	Producers *sports.Producers
	Bookings  *sports.Bookings
	Sharer    *share.Sharer
	Metrics   *metrics.Metrics

	detachMetrics func()
}

// NewStore builds the notification store described by cfg. Extra options are
// applied last so tests can swap the clock or id generator.
func NewStore(cfg *config.Config, extra ...notify.Option) *notify.Store {
	opts := cfg.Expiry.StoreOptions()
	opts = append(opts, notify.WithLogger(logging.Component("notify")))
	if cfg.Seed {
		opts = append(opts, notify.WithSeed(sports.SampleNotices()...))
	}
	opts = append(opts, extra...)
	return notify.New(opts...)
}

// New constructs an App around store. The metrics collector is attached
// right away so that it observes every change.
func New(cfg *config.Config, store *notify.Store, clip share.Clipboard) (*App, error) {
	producers := sports.NewProducers(store)

	m := metrics.New()
	detach, err := m.Attach(store)
	if err != nil {
		return nil, fmt.Errorf("attach metrics: %w", err)
	}

	return &App{
		Config:        cfg,
		Store:         store,
		Producers:     producers,
		Bookings:      sports.NewBookings(producers, sports.DefaultCancelDelay, sports.SampleBookings()),
		Sharer:        share.NewSharer(clip, store, cfg.Share.BaseURL),
		Metrics:       m,
		detachMetrics: detach,
	}, nil
}

// Close detaches the metrics collector and closes the store, cancelling
// every pending expiry.
func (a *App) Close() {
	if a.detachMetrics != nil {
		a.detachMetrics()
		a.detachMetrics = nil
	}
	a.Store.Close()
}
