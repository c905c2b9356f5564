package sports

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/matheuscp10/unisports-match-play/internal/core/logging"
	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
)

// DefaultSimulatorInterval is the pause between two simulated user actions.
const DefaultSimulatorInterval = 4 * time.Second

type step struct {
	name string
	run  func(ctx context.Context, p *Producers) (notify.Notice, error)
}

// script replays the flows of the mobile app in a loop.
var script = []step{
	{"match confirmed", func(ctx context.Context, p *Producers) (notify.Notice, error) {
		return p.MatchConfirmed(ctx, "Thunder FC", "Football", "Saturday 10:00")
	}},
	{"player request", func(ctx context.Context, p *Producers) (notify.Notice, error) {
		return p.PlayerRequest(ctx, "Alex Johnson", "Basketball")
	}},
	{"team followed", func(ctx context.Context, p *Producers) (notify.Notice, error) {
		return p.TeamFollowed(ctx, Match{ID: "m-42", Sport: "Volleyball", Team1: "Spikers", Team2: "Net Ninjas"})
	}},
	{"field booked", func(ctx context.Context, p *Producers) (notify.Notice, error) {
		return p.FieldBooked(ctx, "Central Park Field A", "Football", "Sunday 15:00")
	}},
	{"opening location", func(ctx context.Context, p *Producers) (notify.Notice, error) {
		return p.OpeningLocation(ctx, "Riverside Courts")
	}},
	{"tournament alert", func(ctx context.Context, p *Producers) (notify.Notice, error) {
		return p.TournamentAlert(ctx, "Tournament Alert", "Spring Tennis Tournament registration is now open!")
	}},
	{"payment success", func(ctx context.Context, p *Producers) (notify.Notice, error) {
		return p.PaymentSuccess(ctx)
	}},
}

// Simulator publishes a scripted sequence of producer events, one per
// interval, so the notification center has live traffic to show.
type Simulator struct {
	producers *Producers
	interval  time.Duration
	log       zerolog.Logger

	mu   sync.Mutex
	next int
}

// NewSimulator creates a simulator. A non-positive interval falls back to
// DefaultSimulatorInterval.
func NewSimulator(p *Producers, interval time.Duration) *Simulator {
	if interval <= 0 {
		interval = DefaultSimulatorInterval
	}
	return &Simulator{
		producers: p,
		interval:  interval,
		log:       logging.Component("simulator"),
	}
}

// Step publishes the next scripted event and advances the script, wrapping
// around at the end.
func (s *Simulator) Step(ctx context.Context) (notify.Notice, error) {
	s.mu.Lock()
	st := script[s.next]
	s.next = (s.next + 1) % len(script)
	s.mu.Unlock()

	n, err := st.run(ctx, s.producers)
	if err != nil {
		return notify.Notice{}, err
	}

	s.log.Debug().Ctx(ctx).Str("step", st.name).Msg("simulated event")
	return n, nil
}

// Run steps the script every interval until ctx is done. Failed steps are
// logged and skipped.
func (s *Simulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.Step(ctx); err != nil {
				s.log.Warn().Err(err).Msg("simulated event failed")
			}
		}
	}
}
