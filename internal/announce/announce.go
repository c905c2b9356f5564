// Package announce publishes configured announcements on cron schedules.
package announce

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/matheuscp10/unisports-match-play/internal/core/config"
	"github.com/matheuscp10/unisports-match-play/internal/core/logging"
	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
)

// Publisher is the part of notify.Store the announcer needs.
type Publisher interface {
	Publish(d notify.Draft) (notify.Notice, error)
}

type entry struct {
	id       cron.EntryID
	schedule string
	draft    notify.Draft
}

// Announcer owns a cron scheduler with one entry per announcement.
type Announcer struct {
	mu      sync.Mutex
	c       *cron.Cron
	pub     Publisher
	entries []entry
	log     zerolog.Logger
	running bool
}

// New parses every announcement schedule and registers it. Nothing is
// published until Run is called.
func New(pub Publisher, list []config.Announcement) (*Announcer, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

	a := &Announcer{
		c:   cron.New(cron.WithParser(parser)),
		pub: pub,
		log: logging.Component("announce"),
	}

	for i, item := range list {
		draft := notify.Draft{
			Category:  notify.Category(item.Category),
			Title:     item.Title,
			Body:      item.Body,
			Transient: item.Transient,
			Shareable: item.Shareable,
		}
		if draft.Category == "" {
			draft.Category = notify.CategoryGeneral
		}
		if err := draft.Validate(); err != nil {
			return nil, fmt.Errorf("announcement %d: %w", i, err)
		}

		idx := len(a.entries)
		id, err := a.c.AddFunc(item.Schedule, func() { _ = a.Fire(idx) })
		if err != nil {
			return nil, fmt.Errorf("announcement %d: invalid schedule %q: %w", i, item.Schedule, err)
		}
		a.entries = append(a.entries, entry{id: id, schedule: item.Schedule, draft: draft})
	}

	return a, nil
}

// Len returns the number of scheduled announcements.
func (a *Announcer) Len() int {
	return len(a.entries)
}

// Fire publishes announcement i immediately.
func (a *Announcer) Fire(i int) error {
	if i < 0 || i >= len(a.entries) {
		return fmt.Errorf("announcement %d: out of range", i)
	}
	e := a.entries[i]

	ctx := logging.WithProducer(context.Background(), "announcer")
	n, err := a.pub.Publish(e.draft)
	if err != nil {
		a.log.Error().Ctx(ctx).Err(err).Str("schedule", e.schedule).Msg("announcement not published")
		return fmt.Errorf("announcement %d: %w", i, err)
	}

	nlog := logging.ForNotice(ctx, a.log, n.ID)
	nlog.Info().Str("title", n.Title).Msg("announcement published")
	return nil
}

// Run starts the scheduler and blocks until ctx is done, then waits for
// running jobs to finish.
func (a *Announcer) Run(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return fmt.Errorf("announcer already running")
	}
	a.running = true
	a.mu.Unlock()

	if len(a.entries) == 0 {
		<-ctx.Done()
		return nil
	}

	a.c.Start()
	a.log.Info().Int("announcements", len(a.entries)).Msg("announcer started")

	<-ctx.Done()
	<-a.c.Stop().Done()

	a.log.Info().Msg("announcer stopped")
	return nil
}
