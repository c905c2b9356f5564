// Package metrics exposes notification center state as prometheus metrics.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
)

// ErrAlreadyAttached is returned by Attach while a previous attachment is live.
var ErrAlreadyAttached = errors.New("metrics already attached to a store")

// Metrics holds all Prometheus metrics for the notification center.
type Metrics struct {
	ChangesTotal          *prometheus.CounterVec
	SubscriberPanicsTotal prometheus.Counter

	Notices         prometheus.Gauge
	Unread          prometheus.Gauge
	PendingExpiries prometheus.Gauge
	LastChangeSeq   prometheus.Gauge

	registry *prometheus.Registry
}

// New creates the metrics on a private registry.
func New() *Metrics {
	m := &Metrics{
		ChangesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "unisports_notify_changes_total",
			Help: "Total number of store mutations fanned out, by kind and category",
		}, []string{"kind", "category"}),
		SubscriberPanicsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "unisports_notify_subscriber_panics_total",
			Help: "Total number of subscriber callbacks that panicked",
		}),
		Notices: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "unisports_notify_notices",
			Help: "Number of notices currently held",
		}),
		Unread: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "unisports_notify_unread",
			Help: "Number of unread notices",
		}),
		PendingExpiries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "unisports_notify_pending_expiries",
			Help: "Number of armed expiry timers",
		}),
		LastChangeSeq: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "unisports_notify_last_change_seq",
			Help: "Sequence number of the last observed change",
		}),
	}

	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(
		m.ChangesTotal,
		m.SubscriberPanicsTotal,
		m.Notices,
		m.Unread,
		m.PendingExpiries,
		m.LastChangeSeq,
	)

	return m
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Attach subscribes the metrics to store and records its current state. The
// returned func removes the subscription. A Metrics can observe one store at
// a time; attaching again before detaching fails.
func (m *Metrics) Attach(store *notify.Store) (func(), error) {
	subscribers := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "unisports_notify_subscribers",
		Help: "Number of registered store subscribers",
	}, func() float64 { return float64(store.Subscribers()) })
	if err := m.registry.Register(subscribers); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return nil, ErrAlreadyAttached
		}
		return nil, fmt.Errorf("register subscribers gauge: %w", err)
	}

	m.refresh(store)
	store.OnSubscriberFailure(func(*notify.SubscriberError) {
		m.SubscriberPanicsTotal.Inc()
	})

	tok := store.Subscribe(func(c notify.Change) {
		category := string(c.Notice.Category)
		if c.Kind == notify.ChangeCleared {
			category = "all"
		}
		m.ChangesTotal.WithLabelValues(string(c.Kind), category).Inc()
		m.LastChangeSeq.Set(float64(c.Seq))
		m.refresh(store)
	})

	return func() {
		store.Unsubscribe(tok)
		m.registry.Unregister(subscribers)
	}, nil
}

func (m *Metrics) refresh(store *notify.Store) {
	m.Notices.Set(float64(store.Len()))
	m.Unread.Set(float64(store.UnreadCount()))
	m.PendingExpiries.Set(float64(store.PendingExpiries()))
}
