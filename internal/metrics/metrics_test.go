package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
	"github.com/matheuscp10/unisports-match-play/internal/core/notify/notifytest"
)

func mustAttach(t *testing.T, m *Metrics, store *notify.Store) func() {
	t.Helper()
	detach, err := m.Attach(store)
	require.NoError(t, err)
	return detach
}

func TestMetrics_Attach(t *testing.T) {
	clock := notifytest.NewClock(notifytest.Epoch)
	store := notify.New(notify.WithClock(clock))
	t.Cleanup(store.Close)

	m := New()
	detach, err := m.Attach(store)
	require.NoError(t, err)
	t.Cleanup(detach)

	a, err := store.Publish(notify.Draft{Category: notify.CategoryMatch, Title: "Match Confirmed"})
	require.NoError(t, err)
	_, err = store.Publish(notify.Toast("Team Followed", "MIT vs Harvard"))
	require.NoError(t, err)

	assert.InDelta(t, 2, testutil.ToFloat64(m.Notices), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Unread), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.PendingExpiries), 0)

	store.MarkRead(a.ID)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Unread), 0)

	clock.Advance(notify.DefaultExpiry)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Notices), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.PendingExpiries), 0)

	store.ClearAll()

	assert.InDelta(t, 1, testutil.ToFloat64(m.ChangesTotal.WithLabelValues("published", "match")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ChangesTotal.WithLabelValues("published", "general")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ChangesTotal.WithLabelValues("read", "match")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ChangesTotal.WithLabelValues("expired", "general")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ChangesTotal.WithLabelValues("cleared", "all")), 0)
	assert.InDelta(t, 5, testutil.ToFloat64(m.LastChangeSeq), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.Notices), 0)
}

func TestMetrics_Attach_SeedState(t *testing.T) {
	store := notify.New(
		notify.WithClock(notifytest.NewClock(notifytest.Epoch)),
		notify.WithSeed(notify.Seed{Draft: notify.Draft{Category: notify.CategoryGeneral, Title: "Tournament Alert"}, Age: time.Hour}),
	)
	t.Cleanup(store.Close)

	m := New()
	t.Cleanup(mustAttach(t, m, store))

	assert.InDelta(t, 1, testutil.ToFloat64(m.Notices), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Unread), 0)
}

func TestMetrics_SubscriberPanics(t *testing.T) {
	store := notify.New(notify.WithClock(notifytest.NewClock(notifytest.Epoch)))
	t.Cleanup(store.Close)

	m := New()
	t.Cleanup(mustAttach(t, m, store))
	store.Subscribe(func(notify.Change) { panic("broken view") })

	_, err := store.Publish(notify.Toast("Link Copied! 🔗", ""))
	require.NoError(t, err)

	assert.InDelta(t, 1, testutil.ToFloat64(m.SubscriberPanicsTotal), 0)
}

func TestMetrics_Detach(t *testing.T) {
	store := notify.New(notify.WithClock(notifytest.NewClock(notifytest.Epoch)))
	t.Cleanup(store.Close)

	m := New()
	detach := mustAttach(t, m, store)
	assert.Equal(t, 1, store.Subscribers())

	detach()
	assert.Equal(t, 0, store.Subscribers())

	_, err := store.Publish(notify.Toast("ignored", ""))
	require.NoError(t, err)
	assert.InDelta(t, 0, testutil.ToFloat64(m.Notices), 0)
}

func TestMetrics_Attach_twice(t *testing.T) {
	store := notify.New(notify.WithClock(notifytest.NewClock(notifytest.Epoch)))
	t.Cleanup(store.Close)

	m := New()
	detach := mustAttach(t, m, store)

	_, err := m.Attach(store)
	require.ErrorIs(t, err, ErrAlreadyAttached)
	assert.Equal(t, 1, store.Subscribers(), "a failed attach does not subscribe")

	detach()

	detach = mustAttach(t, m, store)
	t.Cleanup(detach)
	assert.Equal(t, 1, store.Subscribers())
}
