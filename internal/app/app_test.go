package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheuscp10/unisports-match-play/internal/core/config"
	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
	"github.com/matheuscp10/unisports-match-play/internal/core/notify/notifytest"
)

type memClipboard struct{ text string }

func (c *memClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

func TestNewStore_seeds_sample_notices(t *testing.T) {
	cfg := config.DefaultConfig()

	store := NewStore(&cfg, notify.WithClock(notifytest.NewClock(time.Time{})))
	t.Cleanup(store.Close)

	assert.Equal(t, 4, store.Len())
}

func TestNewStore_without_seed(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = false
	cfg.Expiry.Categories = map[string]time.Duration{"booking": 8 * time.Second}

	store := NewStore(&cfg)
	t.Cleanup(store.Close)

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 8*time.Second, store.ExpiryFor(notify.CategoryBooking))
	assert.Equal(t, notify.DefaultExpiry, store.ExpiryFor(notify.CategoryMatch))
}

func TestApp_wires_services_to_store(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = false
	store := NewStore(&cfg, notify.WithClock(notifytest.NewClock(time.Time{})))

	clip := &memClipboard{}
	a, err := New(&cfg, store, clip)
	require.NoError(t, err)
	require.Equal(t, 1, store.Subscribers())

	n, err := a.Producers.TournamentAlert(t.Context(), "Tournament Alert", "Registration open")
	require.NoError(t, err)

	res, err := a.Sharer.Share(n)
	require.NoError(t, err)
	assert.True(t, res.Copied)
	assert.Contains(t, clip.text, "notice="+n.ID)

	a.Close()
	assert.Equal(t, 0, store.Subscribers())

	_, err = store.Publish(notify.Toast("late", ""))
	assert.ErrorIs(t, err, notify.ErrClosed)
}
