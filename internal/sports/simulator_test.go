package sports_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
	"github.com/matheuscp10/unisports-match-play/internal/core/notify/notifytest"
	"github.com/matheuscp10/unisports-match-play/internal/sports"
)

func TestSimulator_Step_cycles_script(t *testing.T) {
	store := notify.New(notify.WithClock(notifytest.NewClock(time.Time{})))
	t.Cleanup(store.Close)

	sim := sports.NewSimulator(sports.NewProducers(store), time.Second)
	ctx := context.Background()

	first, err := sim.Step(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Match Confirmed", first.Title)

	seen := map[string]bool{first.Title: true}
	for {
		n, err := sim.Step(ctx)
		require.NoError(t, err)
		if seen[n.Title] {
			assert.Equal(t, first.Title, n.Title)
			break
		}
		seen[n.Title] = true
	}

	assert.Len(t, seen, 7)
}

func TestSimulator_Run_publishes_until_cancelled(t *testing.T) {
	store := notify.New()
	t.Cleanup(store.Close)

	sim := sports.NewSimulator(sports.NewProducers(store), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sim.Run(ctx) }()

	assert.Eventually(t, func() bool { return store.Len() >= 2 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("simulator did not stop")
	}
}
