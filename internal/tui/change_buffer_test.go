package tui

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
)

func TestChangeBuffer_Drain_empty_returnsNil(t *testing.T) {
	b := NewChangeBuffer()
	assert.Nil(t, b.Drain())
}

func TestChangeBuffer_PushDrain_orderAndClear(t *testing.T) {
	b := NewChangeBuffer()
	b.Push(notify.Change{Seq: 1, Kind: notify.ChangePublished})
	b.Push(notify.Change{Seq: 2, Kind: notify.ChangeRead})

	items := b.Drain()
	require.Len(t, items, 2)
	assert.Equal(t, uint64(1), items[0].Seq)
	assert.Equal(t, notify.ChangeRead, items[1].Kind)
	assert.Nil(t, b.Drain())
}

func TestChangeBuffer_WaitForSignal_singleSignalDrainsAll(t *testing.T) {
	b := NewChangeBuffer()
	b.Push(notify.Change{Seq: 1})
	b.Push(notify.Change{Seq: 2})

	msg := b.WaitForSignal()()
	_, ok := msg.(drainChangesMsg)
	require.True(t, ok)

	items := b.Drain()
	require.Len(t, items, 2)
}

func TestChangeBuffer_WaitForSignal_blocksUntilPush(t *testing.T) {
	b := NewChangeBuffer()
	got := make(chan struct{})

	go func() {
		_ = b.WaitForSignal()()
		close(got)
	}()

	select {
	case <-got:
		t.Fatal("signal before push")
	case <-time.After(20 * time.Millisecond):
	}

	b.Push(notify.Change{Seq: 1})

	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatal("no signal after push")
	}
}

func TestChangeBuffer_ConcurrentPush(t *testing.T) {
	b := NewChangeBuffer()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Push(notify.Change{Seq: uint64(i)})
		}()
	}
	wg.Wait()

	assert.Len(t, b.Drain(), 50)
}

func TestChangeBuffer_SubscribedToStore(t *testing.T) {
	store := notify.New()
	t.Cleanup(store.Close)

	b := NewChangeBuffer()
	store.Subscribe(b.Push)

	_, err := store.Publish(notify.Toast("Team Followed", ""))
	require.NoError(t, err)

	items := b.Drain()
	require.Len(t, items, 1)
	assert.Equal(t, "Team Followed", items[0].Notice.Title)
}
