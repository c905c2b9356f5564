package notify

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_nil_subscriber_panics(t *testing.T) {
	r := newRegistry(zerolog.Nop())
	assert.Panics(t, func() { r.subscribe(nil) })
}

func TestRegistry_unsubscribe_during_fanout_applies_next_round(t *testing.T) {
	r := newRegistry(zerolog.Nop())

	var calls []string
	var second Token
	r.subscribe(func(Change) {
		calls = append(calls, "first")
		r.unsubscribe(second)
	})
	second = r.subscribe(func(Change) { calls = append(calls, "second") })

	r.notifyAll(Change{Kind: ChangePublished})
	r.notifyAll(Change{Kind: ChangePublished})

	assert.Equal(t, []string{"first", "second", "first"}, calls)
}

func TestRegistry_clear(t *testing.T) {
	r := newRegistry(zerolog.Nop())
	r.subscribe(func(Change) {})
	r.subscribe(func(Change) {})

	r.clear()
	assert.Equal(t, 0, r.len())
	assert.False(t, r.unsubscribe(1))
}

func TestRegistry_reports_panic_value(t *testing.T) {
	r := newRegistry(zerolog.Nop())

	var got *SubscriberError
	r.addFailureHook(func(err *SubscriberError) { got = err })
	tok := r.subscribe(func(Change) { panic(assert.AnError) })

	r.notifyAll(Change{Kind: ChangeCleared, Seq: 7})

	if assert.NotNil(t, got) {
		assert.Equal(t, tok, got.Token)
		assert.Equal(t, assert.AnError, got.Recovered)
		assert.Equal(t, uint64(7), got.Change.Seq)
	}
}
