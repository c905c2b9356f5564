package notify

import (
	"runtime/debug"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/matheuscp10/unisports-match-play/internal/core/logging"
)

// Subscriber is invoked after every Store mutation. The Change argument is
// informational; observers should re-read Snapshot or UnreadCount instead of
// applying deltas.
type Subscriber func(Change)

// Token identifies a subscription so it can be removed later.
type Token uint64

type subscription struct {
	token Token
	fn    Subscriber
}

// registry keeps observers in registration order and fans changes out to
// them. A panicking observer is recovered and reported; the others still run.
type registry struct {
	mu        sync.Mutex
	next      Token
	subs      []subscription
	onFailure []func(*SubscriberError)
	log       zerolog.Logger
}

func newRegistry(log zerolog.Logger) *registry {
	return &registry{log: log}
}

func (r *registry) subscribe(fn Subscriber) Token {
	if fn == nil {
		panic("notify: nil subscriber")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.subs = append(r.subs, subscription{token: r.next, fn: fn})
	return r.next
}

func (r *registry) unsubscribe(tok Token) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.subs, func(s subscription) bool { return s.token == tok })
	if idx < 0 {
		return false
	}
	r.subs = slices.Delete(r.subs, idx, idx+1)
	return true
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

func (r *registry) clear() {
	r.mu.Lock()
	r.subs = nil
	r.mu.Unlock()
}

func (r *registry) addFailureHook(fn func(*SubscriberError)) {
	r.mu.Lock()
	r.onFailure = append(r.onFailure, fn)
	r.mu.Unlock()
}

// notifyAll invokes a copy of the current observers on the calling
// goroutine. Observers added or removed during the round take effect on the
// next one.
func (r *registry) notifyAll(c Change) {
	r.mu.Lock()
	subs := slices.Clone(r.subs)
	r.mu.Unlock()

	for _, sub := range subs {
		r.invoke(sub, c)
	}
}

func (r *registry) invoke(sub subscription, c Change) {
	defer func() {
		if rec := recover(); rec != nil {
			r.report(&SubscriberError{
				Token:     sub.token,
				Change:    c,
				Recovered: rec,
				Stack:     debug.Stack(),
			})
		}
	}()
	sub.fn(c)
}

func (r *registry) report(err *SubscriberError) {
	r.log.Error().
		Err(err).
		Uint64("token", uint64(err.Token)).
		Str("change", string(err.Change.Kind)).
		Str(logging.FieldNoticeID, err.Change.ID).
		Str("stack", string(err.Stack)).
		Msg("subscriber panicked")

	r.mu.Lock()
	hooks := slices.Clone(r.onFailure)
	r.mu.Unlock()

	for _, fn := range hooks {
		func() {
			defer func() { recover() }() //nolint:errcheck
			fn(err)
		}()
	}
}
