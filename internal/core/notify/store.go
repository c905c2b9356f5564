package notify

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/matheuscp10/unisports-match-play/internal/core/logging"
)

// ChangeKind names the mutation that triggered a fan-out.
type ChangeKind string

const (
	ChangePublished ChangeKind = "published"
	ChangeRead      ChangeKind = "read"
	ChangeRemoved   ChangeKind = "removed"
	ChangeExpired   ChangeKind = "expired"
	ChangeCleared   ChangeKind = "cleared"
)

// Change describes one Store mutation. Seq increases by one per mutation and
// gives every change a total order.
type Change struct {
	Seq  uint64
	Kind ChangeKind
	// ID and Notice are empty for ChangeCleared.
	ID     string
	Notice Notice
	// Count is the number of notices dropped by ChangeCleared.
	Count int
}

// Seed is a notice placed in the Store at construction time, typically sample
// data. Age is subtracted from the clock to compute CreatedAt.
type Seed struct {
	Draft
	Age  time.Duration
	Read bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the system clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the logger used for store events and subscriber failures.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithExpiry sets the default delay before a transient notice is removed.
func WithExpiry(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.expiryDefault = d
		}
	}
}

// WithCategoryExpiry overrides the expiry delay for one category.
func WithCategoryExpiry(c Category, d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.expiryCategories[c] = d
		}
	}
}

// WithIDGenerator replaces the uuid based id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithSeed pre-populates the Store. Invalid seeds are logged and skipped, and
// transient seeds whose expiry window already passed are dropped.
func WithSeed(seeds ...Seed) Option {
	return func(s *Store) { s.seeds = append(s.seeds, seeds...) }
}

// Store is the single source of truth for notices. All mutation goes through
// Publish, MarkRead, Remove, ClearAll and expiry; each mutation is applied
// under the store mutex and queued for fan-out in Seq order.
//
// Subscribers are never invoked concurrently and always see changes in Seq
// order. The goroutine that finds the queue idle delivers it until it is
// empty. A mutation made while another goroutine is delivering, including one
// made from inside a subscriber, is queued and handed to that goroutine, so
// its caller may return before the change is fanned out. Without concurrent
// mutations every change is fanned out before the mutating call returns.
//
// A Store is safe for concurrent use. It is created once at startup, handed
// to producers and consumers, and torn down with Close.
type Store struct {
	mu      sync.Mutex
	notices []Notice // newest first
	seq     uint64
	closed  bool

	pending    []Change
	delivering bool

	clock  Clock
	newID  func() string
	expiry *scheduler
	subs   *registry
	log    zerolog.Logger

	expiryDefault    time.Duration
	expiryCategories map[Category]time.Duration
	seeds            []Seed
}

// New constructs a Store.
func New(opts ...Option) *Store {
	s := &Store{
		clock:            SystemClock(),
		newID:            uuid.NewString,
		log:              logging.Component("notify"),
		expiryDefault:    DefaultExpiry,
		expiryCategories: map[Category]time.Duration{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.expiry = newScheduler(s.clock)
	s.expiry.delay = s.expiryDefault
	for c, d := range s.expiryCategories {
		s.expiry.categories[c] = d
	}
	s.subs = newRegistry(s.log)

	s.applySeeds()
	return s
}

func (s *Store) applySeeds() {
	if len(s.seeds) == 0 {
		return
	}

	// armed timers may fire before seeding finishes
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for _, seed := range s.seeds {
		if err := seed.Validate(); err != nil {
			s.log.Warn().Err(err).Str("title", seed.Title).Msg("skipping invalid seed notice")
			continue
		}

		remaining := time.Duration(0)
		if seed.Transient {
			remaining = s.expiry.delayFor(seed.Category) - seed.Age
			if remaining <= 0 {
				continue
			}
		}

		n := Notice{
			ID:        s.newID(),
			Category:  seed.Category,
			Title:     strings.TrimSpace(seed.Title),
			Body:      seed.Body,
			CreatedAt: now.Add(-seed.Age),
			Read:      seed.Read,
			Transient: seed.Transient,
			Shareable: seed.Shareable,
		}
		s.notices = append(s.notices, n)
		if n.Transient {
			s.expiry.arm(n.ID, remaining, s.expire)
		}
	}

	slices.SortStableFunc(s.notices, func(a, b Notice) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	s.seeds = nil
}

// Publish validates d, stores the resulting notice at the head of the
// collection, arms its expiry when transient and notifies every subscriber.
// It returns an *InvalidNoticeError for an empty title or unknown category
// and ErrClosed after Close.
func (s *Store) Publish(d Draft) (Notice, error) {
	if err := d.Validate(); err != nil {
		return Notice{}, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Notice{}, ErrClosed
	}

	now := s.clock.Now()
	if len(s.notices) > 0 && now.Before(s.notices[0].CreatedAt) {
		now = s.notices[0].CreatedAt
	}

	n := Notice{
		ID:        s.newID(),
		Category:  d.Category,
		Title:     strings.TrimSpace(d.Title),
		Body:      d.Body,
		CreatedAt: now,
		Transient: d.Transient,
		Shareable: d.Shareable,
	}
	s.notices = slices.Insert(s.notices, 0, n)

	if n.Transient {
		s.expiry.arm(n.ID, s.expiry.delayFor(n.Category), s.expire)
	}

	s.enqueueLocked(s.changeLocked(ChangePublished, n))
	s.mu.Unlock()

	s.log.Debug().
		Str(logging.FieldNoticeID, n.ID).
		Str("category", string(n.Category)).
		Bool("transient", n.Transient).
		Msg("notice published")

	s.deliver()
	return n, nil
}

// MarkRead flags the notice as read. Unknown ids and already read notices
// are no-ops and do not notify subscribers. It reports whether the flag
// changed.
func (s *Store) MarkRead(id string) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 || s.notices[idx].Read {
		s.mu.Unlock()
		return false
	}

	s.notices[idx].Read = true
	s.enqueueLocked(s.changeLocked(ChangeRead, s.notices[idx]))
	s.mu.Unlock()

	s.deliver()
	return true
}

// Remove deletes the notice and cancels its pending expiry. Unknown ids are
// ignored since a notice may race with its own expiry. It reports whether a
// notice was removed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	n := s.notices[idx]
	s.notices = slices.Delete(s.notices, idx, idx+1)
	s.expiry.cancel(id)
	s.enqueueLocked(s.changeLocked(ChangeRemoved, n))
	s.mu.Unlock()

	s.log.Debug().Str(logging.FieldNoticeID, id).Msg("notice removed")

	s.deliver()
	return true
}

// ClearAll empties the Store, cancels every pending expiry and notifies
// subscribers exactly once.
func (s *Store) ClearAll() {
	s.mu.Lock()
	count := len(s.notices)
	s.notices = nil
	cancelled := s.expiry.cancelAll()
	c := s.changeLocked(ChangeCleared, Notice{})
	c.Count = count
	s.enqueueLocked(c)
	s.mu.Unlock()

	s.log.Debug().Int("count", count).Int("timers_cancelled", cancelled).Msg("notices cleared")

	s.deliver()
}

// expire is called from the expiry timer goroutine.
func (s *Store) expire(h *expiryTimer) {
	s.mu.Lock()
	if !s.expiry.owns(h) {
		s.mu.Unlock()
		return
	}
	s.expiry.release(h)

	idx := s.indexLocked(h.id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	n := s.notices[idx]
	s.notices = slices.Delete(s.notices, idx, idx+1)
	s.enqueueLocked(s.changeLocked(ChangeExpired, n))
	s.mu.Unlock()

	s.log.Debug().Str(logging.FieldNoticeID, n.ID).Msg("notice expired")

	s.deliver()
}

// Now returns the current time of the store clock. Consumers use it to
// render ages consistently with CreatedAt.
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// Snapshot returns a copy of the notices, newest first.
func (s *Store) Snapshot() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Notice, len(s.notices))
	copy(out, s.notices)
	return out
}

// Get returns the notice with id, if present.
func (s *Store) Get(id string) (Notice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return Notice{}, false
	}
	return s.notices[idx], true
}

// Len returns the number of notices currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notices)
}

// UnreadCount is derived from the collection on every call.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CountUnread(s.notices)
}

// ExpiryFor returns the delay applied to transient notices of category c.
func (s *Store) ExpiryFor(c Category) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiry.delayFor(c)
}

// PendingExpiries returns the number of armed expiry timers.
func (s *Store) PendingExpiries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiry.pending()
}

// Subscribe registers fn and returns the token used to remove it. The same
// function may be registered several times; each registration is invoked.
func (s *Store) Subscribe(fn Subscriber) Token {
	return s.subs.subscribe(fn)
}

// Unsubscribe removes a subscription. Unknown or already removed tokens are
// ignored.
func (s *Store) Unsubscribe(tok Token) {
	s.subs.unsubscribe(tok)
}

// Subscribers returns the number of registered subscribers.
func (s *Store) Subscribers() int {
	return s.subs.len()
}

// OnSubscriberFailure registers a hook invoked whenever a subscriber panics.
func (s *Store) OnSubscriberFailure(fn func(*SubscriberError)) {
	s.subs.addFailureHook(fn)
}

// Close cancels every pending expiry, drops all subscribers and makes further
// Publish calls fail with ErrClosed. Notices already held stay readable.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cancelled := s.expiry.cancelAll()
	s.mu.Unlock()

	s.subs.clear()
	s.log.Debug().Int("timers_cancelled", cancelled).Msg("notification store closed")
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.notices, func(n Notice) bool { return n.ID == id })
}

func (s *Store) enqueueLocked(c Change) {
	s.pending = append(s.pending, c)
}

// deliver fans queued changes out until the queue is empty. It returns at once
// when another call is already delivering.
func (s *Store) deliver() {
	s.mu.Lock()
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true

	for len(s.pending) > 0 {
		c := s.pending[0]
		s.pending[0] = Change{}
		s.pending = s.pending[1:]
		s.mu.Unlock()

		s.subs.notifyAll(c)

		s.mu.Lock()
	}

	s.pending = nil
	s.delivering = false
	s.mu.Unlock()
}

func (s *Store) changeLocked(kind ChangeKind, n Notice) Change {
	s.seq++
	return Change{
		Seq:    s.seq,
		Kind:   kind,
		ID:     n.ID,
		Notice: n,
	}
}
