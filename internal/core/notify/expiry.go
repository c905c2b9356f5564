package notify

import "time"

// DefaultExpiry is how long a transient notice stays in the Store.
const DefaultExpiry = 5 * time.Second

// expiryTimer is the owned handle of one armed expiry. The Store compares
// handles by identity when a timer fires so a stale timer can never remove a
// notice twice.
type expiryTimer struct {
	id    string
	timer Timer
}

// scheduler tracks at most one armed timer per notice id. It is not safe for
// concurrent use on its own; the Store calls it with its mutex held.
type scheduler struct {
	clock      Clock
	delay      time.Duration
	categories map[Category]time.Duration
	armed      map[string]*expiryTimer
}

func newScheduler(clock Clock) *scheduler {
	return &scheduler{
		clock:      clock,
		delay:      DefaultExpiry,
		categories: map[Category]time.Duration{},
		armed:      map[string]*expiryTimer{},
	}
}

func (s *scheduler) delayFor(c Category) time.Duration {
	if d, ok := s.categories[c]; ok && d > 0 {
		return d
	}
	return s.delay
}

// arm schedules fire for id after delay. Arming an id that already has a
// timer replaces it.
func (s *scheduler) arm(id string, delay time.Duration, fire func(*expiryTimer)) {
	s.cancel(id)

	h := &expiryTimer{id: id}
	s.armed[id] = h
	h.timer = s.clock.AfterFunc(delay, func() { fire(h) })
}

// owns reports whether h is still the armed timer for its id.
func (s *scheduler) owns(h *expiryTimer) bool {
	return s.armed[h.id] == h
}

// release forgets a timer that has fired.
func (s *scheduler) release(h *expiryTimer) {
	if s.owns(h) {
		delete(s.armed, h.id)
	}
}

func (s *scheduler) cancel(id string) bool {
	h, ok := s.armed[id]
	if !ok {
		return false
	}
	delete(s.armed, id)
	if h.timer != nil {
		h.timer.Stop()
	}
	return true
}

func (s *scheduler) cancelAll() int {
	n := len(s.armed)
	for id := range s.armed {
		s.cancel(id)
	}
	return n
}

func (s *scheduler) pending() int {
	return len(s.armed)
}
